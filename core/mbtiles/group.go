package mbtiles

// AdjustedEstimate applies the storage overhead factor to a raw payload
// estimate, truncating to whole bytes. The factor approximates SQLite
// index, page, and metadata overhead on top of raw blob lengths.
func AdjustedEstimate(rawBytes int64, overheadFactor float64) int64 {
	return int64(float64(rawBytes) * overheadFactor)
}

// GroupZooms packs zoom levels into ordered groups whose adjusted estimates
// stay under limitBytes. Greedy single pass: the first zoom always opens a
// group, each subsequent zoom joins the running group if it fits, otherwise
// it opens the next group.
//
// A zoom level whose own adjusted estimate already exceeds the limit still
// lands alone in its own group; flagging that condition is the caller's
// concern. Every input zoom appears in exactly one group, groups preserve
// the input order, and no group is empty.
func GroupZooms(zooms []int, sizes map[int]int64, limitBytes int64, overheadFactor float64) [][]int {
	var groups [][]int
	var current []int
	var currentEst int64

	for _, z := range zooms {
		est := AdjustedEstimate(sizes[z], overheadFactor)

		if len(current) == 0 {
			current = []int{z}
			currentEst = est
			continue
		}

		if currentEst+est <= limitBytes {
			current = append(current, z)
			currentEst += est
		} else {
			groups = append(groups, current)
			current = []int{z}
			currentEst = est
		}
	}

	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}
