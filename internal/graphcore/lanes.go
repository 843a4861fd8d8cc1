package graphcore

import "github.com/samber/lo"

// laneAllocation is the lane allocator's output: the column assignment for
// every row, plus the active-lane history the grid synthesiser needs to
// emit vertical-line / above-empty / below-empty flags (§4.4).
type laneAllocation struct {
	columnOf map[string]int // hash -> assigned column
	entering [][]string     // per row, lane state on entry (column -> expected hash, "" = free)
	exiting  [][]string     // per row, lane state on exit
	width    int
}

// allocateLanes assigns every visible, ordered commit to a column under the
// priority rules of §4.4: a commit continues its first visible parent's
// lane where possible, additional parents of a merge claim columns to the
// right of the merge point, and free columns are always chosen left-first.
func allocateLanes(ordered []*Commit) laneAllocation {
	n := len(ordered)
	alloc := laneAllocation{
		columnOf: make(map[string]int, n),
		entering: make([][]string, n),
		exiting:  make([][]string, n),
	}

	active := []string{} // column -> expected hash ("" = free)

	findFree := func() int {
		for i, h := range active {
			if h == "" {
				return i
			}
		}
		return len(active)
	}

	ensureLen := func(col int) {
		for len(active) <= col {
			active = append(active, "")
		}
	}

	for r, c := range ordered {
		alloc.entering[r] = append([]string(nil), active...)

		// Step 2: assign C's column.
		col := lo.IndexOf(active, c.Hash)
		if col == -1 {
			col = findFree()
		}
		ensureLen(col)

		// Release every other lane that also expected C — duplicate
		// expectations collapse; the edge router derives the resulting
		// merge geometry directly from the position map.
		for i, h := range active {
			if i != col && h == c.Hash {
				active[i] = ""
			}
		}

		alloc.columnOf[c.Hash] = col
		active[col] = c.Hash // placeholder, overwritten below by parent hand-off

		// Step 3: hand the lane off to the visible parents. c.Parents has
		// already been restricted to the currently visible set by the
		// order & filter stage.
		visibleParents := c.Parents

		if len(visibleParents) == 0 {
			// Step 4: no visible parents — release the column.
			active[col] = ""
		} else {
			active[col] = visibleParents[0]
			for _, p := range visibleParents[1:] {
				if lo.Contains(active, p) {
					continue
				}
				newCol := col + 1
				for newCol < len(active) && active[newCol] != "" {
					newCol++
				}
				ensureLen(newCol)
				active[newCol] = p
			}
		}

		if len(active) > alloc.width {
			alloc.width = len(active)
		}
		alloc.exiting[r] = append([]string(nil), active...)
	}

	return alloc
}
