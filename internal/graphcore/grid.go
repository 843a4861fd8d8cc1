package graphcore

import "github.com/samber/lo"

// synthesiseGrid builds the row-by-row cell grid from the lane allocation
// and routed edges (§4.6). Determinism is guaranteed because both the lane
// history and the edge/run lists were built in a fixed, row-ascending
// order upstream.
func synthesiseGrid(ordered []*Commit, alloc laneAllocation, runs []horizontalRun, positions map[string]Position) [][]Cell {
	n := len(ordered)
	width := alloc.width
	if width == 0 {
		width = 1
	}

	grid := make([][]Cell, n)
	for r := range grid {
		grid[r] = make([]Cell, width)
	}

	runsByRow := make(map[int][]horizontalRun, len(runs))
	for _, run := range runs {
		runsByRow[run.row] = append(runsByRow[run.row], run)
	}

	for r, c := range ordered {
		col := positions[c.Hash].Column
		entering := alloc.entering[r]
		exiting := alloc.exiting[r]

		// Rule 1: the node cell, plus whether its lane is live above/below.
		grid[r][col].IsNode = true
		grid[r][col].IsColumnAboveEmpty = col >= len(entering) || entering[col] == ""
		grid[r][col].IsColumnBelowEmpty = col >= len(exiting) || exiting[col] == ""

		// Rule 2: plain vertical continuation through every other live lane.
		for k := 0; k < width; k++ {
			if k == col {
				continue
			}
			liveEntering := k < len(entering) && entering[k] != ""
			liveExiting := k < len(exiting) && exiting[k] != ""
			if liveEntering && liveExiting {
				grid[r][k].IsVerticalLine = true
			}
		}

		// Rule 3: horizontal runs crossing this row.
		for _, run := range runsByRow[r] {
			for k := run.fromColumn; k <= run.toColumn; k++ {
				if k < 0 || k >= width {
					continue
				}
				grid[r][k].IsHorizontalLine = true
				grid[r][k].MergeSourceColumns = append(grid[r][k].MergeSourceColumns,
					lo.Filter(run.columns, func(other int, _ int) bool { return other != k })...)
			}

			// Rule 4: corner flags. The run's two endpoints are the child's
			// own column (the "upper" connection, fed from directly above)
			// and the parent's column (the "lower" connection, continuing
			// down toward the parent). Whichever endpoint sits at the
			// rightmost column of the run bends left to reach the other
			// end, so it is the one that can carry one of the two named
			// curve flags; the leftmost endpoint would bend right, which
			// has no dedicated flag and is left for the renderer to infer
			// from IsHorizontalLine + IsNode + column position.
			upper, lower := run.upperColumn, run.lowerColumn
			hi := run.toColumn
			switch hi {
			case upper:
				grid[r][hi].IsLeftUpCurve = true
			case lower:
				grid[r][hi].IsLeftDownCurve = true
			}
		}
	}

	for r := range grid {
		for k := range grid[r] {
			grid[r][k].IsFirstRow = r == 0
			grid[r][k].IsLastRow = r == n-1
		}
	}

	return grid
}
