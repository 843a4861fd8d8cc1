package graphcore

import "github.com/charmbracelet/log"

// BuildSnapshot is the sole public entry point of the core (§4.7): it turns
// a flat stream of raw entries plus a set of view parameters into an
// immutable Snapshot. Repeated calls with equal inputs produce byte-equal
// output; nothing here mutates caller-owned state or persists between
// calls.
func BuildSnapshot(entries []Entry, params ViewParams) (*Snapshot, error) {
	if len(entries) == 0 && !params.ShowIndex {
		return nil, ErrEmptyInput
	}

	norm := Normalise(entries)
	diagnostics := append([]Diagnostic(nil), norm.diagnostics...)

	ordered, filterDiags := orderAndFilter(norm.commits, norm.order, params)
	diagnostics = append(diagnostics, filterDiags...)

	if params.ShowIndex {
		ordered = graftIndexRow(ordered, params.IndexStatus)
	}

	alloc := allocateLanes(ordered)

	positions := make(map[string]Position, len(ordered))
	for r, c := range ordered {
		positions[c.Hash] = Position{Row: r, Column: alloc.columnOf[c.Hash]}
	}

	edges, runs := routeEdges(ordered, positions)
	grid := synthesiseGrid(ordered, alloc, runs, positions)

	if params.ShowIndex && len(ordered) > 0 && ordered[0].Hash == IndexHash {
		markIndexLane(grid, alloc, positions[IndexHash].Column)
	}

	if params.Orientation == OrientationFlipped {
		grid = flipGrid(grid)
		positions = flipPositions(positions, len(ordered))
		rowOrder := make([]*Commit, len(ordered))
		for i, c := range ordered {
			rowOrder[len(ordered)-1-i] = c
		}
		ordered = rowOrder
	}

	parentsByHash := make(map[string][]string, len(ordered))
	childrenByHash := make(map[string][]string, len(ordered))
	index := make(map[string]*Commit, len(ordered))
	for _, c := range ordered {
		index[c.Hash] = c
		parentsByHash[c.Hash] = c.Parents
		childrenByHash[c.Hash] = c.Children
	}

	width := alloc.width
	if width == 0 {
		width = 1
	}

	if len(diagnostics) > 0 {
		log.Debug("buildSnapshot completed with diagnostics", "count", len(diagnostics))
	}

	return &Snapshot{
		Commits:     ordered,
		index:       index,
		Parents:     parentsByHash,
		Children:    childrenByHash,
		Positions:   positions,
		Edges:       edges,
		Grid:        grid,
		GraphWidth:  width,
		Diagnostics: diagnostics,
	}, nil
}

// markIndexLane marks the synthetic index row's node cell and the
// unbroken continuation of its column as isVerticalIndexLine, so renderers
// can draw it with a distinct (dashed) stroke (§4.6 rule 6). The index row
// always sits at row 0 in canonical order; the marked range is the
// contiguous prefix of rows where that column stays live, per the grid's
// own per-column contiguity invariant.
func markIndexLane(grid [][]Cell, alloc laneAllocation, col int) {
	if col < 0 {
		return
	}
	for r := range grid {
		if col >= len(grid[r]) {
			break
		}
		if r > 0 {
			entering := alloc.entering[r]
			if col >= len(entering) || entering[col] == "" {
				break
			}
		}
		grid[r][col].IsVerticalIndexLine = true
	}
}

// flipGrid reverses row order and mirrors each cell's curve-direction
// flags. Orientation is applied only at emission time — the lane allocator
// and edge router always run top-down canonically (§9 Design Notes).
func flipGrid(grid [][]Cell) [][]Cell {
	n := len(grid)
	flipped := make([][]Cell, n)
	for r := 0; r < n; r++ {
		src := grid[n-1-r]
		row := make([]Cell, len(src))
		for k, cell := range src {
			cell.IsLeftUpCurve, cell.IsLeftDownCurve = cell.IsLeftDownCurve, cell.IsLeftUpCurve
			cell.IsFirstRow = r == 0
			cell.IsLastRow = r == n-1
			row[k] = cell
		}
		flipped[r] = row
	}
	return flipped
}

// flipPositions remaps every Position's Row to match the reversed grid.
func flipPositions(positions map[string]Position, n int) map[string]Position {
	flipped := make(map[string]Position, len(positions))
	for hash, pos := range positions {
		flipped[hash] = Position{Row: n - 1 - pos.Row, Column: pos.Column}
	}
	return flipped
}
