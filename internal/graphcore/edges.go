package graphcore

import (
	"sort"

	"github.com/samber/lo"
)

// horizontalRun is a single edge's horizontal span at a given row, produced
// while routing edges and consumed by the grid synthesiser.
type horizontalRun struct {
	row         int
	fromColumn  int // leftmost column of the span
	toColumn    int // rightmost column of the span
	columns     []int
	upperColumn int // the child's own column — fed from directly above
	lowerColumn int // the parent's column — continues down toward the parent
}

// routeEdges computes, for every visible parent-child pair, the directed
// Edge and (for corner/merge edges) the horizontal run it contributes to
// the grid (§4.5). Iteration order is row ascending, then edge kind, then
// source column ascending, then target column ascending, guaranteeing
// deterministic, bit-identical output for equal inputs.
func routeEdges(ordered []*Commit, positions map[string]Position) ([]Edge, []horizontalRun) {
	type candidate struct {
		edge Edge
		row  int
	}

	var candidates []candidate
	for _, c := range ordered {
		childPos := positions[c.Hash]
		for _, p := range c.Parents {
			parentPos, ok := positions[p]
			if !ok {
				continue
			}
			kind := EdgeStraight
			var mergeCols []int
			if childPos.Column != parentPos.Column {
				kind = lo.Ternary(len(c.Parents) > 1, EdgeMerge, EdgeCorner)
				low, high := childPos.Column, parentPos.Column
				if low > high {
					low, high = high, low
				}
				mergeCols = make([]int, 0, high-low+1)
				for col := low; col <= high; col++ {
					mergeCols = append(mergeCols, col)
				}
			}
			candidates = append(candidates, candidate{
				edge: Edge{
					From:               c.Hash,
					To:                 p,
					FromColumn:         childPos.Column,
					ToColumn:           parentPos.Column,
					Kind:               kind,
					MergeSourceColumns: mergeCols,
				},
				row: childPos.Row,
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.row != b.row {
			return a.row < b.row
		}
		if a.edge.Kind != b.edge.Kind {
			return a.edge.Kind < b.edge.Kind
		}
		if a.edge.FromColumn != b.edge.FromColumn {
			return a.edge.FromColumn < b.edge.FromColumn
		}
		return a.edge.ToColumn < b.edge.ToColumn
	})

	edges := make([]Edge, 0, len(candidates))
	var runs []horizontalRun
	for _, cand := range candidates {
		edges = append(edges, cand.edge)
		if cand.edge.Kind != EdgeStraight {
			low, high := cand.edge.FromColumn, cand.edge.ToColumn
			if low > high {
				low, high = high, low
			}
			runs = append(runs, horizontalRun{
				row:         cand.row + 1,
				fromColumn:  low,
				toColumn:    high,
				columns:     cand.edge.MergeSourceColumns,
				upperColumn: cand.edge.FromColumn,
				lowerColumn: cand.edge.ToColumn,
			})
		}
	}

	return edges, runs
}
