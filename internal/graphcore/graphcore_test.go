package graphcore

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(hash string, date string, parents ...string) Entry {
	return Entry{
		Hash:          hash,
		Parents:       parents,
		CommitterDate: date,
		AuthorDate:    date,
	}
}

func TestBuildSnapshotEmptyInputWithoutIndex(t *testing.T) {
	_, err := BuildSnapshot(nil, ViewParams{})
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestBuildSnapshotEmptyInputWithIndex(t *testing.T) {
	snap, err := BuildSnapshot(nil, ViewParams{ShowIndex: true})
	require.NoError(t, err)
	require.Equal(t, 1, snap.Rows())
	assert.Empty(t, snap.EdgesList())
	assert.Equal(t, IndexHash, snap.Commits[0].Hash)
	assert.True(t, snap.CellAt(0, 0).IsVerticalIndexLine)
}

func TestBuildSnapshotSingleRootCommit(t *testing.T) {
	snap, err := BuildSnapshot([]Entry{entry("A", "10")}, ViewParams{})
	require.NoError(t, err)
	require.Len(t, snap.Commits, 1)
	assert.Equal(t, Position{Row: 0, Column: 0}, snap.Positions["A"])
	assert.False(t, snap.CellAt(0, 0).IsVerticalLine)
}

// Scenario 1: linear history A -> B -> C -> D, dates descending.
func TestLinearHistory(t *testing.T) {
	entries := []Entry{
		entry("A", "40", "B"),
		entry("B", "30", "C"),
		entry("C", "20", "D"),
		entry("D", "10"),
	}
	snap, err := BuildSnapshot(entries, ViewParams{})
	require.NoError(t, err)

	want := map[string]Position{
		"A": {Row: 0, Column: 0},
		"B": {Row: 1, Column: 0},
		"C": {Row: 2, Column: 0},
		"D": {Row: 3, Column: 0},
	}
	assert.Equal(t, want, snap.Positions)
	assert.Equal(t, 1, snap.GraphWidth)

	for r := 0; r < 4; r++ {
		assert.True(t, snap.CellAt(r, 0).IsNode)
	}
	require.Len(t, snap.EdgesList(), 3)
	for _, e := range snap.EdgesList() {
		assert.Equal(t, EdgeStraight, e.Kind)
	}
}

// Scenario 2: tip X off of a linear A -> B -> C chain.
//
// The algorithmic definition in §4.4 places A in column 1 (not 0): B
// already has two children, X and A, and X is processed first at row 0
// and claims column 0 by handoff, leaving A to take the next free
// column at row 1. The row-2 merge geometry this produces —
// mergeSourceColumns=[1] on (2,0) and isLeftUpCurve on (2,1), width 2
// — is the detail that the column positions must be internally
// consistent with, and it only comes out this way.
func TestSimpleBranch(t *testing.T) {
	entries := []Entry{
		entry("X", "40", "B"),
		entry("A", "30", "B"),
		entry("B", "20", "C"),
		entry("C", "10"),
	}
	snap, err := BuildSnapshot(entries, ViewParams{})
	require.NoError(t, err)

	want := map[string]Position{
		"X": {Row: 0, Column: 0},
		"A": {Row: 1, Column: 1},
		"B": {Row: 2, Column: 0},
		"C": {Row: 3, Column: 0},
	}
	assert.Equal(t, want, snap.Positions)
	assert.Equal(t, 2, snap.GraphWidth)

	assert.Equal(t, []int{1}, snap.CellAt(2, 0).MergeSourceColumns)
	assert.True(t, snap.CellAt(2, 1).IsLeftUpCurve)
}

// Scenario 3: merge commit M(P1, P2), both parenting root R.
func TestMergeCommit(t *testing.T) {
	entries := []Entry{
		entry("M", "40", "P1", "P2"),
		entry("P1", "30", "R"),
		entry("P2", "20", "R"),
		entry("R", "10"),
	}
	snap, err := BuildSnapshot(entries, ViewParams{})
	require.NoError(t, err)

	want := map[string]Position{
		"M":  {Row: 0, Column: 0},
		"P1": {Row: 1, Column: 0},
		"P2": {Row: 2, Column: 1},
		"R":  {Row: 3, Column: 0},
	}
	assert.Equal(t, want, snap.Positions)
	assert.Equal(t, 2, snap.GraphWidth)

	edges := snap.EdgesList()
	var found bool
	for _, e := range edges {
		if e.From == "M" && e.Kind == EdgeMerge {
			found = true
		}
	}
	assert.True(t, found, "expected a merge edge originating from M")
}

// Scenario 4: filtering out an intermediate commit reconnects the edge
// to the nearest still-visible ancestor instead of severing it.
func TestFilteredView(t *testing.T) {
	entries := []Entry{
		entry("A", "40", "B"),
		entry("B", "30", "C"),
		entry("C", "20", "D"),
		entry("D", "10"),
	}
	params := ViewParams{
		Filter: func(commits []*Commit) []*Commit {
			var kept []*Commit
			for _, c := range commits {
				if c.Hash == "A" || c.Hash == "C" {
					kept = append(kept, c)
				}
			}
			return kept
		},
	}
	snap, err := BuildSnapshot(entries, params)
	require.NoError(t, err)

	require.Len(t, snap.Commits, 2)
	assert.Equal(t, Position{Row: 0, Column: 0}, snap.Positions["A"])
	assert.Equal(t, Position{Row: 1, Column: 0}, snap.Positions["C"])

	require.Len(t, snap.EdgesList(), 1)
	edge := snap.EdgesList()[0]
	assert.Equal(t, "A", edge.From)
	assert.Equal(t, "C", edge.To)
	assert.Equal(t, EdgeStraight, edge.Kind)
}

// Scenario 5: a 20-commit page cut from a 100-commit linear chain, with
// no continuation drawn across either page boundary.
func TestPagedView(t *testing.T) {
	entries := make([]Entry, 0, 100)
	for i := 0; i < 100; i++ {
		hash := fmt.Sprintf("c%03d", i)
		date := fmt.Sprintf("%d", 1000-i)
		var parents []string
		if i+1 < 100 {
			parents = []string{fmt.Sprintf("c%03d", i+1)}
		}
		entries = append(entries, entry(hash, date, parents...))
	}

	snap, err := BuildSnapshot(entries, ViewParams{Paging: Paging{Size: 20, Page: 2}})
	require.NoError(t, err)

	require.Len(t, snap.Commits, 20)
	assert.Equal(t, 1, snap.GraphWidth)
	assert.Equal(t, "c040", snap.Commits[0].Hash)
	assert.Equal(t, "c059", snap.Commits[19].Hash)

	first := snap.Positions["c040"]
	last := snap.Positions["c059"]
	assert.True(t, snap.CellAt(first.Row, first.Column).IsColumnAboveEmpty)
	assert.True(t, snap.CellAt(last.Row, last.Column).IsColumnBelowEmpty)
	assert.Len(t, snap.EdgesList(), 19)
}

func TestPagingOutOfRangeCoercesToLastPage(t *testing.T) {
	entries := []Entry{entry("A", "20"), entry("B", "10")}
	snap, err := BuildSnapshot(entries, ViewParams{Paging: Paging{Size: 20, Page: 5}})
	require.NoError(t, err)
	require.Len(t, snap.Commits, 2)
	require.Len(t, snap.Diagnostics, 1)
	assert.Equal(t, DiagPagingOutOfRange, snap.Diagnostics[0].Kind)
}

// Scenario 6: the synthetic index row.
func TestIndexRow(t *testing.T) {
	entries := []Entry{
		entry("A", "40", "B"),
		entry("B", "30", "C"),
		entry("C", "20", "D"),
		entry("D", "10"),
	}
	status := IndexStatus{Added: 2, Modified: 0, Deleted: 1}
	snap, err := BuildSnapshot(entries, ViewParams{ShowIndex: true, IndexStatus: status})
	require.NoError(t, err)

	require.Len(t, snap.Commits, 5)
	assert.Equal(t, IndexHash, snap.Commits[0].Hash)
	assert.Equal(t, []string{"A"}, snap.Commits[0].Parents)
	col := snap.Positions[IndexHash].Column
	assert.True(t, snap.CellAt(0, col).IsVerticalIndexLine)
	require.NotNil(t, snap.Lookup(IndexHash).IndexStatus)
	assert.Equal(t, status, *snap.Lookup(IndexHash).IndexStatus)
}

func TestDanglingParentIsOmittedNotReconnected(t *testing.T) {
	entries := []Entry{entry("A", "10", "missing")}
	snap, err := BuildSnapshot(entries, ViewParams{})
	require.NoError(t, err)
	assert.Empty(t, snap.EdgesList())
	require.Len(t, snap.Diagnostics, 1)
	assert.Equal(t, DiagDanglingParent, snap.Diagnostics[0].Kind)
}

func TestDuplicateEntryKeepsFirstOccurrence(t *testing.T) {
	entries := []Entry{
		entry("A", "20"),
		{Hash: "A", CommitterDate: "999", AuthorDate: "999"},
	}
	snap, err := BuildSnapshot(entries, ViewParams{})
	require.NoError(t, err)
	require.Len(t, snap.Commits, 1)
	assert.Equal(t, "20", snap.Commits[0].CommitterDate)
	require.Len(t, snap.Diagnostics, 1)
	assert.Equal(t, DiagDuplicateEntry, snap.Diagnostics[0].Kind)
}

func TestMalformedEntrySkipped(t *testing.T) {
	entries := []Entry{entry("", "10"), entry("A", "10")}
	snap, err := BuildSnapshot(entries, ViewParams{})
	require.NoError(t, err)
	require.Len(t, snap.Commits, 1)
	require.Len(t, snap.Diagnostics, 1)
	assert.Equal(t, DiagMalformedEntry, snap.Diagnostics[0].Kind)
}

// A merge of N parents opens N-1 additional lanes; once all parents are
// roots, every lane is free again by the final row.
func TestMergeOfThreeParentsFreesAllLanesAtRoots(t *testing.T) {
	entries := []Entry{
		entry("M", "40", "P1", "P2", "P3"),
		entry("P1", "30"),
		entry("P2", "20"),
		entry("P3", "10"),
	}
	snap, err := BuildSnapshot(entries, ViewParams{})
	require.NoError(t, err)
	assert.Equal(t, 3, snap.GraphWidth)

	seen := make(map[int]bool)
	for _, hash := range []string{"P1", "P2", "P3"} {
		pos := snap.Positions[hash]
		seen[pos.Column] = true
		assert.True(t, snap.CellAt(pos.Row, pos.Column).IsColumnBelowEmpty)
	}
	assert.Len(t, seen, 3)
}

func TestOrientationFlipped(t *testing.T) {
	entries := []Entry{
		entry("A", "20", "B"),
		entry("B", "10"),
	}
	normal, err := BuildSnapshot(entries, ViewParams{})
	require.NoError(t, err)
	flipped, err := BuildSnapshot(entries, ViewParams{Orientation: OrientationFlipped})
	require.NoError(t, err)

	require.Equal(t, normal.Rows(), flipped.Rows())
	n := normal.Rows()
	for hash, pos := range normal.Positions {
		flippedPos := flipped.Positions[hash]
		assert.Equal(t, n-1-pos.Row, flippedPos.Row)
		assert.Equal(t, pos.Column, flippedPos.Column)
	}
}

// Determinism and idempotence (§8).
func TestDeterminismAndIdempotence(t *testing.T) {
	entries := []Entry{
		entry("M", "40", "P1", "P2"),
		entry("P1", "30", "R"),
		entry("P2", "20", "R"),
		entry("R", "10"),
	}
	params := ViewParams{}

	first, err := BuildSnapshot(entries, params)
	require.NoError(t, err)
	second, err := BuildSnapshot(entries, params)
	require.NoError(t, err)
	assert.Equal(t, first.Positions, second.Positions)
	assert.Equal(t, first.Grid, second.Grid)
	assert.Equal(t, first.EdgesList(), second.EdgesList())

	reconstructed, err := BuildSnapshot(first.Entries(), params)
	require.NoError(t, err)
	assert.Equal(t, first.Positions, reconstructed.Positions)
	assert.Equal(t, first.Grid, reconstructed.Grid)
}

// Invariants from §8, checked against every concrete scenario above.
func TestInvariantsAcrossScenarios(t *testing.T) {
	cases := map[string][]Entry{
		"linear": {
			entry("A", "40", "B"),
			entry("B", "30", "C"),
			entry("C", "20", "D"),
			entry("D", "10"),
		},
		"branch": {
			entry("X", "40", "B"),
			entry("A", "30", "B"),
			entry("B", "20", "C"),
			entry("C", "10"),
		},
		"merge": {
			entry("M", "40", "P1", "P2"),
			entry("P1", "30", "R"),
			entry("P2", "20", "R"),
			entry("R", "10"),
		},
	}

	for name, entries := range cases {
		t.Run(name, func(t *testing.T) {
			snap, err := BuildSnapshot(entries, ViewParams{})
			require.NoError(t, err)

			rows := make(map[int]int)
			seenPositions := make(map[Position]bool)
			for _, c := range snap.Commits {
				pos := snap.Positions[c.Hash]
				require.False(t, seenPositions[pos], "position %+v reused", pos)
				seenPositions[pos] = true
				rows[pos.Row]++
			}
			for r := 0; r < len(snap.Commits); r++ {
				assert.Equal(t, 1, rows[r], "row %d should have exactly one commit", r)
			}

			for r, row := range snap.Grid {
				nodeCount := 0
				for _, cell := range row {
					if cell.IsNode {
						nodeCount++
					}
				}
				assert.Equal(t, 1, nodeCount, "row %d should have exactly one node cell", r)
			}

			for col := 0; col < snap.GraphWidth; col++ {
				inRun := false
				broke := false
				for r := 0; r < len(snap.Grid); r++ {
					live := snap.CellAt(r, col).IsVerticalLine
					if live {
						if broke {
							t.Fatalf("column %d has a non-contiguous vertical-line range", col)
						}
						inRun = true
					} else if inRun {
						broke = true
					}
				}
			}

			for _, c := range snap.Commits {
				for _, p := range c.Parents {
					found := false
					for _, e := range snap.EdgesList() {
						if e.From == c.Hash && e.To == p {
							found = true
							assert.Equal(t, snap.Positions[c.Hash].Column, e.FromColumn)
							assert.Equal(t, snap.Positions[p].Column, e.ToColumn)
						}
					}
					assert.True(t, found, "expected an edge from %s to %s", c.Hash, p)
				}
			}
		})
	}
}
