package graphcore

import (
	"sort"

	"github.com/charmbracelet/log"
)

// orderAndFilter applies the optional filter, sorts by the ordering rule
// (committer date desc, author date desc, hash lexicographic asc), applies
// paging, and recomputes adjacency restricted to the surviving set (§4.2).
//
// "Restricted to the surviving set" is transitive: if a commit's immediate
// parent was excluded by the filter or paging window but still exists
// somewhere in the full commit index, the edge is redrawn to the nearest
// ancestor that IS visible (so a filtered-out intermediate commit doesn't
// sever the graph — see the "Filtered view" scenario in §8). A parent hash
// that never appeared in the index at all is a genuine DanglingParent: the
// edge is simply omitted, there being nothing further to walk to.
func orderAndFilter(all map[string]*Commit, order []string, params ViewParams) ([]*Commit, []Diagnostic) {
	var diags []Diagnostic

	commits := make([]*Commit, 0, len(order))
	for _, hash := range order {
		commits = append(commits, all[hash])
	}

	if params.Filter != nil {
		commits = params.Filter(commits)
	}

	sort.Slice(commits, func(i, j int) bool {
		a, b := commits[i], commits[j]
		if a.CommitterTime != b.CommitterTime {
			return a.CommitterTime > b.CommitterTime
		}
		if a.AuthorTime != b.AuthorTime {
			return a.AuthorTime > b.AuthorTime
		}
		return a.Hash < b.Hash
	})

	if params.Paging.Size > 0 {
		start := params.Paging.Page * params.Paging.Size
		end := start + params.Paging.Size
		if start > 0 && start >= len(commits) {
			diags = append(diags, Diagnostic{
				Kind:   DiagPagingOutOfRange,
				Detail: "requested page is past the last page; coerced to the last available page",
			})
			log.Warn("paging out of range, coercing to last page", "page", params.Paging.Page, "size", params.Paging.Size, "total", len(commits))
			lastPage := 0
			if len(commits) > 0 {
				lastPage = (len(commits) - 1) / params.Paging.Size
			}
			start = lastPage * params.Paging.Size
			end = start + params.Paging.Size
		}
		if start > len(commits) {
			start = len(commits)
		}
		if end > len(commits) {
			end = len(commits)
		}
		commits = commits[start:end]
	}

	visible := make(map[string]bool, len(commits))
	for _, c := range commits {
		visible[c.Hash] = true
	}

	childrenByHash := make(map[string][]string, len(commits))
	for _, c := range commits {
		resolved, danglingDiags := visibleParentsOf(c.Hash, all, visible)
		diags = append(diags, danglingDiags...)
		c.Parents = resolved
		for _, p := range resolved {
			childrenByHash[p] = append(childrenByHash[p], c.Hash)
		}
	}
	for _, c := range commits {
		c.Children = childrenByHash[c.Hash]
	}

	markBranchTips(commits, childrenByHash)

	return commits, diags
}

// visibleParentsOf walks the full (unfiltered) parent chain starting at
// hash, skipping over any intermediate commit excluded from visible, and
// returns the deduplicated set of nearest still-visible ancestors in
// first-seen (depth-first, parent-order) order.
func visibleParentsOf(hash string, all map[string]*Commit, visible map[string]bool) ([]string, []Diagnostic) {
	var result []string
	var diags []Diagnostic
	seen := make(map[string]bool)

	var walkParentsOf func(c *Commit)
	walkParentsOf = func(c *Commit) {
		for _, p := range c.Parents {
			if visible[p] {
				if !seen[p] {
					seen[p] = true
					result = append(result, p)
				}
				continue
			}
			next, ok := all[p]
			if !ok {
				diags = append(diags, Diagnostic{
					Kind:   DiagDanglingParent,
					Hash:   p,
					Detail: "parent " + p + " is not present in the commit index; edge omitted",
				})
				log.Debug("dangling parent, edge omitted", "parent", p)
				continue
			}
			walkParentsOf(next)
		}
	}

	if c, ok := all[hash]; ok {
		walkParentsOf(c)
	}

	return result, diags
}

// graftIndexRow optionally prepends a synthetic "working copy" commit whose
// parent is the head of the ordered sequence (§4.3). It is inserted after
// sort and paging complete and never participates in sorting itself.
func graftIndexRow(ordered []*Commit, status IndexStatus) []*Commit {
	index := &Commit{
		Hash:        IndexHash,
		IsBranchTip: true,
		IndexStatus: &status,
	}
	if len(ordered) > 0 {
		head := ordered[0]
		index.Parents = []string{head.Hash}
		head.Children = append(head.Children, IndexHash)
		head.IsBranchTip = false
	}

	graphed := make([]*Commit, 0, len(ordered)+1)
	graphed = append(graphed, index)
	graphed = append(graphed, ordered...)
	return graphed
}
