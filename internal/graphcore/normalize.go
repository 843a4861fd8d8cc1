package graphcore

import (
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

// normaliseResult is the output of Normalise: a commit index plus the
// diagnostics collected while building it.
type normaliseResult struct {
	commits     map[string]*Commit
	order       []string // first-seen order, for deterministic iteration before sort
	diagnostics []Diagnostic
}

// Normalise converts parsed raw entries into canonical Commit records with
// resolved child back-references (§4.1). Duplicate hashes are rejected
// (the later occurrence is skipped) and entries missing a hash are skipped;
// both produce a Diagnostic but never abort the pipeline.
func Normalise(entries []Entry) normaliseResult {
	res := normaliseResult{
		commits: make(map[string]*Commit, len(entries)),
		order:   make([]string, 0, len(entries)),
	}

	for _, e := range entries {
		if e.Hash == "" {
			res.diagnostics = append(res.diagnostics, Diagnostic{
				Kind:   DiagMalformedEntry,
				Detail: "entry missing required field: hash",
			})
			log.Debug("skipping malformed entry", "reason", "missing hash")
			continue
		}
		if _, exists := res.commits[e.Hash]; exists {
			res.diagnostics = append(res.diagnostics, Diagnostic{
				Kind:   DiagDuplicateEntry,
				Hash:   e.Hash,
				Detail: "duplicate hash, later occurrence skipped",
			})
			log.Warn("skipping duplicate entry", "hash", e.Hash)
			continue
		}

		// Defensive copy of the parent slice: the source representation may
		// be mutable in the caller.
		parents := make([]string, len(e.Parents))
		copy(parents, e.Parents)

		res.commits[e.Hash] = &Commit{
			Hash:          e.Hash,
			Parents:       parents,
			CommitterDate: e.CommitterDate,
			AuthorDate:    e.AuthorDate,
			CommitterTime: parseCanonicalTime(e.CommitterDate),
			AuthorTime:    parseCanonicalTime(e.AuthorDate),
			Message:       e.Message,
			Branch:        e.Branch,
			Author:        e.Author,
			Children:      nil,
		}
		res.order = append(res.order, e.Hash)
	}

	// Second pass: resolve children. Parents referenced by an entry but
	// absent from the index are preserved on Parents so edges can be
	// filtered later; they never gain a reverse Children entry.
	for _, hash := range res.order {
		c := res.commits[hash]
		for _, p := range c.Parents {
			if parent, ok := res.commits[p]; ok {
				parent.Children = append(parent.Children, c.Hash)
			}
		}
	}

	return res
}

// parseCanonicalTime parses a timezone-aware textual timestamp into a
// canonical epoch integer for stable, locale-independent comparison. It
// accepts RFC3339 (the preferred wire form) and falls back to a bare Unix
// epoch integer string, as the teacher's git log parsing does.
func parseCanonicalTime(s string) int64 {
	if s == "" {
		return 0
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Unix()
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return 0
}

// markBranchTips sets IsBranchTip on every commit in visible whose hash has
// no child present in visible (§4.1 last bullet — computed against the
// ordered sequence produced by §4.2, so this runs after filtering).
func markBranchTips(visible []*Commit, childrenByHash map[string][]string) {
	visibleSet := make(map[string]bool, len(visible))
	for _, c := range visible {
		visibleSet[c.Hash] = true
	}
	for _, c := range visible {
		tip := true
		for _, child := range childrenByHash[c.Hash] {
			if visibleSet[child] {
				tip = false
				break
			}
		}
		c.IsBranchTip = tip
	}
}
