// Package parser turns the flat text blob produced by a log source into
// graphcore.Entry records. It is the external collaborator described in the
// core's Parser interface: the core never parses text itself, it only
// consumes the []graphcore.Entry this package produces.
//
// Line shape (comma separated, one commit per line):
//
//	hash:<h>,parents:<h1 h2 …>,branch:<ref>,msg:<text>,cdate:<ts>,adate:<ts>,author:<name>,email:<addr>
//
// A malformed line is counted and skipped rather than aborting the parse;
// the core accepts empty output.
package parser

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yourusername/lazygit-lite/internal/graphcore"
)

const (
	fieldHash    = "hash"
	fieldParents = "parents"
	fieldBranch  = "branch"
	fieldMsg     = "msg"
	fieldCDate   = "cdate"
	fieldADate   = "adate"
	fieldAuthor  = "author"
	fieldEmail   = "email"
)

// Parse splits blob into lines and decodes each into a graphcore.Entry.
// Malformed lines (missing a hash field, or not key:value shaped at all)
// are skipped and counted; Parse never returns an error for bad input,
// mirroring the "never throws" contract of §6.
func Parse(blob string) ([]graphcore.Entry, int) {
	lines := strings.Split(blob, "\n")
	entries := make([]graphcore.Entry, 0, len(lines))
	malformed := 0

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		entry, ok := parseLine(line)
		if !ok {
			malformed++
			continue
		}
		entries = append(entries, entry)
	}

	if malformed > 0 {
		log.Debug("parser skipped malformed lines", "count", malformed)
	}

	return entries, malformed
}

// parseLine decodes a single "key:value,key:value,..." line. Values never
// contain a literal comma in this format except inside the parents list,
// which is space separated and therefore comma-safe.
func parseLine(line string) (graphcore.Entry, bool) {
	fields := splitFields(line)

	hash, ok := fields[fieldHash]
	if !ok || hash == "" {
		return graphcore.Entry{}, false
	}

	var parents []string
	if raw, ok := fields[fieldParents]; ok && raw != "" {
		for _, p := range strings.Fields(raw) {
			parents = append(parents, p)
		}
	}

	return graphcore.Entry{
		Hash:          hash,
		Parents:       parents,
		CommitterDate: fields[fieldCDate],
		AuthorDate:    fields[fieldADate],
		Message:       fields[fieldMsg],
		Branch:        fields[fieldBranch],
		Author: graphcore.Author{
			Name:  fields[fieldAuthor],
			Email: fields[fieldEmail],
		},
	}, true
}

// splitFields breaks a line into its key:value parts. The "msg" value is
// allowed to itself contain colons (commit subjects routinely do), so the
// split on the first ':' only, not every ':'.
func splitFields(line string) map[string]string {
	out := make(map[string]string, 8)
	for _, part := range strings.Split(line, ",") {
		idx := strings.Index(part, ":")
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(part[:idx])
		val := part[idx+1:]
		out[key] = val
	}
	return out
}
