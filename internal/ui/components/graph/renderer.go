package graph

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/lazygit-lite/internal/git"
	"github.com/yourusername/lazygit-lite/internal/graphcore"
	"github.com/yourusername/lazygit-lite/internal/ui/styles"
)

const (
	CommitSymbol   = "●"
	LineVertical   = "│"
	LineHorizontal = "─"
	LineBranchR    = "├"
	LineBranchL    = "┤"
	LineCornerTR   = "┌"
	LineCornerBR   = "└"
	LineCornerTL   = "┐"
	LineCornerBL   = "┘"
	LineMergeDown  = "┬"
	LineMergeUp    = "┴"

	// LaneSpacing is the number of padding characters after each lane glyph.
	// This controls the horizontal gap between branch lines.
	LaneSpacing = 1
)

type GraphRenderer struct {
	theme      styles.Theme
	colors     []lipgloss.Color
	graph      *GraphBuilder
	viewParams graphcore.ViewParams
}

// SetViewParams overrides the graphcore.ViewParams used by the next
// InitGraph call (orientation, paging, filter, index row). Without it the
// zero ViewParams apply: the full, unpaged, unfiltered view. The demo CLI
// sets it through NewWithView, exposing every field as a flag.
func (g *GraphRenderer) SetViewParams(vp graphcore.ViewParams) {
	g.viewParams = vp
}

// GraphBuilder wraps a graphcore.Snapshot with the pieces the core
// deliberately leaves to a renderer: per-branch color assignment, keyed by
// row index into commits (graphcore only deals in hashes and positions).
type GraphBuilder struct {
	commits    []*git.Commit
	snapshot   *graphcore.Snapshot
	colorOf    map[string]int   // hash -> stable branch color index
	rowColors  [][]int          // per row, per lane: color index occupying that lane ("-1" = none)
	width      int
}

func NewGraphRenderer(theme styles.Theme) *GraphRenderer {
	return &GraphRenderer{
		theme: theme,
		colors: []lipgloss.Color{
			theme.Graph1,
			theme.Graph2,
			theme.Graph3,
			theme.Graph4,
			theme.Graph5,
		},
	}
}

// InitGraph computes this renderer's snapshot from commits and returns the
// commit slice in the snapshot's row order (committer date desc, author
// date desc, hash asc; reversed under OrientationFlipped). Callers must
// store the returned slice as their own commit list so row indices line up
// with the snapshot's rows.
func (g *GraphRenderer) InitGraph(commits []*git.Commit) []*git.Commit {
	if len(commits) == 0 {
		g.graph = nil
		return commits
	}

	entries := make([]graphcore.Entry, 0, len(commits))
	byHash := make(map[string]*git.Commit, len(commits))
	for _, c := range commits {
		byHash[c.Hash] = c
		entries = append(entries, graphcore.Entry{
			Hash:          c.Hash,
			Parents:       append([]string(nil), c.Parents...),
			CommitterDate: strconv.FormatInt(c.Date.Unix(), 10),
			AuthorDate:    strconv.FormatInt(c.Date.Unix(), 10),
			Message:       c.Subject,
			Branch:        primaryRefName(c.Refs),
			Author:        graphcore.Author{Name: c.Author, Email: c.Email},
		})
	}

	snap, err := graphcore.BuildSnapshot(entries, g.viewParams)
	if err != nil {
		g.graph = nil
		return commits
	}

	ordered := make([]*git.Commit, 0, len(snap.Commits))
	for _, c := range snap.Commits {
		if c.Hash == graphcore.IndexHash {
			ordered = append(ordered, indexRowCommit(c))
			continue
		}
		if orig, ok := byHash[c.Hash]; ok {
			ordered = append(ordered, orig)
		}
	}
	if len(ordered) != len(snap.Commits) {
		// A commit the core couldn't place (malformed/duplicate hash) —
		// fall back to unnumbered rendering rather than risk a row
		// mismatch between g.graph and the caller's commit slice.
		g.graph = nil
		return commits
	}

	colorOf := assignBranchColors(snap)
	g.graph = &GraphBuilder{
		commits:   ordered,
		snapshot:  snap,
		colorOf:   colorOf,
		rowColors: buildRowColors(snap, colorOf),
		width:     snap.GraphWidth,
	}
	return ordered
}

// indexRowCommit builds the renderer's stand-in for the synthetic working
// copy row graphcore grafts in when ViewParams.ShowIndex is set, mirroring
// git.UncommittedHash's own sentinel commit.
func indexRowCommit(c *graphcore.Commit) *git.Commit {
	subject := "Working copy"
	if c.IndexStatus != nil {
		subject = fmt.Sprintf("Working copy (+%d ~%d -%d)",
			c.IndexStatus.Added, c.IndexStatus.Modified, c.IndexStatus.Deleted)
	}
	return &git.Commit{
		Hash:      graphcore.IndexHash,
		ShortHash: "index",
		Author:    "You",
		Date:      time.Now(),
		Message:   subject,
		Subject:   subject,
		Parents:   c.Parents,
	}
}

// primaryRefName picks a single ref name to tag a commit with, for the
// core's presentation-only Branch field. Branches (local or remote) win
// over tags; the first match in the commit's ref order is used, and that
// order is whatever git.Repository's reference iteration produced.
func primaryRefName(refs []git.Ref) string {
	for _, r := range refs {
		if r.RefType == git.RefTypeBranch {
			return r.Name
		}
	}
	if len(refs) > 0 {
		return refs[0].Name
	}
	return ""
}

// assignBranchColors walks the snapshot top-down assigning a stable color
// index per commit: a commit inherits its first parent's column color, and
// newly opened lanes (merge targets, branch-off points) get the next color
// in rotation. This is the one piece of §4.4's original algorithm that
// graphcore deliberately does not do — lane color is presentation, not
// layout — so it is kept here, driven by the core's own column assignment
// instead of recomputing one.
func assignBranchColors(snap *graphcore.Snapshot) map[string]int {
	colorOf := make(map[string]int, len(snap.Commits))
	laneColor := make(map[int]int, snap.GraphWidth)
	next := 0

	for _, c := range snap.Commits {
		col := snap.Positions[c.Hash].Column
		color, ok := laneColor[col]
		if !ok {
			color = next
			next = (next + 1) % 5
		}
		colorOf[c.Hash] = color
		laneColor[col] = color

		parents, _ := snap.Neighbours(c.Hash)
		for _, p := range parents {
			pCol := snap.Positions[p].Column
			if _, ok := laneColor[pCol]; !ok {
				laneColor[pCol] = next
				next = (next + 1) % 5
			}
		}
		if len(parents) == 0 {
			delete(laneColor, col)
		}
	}
	return colorOf
}

// buildRowColors replays the same lane-color bookkeeping per row so the
// renderer can color a lane's vertical/bridge glyphs by whichever commit
// currently owns that lane, not just the node cells themselves.
func buildRowColors(snap *graphcore.Snapshot, colorOf map[string]int) [][]int {
	width := snap.GraphWidth
	if width == 0 {
		width = 1
	}
	rows := make([][]int, len(snap.Commits))
	active := make([]int, width)
	for i := range active {
		active[i] = -1
	}

	for r, c := range snap.Commits {
		col := snap.Positions[c.Hash].Column
		if col < width {
			active[col] = colorOf[c.Hash]
		}
		parents, _ := snap.Neighbours(c.Hash)
		for _, p := range parents {
			pCol := snap.Positions[p].Column
			if pCol < width && active[pCol] == -1 {
				active[pCol] = colorOf[p]
			}
		}
		if len(parents) == 0 && col < width {
			active[col] = -1
		}
		row := make([]int, width)
		copy(row, active)
		rows[r] = row
	}
	return rows
}

// RenderCommitLine renders a single commit line. maxWidth is the available
// character width so the line can be truncated to prevent wrapping.
// bg is the background color to use for all text in this line (allows the
// caller to pass Selection for highlighted rows, BackgroundPanel for expanded
// headers, etc.).
func (g *GraphRenderer) RenderCommitLine(commit *git.Commit, index int, maxWidth int, bg lipgloss.Color) string {
	if g.graph == nil || index >= len(g.graph.commits) {
		return g.renderSimple(commit, index, bg)
	}

	isUncommitted := commit.Hash == git.UncommittedHash

	snap := g.graph.snapshot
	col := snap.Positions[commit.Hash].Column
	nodeColor := g.graph.colorOf[commit.Hash]
	rowColors := g.graph.rowColors[index]

	numLanes := g.graph.width
	if numLanes == 0 {
		numLanes = 1
	}
	if numLanes > 10 {
		numLanes = 10
	}

	graphParts := make([]string, numLanes)
	for lane := 0; lane < numLanes; lane++ {
		cell := snap.CellAt(index, lane)

		laneColorIdx := lane % len(g.colors)
		if lane < len(rowColors) && rowColors[lane] >= 0 {
			laneColorIdx = rowColors[lane] % len(g.colors)
		}
		laneColor := g.colors[laneColorIdx]

		switch {
		case cell.IsNode:
			if isUncommitted {
				uncommittedColor := g.theme.CommitHash
				graphParts[lane] = laneCell("◌", bg, uncommittedColor, cell.IsHorizontalLine)
			} else {
				graphParts[lane] = laneCell(CommitSymbol, bg, g.colors[nodeColor%len(g.colors)], cell.IsHorizontalLine)
			}
		case cell.IsLeftUpCurve:
			// A child's lane converges into this row, bending left to reach
			// the current node's column.
			if lane > col {
				graphParts[lane] = laneCell(LineCornerBL, bg, laneColor, false)
			} else {
				graphParts[lane] = laneCell(LineCornerBR, bg, laneColor, cell.IsHorizontalLine)
			}
		case cell.IsLeftDownCurve:
			// This row's own merge reserves a lane for a secondary parent,
			// bending left from the current node's column.
			if lane > col {
				graphParts[lane] = laneCell(LineCornerTL, bg, laneColor, false)
			} else {
				graphParts[lane] = laneCell(LineCornerTR, bg, laneColor, cell.IsHorizontalLine)
			}
		case cell.IsVerticalLine:
			if cell.IsHorizontalLine {
				graphParts[lane] = laneCellBridge(LineVertical, bg, laneColor, laneColor, true)
			} else {
				graphParts[lane] = laneCell(LineVertical, bg, laneColor, false)
			}
		case cell.IsHorizontalLine:
			graphParts[lane] = laneCell(LineHorizontal, bg, laneColor, true)
		default:
			graphParts[lane] = blankCell(bg)
		}
	}

	graphStr := strings.Join(graphParts, "")

	var refStr string
	if len(commit.Refs) > 0 {
		refStr = g.renderRefs(commit.Refs, bg)
	}

	hashStyle := lipgloss.NewStyle().Foreground(g.theme.CommitHash).Background(bg)
	dateStyle := lipgloss.NewStyle().Foreground(g.theme.Subtext).Background(bg)
	subjectStyle := lipgloss.NewStyle().Foreground(g.theme.Foreground).Background(bg)
	spacer := lipgloss.NewStyle().Background(bg).Render(" ")

	// Uncommitted changes get a distinct hash and subject color.
	if isUncommitted {
		uncommittedColor := g.theme.CommitHash // Peach/orange from theme
		hashStyle = lipgloss.NewStyle().Foreground(uncommittedColor).Background(bg).Bold(true)
		subjectStyle = lipgloss.NewStyle().Foreground(uncommittedColor).Background(bg).Italic(true)
	}

	// Build the line: graph | hash | (refs) | subject | relative-time
	relTime := formatRelativeTime(commit.Date)

	// Calculate how much space the prefix (graph + hash + refs) and time consume
	// so we can truncate the subject to fit within maxWidth.
	prefix := graphStr + spacer + hashStyle.Render(commit.ShortHash)
	if refStr != "" {
		prefix = prefix + spacer + refStr
	}
	prefixWidth := lipgloss.Width(prefix)

	timeStr := dateStyle.Render(relTime)
	timeWidth := lipgloss.Width(timeStr)

	// Available width for subject = maxWidth - prefix - time - gaps (2 spacers + 1 gap before time)
	subjectAvail := maxWidth - prefixWidth - timeWidth - 3 // 1 spacer before subject + min 2 for time gap
	if subjectAvail < 4 {
		subjectAvail = 4
	}

	subject := commit.Subject
	subjectRunes := []rune(subject)
	if len(subjectRunes) > subjectAvail {
		subject = string(subjectRunes[:subjectAvail-1]) + "…"
	}

	line := prefix + spacer + subjectStyle.Render(subject)

	// Append the relative timestamp right-aligned if there's room.
	lineWidth := lipgloss.Width(line)
	gap := maxWidth - lineWidth - timeWidth - 1
	if gap > 1 {
		line = line + lipgloss.NewStyle().Background(bg).Width(gap).Render("") + timeStr
	}

	return line
}

func (g *GraphRenderer) renderRefs(refs []git.Ref, bg lipgloss.Color) string {
	var parts []string
	for _, ref := range refs {
		style := lipgloss.NewStyle().Background(bg).Bold(true)
		switch {
		case ref.IsHead:
			style = style.Foreground(g.theme.Head)
		case ref.RefType == git.RefTypeTag:
			style = style.Foreground(g.theme.CommitHash)
		case ref.IsRemote:
			style = style.Foreground(g.theme.Subtext)
		default:
			style = style.Foreground(g.theme.BranchMain)
		}
		label := ref.Name
		if ref.RefType == git.RefTypeTag {
			label = "tag: " + label
		}
		parts = append(parts, style.Render("["+label+"]"))
	}
	sep := lipgloss.NewStyle().Background(bg).Render(" ")
	return strings.Join(parts, sep)
}

func (g *GraphRenderer) renderSimple(commit *git.Commit, index int, bg lipgloss.Color) string {
	colorIndex := index % len(g.colors)
	color := g.colors[colorIndex]

	commitStyle := lipgloss.NewStyle().Foreground(color).Background(bg)
	hashStyle := lipgloss.NewStyle().Foreground(g.theme.CommitHash).Background(bg)
	subjectStyle := lipgloss.NewStyle().Foreground(g.theme.Foreground).Background(bg)
	spacer := lipgloss.NewStyle().Background(bg).Render(" ")

	graphSymbol := commitStyle.Render(CommitSymbol)

	return graphSymbol + spacer + hashStyle.Render(commit.ShortHash) + spacer + subjectStyle.Render(commit.Subject)
}

// Diagnostics returns the non-fatal findings collected while building the
// current snapshot (malformed/duplicate entries, dangling parents, an
// out-of-range page), or nil if no graph has been built yet.
func (g *GraphRenderer) Diagnostics() []graphcore.Diagnostic {
	if g.graph == nil {
		return nil
	}
	return g.graph.snapshot.Diagnostics
}

func (g *GraphRenderer) MaxLanes() int {
	if g.graph == nil {
		return 1 + LaneSpacing
	}
	n := g.graph.width
	if n == 0 {
		return 1 + LaneSpacing
	}
	// Each lane occupies 1 glyph + LaneSpacing padding characters.
	return n * (1 + LaneSpacing)
}

// laneCell renders a single lane cell: glyph followed by LaneSpacing spaces,
// all styled with the given background. For horizontal bridging, the padding
// also uses the horizontal line character. bridgeFg sets the color for the
// bridge padding (if different from fg, e.g. when a vertical line has a
// bridge crossing through its padding).
func laneCell(glyph string, bg lipgloss.Color, fg lipgloss.Color, bridge bool) string {
	return laneCellBridge(glyph, bg, fg, fg, bridge)
}

func laneCellBridge(glyph string, bg lipgloss.Color, fg lipgloss.Color, bridgeFg lipgloss.Color, bridge bool) string {
	style := lipgloss.NewStyle().Foreground(fg).Background(bg)
	pad := strings.Repeat(" ", LaneSpacing)
	if bridge {
		pad = strings.Repeat(LineHorizontal, LaneSpacing)
	}
	padStyle := lipgloss.NewStyle().Foreground(bridgeFg).Background(bg)
	return style.Render(glyph) + padStyle.Render(pad)
}

// blankCell renders an empty lane cell (spaces only) with the given background.
func blankCell(bg lipgloss.Color) string {
	return lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", 1+LaneSpacing))
}

// RenderLaneGutter renders the lane gutter (vertical continuation lines)
// for display alongside expanded content rows. It reads whether each lane
// is live going into the row below index — the gutter sits visually
// between a commit and the next row — straight off the snapshot's own
// cell flags, never recomputing lane state itself.
func (g *GraphRenderer) RenderLaneGutter(index int, bg lipgloss.Color) string {
	if g.graph == nil || index >= len(g.graph.commits) {
		return ""
	}

	snap := g.graph.snapshot
	numLanes := g.graph.width
	if numLanes == 0 {
		numLanes = 1
	}
	if numLanes > 10 {
		numLanes = 10
	}

	var nextColors []int
	if index+1 < len(g.graph.rowColors) {
		nextColors = g.graph.rowColors[index+1]
	}

	parts := make([]string, numLanes)
	for lane := 0; lane < numLanes; lane++ {
		live := false
		if index+1 < snap.Rows() {
			next := snap.CellAt(index+1, lane)
			if next.IsNode {
				live = !next.IsColumnAboveEmpty
			} else {
				live = next.IsVerticalLine
			}
		}
		if live {
			laneColorIdx := lane % len(g.colors)
			if lane < len(nextColors) && nextColors[lane] >= 0 {
				laneColorIdx = nextColors[lane] % len(g.colors)
			}
			parts[lane] = laneCell(LineVertical, bg, g.colors[laneColorIdx], false)
		} else {
			parts[lane] = blankCell(bg)
		}
	}
	return strings.Join(parts, "")
}

// ---------------------------------------------------------------------------
// Side-by-side diff rendering
// ---------------------------------------------------------------------------

// diffLine represents one line from a unified diff with its type.
type diffLine struct {
	kind    byte // ' ' context, '+' add, '-' remove, '@' hunk header
	content string
	oldNum  int // 0 means blank
	newNum  int // 0 means blank
}

// parseDiffLines parses raw unified diff text into structured diffLines,
// skipping file-level headers (diff --git, index, ---, +++).
func parseDiffLines(raw string) []diffLine {
	lines := strings.Split(raw, "\n")
	var result []diffLine
	var oldLine, newLine int

	for _, line := range lines {
		if strings.HasPrefix(line, "diff --git") ||
			strings.HasPrefix(line, "index ") ||
			strings.HasPrefix(line, "---") ||
			strings.HasPrefix(line, "+++") ||
			strings.HasPrefix(line, "new file") ||
			strings.HasPrefix(line, "deleted file") {
			continue
		}

		if strings.HasPrefix(line, "@@") {
			oldLine, newLine = parseHunkHeader(line)
			result = append(result, diffLine{kind: '@', content: line})
			continue
		}

		if strings.HasPrefix(line, "-") {
			result = append(result, diffLine{kind: '-', content: line[1:], oldNum: oldLine})
			oldLine++
		} else if strings.HasPrefix(line, "+") {
			result = append(result, diffLine{kind: '+', content: line[1:], newNum: newLine})
			newLine++
		} else if strings.HasPrefix(line, "\\") {
			result = append(result, diffLine{kind: '\\', content: line})
		} else {
			result = append(result, diffLine{kind: ' ', content: strings.TrimPrefix(line, " "), oldNum: oldLine, newNum: newLine})
			oldLine++
			newLine++
		}
	}
	return result
}

func parseHunkHeader(line string) (oldStart, newStart int) {
	var oldCount, newCount int
	fmt.Sscanf(line, "@@ -%d,%d +%d,%d @@", &oldStart, &oldCount, &newStart, &newCount)
	if oldStart == 0 && newStart == 0 {
		fmt.Sscanf(line, "@@ -%d +%d @@", &oldStart, &newStart)
	}
	if oldStart == 0 && newStart == 0 {
		fmt.Sscanf(line, "@@ -%d,%d +%d @@", &oldStart, &oldCount, &newStart)
	}
	if oldStart == 0 && newStart == 0 {
		fmt.Sscanf(line, "@@ -%d +%d,%d @@", &oldStart, &newStart, &newCount)
	}
	return
}

// sideBySidePair represents one rendered row of the side-by-side view.
type sideBySidePair struct {
	leftNum   int    // 0 = blank
	leftText  string // raw text (no prefix)
	leftKind  byte   // ' ', '-', or '@'
	rightNum  int
	rightText string
	rightKind byte // ' ', '+', or '@'
}

// buildSideBySidePairs converts parsed diff lines into paired left/right rows.
// Adjacent remove/add blocks are zipped together; context appears on both sides.
func buildSideBySidePairs(dlines []diffLine) []sideBySidePair {
	var pairs []sideBySidePair
	i := 0
	for i < len(dlines) {
		dl := dlines[i]

		switch dl.kind {
		case '@':
			pairs = append(pairs, sideBySidePair{
				leftKind:  '@',
				leftText:  dl.content,
				rightKind: '@',
				rightText: dl.content,
			})
			i++

		case ' ':
			pairs = append(pairs, sideBySidePair{
				leftNum:   dl.oldNum,
				leftText:  dl.content,
				leftKind:  ' ',
				rightNum:  dl.newNum,
				rightText: dl.content,
				rightKind: ' ',
			})
			i++

		case '-':
			// Collect consecutive removes.
			var removes []diffLine
			for i < len(dlines) && dlines[i].kind == '-' {
				removes = append(removes, dlines[i])
				i++
			}
			// Collect immediately following adds.
			var adds []diffLine
			for i < len(dlines) && dlines[i].kind == '+' {
				adds = append(adds, dlines[i])
				i++
			}
			// Zip them together.
			maxLen := len(removes)
			if len(adds) > maxLen {
				maxLen = len(adds)
			}
			for j := 0; j < maxLen; j++ {
				p := sideBySidePair{}
				if j < len(removes) {
					p.leftNum = removes[j].oldNum
					p.leftText = removes[j].content
					p.leftKind = '-'
				}
				if j < len(adds) {
					p.rightNum = adds[j].newNum
					p.rightText = adds[j].content
					p.rightKind = '+'
				}
				pairs = append(pairs, p)
			}

		case '+':
			// Orphan add (no preceding remove).
			pairs = append(pairs, sideBySidePair{
				rightNum:  dl.newNum,
				rightText: dl.content,
				rightKind: '+',
			})
			i++

		case '\\':
			// "\ No newline at end of file" — show on both sides.
			pairs = append(pairs, sideBySidePair{
				leftText:  dl.content,
				leftKind:  '\\',
				rightText: dl.content,
				rightKind: '\\',
			})
			i++

		default:
			i++
		}
	}
	return pairs
}

// FormatDiffLines takes a raw diff string and returns styled side-by-side lines.
// maxWidth is the total available character width for the diff area.
func (g *GraphRenderer) FormatDiffLines(diff string, maxWidth int) []string {
	if diff == "" {
		return nil
	}

	parsed := parseDiffLines(diff)
	pairs := buildSideBySidePairs(parsed)

	// Layout: [left half] [separator 1ch "│"] [right half]
	// Each half: [lineNum 5ch] [content]
	// We use lipgloss.Width on each half block to guarantee fixed column alignment.
	const sepWidth = 1 // "│"
	const numWidth = 5 // e.g. " 142 "
	halfWidth := (maxWidth - sepWidth) / 2
	if halfWidth < 10 {
		halfWidth = 10
	}
	contentWidth := halfWidth - numWidth
	if contentWidth < 4 {
		contentWidth = 4
	}

	removeBg := g.theme.DiffRemoveBg
	addBg := g.theme.DiffAddBg

	// Styles for the line number column — fixed width via lipgloss.
	numStyleOld := lipgloss.NewStyle().
		Foreground(g.theme.DiffRemove).
		Background(removeBg).
		Width(numWidth).
		Align(lipgloss.Right)
	numStyleNew := lipgloss.NewStyle().
		Foreground(g.theme.DiffAdd).
		Background(addBg).
		Width(numWidth).
		Align(lipgloss.Right)
	numStyleCtx := lipgloss.NewStyle().
		Foreground(g.theme.DiffContext).
		Background(g.theme.Background).
		Width(numWidth).
		Align(lipgloss.Right)
	numStyleBlank := lipgloss.NewStyle().
		Background(g.theme.Background).
		Width(numWidth)

	removeContentStyle := lipgloss.NewStyle().
		Foreground(g.theme.DiffRemove).
		Background(removeBg).
		Width(contentWidth)
	addContentStyle := lipgloss.NewStyle().
		Foreground(g.theme.DiffAdd).
		Background(addBg).
		Width(contentWidth)
	contextContentStyle := lipgloss.NewStyle().
		Foreground(g.theme.Foreground).
		Background(g.theme.Background).
		Width(contentWidth)
	blankContentStyle := lipgloss.NewStyle().
		Background(g.theme.Background).
		Width(contentWidth)

	hunkStyle := lipgloss.NewStyle().
		Foreground(g.theme.BranchFeature).
		Background(g.theme.BackgroundPanel).
		Width(maxWidth)
	sepStyle := lipgloss.NewStyle().
		Foreground(g.theme.DiffContext).
		Background(g.theme.Background)
	headerStyle := lipgloss.NewStyle().
		Foreground(g.theme.Subtext).
		Background(g.theme.Background).
		Italic(true).
		Width(maxWidth)

	sep := sepStyle.Render("│")

	var result []string

	for _, p := range pairs {
		if p.leftKind == '@' {
			result = append(result, hunkStyle.Render(truncate(p.leftText, maxWidth)))
			continue
		}

		if p.leftKind == '\\' || p.rightKind == '\\' {
			result = append(result, headerStyle.Render(truncate(p.leftText, maxWidth)))
			continue
		}

		// Build left half.
		var leftNum, leftContent string
		switch p.leftKind {
		case '-':
			leftNum = numStyleOld.Render(fmt.Sprintf("%d", p.leftNum))
			leftContent = removeContentStyle.Render(truncate(p.leftText, contentWidth))
		case ' ':
			leftNum = numStyleCtx.Render(fmt.Sprintf("%d", p.leftNum))
			leftContent = contextContentStyle.Render(truncate(p.leftText, contentWidth))
		default:
			leftNum = numStyleBlank.Render("")
			leftContent = blankContentStyle.Render("")
		}

		// Build right half.
		var rightNum, rightContent string
		switch p.rightKind {
		case '+':
			rightNum = numStyleNew.Render(fmt.Sprintf("%d", p.rightNum))
			rightContent = addContentStyle.Render(truncate(p.rightText, contentWidth))
		case ' ':
			rightNum = numStyleCtx.Render(fmt.Sprintf("%d", p.rightNum))
			rightContent = contextContentStyle.Render(truncate(p.rightText, contentWidth))
		default:
			rightNum = numStyleBlank.Render("")
			rightContent = blankContentStyle.Render("")
		}

		line := leftNum + leftContent + sep + rightNum + rightContent
		result = append(result, line)
	}

	// Limit to a reasonable number of lines for inline display.
	const maxDiffLines = 300
	if len(result) > maxDiffLines {
		result = result[:maxDiffLines]
		result = append(result, headerStyle.Render(
			fmt.Sprintf("  ... %d more lines (truncated)", len(pairs)-maxDiffLines)))
	}

	return result
}

func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) > maxWidth {
		return string(runes[:maxWidth])
	}
	return s
}

func formatRelativeTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 min ago"
		}
		return fmt.Sprintf("%d mins ago", mins)
	} else if diff < 24*time.Hour {
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	} else if diff < 7*24*time.Hour {
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "yesterday"
		}
		return fmt.Sprintf("%d days ago", days)
	} else if diff < 30*24*time.Hour {
		weeks := int(diff.Hours() / 24 / 7)
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	} else if diff < 365*24*time.Hour {
		months := int(diff.Hours() / 24 / 30)
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	} else {
		years := int(diff.Hours() / 24 / 365)
		if years == 1 {
			return "1 year ago"
		}
		return fmt.Sprintf("%d years ago", years)
	}
}
