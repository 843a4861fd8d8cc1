package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/lazygit-lite/internal/config"
	"github.com/yourusername/lazygit-lite/internal/git"
	"github.com/yourusername/lazygit-lite/internal/graphcore"
	"github.com/yourusername/lazygit-lite/internal/ui/components/details"
	"github.com/yourusername/lazygit-lite/internal/ui/components/graph"
	"github.com/yourusername/lazygit-lite/internal/ui/styles"
)

// demoFlags carries the flag values runDemo needs to translate into a
// graphcore.ViewParams and a git.Repository read.
type demoFlags struct {
	repoPath  string
	orient    string
	showIndex bool
	page      int
	pageSize  int
	filter    string
}

func runDemo(cfg *config.Config, flags demoFlags) error {
	repo, err := git.OpenRepository(flags.repoPath)
	if err != nil {
		return fmt.Errorf("open repository: %w", err)
	}

	commits, err := repo.GetCommits(cfg.Performance.MaxCommits)
	if err != nil {
		return fmt.Errorf("read commits: %w", err)
	}

	orientation := graphcore.OrientationNormal
	if flags.orient == "flipped" {
		orientation = graphcore.OrientationFlipped
	}

	vp := graphcore.ViewParams{
		Orientation: orientation,
		ShowIndex:   flags.showIndex,
		Paging:      graphcore.Paging{Size: flags.pageSize, Page: flags.page},
		Filter:      authorOrMessageFilter(flags.filter),
	}

	theme := styles.GetTheme(cfg.UI.Theme)
	st := styles.NewStyles(theme)
	m := demoModel{
		repoName:   flags.repoPath,
		theme:      theme,
		repo:       repo,
		commits:    commits,
		viewParams: vp,
		keys:       newDemoKeyMap(),
	}
	m.graphPanel = graph.NewWithView(commits, theme, 80, 24, vp)
	m.detailsPanel = details.New(st, 80, 24)

	p := tea.NewProgram(&m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

// authorOrMessageFilter builds a graphcore.Filter matching commits whose
// author name, author email or message contains substr (case-insensitive).
// An empty substr disables filtering entirely.
func authorOrMessageFilter(substr string) graphcore.Filter {
	if substr == "" {
		return nil
	}
	needle := strings.ToLower(substr)
	return func(commits []*graphcore.Commit) []*graphcore.Commit {
		kept := make([]*graphcore.Commit, 0, len(commits))
		for _, c := range commits {
			haystack := strings.ToLower(c.Author.Name + " " + c.Author.Email + " " + c.Message)
			if strings.Contains(haystack, needle) {
				kept = append(kept, c)
			}
		}
		return kept
	}
}

// demoModel is the top-level bubbletea model for the standalone graph
// viewer: a single graph.Model filling the terminal, a status line showing
// the active view parameters, and a dismissible diagnostics banner.
type demoModel struct {
	repoName   string
	theme      styles.Theme
	repo       *git.Repository
	commits    []*git.Commit
	viewParams graphcore.ViewParams

	graphPanel   graph.Model
	detailsPanel details.Model
	keys         demoKeyMap

	width, height   int
	showDiagnostics bool
	showDetails     bool
	yankMsg         string
}

func (m *demoModel) Init() tea.Cmd {
	return m.graphPanel.Init()
}

func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case detailsLoadedMsg:
		m.detailsPanel.SetCommit(msg.commit, msg.diff)
		m.showDetails = true
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.graphPanel.SetSize(m.width, m.statusAreaHeight())
		m.detailsPanel.SetSize(m.width, m.statusAreaHeight())
		return m, nil

	case tea.KeyMsg:
		if m.showDetails {
			if key.Matches(msg, m.keys.Back) {
				m.showDetails = false
				return m, nil
			}
			var cmd tea.Cmd
			m.detailsPanel, cmd = m.detailsPanel.Update(msg)
			return m, cmd
		}

		m.yankMsg = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Diagnostics):
			m.showDiagnostics = !m.showDiagnostics
			return m, nil
		case key.Matches(msg, m.keys.Details):
			return m, m.openDetails()
		case key.Matches(msg, m.keys.YankHash):
			m.yankHash()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.graphPanel, cmd = m.graphPanel.Update(msg)
	return m, cmd
}

// openDetails loads the selected commit's full diff into the details
// viewport and switches focus to it.
func (m *demoModel) openDetails() tea.Cmd {
	commit := m.graphPanel.SelectedCommit()
	if commit == nil {
		return nil
	}
	return func() tea.Msg {
		diff := ""
		if commit.Hash != git.UncommittedHash {
			diff, _ = m.repo.GetDiff(commit.Hash)
		}
		return detailsLoadedMsg{commit: commit, diff: diff}
	}
}

type detailsLoadedMsg struct {
	commit *git.Commit
	diff   string
}

// yankHash copies the selected commit's full hash to the system clipboard.
func (m *demoModel) yankHash() {
	commit := m.graphPanel.SelectedCommit()
	if commit == nil {
		return
	}
	if err := clipboard.WriteAll(commit.Hash); err != nil {
		m.yankMsg = fmt.Sprintf("yank failed: %v", err)
		return
	}
	m.yankMsg = fmt.Sprintf("copied %s", commit.ShortHash)
}

// statusAreaHeight reserves room for the status line and, when toggled on,
// the diagnostics banner below the graph panel.
func (m *demoModel) statusAreaHeight() int {
	h := m.height - 1
	if m.showDiagnostics {
		h -= len(m.graphPanel.Diagnostics()) + 1
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m *demoModel) View() string {
	statusStyle := lipgloss.NewStyle().
		Foreground(m.theme.Subtext).
		Background(m.theme.BackgroundPanel).
		Width(m.width)

	if m.showDetails {
		status := fmt.Sprintf(" commit details — %s, ↑/↓/pgup/pgdn: scroll", m.keys.Back.Help().Desc)
		return m.detailsPanel.View() + "\n" + statusStyle.Render(status)
	}

	status := fmt.Sprintf(" %s — %d commits — orientation=%s showIndex=%v page=%d/%d — %s: diagnostics, %s, %s, %s: quit",
		m.repoName, len(m.commits), orientationLabel(m.viewParams.Orientation),
		m.viewParams.ShowIndex, m.viewParams.Paging.Page, m.viewParams.Paging.Size,
		m.keys.Diagnostics.Help().Key, m.keys.Details.Help().Desc, m.keys.YankHash.Help().Desc, m.keys.Quit.Help().Key)
	if m.yankMsg != "" {
		status = " " + m.yankMsg
	}

	view := m.graphPanel.View() + "\n" + statusStyle.Render(status)

	if m.showDiagnostics {
		view += "\n" + m.renderDiagnostics()
	}

	return view
}

func (m *demoModel) renderDiagnostics() string {
	diags := m.graphPanel.Diagnostics()
	if len(diags) == 0 {
		return lipgloss.NewStyle().Foreground(m.theme.Subtext).Render(" no diagnostics")
	}
	var b strings.Builder
	for _, d := range diags {
		fmt.Fprintf(&b, " [%s] %s: %s\n", d.Kind, d.Hash, d.Detail)
	}
	return lipgloss.NewStyle().Foreground(m.theme.DiffRemove).Render(strings.TrimRight(b.String(), "\n"))
}

func orientationLabel(o graphcore.Orientation) string {
	if o == graphcore.OrientationFlipped {
		return "flipped"
	}
	return "normal"
}
