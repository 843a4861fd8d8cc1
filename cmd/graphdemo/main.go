// Command graphdemo is a standalone runner for the commit-graph layout
// engine in internal/graphcore. It reads a real repository with internal/git,
// builds a graphcore.Snapshot through internal/ui/components/graph, and
// renders it with bubbletea/lipgloss, exposing every graphcore.ViewParams
// field as a flag instead of hard-wiring a single fixed view.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/lazygit-lite/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "graphdemo:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		repoPath   string
		orient     string
		showIndex  bool
		page       int
		pageSize   int
		filter     string
		theme      string
		maxCommits int
	)

	cmd := &cobra.Command{
		Use:   "graphdemo",
		Short: "Render a repository's commit graph through graphcore",
		Long: `graphdemo walks a local git repository and lays it out with the
graphcore layout engine, rendering it through the graph panel in
internal/ui/components/graph.

Examples:
  graphdemo                          # graph the repo in the current directory
  graphdemo --repo ../other --orientation flipped
  graphdemo --page 1 --page-size 50  # second page of 50 commits
  graphdemo --filter alice           # only commits whose author or message contains "alice"
  graphdemo --show-index             # graft a synthetic working-copy row`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if theme != "" {
				cfg.UI.Theme = theme
			}
			if maxCommits > 0 {
				cfg.Performance.MaxCommits = maxCommits
			}

			// Flags only override the config file's view defaults when the
			// user actually set them — otherwise cfg.View (YAML or built-in
			// defaults) wins, the same precedence cfg.UI already gives
			// theme settings.
			flags := demoFlags{
				repoPath:  repoPath,
				orient:    cfg.View.Orientation,
				showIndex: cfg.View.ShowIndex,
				page:      cfg.View.Page,
				pageSize:  cfg.View.PageSize,
				filter:    cfg.View.Filter,
			}
			if cmd.Flags().Changed("orientation") {
				flags.orient = orient
			}
			if cmd.Flags().Changed("show-index") {
				flags.showIndex = showIndex
			}
			if cmd.Flags().Changed("page") {
				flags.page = page
			}
			if cmd.Flags().Changed("page-size") {
				flags.pageSize = pageSize
			}
			if cmd.Flags().Changed("filter") {
				flags.filter = filter
			}

			return runDemo(cfg, flags)
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo", ".", "path to the git repository to graph")
	cmd.Flags().StringVar(&orient, "orientation", "normal", "row emission order: \"normal\" (newest first) or \"flipped\" (oldest first)")
	cmd.Flags().BoolVar(&showIndex, "show-index", false, "graft a synthetic working-copy row at the top")
	cmd.Flags().IntVar(&page, "page", 0, "zero-indexed page number (requires --page-size)")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "commits per page; 0 disables paging")
	cmd.Flags().StringVar(&filter, "filter", "", "only keep commits whose author or message contains this substring")
	cmd.Flags().StringVar(&theme, "theme", "", "override the configured UI theme")
	cmd.Flags().IntVar(&maxCommits, "max-commits", 0, "override the configured max commit count (0 keeps the config default)")

	return cmd
}
