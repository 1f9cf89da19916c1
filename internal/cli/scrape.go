package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/leofalp/scrapego/core/scrape"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "scrape <url>",
		Short: "Retrieve a page as clean text",
		Args:  cobra.ExactArgs(1),
		Run:   runScrape,
	}

	cmd.Flags().StringP("extract", "e", "", "Answer this question about the page instead of returning its full text")
	cmd.Flags().Int("max-chars", 0, "Bound the returned text (0 = unbounded)")
	cmd.Flags().IntP("timeout", "t", 0, "Per-strategy attempt timeout in seconds (0 = default)")
	cmd.Flags().Bool("force", false, "Ignore the remembered strategy preference for this site")
	cmd.Flags().Bool("main-content", false, "Drop navigation and boilerplate, keep only the main content")
	cmd.Flags().String("save", "", "Write the full content to this file instead of printing it")

	RootCmd.AddCommand(cmd)
}

func runScrape(cmd *cobra.Command, args []string) {
	extract, _ := cmd.Flags().GetString("extract")
	maxChars, _ := cmd.Flags().GetInt("max-chars")
	timeout, _ := cmd.Flags().GetInt("timeout")
	force, _ := cmd.Flags().GetBool("force")
	mainContent, _ := cmd.Flags().GetBool("main-content")
	savePath, _ := cmd.Flags().GetString("save")

	engine := buildEngine()

	result, err := engine.Retrieve(cmd.Context(), scrape.Request{
		URL:               args[0],
		ExtractQuery:      extract,
		MaxOutputChars:    maxChars,
		PerAttemptTimeout: time.Duration(timeout) * time.Second,
		ForceRefresh:      force,
		MainContentOnly:   mainContent,
	})
	if err != nil {
		exitErr("scrape", err)
	}

	if savePath != "" {
		if err := os.WriteFile(savePath, []byte(result.FullText), 0o644); err != nil {
			exitErr("save", err)
		}
		fmt.Printf("saved %d chars to %s (strategy: %s)\n", len(result.FullText), savePath, result.Strategy)
		return
	}

	fmt.Println(result.Text)
	fmt.Fprintf(os.Stderr, "\n[strategy: %s, truncated: %v]\n", result.Strategy, result.Truncated)
}
