// Package cli implements the scrapego CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/leofalp/scrapego"
	"github.com/leofalp/scrapego/core/scrape"
	"github.com/leofalp/scrapego/providers/memory/filestore"
	"github.com/spf13/cobra"
)

var memoryPath string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "scrapego",
	Short: "Adaptive web content retrieval",
	Long: "Fetches web pages as clean text, automatically escalating from a plain\n" +
		"HTTP request to scraping backends when a site blocks simple fetches,\n" +
		"and remembering which strategy worked for each site.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&memoryPath, "memory", "m", "",
		"Strategy memory file (default: $SCRAPEGO_MEMORY_FILE or ~/.scrapego/strategies.tsv)")
}

func getMemoryPath() string {
	if memoryPath != "" {
		return memoryPath
	}
	return scrapego.DefaultMemoryPath()
}

func buildEngine() *scrape.Engine {
	return scrapego.NewDefaultEngine(
		scrape.WithMemory(filestore.New(getMemoryPath())),
	)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
