package cli

import (
	"fmt"

	"github.com/leofalp/scrapego/providers/memory/filestore"
	"github.com/spf13/cobra"
)

func init() {
	memoryCmd := &cobra.Command{
		Use:   "memory",
		Short: "Inspect the strategy memory",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List remembered strategy preferences",
		Run:   runMemoryList,
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the memory file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(getMemoryPath())
		},
	}

	memoryCmd.AddCommand(listCmd, pathCmd)
	RootCmd.AddCommand(memoryCmd)
}

func runMemoryList(cmd *cobra.Command, args []string) {
	store := filestore.New(getMemoryPath())

	entries, err := store.All(cmd.Context())
	if err != nil {
		exitErr("read memory", err)
	}
	if len(entries) == 0 {
		fmt.Println("no remembered preferences")
		return
	}
	for _, e := range entries {
		if e.Note != "" {
			fmt.Printf("%s\t%s\t%s\n", e.Prefix, e.Strategy, e.Note)
		} else {
			fmt.Printf("%s\t%s\n", e.Prefix, e.Strategy)
		}
	}
}
