package cmd

import (
	"fmt"
	"strings"

	"github.com/AnyUserName/stylo-cli/internal/catalog"
	"github.com/spf13/cobra"
)

var catalogCategory string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List every tool, grouped by category",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		if catalogCategory != "" {
			entries := catalog.ByCategory(catalog.Category(catalogCategory))
			if len(entries) == 0 {
				return fmt.Errorf("unknown category %q", catalogCategory)
			}
			printEntries(entries)
			return nil
		}
		for _, c := range catalog.Categories() {
			fmt.Printf("\n  %s\n", c)
			printEntries(catalog.ByCategory(c))
		}
		fmt.Println()
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search tools by name, description, category or tag",
	Args:  cobra.ArbitraryArgs,
	RunE: func(_ *cobra.Command, args []string) error {
		found := catalog.Search(strings.Join(args, " "))
		if len(found) == 0 {
			fmt.Println("  No tools found")
			return nil
		}
		printEntries(found)
		return nil
	},
}

func init() {
	catalogCmd.Flags().StringVarP(&catalogCategory, "category", "c", "", "only list one category")
	rootCmd.AddCommand(catalogCmd, searchCmd)
}

func printEntries(entries []catalog.Entry) {
	for _, e := range entries {
		mark := " "
		switch {
		case !e.Available:
			mark = "·"
		case e.New:
			mark = "*"
		}
		fmt.Printf("  %s %-22s %s\n", mark, e.ID, e.Description)
	}
}
