package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	searchProductOnly bool
	searchLimit       int
)

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search the catalog and print matching rows",
	Long: `Search the catalog for rows where any column contains the term,
case-insensitively. With --product-only, only the product column is
searched. An empty term matches every row.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVarP(&searchProductOnly, "product-only", "p", false, "search only the product column")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "print at most this many rows (0 prints all)")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	sess, err := loadSession()
	if err != nil {
		return err
	}
	sess.SearchProductOnly = searchProductOnly

	matches := sess.Search(args[0])

	shown := len(matches)
	if searchLimit > 0 && searchLimit < shown {
		shown = searchLimit
	}

	fmt.Println(strings.Join(sess.Catalog.Columns, " | "))
	for _, rec := range matches[:shown] {
		values := make([]string, len(sess.Catalog.Columns))
		for i, name := range sess.Catalog.Columns {
			values[i] = rec[name]
		}
		fmt.Println(strings.Join(values, " | "))
	}

	fmt.Printf("%d of %d rows matched\n", len(matches), len(sess.Catalog.Records))
	return nil
}
