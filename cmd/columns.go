package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "List catalog columns and the guessed roles",
	Long: `List the columns of the configured catalog in file order and mark which
column was guessed as the product name and which as the storage location.`,
	RunE: runColumns,
}

func init() {
	rootCmd.AddCommand(columnsCmd)
}

func runColumns(cmd *cobra.Command, args []string) error {
	sess, err := loadSession()
	if err != nil {
		return err
	}

	fmt.Printf("Catalog: %s (%d rows)\n", sess.Catalog.Source, len(sess.Catalog.Records))
	for _, name := range sess.Catalog.Columns {
		role := ""
		switch name {
		case sess.ProductColumn:
			role = "  (product)"
		case sess.LocationColumn:
			role = "  (location)"
		}
		fmt.Printf("  %s%s\n", name, role)
	}

	return nil
}
