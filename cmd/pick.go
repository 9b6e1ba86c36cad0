package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"stockpick/internal/picklist"
)

var (
	pickItems    []string
	requestsFile string
	pickOutput   string
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Build a pick list from the command line and export it",
	Long: `Build a pick list without the interactive browser. Products are matched
against the product column by exact value. Quantities for the same product
aggregate into one entry; zero and negative quantities are skipped, as are
products the catalog does not contain.

Requests files are CSV with a product,quantity header:

  product,quantity
  Schraube M8,5
  Mutter M8,20`,
	RunE: runPick,
}

func init() {
	pickCmd.Flags().StringArrayVarP(&pickItems, "item", "i", nil, "product and quantity as NAME=QTY (repeatable)")
	pickCmd.Flags().StringVarP(&requestsFile, "requests", "r", "", "CSV file with product,quantity rows")
	pickCmd.Flags().StringVarP(&pickOutput, "output", "o", "", "output file (defaults to the configured export file)")

	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	if len(pickItems) == 0 && requestsFile == "" {
		return fmt.Errorf("nothing to pick: pass --item or --requests")
	}

	sess, err := loadSession()
	if err != nil {
		return err
	}

	if requestsFile != "" {
		requests, err := picklist.ReadRequests(requestsFile)
		if err != nil {
			return fmt.Errorf("failed to read requests: %w", err)
		}
		sess.AddRequests(requests)
	}

	for _, item := range pickItems {
		request, err := parseItem(item)
		if err != nil {
			return err
		}
		sess.AddRequests([]picklist.Request{request})
	}

	if sess.Picks.Len() == 0 {
		return fmt.Errorf("no requested product matched the catalog; nothing exported")
	}

	output := pickOutput
	if output == "" {
		output = cfg.Export.Output
	}
	if err := sess.ExportPickList(output); err != nil {
		return fmt.Errorf("failed to export pick list: %w", err)
	}

	fmt.Printf("Wrote %d entries (total quantity %d) to %s\n",
		sess.Picks.Len(), sess.Picks.TotalQuantity(), output)
	return nil
}

// parseItem splits NAME=QTY. The name is matched verbatim, so values with
// spaces need shell quoting.
func parseItem(item string) (picklist.Request, error) {
	name, qty, found := strings.Cut(item, "=")
	if !found {
		return picklist.Request{}, fmt.Errorf("invalid --item %q: expected NAME=QTY", item)
	}

	n, err := strconv.Atoi(qty)
	if err != nil {
		return picklist.Request{}, fmt.Errorf("invalid quantity in --item %q: %w", item, err)
	}

	return picklist.Request{Product: name, Quantity: n}, nil
}
