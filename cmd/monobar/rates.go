package monobar

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/vasylcode/monobar/internal/view"
)

var (
	ratesCategory string
	ratesSearch   string
)

func init() {
	// Rates command
	ratesCmd := &cobra.Command{
		Use:     "rates",
		Aliases: []string{"r"},
		Short:   "List currency rates",
		Long:    `List monobank currency rates. Pinned rates are shown first.`,
		Args:    cobra.NoArgs,
		Run:     listRates,
	}

	ratesCmd.Flags().StringVarP(&ratesCategory, "category", "c", string(view.RatesAll), "Category (all, pinned)")
	ratesCmd.Flags().StringVarP(&ratesSearch, "search", "s", "", "Filter by currency code or name")

	rootCmd.AddCommand(ratesCmd)
}

func listRates(cmd *cobra.Command, args []string) {
	category, err := view.ParseRateCategory(ratesCategory)
	if err != nil {
		er(err)
		return
	}

	a := mustApp()
	printNotices(a.sync(cmd.Context(), false))

	sections, err := a.ratesView(category, ratesSearch)
	if err != nil {
		er(fmt.Sprintf("Failed to build rates view: %v", err))
		return
	}

	if len(sections) == 0 {
		fmt.Println("No rates found")
		return
	}
	for _, section := range sections {
		printSection(section)
	}

	updated := a.rates.Current().Snapshot.UpdatedAt().Local()
	fmt.Println(color.New(color.FgHiBlack).Sprintf("Updated %s", updated.Format("2006-01-02 15:04")))
}
