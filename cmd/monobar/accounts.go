package monobar

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/vasylcode/monobar/internal/util"
	"github.com/vasylcode/monobar/internal/view"
)

var (
	accountsCategory string
	accountsSearch   string
	showTotal        bool
)

func init() {
	// Accounts command
	accountsCmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"a"},
		Short:   "List accounts and jars",
		Long: `List cards, FOP accounts and jars. In the "all" category pinned items are
shown first, in their own section.`,
		Args: cobra.NoArgs,
		Run:  listAccounts,
	}

	accountsCmd.Flags().StringVarP(&accountsCategory, "category", "c", string(view.AccountsAll), "Category (all, cards, fops, jars)")
	accountsCmd.Flags().StringVarP(&accountsSearch, "search", "s", "", "Filter by currency, type, card number, IBAN or jar title")
	accountsCmd.Flags().BoolVarP(&showTotal, "total", "t", false, "Show the total balance in the home currency")

	rootCmd.AddCommand(accountsCmd)
}

func listAccounts(cmd *cobra.Command, args []string) {
	category, err := view.ParseAccountCategory(accountsCategory)
	if err != nil {
		er(err)
		return
	}

	a := mustApp()
	printNotices(a.sync(cmd.Context(), false))

	v, err := a.accountsView(category, accountsSearch)
	if err != nil {
		er(fmt.Sprintf("Failed to build accounts view: %v", err))
		return
	}

	if len(v.Sections) == 0 {
		fmt.Println("No accounts found")
	}
	for _, section := range v.Sections {
		printSection(section)
	}

	if showTotal {
		fmt.Printf("%s %s\n",
			color.New(color.Bold).Sprint("Total:"),
			color.New(color.FgYellow, color.Bold).Sprint(util.FormatAmount(v.Total, v.Home)))
	}
}

func printSection(section view.Section) {
	fmt.Println(color.New(color.Bold).Sprintf("%s:", section.Title))
	for _, item := range section.Items {
		printItem(item)
	}
	fmt.Println()
}

func printItem(item view.Item) {
	pinMark := "  "
	if item.Pinned {
		pinMark = color.New(color.FgYellow).Sprint("★ ")
	}

	title := color.New(color.Bold).Sprint(item.Title)
	subtitle := item.Subtitle
	switch item.Kind {
	case view.KindAccount:
		// Green for funds, red for debt
		amountColor := color.New(color.FgGreen)
		if item.Account.Balance.IsNegative() {
			amountColor = color.New(color.FgRed)
		}
		subtitle = amountColor.Sprint(subtitle)
		title = util.GetTerminalColor(util.AccountTypeColor(item.Account.Type), color.FgHiWhite).Sprint("■ ") + title
	case view.KindJar:
		subtitle = color.New(color.FgGreen).Sprint(subtitle)
	case view.KindRate:
		subtitle = color.New(color.FgCyan).Sprint(subtitle)
	}

	accessory := ""
	if item.Accessory != "" {
		accessory = color.New(color.FgHiBlack).Sprintf(" (%s)", item.Accessory)
	}

	fmt.Printf("  %s%s %s%s %s\n",
		pinMark,
		title,
		subtitle,
		accessory,
		color.New(color.FgHiBlack).Sprintf("[%s]", item.ID))
}
