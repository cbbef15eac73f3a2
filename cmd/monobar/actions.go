package monobar

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var topUpCopy bool

func init() {
	copyCmd := &cobra.Command{
		Use:   "copy [id]",
		Short: "Copy the IBAN of an account, the top-up link of a jar or a rate",
		Args:  cobra.ExactArgs(1),
		Run:   copyItem,
	}

	topUpCmd := &cobra.Command{
		Use:   "topup [id]",
		Short: "Open the top-up page of an account or jar",
		Args:  cobra.ExactArgs(1),
		Run:   topUpItem,
	}
	topUpCmd.Flags().BoolVarP(&topUpCopy, "copy", "c", false, "Copy the top-up link instead of opening it")

	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Fetch accounts and rates now",
		Args:  cobra.NoArgs,
		Run:   refresh,
	}

	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(topUpCmd)
	rootCmd.AddCommand(refreshCmd)
}

func copyItem(cmd *cobra.Command, args []string) {
	a := mustApp()
	printNotices(a.sync(cmd.Context(), false))

	item, err := a.lookup(args[0])
	if err != nil {
		er(err)
		return
	}

	value, err := a.copyItem(item)
	if err != nil {
		er(err)
		return
	}
	fmt.Printf("Copied %s\n", color.New(color.Bold).Sprint(value))
}

func topUpItem(cmd *cobra.Command, args []string) {
	a := mustApp()
	printNotices(a.sync(cmd.Context(), false))

	item, err := a.lookup(args[0])
	if err != nil {
		er(err)
		return
	}

	url, err := a.topUp(item, topUpCopy)
	if err != nil {
		er(err)
		return
	}
	if topUpCopy {
		fmt.Printf("Copied %s\n", color.New(color.Bold).Sprint(url))
		return
	}
	fmt.Printf("Opened %s\n", color.New(color.Bold).Sprint(url))
}

func refresh(cmd *cobra.Command, args []string) {
	a := mustApp()

	start := time.Now()
	notices := a.sync(cmd.Context(), true)
	if len(notices) > 0 {
		er(strings.Join(notices, "; "))
		return
	}
	fmt.Printf("Accounts and rates refreshed in %s\n", time.Since(start).Round(time.Millisecond))
}
