package monobar

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/vasylcode/monobar/internal/pin"
)

var (
	pinRates  bool
	pinToggle bool
)

func init() {
	// Pin subcommands share the --rates flag
	pinCmd := &cobra.Command{
		Use:   "pin [id]",
		Short: "Pin an account, jar or rate",
		Long:  `Pin an item so it is shown first. With --toggle a pinned item is unpinned.`,
		Args:  cobra.ExactArgs(1),
		Run:   pinItem,
	}

	unpinCmd := &cobra.Command{
		Use:   "unpin [id]",
		Short: "Unpin an account, jar or rate",
		Args:  cobra.ExactArgs(1),
		Run:   unpinItem,
	}

	upCmd := &cobra.Command{
		Use:   "up [id]",
		Short: "Move a pinned item up",
		Args:  cobra.ExactArgs(1),
		Run:   func(cmd *cobra.Command, args []string) { moveItem(args[0], true) },
	}

	downCmd := &cobra.Command{
		Use:   "down [id]",
		Short: "Move a pinned item down",
		Args:  cobra.ExactArgs(1),
		Run:   func(cmd *cobra.Command, args []string) { moveItem(args[0], false) },
	}

	pinCmd.Flags().BoolVarP(&pinToggle, "toggle", "t", false, "Unpin the item if it is already pinned")

	for _, c := range []*cobra.Command{pinCmd, unpinCmd, upCmd, downCmd} {
		c.Flags().BoolVarP(&pinRates, "rates", "r", false, "The id is a currency rate")
		rootCmd.AddCommand(c)
	}
}

func pinItem(cmd *cobra.Command, args []string) {
	a := mustApp()
	printNotices(a.sync(cmd.Context(), false))

	item, err := a.lookup(args[0])
	if err != nil {
		er(err)
		return
	}

	if pinToggle {
		pinned, err := a.togglePin(item)
		if err != nil {
			er(err)
			return
		}
		if !pinned {
			fmt.Printf("Unpinned %s\n", color.New(color.Bold).Sprint(item.Title))
			return
		}
	} else if err := a.pinList(item.Kind).Pin(item.ID); err != nil {
		er(fmt.Sprintf("Failed to pin item: %v", err))
		return
	}

	fmt.Printf("Pinned %s\n", color.New(color.Bold).Sprint(item.Title))
}

func unpinItem(cmd *cobra.Command, args []string) {
	a := mustApp()
	id := args[0]
	list := a.listFor(id, pinRates)

	ids, err := list.IDs()
	if err != nil {
		er(fmt.Sprintf("Failed to read pinned items: %v", err))
		return
	}
	if !pin.Contains(ids, id) {
		fmt.Printf("'%s' is not pinned\n", id)
		return
	}

	if err := list.Unpin(id); err != nil {
		er(fmt.Sprintf("Failed to unpin item: %v", err))
		return
	}
	fmt.Printf("Unpinned '%s'\n", id)
}

func moveItem(id string, up bool) {
	a := mustApp()
	list := a.listFor(id, pinRates)

	moved, err := a.movePin(list, id, up)
	if err != nil {
		er(err)
		return
	}

	direction := "down"
	if up {
		direction = "up"
	}
	if !moved {
		fmt.Printf("'%s' cannot be moved %s\n", id, direction)
		return
	}
	fmt.Printf("Moved '%s' %s\n", id, direction)
}
