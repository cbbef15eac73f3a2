package monobar

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	// Cache command
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the local cache",
		Long:  `List, show and reset the values kept in the data directory.`,
		Args:  cobra.NoArgs,
		Run:   listCache,
	}

	showCacheCmd := &cobra.Command{
		Use:   "show [key]",
		Short: "Show a cached value",
		Args:  cobra.ExactArgs(1),
		Run:   showCache,
	}

	resetCacheCmd := &cobra.Command{
		Use:   "reset [key]",
		Short: "Reset a cached value, or every value",
		Long: `Reset a cached value to its initial state. Without a key every value is
reset, including the pinned lists.`,
		Args: cobra.MaximumNArgs(1),
		Run:  resetCache,
	}

	cacheCmd.AddCommand(showCacheCmd)
	cacheCmd.AddCommand(resetCacheCmd)

	rootCmd.AddCommand(cacheCmd)
}

func listCache(cmd *cobra.Command, args []string) {
	a := mustApp()

	keys, err := a.store.Keys()
	if err != nil {
		er(fmt.Sprintf("Failed to list cache: %v", err))
		return
	}
	if len(keys) == 0 {
		fmt.Println("Cache is empty")
		return
	}

	fmt.Println(color.New(color.Bold).Sprintf("Cache (%s):", a.store.Dir()))
	for _, key := range keys {
		fmt.Printf("  %s\n", key)
	}
}

func showCache(cmd *cobra.Command, args []string) {
	a := mustApp()

	data, err := a.store.Raw(args[0])
	if err != nil {
		er(err)
		return
	}
	fmt.Println(string(data))
}

func resetCache(cmd *cobra.Command, args []string) {
	a := mustApp()

	keys := args
	if len(keys) == 0 {
		var err error
		if keys, err = a.store.Keys(); err != nil {
			er(fmt.Sprintf("Failed to list cache: %v", err))
			return
		}
	}

	for _, key := range keys {
		if err := a.store.Delete(key); err != nil {
			er(fmt.Sprintf("Failed to reset %s: %v", key, err))
			return
		}
		fmt.Printf("Reset '%s'\n", key)
	}
}
