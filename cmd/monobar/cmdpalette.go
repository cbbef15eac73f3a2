package monobar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vasylcode/monobar/internal/view"
)

// CommandResult represents the result of a command execution
type CommandResult struct {
	Success  bool
	Message  string
	IsHelp   bool   // Show as popup
	HelpText string // Multi-line help content
	Quit     bool   // Signal to quit app

	Refresh   bool   // Refetch accounts and rates
	SetSearch bool   // Replace the search text with Search
	Search    string
	Category  string // Switch the current tab to this category
}

// CommandPalette handles command parsing and execution
type CommandPalette struct {
	app      *app
	ratesTab func() bool
	history  []string
	histIdx  int
}

// NewCommandPalette creates a new command palette. ratesTab reports whether
// the rates tab is shown, categories are validated against it.
func NewCommandPalette(a *app, ratesTab func() bool) *CommandPalette {
	return &CommandPalette{
		app:      a,
		ratesTab: ratesTab,
		history:  []string{},
		histIdx:  -1,
	}
}

// Execute parses and executes a command string
func (cp *CommandPalette) Execute(input string) CommandResult {
	input = strings.TrimSpace(input)
	if input == "" {
		return CommandResult{Success: false, Message: ""}
	}

	// Add to history
	cp.history = append(cp.history, input)
	cp.histIdx = len(cp.history)

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "q", "quit", "exit":
		return CommandResult{Quit: true}
	case "pin", "p":
		return cp.cmdPin(args)
	case "unpin", "u":
		return cp.cmdUnpin(args)
	case "up":
		return cp.cmdMove(args, true)
	case "down", "dn":
		return cp.cmdMove(args, false)
	case "copy", "c":
		return cp.cmdCopy(args)
	case "open", "o", "topup":
		return cp.cmdOpen(args)
	case "search", "s", "/":
		return CommandResult{Success: true, SetSearch: true, Search: strings.Join(args, " ")}
	case "category", "cat":
		return cp.cmdCategory(args)
	case "refresh", "r":
		return CommandResult{Success: true, Refresh: true, Message: "Refreshing..."}
	case "help", "h", "?":
		return cp.cmdHelp()
	default:
		return CommandResult{Success: false, Message: fmt.Sprintf("Unknown command: %s (:help for commands)", cmd)}
	}
}

// GetHistory returns previous command (for up arrow)
func (cp *CommandPalette) GetHistory(direction int) string {
	if len(cp.history) == 0 {
		return ""
	}
	cp.histIdx += direction
	if cp.histIdx < 0 {
		cp.histIdx = 0
	}
	if cp.histIdx >= len(cp.history) {
		cp.histIdx = len(cp.history)
		return ""
	}
	return cp.history[cp.histIdx]
}

// --- Command implementations ---

func (cp *CommandPalette) item(args []string, usage string) (view.Item, *CommandResult) {
	if len(args) < 1 {
		return view.Item{}, &CommandResult{Success: false, Message: "Usage: " + usage}
	}
	item, err := cp.app.lookup(args[0])
	if err != nil {
		if errors.Is(err, view.ErrNotFound) {
			return view.Item{}, &CommandResult{Success: false, Message: fmt.Sprintf("Not found: %s", args[0])}
		}
		return view.Item{}, &CommandResult{Success: false, Message: fmt.Sprintf("Error: %v", err)}
	}
	return item, nil
}

func (cp *CommandPalette) cmdPin(args []string) CommandResult {
	item, res := cp.item(args, "pin ID")
	if res != nil {
		return *res
	}

	pinned, err := cp.app.togglePin(item)
	if err != nil {
		return CommandResult{Success: false, Message: fmt.Sprintf("Error: %v", err)}
	}
	if pinned {
		return CommandResult{Success: true, Message: fmt.Sprintf("Pinned: %s", item.Title)}
	}
	return CommandResult{Success: true, Message: fmt.Sprintf("Unpinned: %s", item.Title)}
}

func (cp *CommandPalette) cmdUnpin(args []string) CommandResult {
	if len(args) < 1 {
		return CommandResult{Success: false, Message: "Usage: unpin ID"}
	}

	id := args[0]
	if err := cp.app.listFor(id, false).Unpin(id); err != nil {
		return CommandResult{Success: false, Message: fmt.Sprintf("Error: %v", err)}
	}
	return CommandResult{Success: true, Message: fmt.Sprintf("Unpinned: %s", id)}
}

func (cp *CommandPalette) cmdMove(args []string, up bool) CommandResult {
	usage := "down ID"
	if up {
		usage = "up ID"
	}
	if len(args) < 1 {
		return CommandResult{Success: false, Message: "Usage: " + usage}
	}

	id := args[0]
	moved, err := cp.app.movePin(cp.app.listFor(id, false), id, up)
	if err != nil {
		return CommandResult{Success: false, Message: fmt.Sprintf("Error: %v", err)}
	}
	if !moved {
		return CommandResult{Success: false, Message: fmt.Sprintf("Cannot move %s", id)}
	}
	return CommandResult{Success: true, Message: fmt.Sprintf("Moved: %s", id)}
}

func (cp *CommandPalette) cmdCopy(args []string) CommandResult {
	item, res := cp.item(args, "copy ID")
	if res != nil {
		return *res
	}

	value, err := cp.app.copyItem(item)
	if err != nil {
		return CommandResult{Success: false, Message: fmt.Sprintf("Error: %v", err)}
	}
	return CommandResult{Success: true, Message: fmt.Sprintf("Copied: %s", value)}
}

func (cp *CommandPalette) cmdOpen(args []string) CommandResult {
	item, res := cp.item(args, "open ID")
	if res != nil {
		return *res
	}

	url, err := cp.app.topUp(item, false)
	if err != nil {
		return CommandResult{Success: false, Message: fmt.Sprintf("Error: %v", err)}
	}
	return CommandResult{Success: true, Message: fmt.Sprintf("Opened: %s", url)}
}

func (cp *CommandPalette) cmdCategory(args []string) CommandResult {
	if len(args) < 1 {
		return CommandResult{Success: false, Message: "Usage: category NAME"}
	}

	if cp.ratesTab != nil && cp.ratesTab() {
		c, err := view.ParseRateCategory(args[0])
		if err != nil {
			return CommandResult{Success: false, Message: fmt.Sprintf("Error: %v", err)}
		}
		return CommandResult{Success: true, Category: string(c)}
	}

	c, err := view.ParseAccountCategory(args[0])
	if err != nil {
		return CommandResult{Success: false, Message: fmt.Sprintf("Error: %v", err)}
	}
	return CommandResult{Success: true, Category: string(c)}
}

func (cp *CommandPalette) cmdHelp() CommandResult {
	help := `[yellow]Commands:[white]

[green]pin[white] ID          pin or unpin an item
[green]unpin[white] ID
[green]up[white] ID / [green]down[white] ID  reorder pinned items

[green]copy[white] ID         copy IBAN, jar link or rate
[green]open[white] ID         open the top-up page

[green]search[white] (TEXT)   filter the list
[green]category[white] NAME   all|cards|fops|jars, all|pinned for rates
[green]refresh[white]

[green]q[white] quit

[yellow]Keys:[white] p=pin K/J=move c=copy o=open r=refresh
      tab=switch /=search f=category`
	return CommandResult{Success: true, IsHelp: true, HelpText: help}
}
