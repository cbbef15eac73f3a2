package monobar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"
	"github.com/vasylcode/monobar/internal/cache"
	"github.com/vasylcode/monobar/internal/model"
	"github.com/vasylcode/monobar/internal/util"
	"github.com/vasylcode/monobar/internal/view"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func init() {
	// Dashboard command
	dashboardCmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"d"},
		Short:   "Open the interactive dashboard",
		Long:    `Browse accounts, jars and rates, pin and reorder them, copy details and open top-up pages.`,
		Args:    cobra.NoArgs,
		Run:     showDashboard,
	}

	rootCmd.AddCommand(dashboardCmd)
}

// dashboardTab is the list shown by the dashboard
type dashboardTab int

const (
	tabAccounts dashboardTab = iota
	tabRates
)

func (t dashboardTab) String() string {
	if t == tabRates {
		return "rates"
	}
	return "accounts"
}

type dashboard struct {
	app     *app
	ctx     context.Context
	tui     *tview.Application
	palette *CommandPalette
	title   cases.Caser

	tab             dashboardTab
	accountCategory view.AccountCategory
	rateCategory    view.RateCategory
	search          string
	notice          string
	noticeErr       bool

	pages       *tview.Pages
	header      *tview.TextView
	searchInput *tview.InputField
	categories  *tview.DropDown
	table       *tview.Table
	bottom      *tview.Flex
	footer      *tview.TextView
	command     *tview.InputField
	help        *tview.TextView
}

func showDashboard(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	d := newDashboard(ctx, mustApp())
	d.load(false)

	if err := d.tui.SetRoot(d.pages, true).EnableMouse(true).Run(); err != nil {
		er(fmt.Sprintf("Failed to run dashboard: %v", err))
	}
}

func newDashboard(ctx context.Context, a *app) *dashboard {
	d := &dashboard{
		app:             a,
		ctx:             ctx,
		tui:             tview.NewApplication(),
		title:           cases.Title(language.English),
		accountCategory: view.AccountsAll,
		rateCategory:    view.RatesAll,
	}
	d.palette = NewCommandPalette(a, func() bool { return d.tab == tabRates })

	d.header = tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)
	d.header.SetBorder(true)

	d.searchInput = tview.NewInputField().
		SetLabel("Search: ").
		SetFieldWidth(0).
		SetChangedFunc(func(text string) {
			d.search = text
			d.render()
		}).
		SetDoneFunc(func(key tcell.Key) {
			d.tui.SetFocus(d.table)
		})

	d.categories = tview.NewDropDown().SetLabel("Category: ")
	d.categories.SetDoneFunc(func(key tcell.Key) {
		d.tui.SetFocus(d.table)
	})

	filters := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(d.searchInput, 0, 2, false).
		AddItem(d.categories, 0, 1, false)

	d.table = tview.NewTable().
		SetSelectable(true, false).
		SetSelectedFunc(func(row, column int) {
			d.copySelected()
		})
	d.table.SetBorder(true)

	d.footer = tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	d.command = tview.NewInputField().SetLabel(":").SetFieldWidth(0)
	d.command.SetDoneFunc(d.commandDone)
	d.command.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp:
			d.command.SetText(d.palette.GetHistory(-1))
			return nil
		case tcell.KeyDown:
			d.command.SetText(d.palette.GetHistory(1))
			return nil
		}
		return event
	})

	d.bottom = tview.NewFlex().AddItem(d.footer, 0, 1, false)

	main := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(d.header, 3, 0, false).
		AddItem(filters, 1, 0, false).
		AddItem(d.table, 0, 1, true).
		AddItem(d.bottom, 1, 0, false)

	d.help = tview.NewTextView().SetDynamicColors(true)
	d.help.SetBorder(true).SetTitle(" Help ")

	d.pages = tview.NewPages().
		AddPage("main", main, true, true).
		AddPage("help", centered(d.help, 64, 22), true, false)

	d.tui.SetInputCapture(d.handleKey)
	d.resetCategories()
	return d
}

func centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}

// load shows the cached snapshots at once and refetches them in the
// background when they are stale, or unconditionally when force is set
func (d *dashboard) load(force bool) {
	if force {
		go func() {
			_, err := d.app.accounts.Refresh(d.ctx)
			d.tui.QueueUpdateDraw(func() { d.fetched("accounts", err) })
		}()
		go func() {
			_, err := d.app.rates.Refresh(d.ctx)
			d.tui.QueueUpdateDraw(func() { d.fetched("rates", err) })
		}()
		d.render()
		return
	}

	d.app.accounts.Load(d.ctx, func(state cache.State[accountsData]) {
		d.tui.QueueUpdateDraw(func() { d.fetched("accounts", state.Err) })
	})
	d.app.rates.Load(d.ctx, func(state cache.State[[]model.CurrencyRate]) {
		d.tui.QueueUpdateDraw(func() { d.fetched("rates", state.Err) })
	})
	d.render()
}

func (d *dashboard) fetched(what string, err error) {
	if err != nil && d.ctx.Err() == nil {
		d.app.logger.Warn("Dashboard fetch failed", zap.String("what", what), zap.Error(err))
		d.setNotice(fetchNotice(what, err), true)
	}
	d.render()
}

func (d *dashboard) setNotice(msg string, isErr bool) {
	d.notice = msg
	d.noticeErr = isErr
}

func (d *dashboard) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch d.tui.GetFocus() {
	case d.help:
		if event.Key() == tcell.KeyEscape || event.Key() == tcell.KeyEnter || event.Rune() == 'q' {
			d.pages.HidePage("help")
			d.tui.SetFocus(d.table)
			return nil
		}
		return event
	case d.table:
	default:
		return event
	}

	if event.Key() == tcell.KeyEscape || event.Rune() == 'q' {
		d.tui.Stop()
		return nil
	}
	if event.Key() == tcell.KeyTab {
		d.tab = 1 - d.tab
		d.resetCategories()
		return nil
	}

	switch event.Rune() {
	case 'p':
		d.togglePinSelected()
	case 'K':
		d.moveSelected(true)
	case 'J':
		d.moveSelected(false)
	case 'c':
		d.copySelected()
	case 'o':
		d.openSelected()
	case 'r':
		d.setNotice("Refreshing...", false)
		d.load(true)
	case '/':
		d.tui.SetFocus(d.searchInput)
	case 'f':
		d.tui.SetFocus(d.categories)
	case ':':
		d.openPalette()
	default:
		return event
	}
	return nil
}

func (d *dashboard) selectedItem() (view.Item, bool) {
	row, _ := d.table.GetSelection()
	item, ok := d.table.GetCell(row, 1).GetReference().(view.Item)
	return item, ok
}

func (d *dashboard) togglePinSelected() {
	item, ok := d.selectedItem()
	if !ok {
		return
	}

	pinned, err := d.app.togglePin(item)
	switch {
	case err != nil:
		d.setNotice(err.Error(), true)
	case pinned:
		d.setNotice("Pinned: "+item.Title, false)
	default:
		d.setNotice("Unpinned: "+item.Title, false)
	}
	d.render()
}

func (d *dashboard) moveSelected(up bool) {
	item, ok := d.selectedItem()
	if !ok || !item.Pinned {
		return
	}

	moved, err := d.app.movePin(d.app.pinList(item.Kind), item.ID, up)
	if err != nil {
		d.setNotice(err.Error(), true)
	} else if moved {
		d.setNotice("Moved: "+item.Title, false)
	}
	d.render()
}

func (d *dashboard) copySelected() {
	item, ok := d.selectedItem()
	if !ok {
		return
	}

	value, err := d.app.copyItem(item)
	if err != nil {
		d.setNotice(err.Error(), true)
	} else {
		d.setNotice("Copied: "+value, false)
	}
	d.render()
}

func (d *dashboard) openSelected() {
	item, ok := d.selectedItem()
	if !ok {
		return
	}

	url, err := d.app.topUp(item, false)
	if err != nil {
		d.setNotice(err.Error(), true)
	} else {
		d.setNotice("Opened: "+url, false)
	}
	d.render()
}

func (d *dashboard) openPalette() {
	d.command.SetText("")
	d.bottom.Clear().AddItem(d.command, 0, 1, true)
	d.tui.SetFocus(d.command)
}

func (d *dashboard) closePalette() {
	d.bottom.Clear().AddItem(d.footer, 0, 1, false)
	d.tui.SetFocus(d.table)
}

func (d *dashboard) commandDone(key tcell.Key) {
	if key != tcell.KeyEnter {
		d.closePalette()
		return
	}

	res := d.palette.Execute(d.command.GetText())
	d.closePalette()
	d.apply(res)
}

// apply carries out the dashboard side of a palette command
func (d *dashboard) apply(res CommandResult) {
	if res.Message != "" {
		d.setNotice(res.Message, !res.Success)
	}

	switch {
	case res.Quit:
		d.tui.Stop()
		return
	case res.IsHelp:
		d.help.SetText(res.HelpText)
		d.pages.ShowPage("help")
		d.tui.SetFocus(d.help)
	case res.Refresh:
		d.load(true)
		return
	case res.SetSearch:
		d.searchInput.SetText(res.Search)
		d.search = res.Search
	case res.Category != "":
		if d.tab == tabRates {
			d.rateCategory = view.RateCategory(res.Category)
		} else {
			d.accountCategory = view.AccountCategory(res.Category)
		}
		d.resetCategories()
		return
	}
	d.render()
}

// resetCategories loads the categories of the current tab into the dropdown
// and renders the tab
func (d *dashboard) resetCategories() {
	var options []string
	current := 0
	if d.tab == tabRates {
		for i, c := range view.RateCategories {
			options = append(options, string(c))
			if c == d.rateCategory {
				current = i
			}
		}
	} else {
		for i, c := range view.AccountCategories {
			options = append(options, string(c))
			if c == d.accountCategory {
				current = i
			}
		}
	}

	d.categories.SetOptions(options, func(text string, index int) {
		if d.tab == tabRates {
			d.rateCategory = view.RateCategories[index]
		} else {
			d.accountCategory = view.AccountCategories[index]
		}
		d.render()
	})
	d.categories.SetCurrentOption(current)
}

func (d *dashboard) render() {
	var (
		sections []view.Section
		status   string
		err      error
	)

	selected, _ := d.selectedItem()

	if d.tab == tabRates {
		sections, err = d.app.ratesView(d.rateCategory, d.search)
		status = d.snapshotStatus(d.app.rates.Current().IsLoading, d.app.rates.Current().Snapshot.LastUpdated)
	} else {
		var v view.AccountsView
		v, err = d.app.accountsView(d.accountCategory, d.search)
		sections = v.Sections
		status = fmt.Sprintf("[#FFFF00]Total: %s[white] [#666666]│[white] %s",
			util.FormatAmount(v.Total, v.Home),
			d.snapshotStatus(d.app.accounts.Current().IsLoading, d.app.accounts.Current().Snapshot.LastUpdated))
	}
	if err != nil {
		d.setNotice(err.Error(), true)
	}

	d.header.SetText(fmt.Sprintf("[::b][#00FFFF]MONOBAR[white] [#666666]│[white] %s [#666666]│[white] %s", d.tabsText(), status))
	d.table.SetTitle(fmt.Sprintf(" %s ", d.title.String(d.tab.String())))

	d.table.Clear()
	row := 0
	for _, section := range sections {
		d.table.SetCell(row, 0, tview.NewTableCell("").SetSelectable(false))
		d.table.SetCell(row, 1, tview.NewTableCell(section.Title).
			SetSelectable(false).
			SetTextColor(tcell.GetColor("#FF6600")).
			SetAttributes(tcell.AttrBold))
		row++
		for _, item := range section.Items {
			d.setItemRow(row, item)
			row++
		}
	}
	if row == 0 {
		d.table.SetCell(0, 1, tview.NewTableCell("Nothing to show").
			SetSelectable(false).
			SetTextColor(tcell.GetColor("#AAAAAA")))
	}
	d.selectRow(selected.ID)

	d.footer.SetText(d.footerText())
}

func (d *dashboard) setItemRow(row int, item view.Item) {
	mark := " "
	if item.Pinned {
		mark = "★"
	}
	d.table.SetCell(row, 0, tview.NewTableCell(mark).SetTextColor(tcell.ColorYellow))
	d.table.SetCell(row, 1, tview.NewTableCell(item.Title).
		SetExpansion(1).
		SetAttributes(tcell.AttrBold).
		SetReference(item))

	amountColor := "#00FF00"
	switch item.Kind {
	case view.KindAccount:
		if item.Account.Balance.IsNegative() {
			amountColor = "#FF0000"
		}
	case view.KindRate:
		amountColor = "#00FFFF"
	}
	d.table.SetCell(row, 2, tview.NewTableCell(item.Subtitle).
		SetAlign(tview.AlignRight).
		SetTextColor(tcell.GetColor(amountColor)))

	accessoryColor := "#888888"
	if item.Kind == view.KindAccount {
		accessoryColor = util.TviewColor(util.AccountTypeColor(item.Account.Type))
	}
	d.table.SetCell(row, 3, tview.NewTableCell(item.Accessory).
		SetTextColor(tcell.GetColor(accessoryColor)))
}

// selectRow keeps the selection on id across renders, falling back to the
// first item
func (d *dashboard) selectRow(id string) {
	first := -1
	for row := 0; row < d.table.GetRowCount(); row++ {
		item, ok := d.table.GetCell(row, 1).GetReference().(view.Item)
		if !ok {
			continue
		}
		if first < 0 {
			first = row
		}
		if id != "" && item.ID == id {
			d.table.Select(row, 0)
			return
		}
	}
	if first >= 0 {
		d.table.Select(first, 0)
	}
}

func (d *dashboard) tabsText() string {
	tabs := make([]string, 0, 2)
	for _, t := range []dashboardTab{tabAccounts, tabRates} {
		name := d.title.String(t.String())
		if t == d.tab {
			tabs = append(tabs, "[::b][#FFFFFF]"+name+"[::-]")
		} else {
			tabs = append(tabs, "[#666666]"+name)
		}
	}
	return strings.Join(tabs, " ") + "[white]"
}

func (d *dashboard) snapshotStatus(loading bool, lastUpdated int64) string {
	if loading {
		return "[#FFAA00]Loading...[white]"
	}
	if lastUpdated == 0 {
		return "[#666666]Never updated[white]"
	}
	return fmt.Sprintf("[#666666]Updated %s[white]", time.UnixMilli(lastUpdated).Local().Format("15:04:05"))
}

func (d *dashboard) footerText() string {
	keys := "[::b][#AAAAAA][#FFFFFF]p[#AAAAAA] pin | [#FFFFFF]K/J[#AAAAAA] move | [#FFFFFF]c[#AAAAAA] copy | [#FFFFFF]o[#AAAAAA] top up | [#FFFFFF]r[#AAAAAA] refresh | [#FFFFFF]tab[#AAAAAA] switch | [#FFFFFF]:[#AAAAAA] command | [#FFFFFF]q[#AAAAAA] quit"
	if d.notice == "" {
		return keys
	}

	noticeColor := "#55FF55"
	if d.noticeErr {
		noticeColor = "#FF5555"
	}
	return fmt.Sprintf("[%s]%s[white] [#666666]│[white] %s", noticeColor, tview.Escape(d.notice), keys)
}
