package monobar

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/vasylcode/monobar/internal/action"
	"github.com/vasylcode/monobar/internal/cache"
	"github.com/vasylcode/monobar/internal/logging"
	"github.com/vasylcode/monobar/internal/model"
	"github.com/vasylcode/monobar/internal/monobank"
	"github.com/vasylcode/monobar/internal/pin"
	"github.com/vasylcode/monobar/internal/storage"
	"github.com/vasylcode/monobar/internal/transform"
	"github.com/vasylcode/monobar/internal/view"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// accountsData is the cached payload of the client-info endpoint
type accountsData struct {
	Accounts []model.Account `json:"accounts"`
	Jars     []model.Jar     `json:"jars"`
}

type fetchers struct {
	accounts cache.FetchFunc[accountsData]
	rates    cache.FetchFunc[[]model.CurrencyRate]
}

func clientFetchers(c *monobank.Client) fetchers {
	return fetchers{
		accounts: func(ctx context.Context) (accountsData, error) {
			info, err := c.ClientInfo(ctx)
			if err != nil {
				return accountsData{}, err
			}
			return accountsData{
				Accounts: transform.Accounts(info.Accounts),
				Jars:     transform.Jars(info.Jars),
			}, nil
		},
		rates: func(ctx context.Context) ([]model.CurrencyRate, error) {
			raw, err := c.Rates(ctx)
			if err != nil {
				return nil, err
			}
			return transform.Rates(raw), nil
		},
	}
}

// app holds everything the commands and the dashboard work with
type app struct {
	home   model.Currency
	logger *zap.Logger
	store  *storage.Storage

	accounts       *cache.Refresher[accountsData]
	rates          *cache.Refresher[[]model.CurrencyRate]
	pinnedAccounts *pin.List
	pinnedRates    *pin.List
	actions        action.Actions
}

type appOptions struct {
	store   *storage.Storage
	fetch   fetchers
	home    model.Currency
	ttl     time.Duration
	now     func() time.Time
	actions action.Actions
	logger  *zap.Logger
}

func buildApp(opts appOptions) *app {
	logger := opts.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	emptyAccounts := cache.Snapshot[accountsData]{
		Payload: accountsData{Accounts: []model.Account{}, Jars: []model.Jar{}},
	}
	emptyRates := cache.Snapshot[[]model.CurrencyRate]{Payload: []model.CurrencyRate{}}
	refresherConfig := cache.RefresherConfig{TTL: opts.ttl, Now: opts.now, Logger: logger}

	return &app{
		home:   opts.home,
		logger: logger,
		store:  opts.store,
		accounts: cache.NewRefresher(
			cache.NewValue(opts.store, cache.KeyAccounts, emptyAccounts, logger),
			opts.fetch.accounts,
			refresherConfig,
		),
		rates: cache.NewRefresher(
			cache.NewValue(opts.store, cache.KeyRates, emptyRates, logger),
			opts.fetch.rates,
			refresherConfig,
		),
		pinnedAccounts: pin.NewList(opts.store, cache.KeyPinnedAccounts, logger),
		pinnedRates:    pin.NewList(opts.store, cache.KeyPinnedRates, logger),
		actions:        opts.actions,
	}
}

// newApp wires the app from the loaded configuration
func newApp() (*app, error) {
	s, err := storage.New(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	home, err := cfg.Home()
	if err != nil {
		return nil, err
	}

	logger := logging.L()
	client := monobank.NewClient(cfg.APIURL, cfg.Token, cfg.HTTPTimeout, logger.Named("monobank"))

	return buildApp(appOptions{
		store:   s,
		fetch:   clientFetchers(client),
		home:    home,
		ttl:     cfg.CacheTTL,
		actions: action.System{},
		logger:  logger.Named("cache"),
	}), nil
}

func fetchNotice(what string, err error) string {
	return fmt.Sprintf("Failed to fetch %s: %v", what, err)
}

// sync refreshes the stale snapshots, or both of them when force is set, and
// returns a notice for every failed fetch
func (a *app) sync(ctx context.Context, force bool) []string {
	var (
		mu      sync.Mutex
		notices []string
		g       errgroup.Group
	)
	fail := func(what string, err error) {
		mu.Lock()
		defer mu.Unlock()
		notices = append(notices, fetchNotice(what, err))
	}

	if force || a.accounts.IsStale() {
		g.Go(func() error {
			if _, err := a.accounts.Refresh(ctx); err != nil {
				fail("accounts", err)
			}
			return nil
		})
	}
	if force || a.rates.IsStale() {
		g.Go(func() error {
			if _, err := a.rates.Refresh(ctx); err != nil {
				fail("rates", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.Strings(notices)
	return notices
}

func (a *app) accountsView(category view.AccountCategory, search string) (view.AccountsView, error) {
	pinned, err := a.pinnedAccounts.IDs()
	if err != nil {
		return view.AccountsView{}, err
	}
	data := a.accounts.Current().Snapshot.Payload
	rates := a.rates.Current().Snapshot.Payload

	return view.Accounts(view.AccountsInput{
		Accounts: data.Accounts,
		Jars:     data.Jars,
		Rates:    rates,
		Pinned:   pinned,
		Category: category,
		Search:   search,
		Home:     a.home,
	}), nil
}

func (a *app) ratesView(category view.RateCategory, search string) ([]view.Section, error) {
	pinned, err := a.pinnedRates.IDs()
	if err != nil {
		return nil, err
	}
	return view.Rates(view.RatesInput{
		Rates:    a.rates.Current().Snapshot.Payload,
		Pinned:   pinned,
		Category: category,
		Search:   search,
	}), nil
}

// lookup finds an account, jar or rate by id in the cached snapshots
func (a *app) lookup(id string) (view.Item, error) {
	accounts, err := a.accountsView(view.AccountsAll, "")
	if err != nil {
		return view.Item{}, err
	}
	if item, ok := view.Find(accounts.Sections, id); ok {
		return item, nil
	}

	rates, err := a.ratesView(view.RatesAll, "")
	if err != nil {
		return view.Item{}, err
	}
	if item, ok := view.Find(rates, id); ok {
		return item, nil
	}
	return view.Item{}, fmt.Errorf("%w: %s", view.ErrNotFound, id)
}

var rateIDPattern = regexp.MustCompile(`^\d{3}-\d{3}$`)

// listFor picks the pinned list of id. Ids that are gone from the snapshots
// can still be unpinned: rate ids are recognised by their shape.
func (a *app) listFor(id string, rates bool) *pin.List {
	if rates {
		return a.pinnedRates
	}
	if item, err := a.lookup(id); err == nil {
		return a.pinList(item.Kind)
	}
	if rateIDPattern.MatchString(id) {
		return a.pinnedRates
	}
	return a.pinnedAccounts
}

func (a *app) pinList(kind view.ItemKind) *pin.List {
	if kind == view.KindRate {
		return a.pinnedRates
	}
	return a.pinnedAccounts
}

// togglePin pins or unpins item and reports whether it is pinned afterwards
func (a *app) togglePin(item view.Item) (bool, error) {
	pinned, err := a.pinList(item.Kind).Toggle(item.ID)
	if err != nil {
		return false, fmt.Errorf("failed to update pinned items: %w", err)
	}
	a.logger.Debug("Pin toggled", zap.String("id", item.ID), zap.Bool("pinned", pinned))
	return pinned, nil
}

// movePin moves a pinned item one position up or down
func (a *app) movePin(list *pin.List, id string, up bool) (bool, error) {
	ids, err := list.IDs()
	if err != nil {
		return false, err
	}
	movable := pin.CanMoveDown(ids, id)
	if up {
		movable = pin.CanMoveUp(ids, id)
	}
	if !movable {
		return false, nil
	}

	if up {
		err = list.MoveUp(id)
	} else {
		err = list.MoveDown(id)
	}
	if err != nil {
		return false, fmt.Errorf("failed to update pinned items: %w", err)
	}
	return true, nil
}

// copyItem puts the copy value of item on the clipboard
func (a *app) copyItem(item view.Item) (string, error) {
	value, ok := view.CopyValue(item)
	if !ok {
		return "", fmt.Errorf("nothing to copy for %s", item.ID)
	}
	if err := a.actions.CopyToClipboard(value); err != nil {
		return "", err
	}
	return value, nil
}

// topUp opens the top-up page of item, or copies its URL
func (a *app) topUp(item view.Item, copyURL bool) (string, error) {
	if !view.CanTopUp(item) {
		return "", fmt.Errorf("%s has no top-up page", item.ID)
	}

	url := view.TopUpURL(view.SendID(item))
	if copyURL {
		return url, a.actions.CopyToClipboard(url)
	}
	return url, a.actions.OpenURL(url)
}
