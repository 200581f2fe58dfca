package cli

import (
	"time"

	"github.com/mrz1836/rota/internal/clock"
	"github.com/mrz1836/rota/internal/config"
	rotaerrors "github.com/mrz1836/rota/internal/errors"
	"github.com/mrz1836/rota/internal/store"
)

// appContext carries state shared by subcommands: the parsed global flags
// and the configuration loaded in PersistentPreRunE.
type appContext struct {
	flags *GlobalFlags
	cfg   *config.Config

	// clk is the clock used for "today" and completion timestamps.
	// Overridable in tests; nil means the real clock.
	clk clock.Clock
}

// clock returns the app clock, defaulting to the real one.
func (a *appContext) clock() clock.Clock {
	if a.clk == nil {
		return clock.RealClock{}
	}
	return a.clk
}

// openStore opens the document store at the configured data directory.
func (a *appContext) openStore() (*store.Store, error) {
	dataDir, err := a.cfg.ResolveDataDir()
	if err != nil {
		return nil, err
	}
	return store.Open(dataDir, a.clock()), nil
}

// parseDate parses a date argument. It accepts "today", "tomorrow",
// "yesterday", or a calendar date in YYYY-MM-DD form. An empty argument
// means today.
func (a *appContext) parseDate(arg string) (time.Time, error) {
	now := a.clock().Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch arg {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	d, err := time.Parse(store.DateKey, arg)
	if err != nil {
		return time.Time{}, rotaerrors.Wrapf(rotaerrors.ErrInvalidDate,
			"%q is not a date (want YYYY-MM-DD, today, tomorrow, or yesterday)", arg)
	}
	return d, nil
}
