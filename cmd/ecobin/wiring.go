package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/custodia-labs/ecobin-cli/internal/adapters/driven/browser"
	"github.com/custodia-labs/ecobin-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ecobin-cli/internal/adapters/driven/console"
	"github.com/custodia-labs/ecobin-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ecobin-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ecobin-cli/internal/adapters/driven/thingspeak"
	"github.com/custodia-labs/ecobin-cli/internal/adapters/driven/twilio"
	"github.com/custodia-labs/ecobin-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
	"github.com/custodia-labs/ecobin-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ecobin-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ecobin-cli/internal/core/services"
	"github.com/custodia-labs/ecobin-cli/internal/logger"
)

// consoleOutput receives simulated SMS sends. Stdout is reserved for
// command output and the MCP stdio transport.
var consoleOutput io.Writer = os.Stderr

// buildServices wires adapters into core services for the CLI.
func buildServices(opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settings := services.NewSettingsService(configStore)

	var (
		alertStore     driven.AlertStore
		schedulerStore driven.SchedulerStore
		closeFn        = func() error { return nil }
	)
	if opts.Ephemeral {
		logger.Debug("Using in-memory stores")
		alertStore = memory.NewAlertStore()
		schedulerStore = memory.NewSchedulerStore()
	} else {
		store, err := sqlite.NewStore(opts.DataDir)
		if err != nil {
			return nil, fmt.Errorf("opening store: %w", err)
		}
		logger.Debug("Using database %s", store.Path())
		alertStore = store.AlertStore()
		schedulerStore = store.SchedulerStore()
		closeFn = store.Close
	}

	feed := newReloadingFeed(settings, func(cfg domain.ThingSpeakSettings) driven.BinFeed {
		return thingspeak.NewFeed(cfg)
	})
	notifier := newReloadingNotifier(settings, newNotifier)

	alerts := services.NewAlertService(settings, notifier, alertStore)
	monitor := services.NewMonitorService(settings, feed, alerts, alertStore)

	schedulerConfig := domain.DefaultSchedulerConfig()
	schedulerConfig.TaskConfigs[domain.TaskIDBinCheck] = domain.TaskConfig{
		Enabled:  true,
		Interval: checkInterval(settings),
	}

	return &cli.Services{
		Locations: services.NewLocationService(browser.NewSystem()),
		PrintLocations: func(w io.Writer) driving.LocationService {
			return services.NewLocationService(browser.NewPrinter(w))
		},
		Monitor:   monitor,
		Alerts:    alerts,
		Settings:  settings,
		Scheduler: services.NewScheduler(schedulerConfig, schedulerStore, monitor),
		Config:    configStore,
		Close:     closeFn,
	}, nil
}

// checkInterval returns the configured bin-check interval. Invalid settings
// only break the commands that read them, so the scheduler falls back to
// the default interval.
func checkInterval(settings driving.SettingsService) time.Duration {
	s, err := settings.Get()
	if err != nil {
		logger.Warn("%v; using default check interval %s", err, domain.DefaultCheckInterval)
		return domain.DefaultCheckInterval
	}
	return s.Monitor.Interval
}

// newNotifier picks the notifier for the configured mode.
func newNotifier(s domain.AppSettings) driven.Notifier {
	if s.Notifier == domain.NotifierTwilio {
		return twilio.NewNotifier(s.Twilio)
	}
	return console.NewNotifier(consoleOutput, s.Twilio.To)
}

// reloadingFeed rebuilds the feed client when the ThingSpeak settings change,
// so edits picked up by the config watcher apply to the next check.
type reloadingFeed struct {
	settings driving.SettingsService
	build    func(domain.ThingSpeakSettings) driven.BinFeed

	mu   sync.Mutex
	cfg  domain.ThingSpeakSettings
	feed driven.BinFeed
}

func newReloadingFeed(
	settings driving.SettingsService,
	build func(domain.ThingSpeakSettings) driven.BinFeed,
) *reloadingFeed {
	return &reloadingFeed{settings: settings, build: build}
}

// Latest implements driven.BinFeed.
func (r *reloadingFeed) Latest(ctx context.Context) (*domain.BinReading, error) {
	s, err := r.settings.Get()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if r.feed == nil || s.ThingSpeak != r.cfg {
		logger.Debug("Building ThingSpeak client for channel %s", s.ThingSpeak.ChannelID)
		r.feed = r.build(s.ThingSpeak)
		r.cfg = s.ThingSpeak
	}
	feed := r.feed
	r.mu.Unlock()

	return feed.Latest(ctx)
}

// notifierKey is the part of the settings a notifier is built from.
type notifierKey struct {
	mode   domain.NotifierMode
	twilio domain.TwilioSettings
}

// reloadingNotifier rebuilds the notifier when its settings change. An
// unchanged Twilio notifier is reused so its rate limiter carries over.
type reloadingNotifier struct {
	settings driving.SettingsService
	build    func(domain.AppSettings) driven.Notifier

	mu       sync.Mutex
	key      notifierKey
	notifier driven.Notifier
}

func newReloadingNotifier(
	settings driving.SettingsService,
	build func(domain.AppSettings) driven.Notifier,
) *reloadingNotifier {
	return &reloadingNotifier{settings: settings, build: build}
}

func (r *reloadingNotifier) current() (driven.Notifier, error) {
	s, err := r.settings.Get()
	if err != nil {
		return nil, err
	}

	key := notifierKey{mode: s.Notifier, twilio: s.Twilio}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.notifier == nil || key != r.key {
		logger.Debug("Building %s notifier", s.Notifier)
		r.notifier = r.build(*s)
		r.key = key
	}
	return r.notifier, nil
}

// Send implements driven.Notifier.
func (r *reloadingNotifier) Send(ctx context.Context, body string) (*domain.Receipt, error) {
	n, err := r.current()
	if err != nil {
		return nil, err
	}
	return n.Send(ctx, body)
}

// Name implements driven.Notifier.
func (r *reloadingNotifier) Name() string {
	n, err := r.current()
	if err != nil {
		return "unavailable"
	}
	return n.Name()
}
