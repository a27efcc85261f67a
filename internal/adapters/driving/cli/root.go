// Package cli provides the cobra command tree for the ecobin binary.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ecobin-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ecobin-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Options are the global flags that decide how services are built.
type Options struct {
	Verbose   bool
	ConfigDir string
	DataDir   string

	// Ephemeral keeps alert history and scheduler state in memory.
	Ephemeral bool
}

// ConfigWatcher reloads configuration when its backing file changes.
type ConfigWatcher interface {
	// Watch blocks until ctx is cancelled, calling onChange after each reload.
	Watch(ctx context.Context, onChange func()) error

	// Path returns the configuration file location.
	Path() string
}

// Services holds the driving ports the commands call into.
type Services struct {
	Locations driving.LocationService

	// PrintLocations returns a resolver whose navigator writes to w
	// instead of launching a browser.
	PrintLocations func(w io.Writer) driving.LocationService

	Monitor   driving.MonitorService
	Alerts    driving.AlertService
	Settings  driving.SettingsService
	Scheduler driving.Scheduler
	Config    ConfigWatcher

	// Close releases resources held by the services.
	Close func() error
}

// ServiceFactory builds services once global flags are parsed.
type ServiceFactory func(opts Options) (*Services, error)

var (
	opts           Options
	serviceFactory ServiceFactory

	locationService driving.LocationService
	printLocator    func(w io.Writer) driving.LocationService
	monitorService  driving.MonitorService
	alertService    driving.AlertService
	settingsService driving.SettingsService
	scheduler       driving.Scheduler
	configWatcher   ConfigWatcher
	closeServices   func() error
)

// noServices marks commands that run without building services.
const noServices = "no-services"

var rootCmd = &cobra.Command{
	Use:   "ecobin",
	Short: "Smart bin locations, fill monitoring and SMS alerts",
	Long: `ecobin opens the map for a bin location in a new browser tab and
watches bin fill levels, sending SMS alerts when a bin needs collection.

Examples:
  ecobin locate Location1
  ecobin monitor check
  ecobin alert preview`,
	SilenceUsage:      true,
	PersistentPreRunE: setupServices,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return teardownServices()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "print debug logging to stderr")
	flags.StringVar(&opts.ConfigDir, "config-dir", "", "configuration directory (default ~/.ecobin)")
	flags.StringVar(&opts.DataDir, "data-dir", "", "data directory (default ~/.ecobin/data)")
	flags.BoolVar(&opts.Ephemeral, "ephemeral", false, "keep alert history in memory only")
}

// Execute runs the root command, building services with factory after
// flags are parsed.
func Execute(ctx context.Context, factory ServiceFactory) error {
	serviceFactory = factory
	return rootCmd.ExecuteContext(ctx)
}

// SetServices installs the services used by every command.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	locationService = s.Locations
	printLocator = s.PrintLocations
	monitorService = s.Monitor
	alertService = s.Alerts
	settingsService = s.Settings
	scheduler = s.Scheduler
	configWatcher = s.Config
	closeServices = s.Close
}

func setupServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(opts.Verbose)
	if cmd.Annotations[noServices] == "true" || serviceFactory == nil {
		return nil
	}

	logger.Debug("Building services (config=%q data=%q ephemeral=%t)",
		opts.ConfigDir, opts.DataDir, opts.Ephemeral)
	s, err := serviceFactory(opts)
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(s)
	return nil
}

func teardownServices() error {
	if closeServices == nil {
		return nil
	}
	closer := closeServices
	closeServices = nil
	if err := closer(); err != nil {
		return fmt.Errorf("closing services: %w", err)
	}
	return nil
}

// errNotConfigured reports a command whose backing service is missing.
func errNotConfigured(name string) error {
	return errors.New(name + " not configured")
}
