package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
	"github.com/custodia-labs/ecobin-cli/internal/logger"
)

var monitorJSON bool

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Monitor bin fill levels",
	Long: `Reads bin fill levels from the ThingSpeak channel and sends an SMS alert
when a compartment crosses the warning level or both cross the critical level.
Each alert kind is held back for the configured cooldown after it was sent.`,
}

var monitorCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a single bin check",
	Args:  cobra.NoArgs,
	RunE:  runMonitorCheck,
}

var monitorRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Check bins on a schedule until interrupted",
	Long: `Runs the bin check on the configured interval until interrupted.
Edits to the configuration file are picked up without a restart.`,
	Args: cobra.NoArgs,
	RunE: runMonitorRun,
}

func init() {
	monitorCheckCmd.Flags().BoolVar(&monitorJSON, "json", false, "output the result as JSON")
	monitorCmd.AddCommand(monitorCheckCmd)
	monitorCmd.AddCommand(monitorRunCmd)
	rootCmd.AddCommand(monitorCmd)
}

func runMonitorCheck(cmd *cobra.Command, _ []string) error {
	if monitorService == nil {
		return errNotConfigured("monitor service")
	}

	result, err := monitorService.Check(cmd.Context())
	if err != nil {
		return fmt.Errorf("bin check failed: %w", err)
	}

	if monitorJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printCheckResult(cmd, result)
	return nil
}

func printCheckResult(cmd *cobra.Command, result *domain.CheckResult) {
	if result.Reading == nil {
		cmd.Println("No data available from the bin feed.")
		return
	}

	cmd.Printf("Reading at %s\n", result.Reading.Timestamp)
	cmd.Printf("  %s: %.1f%%\n", domain.WasteWet, result.Reading.WetLevel)
	cmd.Printf("  %s: %.1f%%\n", domain.WasteDry, result.Reading.DryLevel)

	switch result.Status {
	case domain.CheckAlerted:
		cmd.Printf("Alert sent: %s", result.Kind.Title())
		if result.Record != nil && result.Record.MessageID != "" {
			cmd.Printf(" (message %s)", result.Record.MessageID)
		}
		cmd.Println()
	case domain.CheckCooldown:
		cmd.Printf("Alert %s suppressed, cooldown ends in %s\n",
			result.Kind.Title(), result.CooldownRemaining.Round(time.Second))
	case domain.CheckSendFailed:
		msg := "unknown error"
		if result.Record != nil && result.Record.Error != "" {
			msg = result.Record.Error
		}
		cmd.Printf("Alert %s could not be sent: %s\n", result.Kind.Title(), msg)
	case domain.CheckNormal, domain.CheckNoData:
		cmd.Println("All bins within normal levels.")
	}
}

func runMonitorRun(cmd *cobra.Command, _ []string) error {
	if scheduler == nil {
		return errNotConfigured("scheduler")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			cmd.Printf("Monitoring %s every %s (ctrl+c to stop)\n", s.Bin.Name, s.Monitor.Interval)
		}
	}

	if configWatcher != nil {
		go func() {
			err := configWatcher.Watch(ctx, func() {
				logger.Info("Configuration reloaded from %s", configWatcher.Path())
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("config watch stopped: %v", err)
			}
		}()
	}

	defer func() {
		if err := scheduler.Stop(); err != nil {
			logger.Warn("scheduler stop error: %v", err)
		}
	}()

	err := scheduler.Start(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("scheduler stopped: %w", err)
	}
	cmd.Println("Monitoring stopped.")
	return nil
}
