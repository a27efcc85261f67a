package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
)

var (
	historyLimit int
	historyJSON  bool
)

var alertCmd = &cobra.Command{
	Use:   "alert",
	Short: "Send and review SMS alerts",
}

var alertPreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show every alert template with sample data",
	Args:  cobra.NoArgs,
	RunE:  runAlertPreview,
}

var alertMaintenanceCmd = &cobra.Command{
	Use:   "maintenance <issue>",
	Short: "Send a maintenance alert",
	Example: `  ecobin alert maintenance "Sensor malfunction detected"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		issue := strings.Join(args, " ")
		return sendAlert(cmd, func(ctx context.Context) (*domain.AlertRecord, error) {
			return alertService.SendMaintenance(ctx, issue)
		})
	},
}

var alertCollectionCmd = &cobra.Command{
	Use:   "collection",
	Short: "Send a collection confirmation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return sendAlert(cmd, func(ctx context.Context) (*domain.AlertRecord, error) {
			return alertService.SendCollection(ctx)
		})
	},
}

var alertLocationCmd = &cobra.Command{
	Use:   "location",
	Short: "Send the bin location with a collection request",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return sendAlert(cmd, func(ctx context.Context) (*domain.AlertRecord, error) {
			return alertService.SendLocation(ctx)
		})
	},
}

var alertHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent alert send attempts",
	Args:  cobra.NoArgs,
	RunE:  runAlertHistory,
}

func init() {
	alertHistoryCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of records")
	alertHistoryCmd.Flags().BoolVar(&historyJSON, "json", false, "output records as JSON")

	alertCmd.AddCommand(alertPreviewCmd)
	alertCmd.AddCommand(alertMaintenanceCmd)
	alertCmd.AddCommand(alertCollectionCmd)
	alertCmd.AddCommand(alertLocationCmd)
	alertCmd.AddCommand(alertHistoryCmd)
	rootCmd.AddCommand(alertCmd)
}

func runAlertPreview(cmd *cobra.Command, _ []string) error {
	if alertService == nil {
		return errNotConfigured("alert service")
	}

	rule := strings.Repeat("=", 60)
	for _, alert := range alertService.Preview() {
		cmd.Println(rule)
		cmd.Println(alert.Kind.Title())
		cmd.Println(rule)
		cmd.Println(alert.Body)
		cmd.Println()
	}
	return nil
}

func sendAlert(cmd *cobra.Command, send func(context.Context) (*domain.AlertRecord, error)) error {
	if alertService == nil {
		return errNotConfigured("alert service")
	}

	record, err := send(cmd.Context())
	if err != nil {
		return fmt.Errorf("alert failed: %w", err)
	}
	cmd.Printf("Alert sent: %s (message %s)\n", record.Kind.Title(), record.MessageID)
	return nil
}

func runAlertHistory(cmd *cobra.Command, _ []string) error {
	if alertService == nil {
		return errNotConfigured("alert service")
	}

	records, err := alertService.History(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("reading alert history: %w", err)
	}

	if historyJSON {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal records: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(records) == 0 {
		cmd.Println("No alerts sent yet.")
		return nil
	}

	for i := range records {
		r := &records[i]
		outcome := "sent " + r.MessageID
		if !r.Success {
			outcome = "failed: " + r.Error
		}
		cmd.Printf("  %s  %-12s %s\n", r.SentAt.Local().Format(time.DateTime), r.Kind, outcome)
	}
	return nil
}
