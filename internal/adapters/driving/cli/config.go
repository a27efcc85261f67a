package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and change settings",
	Long: `Reads and writes settings in the configuration file.

Keys use dot notation, for example monitor.warning_level or twilio.to.
Run 'ecobin config get' to list every key with its current value.`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show one setting, or all settings",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Change a setting",
	Long: `Changes a setting and saves it to the configuration file.

Secret keys (API keys and auth tokens) are prompted for without echo
when no value is given.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if configWatcher == nil {
			return errNotConfigured("config store")
		}
		cmd.Println(configWatcher.Path())
		return nil
	},
}

// readSecret prompts for a value without echo. Replaced in tests.
var readSecret = readPassword

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings service")
	}

	keys := settingsService.Keys()
	if len(args) == 1 {
		keys = args
	}

	for _, key := range keys {
		value, err := settingsService.GetValue(key)
		if err != nil {
			return fmt.Errorf("reading %s: %w", key, err)
		}
		if settingsService.IsSecret(key) {
			value = displaySecret(value)
		}
		if len(args) == 1 {
			cmd.Println(value)
			continue
		}
		cmd.Printf("%-24s %s\n", key, value)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings service")
	}

	key := args[0]
	var value string
	switch {
	case len(args) == 2:
		value = args[1]
	case settingsService.IsSecret(key):
		cmd.Printf("Enter %s: ", key)
		value = readSecret()
		cmd.Println()
		if value == "" {
			return errors.New("a value is required")
		}
	default:
		return fmt.Errorf("a value is required for %s", key)
	}

	if err := settingsService.SetValue(key, value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}

	if settingsService.IsSecret(key) {
		value = maskAPIKey(value)
	}
	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func displaySecret(value string) string {
	if value == "" {
		return "(not set)"
	}
	return maskAPIKey(value)
}

func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
