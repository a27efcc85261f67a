package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
	"github.com/custodia-labs/ecobin-cli/internal/core/ports/driving"
)

var locatePrint bool

// isInteractive reports whether stdin and stdout are both terminals.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

var locateCmd = &cobra.Command{
	Use:   "locate [location-id]",
	Short: "Open a bin location map in a new browser tab",
	Long: `Resolves a location identifier to its map URL and opens it in a new
browser tab. Identifiers are case-sensitive; unknown identifiers resolve to
the "#" placeholder and nothing is opened.

Without an identifier on a terminal, an interactive picker is shown.

Examples:
  ecobin locate Location1
  ecobin locate Location2 --print`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLocate,
}

func init() {
	locateCmd.Flags().BoolVarP(&locatePrint, "print", "p", false, "print the URL instead of opening a browser")
	rootCmd.AddCommand(locateCmd)
}

func runLocate(cmd *cobra.Command, args []string) error {
	if locationService == nil {
		return errNotConfigured("location service")
	}

	if len(args) == 0 {
		if !locatePrint && isInteractive() {
			return runTUI(cmd, nil)
		}
		return errors.New("a location id is required when not running in a terminal")
	}

	id := args[0]
	if locatePrint {
		return printLocation(cmd, id)
	}

	url := locationService.Open(cmd.Context(), id)
	if domain.IsPlaceholder(url) {
		cmd.Printf("Unknown location %q, nothing to open.\n", id)
		return nil
	}
	cmd.Printf("Opened %s in a new tab: %s\n", id, url)
	return nil
}

// printLocation resolves id through a navigator that writes to stdout.
func printLocation(cmd *cobra.Command, id string) error {
	var svc driving.LocationService
	if printLocator != nil {
		svc = printLocator(cmd.OutOrStdout())
	}
	if svc == nil {
		cmd.Printf("%s\t%s\n", locationService.Resolve(id), domain.TargetBlank)
		return nil
	}
	svc.Open(cmd.Context(), id)
	return nil
}
