package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var locationsJSON bool

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "List known bin locations",
	Args:  cobra.NoArgs,
	RunE:  runLocations,
}

func init() {
	locationsCmd.Flags().BoolVar(&locationsJSON, "json", false, "output locations as JSON")
	rootCmd.AddCommand(locationsCmd)
}

func runLocations(cmd *cobra.Command, _ []string) error {
	if locationService == nil {
		return errNotConfigured("location service")
	}

	locs := locationService.List()

	if locationsJSON {
		data, err := json.MarshalIndent(locs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal locations: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(locs) == 0 {
		cmd.Println("No locations configured.")
		return nil
	}
	for _, loc := range locs {
		cmd.Printf("  %-12s %s\n", loc.ID, loc.URL)
	}
	return nil
}
