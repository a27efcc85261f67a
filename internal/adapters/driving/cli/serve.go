package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ecobin-cli/internal/adapters/driving/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the bin locations page over HTTP",
	Long: `Serves a page linking every bin location. Each link opens the map in a
new browser tab through GET /locations/{id}, which redirects to the map URL.
JSON is available at /api/locations.

Without --addr the first free port from 8080 to 8099 on localhost is used.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default first free localhost port from 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	server, err := web.NewServer(locationService)
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		port, err := web.FindAvailablePort("localhost", 8080, 8099)
		if err != nil {
			return err
		}
		addr = fmt.Sprintf("localhost:%d", port)
	}

	cmd.Printf("Serving bin locations on http://%s\n", addr)
	return server.Run(cmd.Context(), addr)
}
