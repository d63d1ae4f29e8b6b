// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-fields/internal/server"
	"github.com/pdiddy/research-fields/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the latest analysis over HTTP",
	Long: `Serve exposes the analysis JSON file as a read-only API. The file is
read on every request, so rerunning analyze updates the API in place. While
no analysis exists the API answers 503.

Endpoints: /healthz, /api/fields, /api/fields/{label}, /api/summary, /metrics.`,
	Example: `  research-fields serve
  research-fields serve --addr :9090 --results fields.json`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", types.DefaultServeAddr, "listen address")
	serveCmd.Flags().String("results", "", "analysis JSON file (default: the analyze output file)")

	viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("serve.results", serveCmd.Flags().Lookup("results"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	srv, err := server.New(serverConfig(), newLogger())
	if err != nil {
		return err
	}
	return srv.ListenAndServe(cmd.Context())
}
