package main

import (
	"github.com/spf13/cobra"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/internal/server"
)

var rootCmd = &cobra.Command{
	Use:          "admin-api",
	Short:        "E-commerce admin dashboard API",
	SilenceUsage: true,
	// Running the binary with no subcommand starts the server.
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
