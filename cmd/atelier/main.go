// Command atelier is the CLI for the Atelier store backend.
//
//	atelier serve           # start the HTTP API
//	atelier migrate         # run migrations
//	atelier migrate:rollback
//	atelier migrate:status
//	atelier seed            # seed demo data
//	atelier queue:work      # run queue workers standalone
//	atelier route:list      # list API routes
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import migrations so their init() funcs run and register themselves.
	_ "github.com/skbags/atelier/database/migrations"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "atelier",
	Short: "Atelier — handmade bags store backend",
	Long:  "Atelier is the API backend for the handmade bags store: catalogue, checkout, and admin back office.",
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	// Workers
	rootCmd.AddCommand(queueWorkCmd)
}
