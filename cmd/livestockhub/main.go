package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "livestockhub",
	Short: "Livestock management API server",
	Long: `livestockhub serves the livestock management API.

Available subcommands:
  serve   - run the HTTP server and background jobs
  migrate - apply the database schema
  seed    - create the first admin and the starter content library`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
