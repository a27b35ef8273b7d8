package main

import (
	"os"

	"github.com/spf13/cobra"

	"fixdesk/internal/interfaces/cli/migrate"
	"fixdesk/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fixdesk",
		Short: "Fixdesk - facilities ticketing service",
		Long:  `Fixdesk is the facilities ticketing service: workflow-driven tickets, role-gated transitions, an append-only activity log, and a Kanban board.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
