// ABOUTME: Sync commands for the charm cloud-synced backend
// ABOUTME: Provides connection status and manual sync
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/profilesearch/internal/charm"
	"github.com/harper/profilesearch/internal/config"
	"github.com/joho/godotenv"
)

// NewSyncCmd creates the sync command group
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Manage charm cloud synchronization",
		Long: `Manage synchronization with the charm cloud backend.

With PROFILESEARCH_BACKEND=charm, profile data syncs automatically
across devices linked to the same charm account. These commands check
the connection and force a sync outside the automatic schedule.`,
	}

	cmd.AddCommand(newSyncStatusCmd())
	cmd.AddCommand(newSyncNowCmd())

	return cmd
}

func newSyncStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show sync configuration and connection status",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Backend:   %s\n", cfg.Backend)
			fmt.Fprintf(cmd.OutOrStdout(), "Host:      %s\n", cfg.CharmHost)
			fmt.Fprintf(cmd.OutOrStdout(), "Database:  %s\n", cfg.CharmDBName)
			fmt.Fprintf(cmd.OutOrStdout(), "Auto-sync: %t\n", cfg.AutoSync)

			client, err := newCharmClient(cfg)
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Status:    Not connected")
				return nil
			}
			defer client.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "Status:    Connected")
			return nil
		},
	}
}

func newSyncNowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Force immediate sync with the charm cloud",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			client, err := newCharmClient(cfg)
			if err != nil {
				return fmt.Errorf("connecting to charm: %w", err)
			}
			defer client.Close()

			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), "Syncing...")
			}
			if err := client.Sync(); err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}

			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), "Sync complete")
			}
			return nil
		},
	}
}

// newCharmClient opens a charm client from configuration
func newCharmClient(cfg *config.Config) (*charm.Client, error) {
	return charm.NewClient(&charm.Config{
		Host:     cfg.CharmHost,
		DBName:   cfg.CharmDBName,
		AutoSync: cfg.AutoSync,
	})
}
