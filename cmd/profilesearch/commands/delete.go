// ABOUTME: CLI command to delete a profile and its embedding
// ABOUTME: Idempotent: deleting an absent profile succeeds quietly
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/profilesearch/internal/config"
	"github.com/joho/godotenv"
)

// NewDeleteCmd creates the delete command
func NewDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <profile-id>",
		Short: "Delete a profile",
		Long: `Delete a profile and its embedding.

Deleting a profile that does not exist is not an error.

Examples:
  profilesearch delete 1b4e28ba-2fa1-11d2-883f-0016d3cca427`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteProfile(context.Background(), args[0]); err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile %s\n", args[0])
	}

	return nil
}
