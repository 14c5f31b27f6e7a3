// ABOUTME: CLI command to fetch a stored profile by id
// ABOUTME: Prints full profile JSON or a summary line
package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/profilesearch/internal/config"
	"github.com/joho/godotenv"
)

// NewGetCmd creates the get command
func NewGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <profile-id>",
		Short: "Get a stored profile",
		Long: `Get a stored profile by id.

Examples:
  profilesearch get 1b4e28ba-2fa1-11d2-883f-0016d3cca427
  profilesearch get --format json 1b4e28ba-2fa1-11d2-883f-0016d3cca427`,
		Args: cobra.ExactArgs(1),
		RunE: runGet,
	}

	return cmd
}

func runGet(cmd *cobra.Command, args []string) error {
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

	profile, err := store.GetProfile(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("getting profile: %w", err)
	}

	if outputFormat == "json" || outputFormat == "auto" {
		jsonData, err := json.MarshalIndent(profile, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
			profile.ID, profile.FullName, profile.Headline, formatTime(profile.UpdatedAt))
	}

	return nil
}
