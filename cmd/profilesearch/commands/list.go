// ABOUTME: CLI command to list stored profiles for a user
// ABOUTME: Shows a table of profiles, newest first, with pagination flags
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/profilesearch/internal/config"
	"github.com/joho/godotenv"
)

var (
	listUser   string
	listOffset int
	listLimit  int
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored profiles",
		Long: `List stored profiles owned by a user, newest first.

Examples:
  profilesearch list --user user-123
  profilesearch list --user user-123 --limit 20 --offset 20
  profilesearch list --user user-123 --format json`,
		RunE: runList,
	}

	cmd.Flags().StringVar(&listUser, "user", "", "Owner user id (required)")
	cmd.Flags().IntVar(&listOffset, "offset", 0, "Number of profiles to skip")
	cmd.Flags().IntVar(&listLimit, "limit", 100, "Maximum profiles to return")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	if err := validatePositiveInt(listLimit, "limit"); err != nil {
		return err
	}
	if listOffset < 0 {
		return fmt.Errorf("offset must not be negative, got %d", listOffset)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	profiles, err := store.ListProfiles(context.Background(), listUser, listOffset, listLimit)
	if err != nil {
		return fmt.Errorf("listing profiles: %w", err)
	}

	if len(profiles) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No profiles found for user: %s\n", listUser)
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(profiles, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
	} else {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "ID\tNAME\tHEADLINE\tUPDATED\n")
		fmt.Fprintf(w, "--\t----\t--------\t-------\n")

		for _, p := range profiles {
			headline := p.Headline
			if headline == "" {
				headline = "(no headline)"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				truncate(p.ID, 12),
				truncate(p.FullName, 25),
				truncate(headline, 40),
				formatTime(p.UpdatedAt))
		}
		w.Flush()

		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d profile(s)\n", len(profiles))
		}
	}

	return nil
}
