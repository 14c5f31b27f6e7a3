// ABOUTME: CLI command to index profiles for semantic search
// ABOUTME: Reads a profile JSON document from file or stdin and runs the pipeline
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/harper/profilesearch/internal/config"
	"github.com/harper/profilesearch/internal/models"
	"github.com/joho/godotenv"
)

var (
	indexFile string
)

// NewIndexCmd creates the index command
func NewIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index [file]",
		Short: "Index a profile for semantic search",
		Long: `Index a profile record for semantic search.

Reads a profile JSON document (full_name and user_id required) from a
file or stdin, generates its embedding, and stores both. Indexing an
existing profile id replaces its embedding.

Examples:
  profilesearch index profile.json
  cat profile.json | profilesearch index
  profilesearch index --file profile.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runIndex,
	}

	cmd.Flags().StringVar(&indexFile, "file", "", "Read profile JSON from file")

	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	// Get profile JSON
	path := indexFile
	if path == "" && len(args) > 0 {
		path = args[0]
	}

	var data []byte
	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	var profile models.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return fmt.Errorf("parsing profile JSON: %w", err)
	}

	indexer, _, store, err := newPipelines(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := indexer.Index(context.Background(), &profile); err != nil {
		return fmt.Errorf("indexing profile: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(map[string]interface{}{
			"profile_id": profile.ID,
			"indexed":    true,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
	} else if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Indexed profile %s (%s)\n", profile.ID, profile.FullName)
	}

	return nil
}
