// ABOUTME: CLI command to search indexed profiles
// ABOUTME: Embeds the query and ranks stored profiles by cosine similarity
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/profilesearch/internal/config"
	"github.com/harper/profilesearch/internal/core"
	"github.com/joho/godotenv"
)

var (
	searchLimit     int
	searchThreshold float64
	searchSuggest   bool
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search profiles",
		Long: `Search indexed profiles with a natural-language query.

The query is embedded and matched against stored profile vectors.
Results are ordered by similarity, best match first.

Examples:
  profilesearch search "software engineers with AI experience"
  profilesearch search --limit 5 --threshold 0.3 "fintech product managers"
  profilesearch search --format json "data scientists"
  profilesearch search --suggest`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", core.DefaultMatchCount, "Maximum results to return")
	cmd.Flags().Float64Var(&searchThreshold, "threshold", core.DefaultMatchThreshold, "Minimum similarity score (-1 to 1)")
	cmd.Flags().BoolVar(&searchSuggest, "suggest", false, "Print example queries and exit")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchSuggest {
		for _, suggestion := range core.SearchSuggestions() {
			fmt.Fprintln(cmd.OutOrStdout(), suggestion)
		}
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("query argument is required (or use --suggest)")
	}
	query := args[0]

	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	_, searcher, store, err := newPipelines(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := searcher.Search(context.Background(), query, core.SearchOptions{
		MatchCount:     searchLimit,
		MatchThreshold: searchThreshold,
	})
	if err != nil {
		return fmt.Errorf("searching profiles: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No profiles found for query: %s\n", query)
		}
		return nil
	}

	// Format output
	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
	} else {
		// Table format
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "SCORE\tNAME\tHEADLINE\tLOCATION\tID\n")
		fmt.Fprintf(w, "-----\t----\t--------\t--------\t--\n")

		for _, result := range results {
			headline := result.Profile.Headline
			if headline == "" {
				headline = "(no headline)"
			}

			fmt.Fprintf(w, "%.3f\t%s\t%s\t%s\t%s\n",
				result.Score,
				truncate(result.Profile.FullName, 25),
				truncate(headline, 40),
				truncate(result.Profile.Location, 20),
				truncate(result.Profile.ID, 12))
		}
		w.Flush()

		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(results))
		}
	}

	return nil
}
