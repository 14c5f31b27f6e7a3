// ABOUTME: MCP tool handler implementations for the profile search server
// ABOUTME: Thin argument parsing and JSON responses around the core pipelines
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harper/profilesearch/internal/core"
	"github.com/harper/profilesearch/internal/models"
	"github.com/harper/profilesearch/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	indexer  *core.Indexer
	searcher *core.Searcher
	store    storage.VectorStore
}

// IndexProfile handles the index_profile tool
func (h *Handlers) IndexProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profileJSON, err := request.RequireString("profile")
	if err != nil {
		return mcp.NewToolResultError("profile argument is required and must be a string"), nil
	}

	var profile models.Profile
	if err := json.Unmarshal([]byte(profileJSON), &profile); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid profile JSON: %v", err)), nil
	}

	if err := h.indexer.Index(ctx, &profile); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("indexing failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"profile_id": profile.ID,
		"indexed":    true,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// SearchProfiles handles the search_profiles tool
func (h *Handlers) SearchProfiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	opts := core.SearchOptions{
		MatchCount:     request.GetInt("match_count", core.DefaultMatchCount),
		MatchThreshold: request.GetFloat("match_threshold", core.DefaultMatchThreshold),
	}

	results, err := h.searcher.Search(ctx, query, opts)
	if err != nil {
		if errors.Is(err, core.ErrInvalidQuery) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"query":   query,
		"results": results,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GetProfile handles the get_profile tool
func (h *Handlers) GetProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profileID, err := request.RequireString("profile_id")
	if err != nil {
		return mcp.NewToolResultError("profile_id argument is required and must be a string"), nil
	}

	profile, err := h.store.GetProfile(ctx, profileID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("profile not found: %s", profileID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to get profile: %v", err)), nil
	}

	responseJSON, err := json.Marshal(profile)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ListProfiles handles the list_profiles tool
func (h *Handlers) ListProfiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := request.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError("user_id argument is required and must be a string"), nil
	}

	offset := request.GetInt("offset", 0)
	limit := request.GetInt("limit", 100)

	profiles, err := h.store.ListProfiles(ctx, userID, offset, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list profiles: %v", err)), nil
	}

	response := map[string]interface{}{
		"user_id":  userID,
		"profiles": profiles,
		"count":    len(profiles),
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// DeleteProfile handles the delete_profile tool
func (h *Handlers) DeleteProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profileID, err := request.RequireString("profile_id")
	if err != nil {
		return mcp.NewToolResultError("profile_id argument is required and must be a string"), nil
	}

	if err := h.indexer.Deindex(ctx, profileID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete profile: %v", err)), nil
	}

	response := map[string]interface{}{
		"profile_id": profileID,
		"deleted":    true,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// SearchSuggestions handles the search_suggestions tool
func (h *Handlers) SearchSuggestions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(map[string]interface{}{
		"suggestions": core.SearchSuggestions(),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}
