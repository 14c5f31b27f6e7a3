// ABOUTME: MCP tool definitions and registration for the profile search server
// ABOUTME: Defines JSON schemas for the index, search, and CRUD tools
package mcp

import (
	"github.com/harper/profilesearch/internal/core"
	"github.com/harper/profilesearch/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, indexer *core.Indexer, searcher *core.Searcher, store storage.VectorStore) *Handlers {
	handlers := &Handlers{
		indexer:  indexer,
		searcher: searcher,
		store:    store,
	}

	// 1. index_profile - Index a profile for semantic search
	server.AddTool(mcp.Tool{
		Name:        "index_profile",
		Description: "Store a professional profile and index it for semantic search. Re-indexing an existing profile id replaces its embedding.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"profile": map[string]interface{}{
					"type":        "string",
					"description": "Profile record as a JSON object string (full_name and user_id are required)",
				},
			},
			Required: []string{"profile"},
		},
	}, handlers.IndexProfile)

	// 2. search_profiles - Semantic search over indexed profiles
	server.AddTool(mcp.Tool{
		Name:        "search_profiles",
		Description: "Search indexed profiles with a natural-language query. Returns profiles with similarity scores, best match first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Natural-language search query",
				},
				"match_count": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 10)",
					"default":     core.DefaultMatchCount,
				},
				"match_threshold": map[string]interface{}{
					"type":        "number",
					"description": "Minimum similarity score for a match, -1 to 1 (default: 0.5)",
					"default":     core.DefaultMatchThreshold,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchProfiles)

	// 3. get_profile - Fetch a stored profile
	server.AddTool(mcp.Tool{
		Name:        "get_profile",
		Description: "Get a stored profile by id.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"profile_id": map[string]interface{}{
					"type":        "string",
					"description": "Profile id to fetch",
				},
			},
			Required: []string{"profile_id"},
		},
	}, handlers.GetProfile)

	// 4. list_profiles - List profiles for a user
	server.AddTool(mcp.Tool{
		Name:        "list_profiles",
		Description: "List stored profiles owned by a user, newest first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "Owner user id",
				},
				"offset": map[string]interface{}{
					"type":        "number",
					"description": "Number of profiles to skip (default: 0)",
					"default":     0,
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum profiles to return (default: 100)",
					"default":     100,
				},
			},
			Required: []string{"user_id"},
		},
	}, handlers.ListProfiles)

	// 5. delete_profile - Remove a profile and its embedding
	server.AddTool(mcp.Tool{
		Name:        "delete_profile",
		Description: "Delete a profile and its embedding. Deleting an absent profile succeeds.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"profile_id": map[string]interface{}{
					"type":        "string",
					"description": "Profile id to delete",
				},
			},
			Required: []string{"profile_id"},
		},
	}, handlers.DeleteProfile)

	// 6. search_suggestions - Example queries
	server.AddTool(mcp.Tool{
		Name:        "search_suggestions",
		Description: "Get example search queries.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.SearchSuggestions)

	return handlers
}
