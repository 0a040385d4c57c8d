package mcp

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolDefinitions contains all available MCP tools
var ToolDefinitions = []Tool{
	{
		Name:        "rank_leads",
		Description: "Score, filter and rank the loaded signal records. Returns leads sorted by score, highest first.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Case-insensitive text matched against organization, title, snippet and sector",
				},
				"region": map[string]interface{}{
					"type":        "string",
					"description": "Region name matched against the location. 'Bundesweit' or omit for no restriction.",
				},
				"min_score": map[string]interface{}{
					"type":        "integer",
					"description": "Hide leads scoring below this value (0-120, default from config)",
				},
				"high_confidence": map[string]interface{}{
					"type":        "boolean",
					"description": "Only keep records with confidence of at least 0.70",
				},
				"now": map[string]interface{}{
					"type":        "string",
					"description": "Reference date for recency (YYYY-MM-DD, default today)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (default: 20)",
				},
			},
		},
	},
	{
		Name:        "get_lead",
		Description: "Get one lead with its score breakdown and the text around each matched keyword.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Record ID",
				},
				"now": map[string]interface{}{
					"type":        "string",
					"description": "Reference date for recency (YYYY-MM-DD, default today)",
				},
			},
			"required": []string{"id"},
		},
	},
	{
		Name:        "list_themes",
		Description: "List the keyword themes and their terms used for matching.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	},
	{
		Name:        "get_weights",
		Description: "Get the scoring weights: one per signal flag plus the keyword bonus.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	},
}
