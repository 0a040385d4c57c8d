package mcp

const (
	uriSummary = "leadradar://summary"
	uriTop     = "leadradar://top"
	uriThemes  = "leadradar://themes"
)

// topResourceSize is the number of leads in leadradar://top
const topResourceSize = 10

// Resource defines an MCP resource
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ResourceDefinitions lists all available resources
var ResourceDefinitions = []Resource{
	{
		URI:         uriSummary,
		Name:        "Lead Summary",
		Description: "Counts by signal flag, keyword theme and score tone for the default ranking",
		MimeType:    "text/plain",
	},
	{
		URI:         uriTop,
		Name:        "Top Leads",
		Description: "The 10 highest scoring leads under the configured filters",
		MimeType:    "text/plain",
	},
	{
		URI:         uriThemes,
		Name:        "Keyword Themes",
		Description: "Keyword themes and terms used for matching",
		MimeType:    "text/plain",
	},
}

// resourcesListResult is the response for resources/list
type resourcesListResult struct {
	Resources []Resource `json:"resources"`
}

// readResourceParams is the params for resources/read
type readResourceParams struct {
	URI string `json:"uri"`
}

// readResourceResult is the response for resources/read
type readResourceResult struct {
	Contents []resourceContent `json:"contents"`
}

type resourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}
