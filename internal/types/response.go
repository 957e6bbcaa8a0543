package types

// APIVersion is stamped into every success meta envelope.
const APIVersion = "1.0"

// Meta is the response envelope carried by every success body.
type Meta struct {
	GeneratedAt string   `json:"generated_at,omitempty"`
	LastUpdated string   `json:"last_updated,omitempty"`
	DataSources []string `json:"data_sources,omitempty"`
	APIVersion  string   `json:"api_version"`
}
