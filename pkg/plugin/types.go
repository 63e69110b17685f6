package plugin

// GenerateRequest is sent to a generator plugin for each catalog gap.
type GenerateRequest struct {
	Prompt   string `json:"prompt"`
	Size     int    `json:"size"`
	Model    string `json:"model,omitempty"`
	Category string `json:"category,omitempty"`
	Variant  string `json:"variant,omitempty"`
}

// PluginInfo contains metadata about a generator plugin.
type PluginInfo struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	ProtocolVersion string `json:"protocol_version"`
	Description     string `json:"description"`
}
