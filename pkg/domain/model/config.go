package model

// Keys of the config key-value store. Writes are last-write-wins.
const (
	// ConfigKeyWorkspaceURL is the workspace base URL captured from
	// auth.test, used by the viewer to build permalinks.
	ConfigKeyWorkspaceURL = "workspace_url"
)
