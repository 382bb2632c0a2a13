package model

// ToolVersion is stamped into parse metadata, run metadata, and the
// dashboard JSON schema version.
const ToolVersion = "2.0.0"
