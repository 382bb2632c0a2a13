package model

// ParseMetadata describes one parsed source file.
type ParseMetadata struct {
	Filename      string `json:"filename"`
	FileSize      int64  `json:"file_size"`
	FileHash      string `json:"file_hash"`
	ReportYear    int    `json:"report_year"`
	ReportHalf    int    `json:"report_half"`
	RecordCount   int    `json:"record_count"`
	SkippedLines  int    `json:"skipped_lines"`
	InvertedPairs int    `json:"inverted_pairs"`
	ParsedAt      string `json:"parsed_at"`
	ParserVersion string `json:"parser_version"`
}

// ParseResult is the outcome of parsing one source file. It is produced
// once per file and never mutated.
type ParseResult struct {
	Records  []CapRateRecord `json:"records"`
	Metadata ParseMetadata   `json:"metadata"`
	Success  bool            `json:"success"`
	Errors   []string        `json:"errors,omitempty"`
}

// FailedParse builds a failed ParseResult carrying the given errors and
// zero records.
func FailedParse(errs ...string) ParseResult {
	return ParseResult{Success: false, Errors: errs}
}

// BatchMetadata describes a combine run over multiple parse results.
type BatchMetadata struct {
	ReportPeriods  []string `json:"report_periods"`
	UniquePeriods  []string `json:"unique_periods,omitempty"`
	FilesProcessed []string `json:"files_processed"`
	TotalFiles     int      `json:"total_files"`
}

// ProcessingResult is the outcome of a merge/aggregate run.
type ProcessingResult struct {
	Success        bool           `json:"success"`
	TotalRecords   int            `json:"total_records"`
	NewRecords     int            `json:"new_records"`
	UpdatedRecords int            `json:"updated_records"`
	Errors         []string       `json:"errors,omitempty"`
	Source         *ParseMetadata `json:"source,omitempty"`
	Batch          *BatchMetadata `json:"batch,omitempty"`
}

// FailedProcessing builds a failed ProcessingResult carrying the given errors.
func FailedProcessing(errs ...string) ProcessingResult {
	return ProcessingResult{Success: false, Errors: errs}
}
