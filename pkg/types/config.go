// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Default file names used when no path is configured.
const (
	DefaultInputFile  = "authors_with_h_index.json"
	DefaultOutputFile = "research_fields_analysis.json"
	DefaultCSVFile    = "research_fields_summary.csv"
	DefaultStoreDir   = "data"
	DefaultServeAddr  = ":8080"
	DefaultTopFields  = 15
	DefaultTopPopular = 10
	DefaultMaxResults = 20
)

// AnalysisConfig holds settings for one end-to-end analysis pass.
type AnalysisConfig struct {
	// InputPath is the JSON array of author records to analyze.
	InputPath string `json:"input" yaml:"input"`

	// OutputPath is where the research fields analysis JSON is written.
	// Empty skips the write.
	OutputPath string `json:"output" yaml:"output"`

	// CSVPath is the optional spreadsheet-friendly summary (one row per field).
	CSVPath string `json:"csv,omitempty" yaml:"csv,omitempty"`

	// XLSXPath is the optional Excel workbook carrying the same rows as CSVPath.
	XLSXPath string `json:"xlsx,omitempty" yaml:"xlsx,omitempty"`

	// TopFields is how many fields the console summary lists by average h-index.
	TopFields int `json:"top" yaml:"top"`

	// TopPopular is how many fields the console summary lists by author count.
	TopPopular int `json:"popular" yaml:"popular"`
}

// StoreConfig holds settings for the result history database.
type StoreConfig struct {
	// Dir contains research-fields.db.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ServerConfig holds settings for the read-only results API.
type ServerConfig struct {
	// Addr is the listen address (e.g. ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// ResultsPath is the analysis JSON served by the API. It is re-read on
	// every request so a fresh analysis is picked up without a restart.
	ResultsPath string `json:"results" yaml:"results"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level"`

	// Format is text or json (default text).
	Format string `json:"format" yaml:"format"`
}

