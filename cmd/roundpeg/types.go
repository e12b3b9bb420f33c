package main

// CLIResult is the top-level JSON envelope for all commands.
type CLIResult struct {
	Command string `json:"command"`
	Results any    `json:"results"`
	Error   string `json:"error,omitempty"`
}

// CLIFit is a JSON-friendly fit-test outcome.
type CLIFit struct {
	Name      string   `json:"name,omitempty"`
	Shape     string   `json:"shape"`
	Formula   string   `json:"formula,omitempty"`
	Radius    *float64 `json:"radius,omitempty"`
	Width     float64  `json:"width"`
	HoleWidth float64  `json:"hole_width"`
	Fits      bool     `json:"fits"`
	Error     string   `json:"error,omitempty"`
}

// CLIHistoryEntry is a JSON-friendly fit-log row.
type CLIHistoryEntry struct {
	ID        int64  `json:"id"`
	Source    string `json:"source"`
	CheckedAt string `json:"checked_at"`
	CLIFit
}

// CLIHistory is the result of the history command.
type CLIHistory struct {
	Total   int               `json:"total"`
	Fitting int               `json:"fitting"`
	Entries []CLIHistoryEntry `json:"entries"`
}

// CLIScriptResult is the result of the script command.
type CLIScriptResult struct {
	Script string `json:"script"`
	Value  string `json:"value,omitempty"`
	Error  string `json:"error,omitempty"`
}
