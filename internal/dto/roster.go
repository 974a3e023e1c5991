package dto

// ImportResult summarises a bulk registry import: rows stored versus rows
// skipped because a required column was blank.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
