package domain

import "time"

// ProviderResult summarizes one provider's share of an ingestion run.
// Err is set when the provider's fetch failed as a whole; counts stay
// zero in that case.
type ProviderResult struct {
	Saved      int    `json:"saved"`
	Duplicates int    `json:"duplicates"`
	Skipped    int    `json:"skipped"`
	Err        string `json:"error,omitempty"`
}

// RunSummary is the outcome of a single ingestion pass across all
// configured providers.
type RunSummary struct {
	Results    map[string]ProviderResult `json:"results"`
	Note       string                    `json:"note,omitempty"`
	StartedAt  time.Time                 `json:"started_at"`
	FinishedAt time.Time                 `json:"finished_at"`
}
