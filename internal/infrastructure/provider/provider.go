// Package provider implements the per-provider news source adapters. Each
// adapter owns its endpoint, auth parameter, page-size ceiling, and rate
// limit; new providers plug in by implementing ports.NewsSource.
package provider

import "time"

// publishedLayouts covers the date shapes the providers emit: RFC3339 with
// a trailing "Z" or offset, and the NYT variant without a colon in the offset.
var publishedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
}

// parsePublished normalizes a provider timestamp to a timezone-aware value,
// falling back to the ingestion time when the payload omits or mangles it.
func parsePublished(value string) time.Time {
	for _, layout := range publishedLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Now().UTC()
}
