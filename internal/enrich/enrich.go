// Package enrich derives read-time and sentiment attributes from article
// text. Both functions are pure and stateless.
package enrich

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"NewsPulse/internal/domain"
)

// wordsPerMinute is the average adult reading speed used for estimates.
const wordsPerMinute = 225

var (
	tagExpr  = regexp.MustCompile(`<[^>]*>`)
	wordExpr = regexp.MustCompile(`\w+`)
	// Some providers truncate bodies and append a "[+2450 chars]" marker.
	truncationExpr = regexp.MustCompile(`\[\+(\d+)\s+chars\]`)
)

// ReadTime estimates reading time in whole minutes, never less than 1.
// Markup is stripped first; a truncation marker contributes its announced
// character count at ~6 characters per word (5 letters plus a separator).
func ReadTime(text string) int {
	if strings.TrimSpace(text) == "" {
		return 1
	}

	clean := stripMarkup(text)
	words := len(wordExpr.FindAllString(clean, -1))

	if match := truncationExpr.FindStringSubmatch(clean); match != nil {
		chars, err := strconv.Atoi(match[1])
		if err == nil {
			words += chars / 6
		}
	}

	minutes := int(math.Round(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// Sentiment classifies a headline as urgent, positive, or neutral by
// keyword lookup. Urgency wins over positivity. Matching is substring
// containment, not word-boundary aware; good enough for feed badges.
func Sentiment(title, description string) domain.Sentiment {
	combined := strings.ToLower(title + " " + description)

	for _, term := range urgentTerms {
		if strings.Contains(combined, term) {
			return domain.SentimentUrgent
		}
	}

	for _, term := range positiveTerms {
		if strings.Contains(combined, term) {
			return domain.SentimentPositive
		}
	}

	return domain.SentimentNeutral
}

var urgentTerms = []string{
	"breaking", "urgent", "alert", "crisis", "emergency",
	"breaking news", "just in", "live updates", "warns",
	"deadly", "explosion", "earthquake", "attack",
}

var positiveTerms = []string{
	"success", "breakthrough", "discovery", "hope", "recovery",
	"wins", "excellent", "fantastic", "innovative", "solution",
	"growth", "rise", "benefit", "award", "surprised",
}

// stripMarkup replaces tags with whitespace so that words separated only
// by markup stay separate. Full-body providers deliver raw HTML here.
func stripMarkup(text string) string {
	if !strings.Contains(text, "<") {
		return text
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return tagExpr.ReplaceAllString(text, " ")
	}

	var b strings.Builder
	doc.Find("*").Contents().Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "#text" {
			b.WriteString(s.Text())
			b.WriteByte(' ')
		}
	})

	return b.String()
}
