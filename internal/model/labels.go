package model

import (
	"regexp"
	"strings"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)

// acronyms are rendered upper-case in generated labels.
var acronyms = map[string]string{
	"id":  "ID",
	"url": "URL",
}

// DefaultLabeler converts a field name into a human-friendly label, so
// "ticket_id" becomes "Ticket ID" and "planned_start" becomes "Planned
// start".
func DefaultLabeler(name string) string {
	words := splitWordsPattern.Split(strings.TrimSpace(name), -1)
	segments := make([]string, 0, len(words))
	for _, word := range words {
		if word == "" {
			continue
		}
		lower := strings.ToLower(word)
		if acronym, ok := acronyms[lower]; ok {
			segments = append(segments, acronym)
			continue
		}
		if len(segments) == 0 {
			segments = append(segments, strings.ToUpper(lower[:1])+lower[1:])
			continue
		}
		segments = append(segments, lower)
	}
	return strings.Join(segments, " ")
}
