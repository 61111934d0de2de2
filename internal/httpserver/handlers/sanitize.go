package handlers

import "strings"

// Angle brackets are stripped from free-text inputs before they reach the
// services, so stored values can be echoed into a page without markup.
func sanitize(s string) string {
	return strings.NewReplacer("<", "", ">", "").Replace(s)
}

func sanitizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	clean := sanitize(*s)
	return &clean
}
