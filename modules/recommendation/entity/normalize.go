package entity

import "strings"

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SameCompany compares company names ignoring case and surrounding space.
func SameCompany(a, b string) bool {
	a, b = normalize(a), normalize(b)
	return a != "" && a == b
}
