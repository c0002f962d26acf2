// AngelaMos | 2026
// score.go

package submission

import "strings"

const (
	// UnknownSentinel marks geo fields the resolvers could not fill.
	UnknownSentinel = "Unknown"

	highQualityThreshold = 80
)

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// CalculateQualityScore is a pure 0..100 completeness heuristic.
// Additive buckets, capped at 100. Recomputed on every write so stored
// scores always reflect the current field values.
func CalculateQualityScore(s *Submission) int {
	score := 0

	if s.FirstName != "" && s.LastName != "" {
		score += 10
	}
	if s.Email != "" && strings.Contains(s.Email, "@") {
		score += 10
	}
	if s.Phone != "" && countDigits(s.Phone) >= 10 {
		score += 10
	}
	if s.Address != "" && s.City != "" && s.State != "" && s.Zip != "" {
		score += 10
	}
	if !s.DOB.IsZero() {
		score += 10
	}
	if !s.DiagnosisYear.IsZero() {
		score += 10
	}
	if s.Gender != "" {
		score += 10
	}
	if s.TrustedFormCertURL != "" {
		score += 15
	}
	if s.GeoCountry != "" && s.GeoCountry != UnknownSentinel {
		score += 10
	}
	if s.UserAgent != "" && !strings.Contains(strings.ToLower(s.UserAgent), "bot") {
		score += 5
	}

	if score > 100 {
		score = 100
	}
	return score
}
