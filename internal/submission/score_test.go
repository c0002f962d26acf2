// AngelaMos | 2026
// score_test.go

package submission

import (
	"testing"
	"time"
)

func fullSubmission() Submission {
	return Submission{
		FirstName:          "Jane",
		LastName:           "Doe",
		Email:              "jane@example.com",
		Phone:              "5551234567",
		Address:            "1 Main St",
		City:               "Austin",
		State:              "TX",
		Zip:                "78701",
		Gender:             "Female",
		DOB:                time.Date(1980, 1, 2, 0, 0, 0, 0, time.UTC),
		DiagnosisYear:      time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		TrustedFormCertURL: "https://cert.trustedform.com/abc",
		GeoCountry:         "United States",
		UserAgent:          "Mozilla/5.0 (iPhone)",
	}
}

func TestCalculateQualityScoreBounds(t *testing.T) {
	full := fullSubmission()
	if got := CalculateQualityScore(&full); got != 100 {
		t.Fatalf("full submission score = %d, want 100", got)
	}

	empty := Submission{}
	if got := CalculateQualityScore(&empty); got != 0 {
		t.Fatalf("empty submission score = %d, want 0", got)
	}
}

func TestCalculateQualityScoreBuckets(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Submission)
		want   int
	}{
		{
			name:   "missing last name drops name bucket",
			mutate: func(s *Submission) { s.LastName = "" },
			want:   90,
		},
		{
			name:   "email without at sign",
			mutate: func(s *Submission) { s.Email = "jane.example.com" },
			want:   90,
		},
		{
			name:   "phone with fewer than ten digits",
			mutate: func(s *Submission) { s.Phone = "555123" },
			want:   90,
		},
		{
			name:   "missing zip drops whole address bucket",
			mutate: func(s *Submission) { s.Zip = "" },
			want:   90,
		},
		{
			name:   "missing trusted form",
			mutate: func(s *Submission) { s.TrustedFormCertURL = "" },
			want:   85,
		},
		{
			name:   "unresolved country",
			mutate: func(s *Submission) { s.GeoCountry = UnknownSentinel },
			want:   90,
		},
		{
			name:   "bot user agent",
			mutate: func(s *Submission) { s.UserAgent = "Googlebot/2.1" },
			want:   95,
		},
		{
			name:   "missing user agent",
			mutate: func(s *Submission) { s.UserAgent = "" },
			want:   95,
		},
		{
			name:   "missing gender",
			mutate: func(s *Submission) { s.Gender = "" },
			want:   90,
		},
		{
			name:   "missing dob",
			mutate: func(s *Submission) { s.DOB = time.Time{} },
			want:   90,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := fullSubmission()
			tt.mutate(&sub)
			if got := CalculateQualityScore(&sub); got != tt.want {
				t.Errorf("score = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCalculateQualityScoreDeterministic(t *testing.T) {
	sub := fullSubmission()
	first := CalculateQualityScore(&sub)
	for range 10 {
		if got := CalculateQualityScore(&sub); got != first {
			t.Fatalf("score changed across calls: %d != %d", got, first)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, status := range []string{
		StatusPending, StatusProcessed, StatusContacted,
		StatusQualified, StatusRejected, StatusDeleted,
	} {
		if !ValidStatus(status) {
			t.Errorf("ValidStatus(%q) = false, want true", status)
		}
	}

	for _, status := range []string{"", "archived", "PENDING", "done"} {
		if ValidStatus(status) {
			t.Errorf("ValidStatus(%q) = true, want false", status)
		}
	}
}
