// AngelaMos | 2026
// normalize.go

package ingest

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/carterperez-dev/leadtrack/internal/core"
	"github.com/carterperez-dev/leadtrack/internal/submission"
)

const (
	defaultTrustedFormURL = "https://cert.trustedform.com/pending"
	defaultCaseType       = "Rideshare"
	defaultOwnerID        = "005TR00000CDuezYAD"
)

// FormData is the cleaned view of one raw form post. Field names track
// the upstream form, not Go conventions.
type FormData struct {
	FirstName          string
	LastName           string
	Email              string
	Phone              string
	Address            string
	City               string
	State              string
	Zip                string
	Gender             string
	DOB                string
	DiagnosisYear      string
	TrustedFormCertURL string
	CaseType           string
	OwnerID            string
	Campaign           string
	OfferURL           string
	Referrer           string
}

// DecodeForm accepts either a JSON object or a single-element array of
// one, which is how the form vendor wraps batched posts. Values arrive
// loosely typed, so everything is coerced to string.
func DecodeForm(body []byte) (*FormData, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil, fmt.Errorf("empty body: %w", core.ErrInvalidInput)
	}

	raw := map[string]any{}
	if strings.HasPrefix(trimmed, "[") {
		var list []map[string]any
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, fmt.Errorf("decode form: %w", core.ErrInvalidInput)
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("empty form array: %w", core.ErrInvalidInput)
		}
		raw = list[0]
	} else {
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, fmt.Errorf("decode form: %w", core.ErrInvalidInput)
		}
	}

	field := func(keys ...string) string {
		for _, key := range keys {
			if v, ok := raw[key]; ok {
				switch t := v.(type) {
				case string:
					if t != "" {
						return t
					}
				case float64:
					return strings.TrimSuffix(
						fmt.Sprintf("%v", t), ".0")
				}
			}
		}
		return ""
	}

	return &FormData{
		FirstName:     field("fname", "first_name", "firstName"),
		LastName:      field("lname", "last_name", "lastName"),
		Email:         field("email"),
		Phone:         field("phone", "phone_number"),
		Address:       field("address", "street_address"),
		City:          field("city"),
		State:         field("state"),
		Zip:           field("zip", "zip_code", "postal_code"),
		Gender:        field("gender"),
		DOB:           field("dob", "date_of_birth"),
		DiagnosisYear: field("diagnosis_year", "diagnosisYear", "incident_year"),
		TrustedFormCertURL: field(
			"xxTrustedFormCertUrl",
			"Trusted_Form_Alt",
			"trusted_form_cert_url",
		),
		CaseType: field("case_type", "caseType"),
		OwnerID:  field("ownerid", "owner_id"),
		Campaign: field("campaign", "utm_campaign"),
		OfferURL: field("offer_url", "offerUrl"),
		Referrer: field("referrer", "referer"),
	}, nil
}

// NormalizeGender capitalizes the first word and defaults to "Other".
func NormalizeGender(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "Other"
	}

	lower := strings.ToLower(trimmed)
	switch lower {
	case "male", "female", "other":
		return strings.ToUpper(lower[:1]) + lower[1:]
	}
	return "Other"
}

var formDateLayouts = []string{
	"01/02/2006",
	"2006-01-02",
	time.RFC3339,
	"01-02-2006",
	"2006/01/02",
}

// ParseFormDate never rejects. Unparseable input falls back to now,
// trading strictness for never dropping a lead on a malformed date.
func ParseFormDate(raw string, now time.Time) time.Time {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return now
	}

	for _, layout := range formDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t
		}
	}

	// bare year, common for the diagnosis field
	if t, err := time.Parse("2006", trimmed); err == nil {
		return t
	}

	return now
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize applies the canonical field cleanup and provenance defaults
// to produce the applicant half of a submission record. Technical and
// geo fields are filled separately by the enrichment pipeline.
func Normalize(form *FormData, now time.Time) submission.Submission {
	trustedForm := strings.TrimSpace(form.TrustedFormCertURL)
	if trustedForm == "" {
		trustedForm = defaultTrustedFormURL
	}
	caseType := strings.TrimSpace(form.CaseType)
	if caseType == "" {
		caseType = defaultCaseType
	}
	ownerID := strings.TrimSpace(form.OwnerID)
	if ownerID == "" {
		ownerID = defaultOwnerID
	}

	return submission.Submission{
		FirstName:     strings.TrimSpace(form.FirstName),
		LastName:      strings.TrimSpace(form.LastName),
		Email:         strings.ToLower(strings.TrimSpace(form.Email)),
		Phone:         digitsOnly(form.Phone),
		Address:       strings.TrimSpace(form.Address),
		City:          strings.TrimSpace(form.City),
		State:         strings.ToUpper(strings.TrimSpace(form.State)),
		Zip:           strings.TrimSpace(form.Zip),
		Gender:        NormalizeGender(form.Gender),
		DOB:           ParseFormDate(form.DOB, now),
		DiagnosisYear: ParseFormDate(form.DiagnosisYear, now),

		TrustedFormCertURL: trustedForm,
		CaseType:           caseType,
		OwnerID:            ownerID,
		Campaign:           strings.TrimSpace(form.Campaign),
		OfferURL:           strings.TrimSpace(form.OfferURL),
		Referrer:           strings.TrimSpace(form.Referrer),

		SubmissionDate: now,
		Status:         submission.StatusPending,
	}
}
