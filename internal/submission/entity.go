// AngelaMos | 2026
// entity.go

package submission

import "time"

const (
	StatusPending   = "pending"
	StatusProcessed = "processed"
	StatusContacted = "contacted"
	StatusQualified = "qualified"
	StatusRejected  = "rejected"
	StatusDeleted   = "deleted"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusProcessed, StatusContacted,
		StatusQualified, StatusRejected, StatusDeleted:
		return true
	}
	return false
}

// Submission is one captured lead with its enrichment metadata. Geo and
// device fields are stored flat so grouping queries stay plain SQL.
type Submission struct {
	ID string `db:"id" json:"id"`

	FirstName     string    `db:"fname"          json:"fname"`
	LastName      string    `db:"lname"          json:"lname"`
	Email         string    `db:"email"          json:"email"`
	Phone         string    `db:"phone"          json:"phone"`
	Address       string    `db:"address"        json:"address"`
	City          string    `db:"city"           json:"city"`
	State         string    `db:"state"          json:"state"`
	Zip           string    `db:"zip"            json:"zip"`
	Gender        string    `db:"gender"         json:"gender"`
	DOB           time.Time `db:"dob"            json:"dob"`
	DiagnosisYear time.Time `db:"diagnosis_year" json:"diagnosis_year"`

	IPAddress string `db:"ip_address" json:"ip_address"`
	UserAgent string `db:"user_agent" json:"user_agent"`

	BrowserFamily  string `db:"browser_family"  json:"browser_family"`
	BrowserVersion string `db:"browser_version" json:"browser_version"`
	BrowserMajor   string `db:"browser_major"   json:"browser_major"`
	OSFamily       string `db:"os_family"       json:"os_family"`
	OSVersion      string `db:"os_version"      json:"os_version"`
	OSMajor        string `db:"os_major"        json:"os_major"`
	DeviceFamily   string `db:"device_family"   json:"device_family"`
	DeviceType     string `db:"device_type"     json:"device_type"`

	GeoCountry     string  `db:"geo_country"      json:"geo_country"`
	GeoCountryCode string  `db:"geo_country_code" json:"geo_country_code"`
	GeoRegion      string  `db:"geo_region"       json:"geo_region"`
	GeoCity        string  `db:"geo_city"         json:"geo_city"`
	GeoZip         string  `db:"geo_zip"          json:"geo_zip"`
	GeoLatitude    float64 `db:"geo_latitude"     json:"geo_latitude"`
	GeoLongitude   float64 `db:"geo_longitude"    json:"geo_longitude"`
	GeoTimezone    string  `db:"geo_timezone"     json:"geo_timezone"`
	GeoISP         string  `db:"geo_isp"          json:"geo_isp"`
	GeoOrg         string  `db:"geo_org"          json:"geo_org"`

	TrustedFormCertURL string `db:"trusted_form_cert_url" json:"trusted_form_cert_url"`
	CaseType           string `db:"case_type"             json:"case_type"`
	OwnerID            string `db:"ownerid"               json:"ownerid"`
	Campaign           string `db:"campaign"              json:"campaign"`
	OfferURL           string `db:"offer_url"             json:"offer_url"`
	Referrer           string `db:"referrer"              json:"referrer"`

	SubmissionDate time.Time  `db:"submission_date" json:"submission_date"`
	Processed      bool       `db:"processed"       json:"processed"`
	Status         string     `db:"status"          json:"status"`
	QualityScore   int        `db:"quality_score"   json:"quality_score"`
	DeletedAt      *time.Time `db:"deleted_at"      json:"deleted_at,omitempty"`
	DeletedBy      *string    `db:"deleted_by"      json:"deleted_by,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	Notes []Note `db:"-" json:"notes,omitempty"`
}

type Note struct {
	ID           string    `db:"id"            json:"id"`
	SubmissionID string    `db:"submission_id" json:"-"`
	Content      string    `db:"content"       json:"content"`
	AuthorID     string    `db:"author_id"     json:"author_id"`
	CreatedAt    time.Time `db:"created_at"    json:"created_at"`
}
