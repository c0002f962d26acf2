// AngelaMos | 2026
// device.go

package ingest

import (
	"regexp"
	"strconv"

	ua "github.com/mileusna/useragent"

	"github.com/carterperez-dev/leadtrack/internal/submission"
)

var (
	tabletPattern = regexp.MustCompile(`(?i)ipad|tablet|kindle|silk|playbook`)
	mobilePattern = regexp.MustCompile(
		`(?i)mobile|iphone|ipod|android|blackberry|windows phone|opera mini`)
)

// ParseDevice fills the browser, OS, and device columns from the raw
// user-agent header. Tablet tokens win over generic mobile tokens, so
// an iPad classifies as tablet even though it also matches "mobile".
func ParseDevice(rawUA string, sub *submission.Submission) {
	sub.UserAgent = rawUA

	parsed := ua.Parse(rawUA)

	// the parser echoes the raw string back as Name when it recognizes
	// nothing; no OS and no version means no real browser was found
	if parsed.OS == "" && parsed.Version == "" {
		parsed.Name = ""
	}

	sub.BrowserFamily = orUnknown(parsed.Name)
	sub.BrowserVersion = parsed.Version
	sub.BrowserMajor = strconv.Itoa(parsed.VersionNo.Major)
	sub.OSFamily = orUnknown(parsed.OS)
	sub.OSVersion = parsed.OSVersion
	sub.OSMajor = strconv.Itoa(parsed.OSVersionNo.Major)
	sub.DeviceFamily = orUnknown(parsed.Device)

	switch {
	case tabletPattern.MatchString(rawUA):
		sub.DeviceType = "tablet"
	case mobilePattern.MatchString(rawUA):
		sub.DeviceType = "mobile"
	default:
		sub.DeviceType = "desktop"
	}
}

func orUnknown(s string) string {
	if s == "" {
		return submission.UnknownSentinel
	}
	return s
}
