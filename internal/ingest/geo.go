// AngelaMos | 2026
// geo.go

package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"

	"github.com/oschwald/geoip2-golang"

	"github.com/carterperez-dev/leadtrack/internal/config"
	"github.com/carterperez-dev/leadtrack/internal/submission"
)

// Location is one resolver's view of an IP. Empty strings and zero
// coordinates mean "this resolver doesn't know".
type Location struct {
	Country     string
	CountryCode string
	Region      string
	City        string
	Zip         string
	Latitude    float64
	Longitude   float64
	Timezone    string
	ISP         string
	Org         string
}

type Resolver interface {
	Resolve(ctx context.Context, ip string) (*Location, error)
}

// OfflineResolver reads a local MaxMind city database. It is the
// baseline source; the paid API only overlays it.
type OfflineResolver struct {
	reader *geoip2.Reader
}

func NewOfflineResolver(mmdbPath string) (*OfflineResolver, error) {
	reader, err := geoip2.Open(mmdbPath)
	if err != nil {
		return nil, fmt.Errorf("open geo database: %w", err)
	}
	return &OfflineResolver{reader: reader}, nil
}

func (r *OfflineResolver) Close() error {
	return r.reader.Close()
}

func (r *OfflineResolver) Resolve(
	_ context.Context,
	ip string,
) (*Location, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return nil, fmt.Errorf("resolve %q: not an IP address", ip)
	}

	record, err := r.reader.City(parsed)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", ip, err)
	}

	loc := &Location{
		Country:     record.Country.Names["en"],
		CountryCode: record.Country.IsoCode,
		City:        record.City.Names["en"],
		Zip:         record.Postal.Code,
		Latitude:    record.Location.Latitude,
		Longitude:   record.Location.Longitude,
		Timezone:    record.Location.TimeZone,
	}
	if len(record.Subdivisions) > 0 {
		loc.Region = record.Subdivisions[0].Names["en"]
	}

	return loc, nil
}

// IPStackClient queries the paid ipstack API for fields the offline
// database lacks, mainly ISP and organization.
type IPStackClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewIPStackClient(cfg config.GeoConfig) *IPStackClient {
	return &IPStackClient{
		baseURL: cfg.IPStackBaseURL,
		apiKey:  cfg.IPStackKey,
		client:  &http.Client{Timeout: cfg.LookupTimeout},
	}
}

type ipstackResponse struct {
	CountryName string  `json:"country_name"`
	CountryCode string  `json:"country_code"`
	RegionName  string  `json:"region_name"`
	City        string  `json:"city"`
	Zip         string  `json:"zip"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	TimeZone    struct {
		ID string `json:"id"`
	} `json:"time_zone"`
	Connection struct {
		ISP string `json:"isp"`
		Org string `json:"org"`
	} `json:"connection"`
	Success *bool `json:"success,omitempty"`
}

func (c *IPStackClient) Resolve(
	ctx context.Context,
	ip string,
) (*Location, error) {
	endpoint := fmt.Sprintf("%s/%s?access_key=%s",
		c.baseURL, url.PathEscape(ip), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("ipstack request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ipstack lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ipstack lookup: status %d", resp.StatusCode)
	}

	var body ipstackResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("ipstack decode: %w", err)
	}

	// error payloads come back 200 with success=false
	if body.Success != nil && !*body.Success {
		return nil, fmt.Errorf("ipstack lookup: request rejected")
	}

	return &Location{
		Country:     body.CountryName,
		CountryCode: body.CountryCode,
		Region:      body.RegionName,
		City:        body.City,
		Zip:         body.Zip,
		Latitude:    body.Latitude,
		Longitude:   body.Longitude,
		Timezone:    body.TimeZone.ID,
		ISP:         body.Connection.ISP,
		Org:         body.Connection.Org,
	}, nil
}

// Enricher merges offline and API lookups into a submission's geo
// columns. Lookup failures degrade to sentinels; they never fail the
// surrounding ingestion.
type Enricher struct {
	offline Resolver
	api     Resolver
	logger  *slog.Logger
}

func NewEnricher(offline, api Resolver, logger *slog.Logger) *Enricher {
	return &Enricher{
		offline: offline,
		api:     api,
		logger:  logger,
	}
}

func (e *Enricher) Enrich(
	ctx context.Context,
	ip string,
	sub *submission.Submission,
) {
	loc := &Location{}

	if e.offline != nil {
		offline, err := e.offline.Resolve(ctx, ip)
		if err != nil {
			e.logger.Warn("offline geo lookup failed",
				slog.String("ip", ip),
				slog.String("error", err.Error()),
			)
		} else {
			loc = offline
		}
	}

	if e.api != nil && !isLoopback(ip) {
		api, err := e.api.Resolve(ctx, ip)
		if err != nil {
			e.logger.Warn("geo api lookup failed",
				slog.String("ip", ip),
				slog.String("error", err.Error()),
			)
		} else {
			loc = mergeLocations(loc, api)
		}
	}

	applyLocation(loc, sub)
}

// mergeLocations overlays API fields onto the offline base. Each field
// is taken from the API only when the API actually resolved it.
func mergeLocations(base, overlay *Location) *Location {
	merged := *base

	if overlay.Country != "" {
		merged.Country = overlay.Country
	}
	if overlay.CountryCode != "" {
		merged.CountryCode = overlay.CountryCode
	}
	if overlay.Region != "" {
		merged.Region = overlay.Region
	}
	if overlay.City != "" {
		merged.City = overlay.City
	}
	if overlay.Zip != "" {
		merged.Zip = overlay.Zip
	}
	if overlay.Latitude != 0 || overlay.Longitude != 0 {
		merged.Latitude = overlay.Latitude
		merged.Longitude = overlay.Longitude
	}
	if overlay.Timezone != "" {
		merged.Timezone = overlay.Timezone
	}
	if overlay.ISP != "" {
		merged.ISP = overlay.ISP
	}
	if overlay.Org != "" {
		merged.Org = overlay.Org
	}

	return &merged
}

func applyLocation(loc *Location, sub *submission.Submission) {
	sub.GeoCountry = sentinelOr(loc.Country, submission.UnknownSentinel)
	sub.GeoCountryCode = sentinelOr(loc.CountryCode, "XX")
	sub.GeoRegion = sentinelOr(loc.Region, submission.UnknownSentinel)
	sub.GeoCity = sentinelOr(loc.City, submission.UnknownSentinel)
	sub.GeoZip = loc.Zip
	sub.GeoLatitude = loc.Latitude
	sub.GeoLongitude = loc.Longitude
	sub.GeoTimezone = sentinelOr(loc.Timezone, submission.UnknownSentinel)
	sub.GeoISP = sentinelOr(loc.ISP, submission.UnknownSentinel)
	sub.GeoOrg = sentinelOr(loc.Org, submission.UnknownSentinel)
}

func sentinelOr(value, sentinel string) string {
	if value == "" {
		return sentinel
	}
	return value
}
