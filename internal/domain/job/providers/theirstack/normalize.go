package theirstack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/honeycarbs/job-discovery/internal/domain"
	"github.com/honeycarbs/job-discovery/pkg/logging"
)

const (
	defaultTitle       = "Título no disponible"
	defaultCompany     = "Empresa confidencial"
	defaultLocation    = "Ubicación no especificada"
	defaultDescription = "Sin descripción."
)

// envelopeKeys are probed in order when the reply is an object
var envelopeKeys = []string{"data", "results", "jobs"}

// MalformedRecordError marks a single record that could not be decoded.
// The record is skipped and the rest of the page is kept.
type MalformedRecordError struct {
	Index int
	Err   error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record %d: %v", e.Index, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// Batch is one normalized provider page
type Batch struct {
	Offers []domain.JobOffer
	// Records counts the provider records before any were skipped or dropped
	Records int
}

// Normalizer maps provider replies onto canonical offers
type Normalizer struct {
	logger *logging.Logger
}

// NewNormalizer returns a Normalizer; a nil logger discards diagnostics
func NewNormalizer(logger *logging.Logger) *Normalizer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Normalizer{logger: logger}
}

// Normalize never fails. Unknown envelopes yield an empty batch, malformed
// records are skipped and records without an apply URL are dropped.
func (n *Normalizer) Normalize(body []byte) Batch {
	records, ok := locateRecords(body)
	if !ok {
		n.logger.Warn("unrecognized response envelope", "body", truncateBytes(body, 512))
		return Batch{Offers: []domain.JobOffer{}}
	}

	offers := make([]domain.JobOffer, 0, len(records))
	for i, raw := range records {
		offer, keep, err := decodeOffer(raw)
		if err != nil {
			n.logger.Debug("skipping record", "error", &MalformedRecordError{Index: i, Err: err})
			continue
		}
		if !keep {
			n.logger.Debug("dropping record without apply url", "index", i, "title", offer.Title)
			continue
		}
		offers = append(offers, offer)
	}

	return Batch{Offers: offers, Records: len(records)}
}

// locateRecords accepts a bare array or an object carrying the array under
// the first present envelope key.
func locateRecords(body []byte) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, false
	}

	if trimmed[0] == '[' {
		var records []json.RawMessage
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, false
		}
		return records, true
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, false
	}
	for _, key := range envelopeKeys {
		raw, present := envelope[key]
		if !present {
			continue
		}
		var records []json.RawMessage
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, false
		}
		return records, true
	}
	return nil, false
}

// rawJob lists every field name the provider has used across revisions.
// Every field decodes leniently: a value of an unexpected type counts as absent.
type rawJob struct {
	ID flexString `json:"id"`

	JobTitle flexText `json:"job_title"`
	Title    flexText `json:"title"`
	Position flexText `json:"position"`

	CompanyName   flexText  `json:"company_name"`
	CompanyObject *flexName `json:"company_object"`
	Company       *flexName `json:"company"`
	CompanyLogo   flexText  `json:"company_logo"`

	JobLocations  flexNames `json:"job_locations"`
	Locations     flexNames `json:"locations"`
	Location      *flexName `json:"location"`
	ShortLocation flexText  `json:"short_location"`

	URL         flexText `json:"url"`
	FinalURL    flexText `json:"final_url"`
	SourceURL   flexText `json:"source_url"`
	RedirectURL flexText `json:"redirect_url"`
	Link        flexText `json:"link"`
	ApplyURL    flexText `json:"apply_url"`

	JobDescription flexText `json:"job_description"`
	Description    flexText `json:"description"`

	TechnologySlugs flexNames `json:"technology_slugs"`
	Technologies    flexNames `json:"technologies"`
	Tags            flexNames `json:"tags"`

	MinAnnualSalary flexFloat  `json:"min_annual_salary"`
	MaxAnnualSalary flexFloat  `json:"max_annual_salary"`
	JobSalaryMin    flexFloat  `json:"job_salary_min"`
	JobSalaryMax    flexFloat  `json:"job_salary_max"`
	SalaryMin       flexFloat  `json:"salary_min"`
	SalaryMax       flexFloat  `json:"salary_max"`
	SalaryCurrency  flexText   `json:"salary_currency"`
	JobSalaryCurr   flexText   `json:"job_salary_currency"`
	Currency        flexText   `json:"currency"`
	SalaryString    flexText   `json:"salary_string"`
	Salary          flexString `json:"salary"`

	Remote json.RawMessage `json:"remote"`
	Hybrid json.RawMessage `json:"hybrid"`
}

// decodeOffer returns keep=false for records without a usable apply URL
func decodeOffer(raw json.RawMessage) (domain.JobOffer, bool, error) {
	var job rawJob
	if err := json.Unmarshal(raw, &job); err != nil {
		return domain.JobOffer{}, false, err
	}

	offer := domain.JobOffer{
		Title:          firstNonEmpty(string(job.JobTitle), string(job.Title), string(job.Position), defaultTitle),
		CompanyName:    firstNonEmpty(string(job.CompanyName), job.CompanyObject.name(), job.Company.name(), defaultCompany),
		CompanyLogoURL: firstNonEmpty(job.CompanyObject.logoURL(), job.Company.logoURL(), string(job.CompanyLogo)),
		Location:       firstNonEmpty(firstName(job.JobLocations), firstName(job.Locations), job.Location.name(), string(job.ShortLocation), defaultLocation),
		Technologies:   technologies(job.TechnologySlugs, job.Technologies, job.Tags),
	}
	if logo, ok := applyURL(offer.CompanyLogoURL); ok {
		offer.CompanyLogoURL = logo
	} else {
		offer.CompanyLogoURL = ""
	}

	text := plainText(firstNonEmpty(string(job.JobDescription), string(job.Description)))
	offer.Modality = inferModality(offer.Title, text, isTrue(job.Remote), isTrue(job.Hybrid))
	offer.Description = truncateRunes(firstNonEmpty(text, defaultDescription), maxDescriptionRunes)
	offer.Salary = salary(job)

	for _, candidate := range []flexText{job.URL, job.FinalURL, job.SourceURL, job.RedirectURL, job.Link, job.ApplyURL} {
		if link, ok := applyURL(string(candidate)); ok {
			offer.URL = link
			break
		}
	}
	if offer.URL == "" {
		return offer, false, nil
	}

	offer.ID = strings.TrimSpace(string(job.ID))
	if offer.ID == "" {
		offer.ID = syntheticID(offer.Title, offer.CompanyName, offer.URL)
	}
	return offer, true, nil
}

func salary(job rawJob) string {
	currency := firstNonEmpty(string(job.SalaryCurrency), string(job.JobSalaryCurr), string(job.Currency))
	ranges := [][2]flexFloat{
		{job.MinAnnualSalary, job.MaxAnnualSalary},
		{job.JobSalaryMin, job.JobSalaryMax},
		{job.SalaryMin, job.SalaryMax},
	}
	for _, r := range ranges {
		if out, ok := formatSalary(r[0], r[1], currency); ok {
			return out
		}
	}
	return firstNonEmpty(string(job.SalaryString), string(job.Salary))
}

// technologies keeps provider order from the first non-empty list
func technologies(lists ...flexNames) []string {
	for _, list := range lists {
		out := make([]string, 0, len(list))
		seen := make(map[string]struct{}, len(list))
		for _, item := range list {
			name := item.name()
			if name == "" {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
		if len(out) > 0 {
			return out
		}
	}
	return []string{}
}

func firstName(list flexNames) string {
	for _, item := range list {
		if name := item.name(); name != "" {
			return name
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func isTrue(raw json.RawMessage) bool {
	switch strings.ToLower(strings.Trim(string(bytes.TrimSpace(raw)), `"`)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

func truncateBytes(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// flexString accepts a JSON string or number; anything else is treated as absent
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	switch {
	case b[0] == '"':
		var v string
		if json.Unmarshal(b, &v) == nil {
			*s = flexString(v)
		}
	default:
		var n json.Number
		if json.Unmarshal(b, &n) == nil {
			*s = flexString(n.String())
		}
	}
	return nil
}

// flexText accepts only a JSON string; numbers, objects and arrays are treated as absent
type flexText string

func (t *flexText) UnmarshalJSON(b []byte) error {
	var v string
	if json.Unmarshal(b, &v) == nil {
		*t = flexText(v)
	}
	return nil
}

// flexFloat accepts a JSON number or numeric string; anything else is treated as absent
type flexFloat struct {
	value float64
	ok    bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(b)), `"`)
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !representable(v) {
		return nil
	}
	f.value, f.ok = v, true
	return nil
}

// representable reports whether v is finite and rounds into an int64
func representable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && math.Abs(v) < math.MaxInt64
}

// flexName accepts either a bare string or an object with a display name.
// Other JSON types leave it empty.
type flexName struct {
	text string
	logo string
}

func (n *flexName) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}

	switch b[0] {
	case '"':
		var v string
		if json.Unmarshal(b, &v) == nil {
			n.text = v
		}
	case '{':
		var obj struct {
			DisplayName flexText `json:"display_name"`
			Name        flexText `json:"name"`
			City        flexText `json:"city"`
			Slug        flexText `json:"slug"`
			Logo        flexText `json:"logo"`
		}
		if json.Unmarshal(b, &obj) == nil {
			n.text = firstNonEmpty(string(obj.DisplayName), string(obj.Name), string(obj.City), string(obj.Slug))
			n.logo = string(obj.Logo)
		}
	}
	return nil
}

// flexNames accepts an array of names or a single name
type flexNames []flexName

func (l *flexNames) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	if b[0] != '[' {
		var single flexName
		_ = single.UnmarshalJSON(b)
		if single.name() != "" {
			*l = flexNames{single}
		}
		return nil
	}

	var items []flexName
	if json.Unmarshal(b, &items) == nil {
		*l = items
	}
	return nil
}

func (n *flexName) name() string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.text)
}

func (n *flexName) logoURL() string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.logo)
}
