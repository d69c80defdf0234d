// Package criteria turns raw user and profile input into domain.SearchCriteria.
package criteria

import (
	"strings"

	"github.com/honeycarbs/job-discovery/internal/domain"
)

// Input is the raw, unvalidated search form plus profile data
type Input struct {
	Skills          []string `json:"skills,omitempty"`
	Keyword         string   `json:"keyword,omitempty"`
	Location        string   `json:"location,omitempty"`
	ContractType    string   `json:"contract_type,omitempty"`
	ExperienceLevel string   `json:"experience_level,omitempty"`
	MaxAgeDays      int      `json:"max_age_days,omitempty"`
	Page            int      `json:"page,omitempty"`
	Limit           int      `json:"limit,omitempty"`
	Broad           bool     `json:"broad,omitempty"`
}

// Normalize never fails: bad values are clamped, unknown tokens become "any"
// and unresolved locations are kept verbatim.
func Normalize(in Input) domain.SearchCriteria {
	return domain.SearchCriteria{
		Keywords:        keywordSet(in.Skills, in.Keyword),
		CountryOrRegion: normalizeLocation(in.Location),
		ContractType:    ParseContractType(in.ContractType),
		ExperienceLevel: ParseExperienceLevel(in.ExperienceLevel),
		MaxAgeDays:      maxAge(in.MaxAgeDays),
		Page:            max(in.Page, 0),
		Limit:           clampLimit(in.Limit),
		Broad:           in.Broad,
	}
}

// FromCriteria converts normalized criteria back into an Input, so that
// Normalize(FromCriteria(c)) == c for every c produced by Normalize.
func FromCriteria(c domain.SearchCriteria) Input {
	return Input{
		Skills:          append([]string(nil), c.Keywords...),
		Location:        c.CountryOrRegion,
		ContractType:    string(c.ContractType),
		ExperienceLevel: string(c.ExperienceLevel),
		MaxAgeDays:      c.MaxAgeDays,
		Page:            c.Page,
		Limit:           c.Limit,
		Broad:           c.Broad,
	}
}

// WithProfile fills skills and location the user left empty from their stored profile
func WithProfile(in Input, user domain.AuthenticatedUser) Input {
	out := in
	if len(in.Skills) == 0 && strings.TrimSpace(in.Keyword) == "" {
		out.Skills = append([]string(nil), user.Skills...)
	}
	if strings.TrimSpace(in.Location) == "" {
		out.Location = user.Location
	}
	return out
}

// keywordSet merges skills and the free-text keyword, deduplicating
// case-insensitively and keeping the casing of the first occurrence.
func keywordSet(skills []string, keyword string) []string {
	terms := make([]string, 0, len(skills)+1)
	terms = append(terms, skills...)
	terms = append(terms, keyword)

	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, raw := range terms {
		for _, part := range strings.Split(raw, ",") {
			term := collapseSpaces(part)
			if term == "" || strings.EqualFold(term, "all") {
				continue
			}
			key := strings.ToLower(term)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, term)
		}
	}
	return out
}

func normalizeLocation(raw string) string {
	text := collapseSpaces(raw)
	if text == "" || strings.EqualFold(text, "all") {
		return ""
	}
	if code, ok := ResolveLocation(text); ok {
		return code
	}
	return text
}

func maxAge(days int) int {
	if days <= 0 {
		return domain.DefaultMaxAgeDays
	}
	return days
}

func clampLimit(limit int) int {
	switch {
	case limit == 0:
		return domain.DefaultLimit
	case limit < domain.MinLimit:
		return domain.MinLimit
	case limit > domain.MaxLimit:
		return domain.MaxLimit
	default:
		return limit
	}
}
