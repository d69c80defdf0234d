package theirstack

import (
	"fmt"
	"strings"

	"github.com/honeycarbs/job-discovery/internal/domain"
	"github.com/honeycarbs/job-discovery/internal/domain/criteria"
	"github.com/honeycarbs/job-discovery/pkg/theirstack"
)

// Shape selects which dimensions are sent as structured filters
type Shape string

const (
	// ShapeStructured sends country, contract type and seniority as exact-match arrays
	ShapeStructured Shape = "structured"
	// ShapeFreeText keeps only country, recency and pagination structured
	ShapeFreeText Shape = "free_text"
)

// ParseShape accepts "structured" and "free_text"; empty means structured
func ParseShape(raw string) (Shape, error) {
	switch Shape(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ShapeStructured:
		return ShapeStructured, nil
	case ShapeFreeText, "freetext", "free-text":
		return ShapeFreeText, nil
	default:
		return "", fmt.Errorf("unknown request shape %q", raw)
	}
}

var seniorityValues = map[domain.ExperienceLevel]string{
	domain.ExperienceEntry:  "entry_level",
	domain.ExperienceJunior: "junior",
	domain.ExperienceMid:    "mid_level",
	domain.ExperienceSenior: "senior",
	domain.ExperienceLead:   "staff",
}

var employmentValues = map[domain.ContractType]string{
	domain.ContractFullTime:   "full_time",
	domain.ContractPartTime:   "part_time",
	domain.ContractFreelance:  "contract",
	domain.ContractInternship: "internship",
	domain.ContractTemporary:  "temporary",
}

var contractLabels = map[domain.ContractType]string{
	domain.ContractFullTime:   "Jornada completa",
	domain.ContractPartTime:   "Jornada parcial",
	domain.ContractFreelance:  "Autónomo",
	domain.ContractInternship: "Prácticas",
	domain.ContractTemporary:  "Temporal",
}

var experienceLabels = map[domain.ExperienceLevel]string{
	domain.ExperienceEntry:  "Sin experiencia / Becario",
	domain.ExperienceJunior: "Junior",
	domain.ExperienceMid:    "Intermedio / Semi-Senior",
	domain.ExperienceSenior: "Senior",
	domain.ExperienceLead:   "Líder de equipo / Mánager",
}

// Builder compiles SearchCriteria into a jobs search request
type Builder struct {
	shape Shape
}

// NewBuilder returns a Builder for shape; unknown shapes fall back to structured
func NewBuilder(shape Shape) Builder {
	if shape != ShapeFreeText {
		shape = ShapeStructured
	}
	return Builder{shape: shape}
}

// Shape reports the request shape this builder emits
func (b Builder) Shape() Shape {
	return b.shape
}

// Build maps every dimension to exactly one channel. A dimension with a
// structured field in the current shape never also appears in the free-text query.
func (b Builder) Build(c domain.SearchCriteria) theirstack.SearchRequest {
	maxAge := c.MaxAgeDays
	if maxAge <= 0 {
		maxAge = domain.DefaultMaxAgeDays
	}

	req := theirstack.SearchRequest{
		Page:               max(c.Page, 0),
		Limit:              c.Limit,
		PostedAtMaxAgeDays: maxAge,
		OrderBy:            []theirstack.OrderBy{{Field: "date_posted", Desc: true}},
	}

	terms := make([]string, 0, len(c.Keywords)+3)
	terms = append(terms, c.Keywords...)

	if loc := strings.TrimSpace(c.CountryOrRegion); loc != "" {
		if criteria.IsCountryCode(loc) {
			req.JobCountryCodeOr = []string{loc}
		} else {
			terms = append(terms, loc)
		}
	}

	if value, ok := employmentValues[c.ContractType]; ok && b.shape == ShapeStructured {
		req.EmploymentStatusesOr = []string{value}
	} else if label, ok := contractLabels[c.ContractType]; ok {
		terms = append(terms, label)
	}

	if value, ok := seniorityValues[c.ExperienceLevel]; ok && b.shape == ShapeStructured {
		req.JobSeniorityOr = []string{value}
	} else if label, ok := experienceLabels[c.ExperienceLevel]; ok {
		terms = append(terms, label)
	}

	req.Query = joinTerms(terms)
	return req
}

func joinTerms(terms []string) string {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.Join(strings.Fields(t), " "); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
