package domain

// ContractType is the canonical contract vocabulary
type ContractType string

const (
	ContractAny        ContractType = "any"
	ContractFullTime   ContractType = "full_time"
	ContractPartTime   ContractType = "part_time"
	ContractFreelance  ContractType = "freelance"
	ContractInternship ContractType = "internship"
	ContractTemporary  ContractType = "temporary"
)

// ExperienceLevel is the canonical seniority vocabulary
type ExperienceLevel string

const (
	ExperienceAny    ExperienceLevel = "any"
	ExperienceEntry  ExperienceLevel = "entry"
	ExperienceJunior ExperienceLevel = "junior"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
	ExperienceLead   ExperienceLevel = "lead"
)

// Modality is derived from offer text, never taken from the caller
type Modality string

const (
	ModalityRemote Modality = "remote"
	ModalityHybrid Modality = "hybrid"
	ModalityOnsite Modality = "onsite"
)

const (
	DefaultMaxAgeDays = 60
	DefaultLimit      = 10
	MinLimit          = 1
	MaxLimit          = 100
)

// SearchCriteria is the normalized search request. Build it with criteria.Normalize.
type SearchCriteria struct {
	Keywords        []string        `json:"keywords"`
	CountryOrRegion string          `json:"country_or_region,omitempty"`
	ContractType    ContractType    `json:"contract_type"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	MaxAgeDays      int             `json:"max_age_days"`
	Page            int             `json:"page"`
	Limit           int             `json:"limit"`
	// Broad marks an intentional "all recent jobs" query
	Broad bool `json:"broad,omitempty"`
}

// HasDiscriminator reports whether any field other than keywords narrows the search
func (c SearchCriteria) HasDiscriminator() bool {
	return c.CountryOrRegion != "" ||
		(c.ContractType != "" && c.ContractType != ContractAny) ||
		(c.ExperienceLevel != "" && c.ExperienceLevel != ExperienceAny)
}

// Unconstrained is true when the criteria would match every recent job
func (c SearchCriteria) Unconstrained() bool {
	return len(c.Keywords) == 0 && !c.HasDiscriminator()
}

// WithPage returns a copy positioned on page
func (c SearchCriteria) WithPage(page int) SearchCriteria {
	out := c
	out.Keywords = append([]string(nil), c.Keywords...)
	out.Page = page
	return out
}

// JobOffer is the canonical listing handed to the presentation layer.
// Equality is by ID.
type JobOffer struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	CompanyName    string   `json:"company_name"`
	CompanyLogoURL string   `json:"company_logo_url,omitempty"`
	Location       string   `json:"location"`
	Salary         string   `json:"salary,omitempty"`
	Description    string   `json:"description"`
	URL            string   `json:"url"`
	Technologies   []string `json:"technologies"`
	Modality       Modality `json:"modality"`
}

// AuthenticatedUser is the read-only profile view supplied by the identity store
type AuthenticatedUser struct {
	ID       string
	Skills   []string
	Location string
}

// Health is the result of a provider availability probe
type Health struct {
	Available bool   `json:"available"`
	Status    int    `json:"status,omitempty"`
	Detail    string `json:"detail"`
}
