package criteria

import "github.com/honeycarbs/job-discovery/internal/domain"

// Keys are folded (see fold). UI labels come from the Spanish job search form.
var contractAliases = map[string]domain.ContractType{
	"full_time":        domain.ContractFullTime,
	"full-time":        domain.ContractFullTime,
	"fulltime":         domain.ContractFullTime,
	"full time":        domain.ContractFullTime,
	"jornada completa": domain.ContractFullTime,
	"part_time":        domain.ContractPartTime,
	"part-time":        domain.ContractPartTime,
	"part time":        domain.ContractPartTime,
	"jornada parcial":  domain.ContractPartTime,
	"freelance":        domain.ContractFreelance,
	"contractor":       domain.ContractFreelance,
	"autonomo":         domain.ContractFreelance,
	"internship":       domain.ContractInternship,
	"intern":           domain.ContractInternship,
	"practicas":        domain.ContractInternship,
	"temporary":        domain.ContractTemporary,
	"temporal":         domain.ContractTemporary,
	"any":              domain.ContractAny,
	"all":              domain.ContractAny,
}

var experienceAliases = map[string]domain.ExperienceLevel{
	"entry":                     domain.ExperienceEntry,
	"entry_level":               domain.ExperienceEntry,
	"entry level":               domain.ExperienceEntry,
	"sin experiencia":           domain.ExperienceEntry,
	"becario":                   domain.ExperienceEntry,
	"sin experiencia / becario": domain.ExperienceEntry,
	"junior":                    domain.ExperienceJunior,
	"mid":                       domain.ExperienceMid,
	"mid_level":                 domain.ExperienceMid,
	"mid level":                 domain.ExperienceMid,
	"intermedio":                domain.ExperienceMid,
	"semi-senior":               domain.ExperienceMid,
	"intermedio / semi-senior":  domain.ExperienceMid,
	"senior":                    domain.ExperienceSenior,
	"lead":                      domain.ExperienceLead,
	"manager":                   domain.ExperienceLead,
	"lider de equipo":           domain.ExperienceLead,
	"lider de equipo / manager": domain.ExperienceLead,
	"any":                       domain.ExperienceAny,
	"all":                       domain.ExperienceAny,
}

// ParseContractType maps a token or UI label to the canonical vocabulary.
// Unknown tokens become ContractAny.
func ParseContractType(raw string) domain.ContractType {
	if ct, ok := contractAliases[fold(raw)]; ok {
		return ct
	}
	return domain.ContractAny
}

// ParseExperienceLevel maps a token or UI label to the canonical vocabulary.
// Unknown tokens become ExperienceAny.
func ParseExperienceLevel(raw string) domain.ExperienceLevel {
	if lvl, ok := experienceAliases[fold(raw)]; ok {
		return lvl
	}
	return domain.ExperienceAny
}
