package category

import (
	"sort"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
)

const (
	DefaultHomeStation            = "西安"
	DefaultUnknownLeadMinutes     = 20
	DefaultOriginatingLeadMinutes = 20
	DefaultTerminatingLeadMinutes = 20
	DefaultPassingLeadMinutes     = 3
)

// Override pins a train number to a category regardless of its route fields.
// LeadMinutes of zero means "use the category default".
type Override struct {
	Category    domain.Category `yaml:"category" json:"category" validate:"required,oneof=originating passing terminating unknown"`
	LeadMinutes int             `yaml:"lead_minutes" json:"leadMinutes" validate:"gte=0"`
}

// Policy is the station-specific classification table.
type Policy struct {
	HomeStation            string              `yaml:"home_station" json:"homeStation" validate:"required"`
	UnknownLeadMinutes     int                 `yaml:"unknown_lead_minutes" json:"unknownLeadMinutes" validate:"gt=0"`
	OriginatingLeadMinutes int                 `yaml:"originating_lead_minutes" json:"originatingLeadMinutes" validate:"gt=0"`
	PrefixLeadMinutes      map[string]int      `yaml:"prefix_lead_minutes" json:"prefixLeadMinutes" validate:"dive,keys,required,endkeys,gt=0"`
	TerminatingLeadMinutes int                 `yaml:"terminating_lead_minutes" json:"terminatingLeadMinutes" validate:"gt=0"`
	PassingLeadMinutes     int                 `yaml:"passing_lead_minutes" json:"passingLeadMinutes" validate:"gt=0"`
	Overrides              map[string]Override `yaml:"overrides" json:"overrides" validate:"dive,keys,required,endkeys"`
	ArrivalFallbacks       map[string]string   `yaml:"arrival_fallbacks" json:"arrivalFallbacks" validate:"dive,keys,required,endkeys,datetime=15:04"`
}

// DefaultPolicy returns the table the station has been operating with.
func DefaultPolicy() Policy {
	return Policy{
		HomeStation:            DefaultHomeStation,
		UnknownLeadMinutes:     DefaultUnknownLeadMinutes,
		OriginatingLeadMinutes: DefaultOriginatingLeadMinutes,
		PrefixLeadMinutes: map[string]int{
			"T": 30,
			"K": 30,
			"C": 20,
		},
		TerminatingLeadMinutes: DefaultTerminatingLeadMinutes,
		PassingLeadMinutes:     DefaultPassingLeadMinutes,
		Overrides: map[string]Override{
			"K546":  {Category: domain.CategoryPassing},
			"T231":  {Category: domain.CategoryTerminating},
			"D6852": {Category: domain.CategoryTerminating},
			"G657":  {Category: domain.CategoryTerminating},
		},
		ArrivalFallbacks: map[string]string{},
	}
}

// WithDefaults fills in fields left unset. A map that is present, even empty,
// replaces the default table as a whole.
func (p Policy) WithDefaults() Policy {
	def := DefaultPolicy()
	if p.HomeStation == "" {
		p.HomeStation = def.HomeStation
	}
	if p.UnknownLeadMinutes == 0 {
		p.UnknownLeadMinutes = def.UnknownLeadMinutes
	}
	if p.OriginatingLeadMinutes == 0 {
		p.OriginatingLeadMinutes = def.OriginatingLeadMinutes
	}
	if p.TerminatingLeadMinutes == 0 {
		p.TerminatingLeadMinutes = def.TerminatingLeadMinutes
	}
	if p.PassingLeadMinutes == 0 {
		p.PassingLeadMinutes = def.PassingLeadMinutes
	}
	if p.PrefixLeadMinutes == nil {
		p.PrefixLeadMinutes = def.PrefixLeadMinutes
	}
	if p.Overrides == nil {
		p.Overrides = def.Overrides
	}
	if p.ArrivalFallbacks == nil {
		p.ArrivalFallbacks = def.ArrivalFallbacks
	}
	return p
}

// sortedPrefixes orders prefixes longest first, then lexically, so that
// overlapping prefixes resolve the same way on every call.
func sortedPrefixes(table map[string]int) []string {
	prefixes := make([]string, 0, len(table))
	for p := range table {
		prefixes = append(prefixes, p)
	}
	sort.Slice(prefixes, func(i, j int) bool {
		if len(prefixes[i]) != len(prefixes[j]) {
			return len(prefixes[i]) > len(prefixes[j])
		}
		return prefixes[i] < prefixes[j]
	})
	return prefixes
}
