package category

import (
	"strings"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
)

type Classifier struct {
	policy   Policy
	prefixes []string
}

func NewClassifier(policy Policy) *Classifier {
	return &Classifier{
		policy:   policy,
		prefixes: sortedPrefixes(policy.PrefixLeadMinutes),
	}
}

func (c *Classifier) Policy() Policy {
	return c.policy
}

// Classify assigns a category and lead time. First match wins:
// override table, missing record, originating, terminating, passing.
func (c *Classifier) Classify(trainNo string, train *domain.Train) domain.Classification {
	if override, ok := c.policy.Overrides[trainNo]; ok {
		return domain.Classification{
			Category:    override.Category,
			LeadMinutes: c.overrideLead(trainNo, override),
		}
	}

	if train == nil {
		return domain.Classification{
			Category:    domain.CategoryUnknown,
			LeadMinutes: c.policy.UnknownLeadMinutes,
		}
	}

	if train.Route == c.policy.HomeStation {
		return domain.Classification{
			Category:    domain.CategoryOriginating,
			LeadMinutes: c.originatingLead(trainNo),
		}
	}

	if train.Route2 == c.policy.HomeStation {
		return domain.Classification{
			Category:    domain.CategoryTerminating,
			LeadMinutes: c.policy.TerminatingLeadMinutes,
		}
	}

	return domain.Classification{
		Category:    domain.CategoryPassing,
		LeadMinutes: c.policy.PassingLeadMinutes,
	}
}

func (c *Classifier) overrideLead(trainNo string, override Override) int {
	if override.LeadMinutes > 0 {
		return override.LeadMinutes
	}

	switch override.Category {
	case domain.CategoryOriginating:
		return c.originatingLead(trainNo)
	case domain.CategoryPassing:
		return c.policy.PassingLeadMinutes
	case domain.CategoryTerminating:
		return c.policy.TerminatingLeadMinutes
	default:
		return c.policy.UnknownLeadMinutes
	}
}

func (c *Classifier) originatingLead(trainNo string) int {
	for _, prefix := range c.prefixes {
		if strings.HasPrefix(trainNo, prefix) {
			return c.policy.PrefixLeadMinutes[prefix]
		}
	}
	return c.policy.OriginatingLeadMinutes
}
