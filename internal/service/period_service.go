package service

import (
	"finsight/internal/domain"
	"finsight/internal/period"
	"finsight/internal/workbook"
)

// PeriodResolution reports how a raw cell value was read as a period.
// Rule is empty when the value matched nothing and Period is the current
// period.
type PeriodResolution struct {
	Input   string        `json:"input"`
	Kind    string        `json:"kind"`
	Period  domain.Period `json:"period"`
	Matched bool          `json:"matched"`
	Rule    string        `json:"rule,omitempty"`
}

// PeriodService exposes the period cascade to callers outside a parse.
type PeriodService interface {
	Resolve(value any) PeriodResolution
}

type periodService struct {
	resolver *period.Resolver
}

// NewPeriodService creates a PeriodService backed by resolver.
func NewPeriodService(resolver *period.Resolver) PeriodService {
	return &periodService{resolver: resolver}
}

func (s *periodService) Resolve(value any) PeriodResolution {
	v := workbook.Of(value)
	res := PeriodResolution{Input: v.String(), Kind: v.Kind.String()}

	if p, rule := period.Trace(v); rule != "" {
		res.Period, res.Matched, res.Rule = p, true, rule
		return res
	}
	res.Period = s.resolver.Current()
	return res
}
