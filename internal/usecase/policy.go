package usecase

import "github.com/polkiloo/drinkshop/internal/domain/model"

// RequiredPolicy decides which unselected categories block a submit.
type RequiredPolicy interface {
	Missing(s *Selection) []model.OptionCategory
}

// StrictPolicy requires size, temperature and sugar.
type StrictPolicy struct{}

func (StrictPolicy) Missing(s *Selection) []model.OptionCategory {
	return s.Missing()
}

// LenientPolicy accepts partially filled forms.
type LenientPolicy struct{}

func (LenientPolicy) Missing(*Selection) []model.OptionCategory {
	return nil
}

// PolicyFor maps the ENFORCE_REQUIRED_OPTIONS switch to a policy.
func PolicyFor(enforce bool) RequiredPolicy {
	if enforce {
		return StrictPolicy{}
	}
	return LenientPolicy{}
}
