package domain

import "time"

// Well-known bias type labels produced by the classifier and accepted from
// moderator overrides. The set is open: the classifier may emit labels
// outside this list and they are stored as-is.
const (
	BiasTypeGender             = "gender"
	BiasTypeCultural           = "cultural"
	BiasTypeAgeAppropriateness = "age_appropriateness"
	BiasTypeStereotype         = "stereotype"
	BiasTypeAccessibility      = "accessibility"
	BiasTypeEconomic           = "economic"
)

// BiasAnalysis is the structured judgment of whether a piece of content is
// unfair or exclusionary.
//
// Confidence 0.0 means "classifier unavailable". Callers must treat that as
// unknown, not safe: such records still go through escalation evaluation.
type BiasAnalysis struct {
	HasBias         bool
	BiasTypes       []string
	Severity        BiasSeverity
	SpecificIssues  []string
	Recommendations []string
	Confidence      float64
	AnalyzedAt      time.Time
}

// Unavailable reports whether the analysis came from a failed classifier
// call (zero confidence degradation).
func (a BiasAnalysis) Unavailable() bool {
	return a.Confidence == 0
}

// BiasOverride is a moderator-asserted bias finding supplied with the
// flag_bias and update_content decisions. It is validated once at the API
// boundary and trusted downstream.
type BiasOverride struct {
	BiasTypes       []string
	Severity        BiasSeverity
	SpecificIssues  []string
	Recommendations []string
}

// Validate checks the override is complete enough to act on.
func (o BiasOverride) Validate() error {
	var errs []FieldError
	if len(o.BiasTypes) == 0 {
		errs = append(errs, FieldError{Field: "bias_types", Message: "at least one required"})
	}
	if !o.Severity.IsValid() {
		errs = append(errs, FieldError{Field: "severity", Message: "must be low, medium or high"})
	}
	if len(o.SpecificIssues) == 0 {
		errs = append(errs, FieldError{Field: "specific_issues", Message: "at least one required"})
	}
	if len(o.Recommendations) == 0 {
		errs = append(errs, FieldError{Field: "recommendations", Message: "at least one required"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// ToAnalysis converts the override into a BiasAnalysis with full confidence,
// since a human asserted it.
func (o BiasOverride) ToAnalysis(now time.Time) BiasAnalysis {
	return BiasAnalysis{
		HasBias:         true,
		BiasTypes:       o.BiasTypes,
		Severity:        o.Severity,
		SpecificIssues:  o.SpecificIssues,
		Recommendations: o.Recommendations,
		Confidence:      1.0,
		AnalyzedAt:      now,
	}
}
