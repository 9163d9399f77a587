package intake

import (
	"fmt"
	"strings"

	"github.com/quizforge/quizmod-backend/internal/config"
	"github.com/quizforge/quizmod-backend/internal/domain"
)

// ruleOutcome is what a single escalation rule contributes.
type ruleOutcome struct {
	// Action is the intake audit marker, empty when the rule only observes.
	Action string
	// Escalate requests a human review with the given priority and reason.
	Escalate bool
	Priority domain.ReviewPriority
	Reason   string
	// AutoRemediate requests a corrective knowledge-base update before the
	// item reaches the queue.
	AutoRemediate bool
}

// escalationRule inspects a record and reports what should happen. A nil
// return means the rule did not fire.
type escalationRule func(f *domain.FeedbackRecord, cfg config.ModerationConfig) *ruleOutcome

// defaultRules returns the escalation rules in evaluation order. Order
// matters only for the audit trail and for reason selection among rules of
// equal urgency; the effective priority is the maximum across fired rules.
func defaultRules() []escalationRule {
	return []escalationRule{
		lowRatingRule,
		biasDetectedRule,
		lowConfidenceRule,
		difficultyMismatchRule,
		lowRelevanceRule,
		concernKeywordsRule,
	}
}

func lowRatingRule(f *domain.FeedbackRecord, _ config.ModerationConfig) *ruleOutcome {
	if f.Rating > 2 {
		return nil
	}
	return &ruleOutcome{
		Action:   domain.ActionFlaggedForReview,
		Escalate: true,
		Priority: domain.PriorityHigh,
		Reason:   fmt.Sprintf("Low rating detected: %d/5", f.Rating),
	}
}

func biasDetectedRule(f *domain.FeedbackRecord, _ config.ModerationConfig) *ruleOutcome {
	a := f.BiasAnalysis
	if a == nil || !a.HasBias {
		return nil
	}
	if a.Severity != domain.SeverityHigh && a.Severity != domain.SeverityMedium {
		return nil
	}

	priority := domain.PriorityHigh
	if a.Severity == domain.SeverityHigh {
		priority = domain.PriorityUrgent
	}
	return &ruleOutcome{
		Action:        domain.ActionUrgentBiasReview,
		Escalate:      true,
		Priority:      priority,
		Reason:        fmt.Sprintf("AI detected %s severity bias: %s", a.Severity, strings.Join(a.BiasTypes, ", ")),
		AutoRemediate: true,
	}
}

func lowConfidenceRule(f *domain.FeedbackRecord, cfg config.ModerationConfig) *ruleOutcome {
	a := f.BiasAnalysis
	if a == nil || a.HasBias || a.Confidence >= cfg.ConfidenceThreshold {
		return nil
	}
	return &ruleOutcome{
		Action:   domain.ActionLowConfidenceFlagged,
		Escalate: true,
		Priority: domain.PriorityMedium,
		Reason:   fmt.Sprintf("Low AI confidence (%.2f%%) - potential missed bias", a.Confidence*100),
	}
}

func difficultyMismatchRule(f *domain.FeedbackRecord, _ config.ModerationConfig) *ruleOutcome {
	d := f.DifficultyPerception
	if d == nil || (*d != domain.DifficultyTooEasy && *d != domain.DifficultyTooHard) {
		return nil
	}
	return &ruleOutcome{Action: domain.ActionDifficultyAdjustment}
}

func lowRelevanceRule(f *domain.FeedbackRecord, _ config.ModerationConfig) *ruleOutcome {
	if f.RelevanceScore == nil || *f.RelevanceScore > 2 {
		return nil
	}
	return &ruleOutcome{Action: domain.ActionPersonalizationNeeded}
}

func concernKeywordsRule(f *domain.FeedbackRecord, cfg config.ModerationConfig) *ruleOutcome {
	if !f.HasComments() {
		return nil
	}
	comments := strings.ToLower(*f.Comments)
	for _, keyword := range cfg.ConcernKeywords {
		if strings.Contains(comments, keyword) {
			return &ruleOutcome{
				Action:   domain.ActionConcerningKeywords,
				Escalate: true,
				Priority: domain.PriorityUrgent,
				Reason:   "User feedback contains concerning keywords",
			}
		}
	}
	return nil
}

// evaluate runs every rule and merges the outcomes. The item escalates at
// the most urgent priority any rule asked for; the reason comes from the
// first rule that asked for that priority.
func (s *Service) evaluate(f *domain.FeedbackRecord) ([]string, domain.Escalation) {
	var (
		actions    []string
		escalation domain.Escalation
	)

	for _, rule := range s.rules {
		outcome := rule(f, s.cfg)
		if outcome == nil {
			continue
		}
		if outcome.Action != "" {
			actions = append(actions, outcome.Action)
		}
		if outcome.AutoRemediate {
			escalation.AutoRemediate = true
		}
		if !outcome.Escalate {
			continue
		}
		if !escalation.RequiresReview || outcome.Priority.MoreUrgent(escalation.Priority) {
			escalation.Priority = outcome.Priority
			escalation.Reason = outcome.Reason
		}
		escalation.RequiresReview = true
	}

	return actions, escalation
}
