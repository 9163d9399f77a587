package domain

// ReviewPriority orders items in the admin review queue.
type ReviewPriority string

const (
	PriorityUrgent ReviewPriority = "urgent"
	PriorityHigh   ReviewPriority = "high"
	PriorityMedium ReviewPriority = "medium"
	PriorityLow    ReviewPriority = "low"
)

func (p ReviewPriority) String() string { return string(p) }

func (p ReviewPriority) IsValid() bool {
	switch p {
	case PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank returns the sort rank of the priority: urgent < high < medium < low.
// Unknown priorities sort after all known ones.
func (p ReviewPriority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// MoreUrgent reports whether p outranks other.
func (p ReviewPriority) MoreUrgent(other ReviewPriority) bool {
	return p.Rank() < other.Rank()
}

// MaxPriority returns the most urgent of a and b.
func MaxPriority(a, b ReviewPriority) ReviewPriority {
	if b.MoreUrgent(a) {
		return b
	}
	return a
}

// ReviewStatus is the lifecycle state of a review item.
// "reviewed" is terminal: items are never reopened.
type ReviewStatus string

const (
	StatusPending  ReviewStatus = "pending"
	StatusReviewed ReviewStatus = "reviewed"
)

func (s ReviewStatus) String() string { return string(s) }

func (s ReviewStatus) IsValid() bool {
	return s == StatusPending || s == StatusReviewed
}

// ReviewAction is the moderator's decision on a review item.
type ReviewAction string

const (
	ActionApprove       ReviewAction = "approve"
	ActionReject        ReviewAction = "reject"
	ActionFlagBias      ReviewAction = "flag_bias"
	ActionUpdateContent ReviewAction = "update_content"
	ActionDismiss       ReviewAction = "dismiss"
)

func (a ReviewAction) String() string { return string(a) }

func (a ReviewAction) IsValid() bool {
	switch a {
	case ActionApprove, ActionReject, ActionFlagBias, ActionUpdateContent, ActionDismiss:
		return true
	}
	return false
}

// RequiresOverride reports whether the action needs a moderator-supplied
// bias override validated at the API boundary.
func (a ReviewAction) RequiresOverride() bool {
	return a == ActionFlagBias
}

// BiasSeverity grades how serious a detected bias is.
type BiasSeverity string

const (
	SeverityLow    BiasSeverity = "low"
	SeverityMedium BiasSeverity = "medium"
	SeverityHigh   BiasSeverity = "high"
)

func (s BiasSeverity) String() string { return string(s) }

func (s BiasSeverity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// DifficultyPerception is the learner's impression of quiz difficulty.
type DifficultyPerception string

const (
	DifficultyTooEasy   DifficultyPerception = "too_easy"
	DifficultyJustRight DifficultyPerception = "just_right"
	DifficultyTooHard   DifficultyPerception = "too_hard"
)

func (d DifficultyPerception) String() string { return string(d) }

func (d DifficultyPerception) IsValid() bool {
	switch d {
	case DifficultyTooEasy, DifficultyJustRight, DifficultyTooHard:
		return true
	}
	return false
}

// UserRole distinguishes regular learners from moderators.
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

func (r UserRole) IsAdmin() bool { return r == RoleAdmin }
