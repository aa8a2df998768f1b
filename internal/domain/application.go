package domain

import "time"

// ApplicationStatus is one state of the application lifecycle.
type ApplicationStatus string

const (
	StatusPending            ApplicationStatus = "PENDING"
	StatusViewed             ApplicationStatus = "VIEWED"
	StatusShortlisted        ApplicationStatus = "SHORTLISTED"
	StatusInterviewScheduled ApplicationStatus = "INTERVIEW_SCHEDULED"
	StatusAccepted           ApplicationStatus = "ACCEPTED"
	StatusRejected           ApplicationStatus = "REJECTED"
	StatusWithdrawn          ApplicationStatus = "WITHDRAWN"
)

// AllStatuses lists every status, useful for exhaustive checks.
var AllStatuses = []ApplicationStatus{
	StatusPending,
	StatusViewed,
	StatusShortlisted,
	StatusInterviewScheduled,
	StatusAccepted,
	StatusRejected,
	StatusWithdrawn,
}

// successors holds the allowed forward transitions. WITHDRAWN is handled
// separately: it is reachable from every non-terminal state.
var successors = map[ApplicationStatus][]ApplicationStatus{
	StatusPending:            {StatusViewed},
	StatusViewed:             {StatusShortlisted},
	StatusShortlisted:        {StatusInterviewScheduled},
	StatusInterviewScheduled: {StatusAccepted, StatusRejected},
}

// Valid reports whether s is a known status.
func (s ApplicationStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition may leave s.
func (s ApplicationStatus) Terminal() bool {
	switch s {
	case StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	if s.Terminal() || !next.Valid() {
		return false
	}
	if next == StatusWithdrawn {
		return true
	}
	for _, allowed := range successors[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

// TimelineEntry is one append-only status-change event on an application.
type TimelineEntry struct {
	Status    ApplicationStatus `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Note      string            `json:"note,omitempty"`
}

// Application is the formal follow-through on a match: a current status plus
// an append-only timeline. The current status is always the status of the last
// timeline entry; the two must never diverge.
type Application struct {
	ID        string            `json:"id"`
	MatchID   string            `json:"match_id"`
	StudentID string            `json:"student_id"`
	ListingID string            `json:"listing_id"`
	Status    ApplicationStatus `json:"status"`
	Timeline  []TimelineEntry   `json:"timeline"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// CurrentStatus derives the status from the timeline. An empty timeline means
// the record is corrupt; callers treat that as an invariant violation.
func (a Application) CurrentStatus() (ApplicationStatus, bool) {
	if len(a.Timeline) == 0 {
		return "", false
	}
	return a.Timeline[len(a.Timeline)-1].Status, true
}

// ApplicationStatusChanged is the domain event emitted after a successful
// transition.
type ApplicationStatusChanged struct {
	Application  Application
	Previous     ApplicationStatus
	StudentEmail string
	ListingTitle string
}
