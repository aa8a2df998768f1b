package domain

import "time"

// Match is created exactly once per (student, listing) pair when the student
// swipes interested. CompatibilityScore is a snapshot taken at match time and
// is never recomputed; nil means the listing carried no compatibility signal
// when the match was made.
type Match struct {
	ID                 string    `json:"id"`
	StudentID          string    `json:"student_id"`
	ListingID          string    `json:"listing_id"`
	CompanyID          string    `json:"company_id"`
	CompatibilityScore *int      `json:"compatibility_score,omitempty"`
	MatchedAt          time.Time `json:"matched_at"`
}

// MatchCreated is the domain event emitted when a new match comes into
// existence. Downstream delivery (mail, push) is a collaborator concern; the
// core only signals it.
type MatchCreated struct {
	Match        Match
	StudentEmail string
	ListingTitle string
	CompanyName  string
}
