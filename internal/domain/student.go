package domain

import "time"

// StudentProfile is the persisted student record as this core sees it.
// Account identity (auth provider, sessions) lives with the external identity
// collaborator; here the profile carries the trait vector and quiz state.
type StudentProfile struct {
	ID              string      `json:"id"`
	Email           string      `json:"email"`
	DisplayName     string      `json:"display_name,omitempty"`
	Canton          string      `json:"canton,omitempty"`
	Traits          TraitVector `json:"traits"`
	QuizCompletedAt *time.Time  `json:"quiz_completed_at,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// HasCompletedQuiz reports whether a trait vector has ever been computed.
func (s StudentProfile) HasCompletedQuiz() bool {
	return s.QuizCompletedAt != nil
}
