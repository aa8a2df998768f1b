package domain

import "time"

// SwipeDirection is the student's decision on a listing.
type SwipeDirection string

const (
	SwipeInterested    SwipeDirection = "interested"
	SwipeNotInterested SwipeDirection = "not_interested"
)

// Valid reports whether d is a known direction.
func (d SwipeDirection) Valid() bool {
	return d == SwipeInterested || d == SwipeNotInterested
}

// Swipe records a directional decision by a student on a listing. There is at
// most one per (student, listing) pair; a repeat swipe overwrites the existing
// row. Once a match exists for the pair the swipe is immutable.
type Swipe struct {
	ID        string         `json:"id"`
	StudentID string         `json:"student_id"`
	ListingID string         `json:"listing_id"`
	Direction SwipeDirection `json:"direction"`
	SwipedAt  time.Time      `json:"swiped_at"`
}
