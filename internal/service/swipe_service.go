package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"lehrmatch/internal/domain"
	"lehrmatch/internal/email"
	"lehrmatch/internal/matching"
	"lehrmatch/internal/repository"
)

var (
	ErrListingNotFound  = errors.New("listing not found")
	ErrInvalidDirection = errors.New("invalid swipe direction")
)

// SwipeResult reports what a swipe produced. Match is nil unless the student
// swiped interested on a matchable listing; MatchIsNew distinguishes a fresh
// match from an already existing one.
type SwipeResult struct {
	Swipe      domain.Swipe
	Match      *domain.Match
	MatchIsNew bool
}

// SwipeService records swipe decisions and turns interested swipes into
// matches. Matching is one-sided: student interest alone creates the match.
type SwipeService struct {
	swipes     repository.SwipeRepository
	matches    repository.MatchRepository
	students   repository.StudentRepository
	listings   repository.ListingRepository
	exclusions *SwipeExclusionCache
	sender     email.Sender
	logger     *zap.Logger
}

func NewSwipeService(
	swipes repository.SwipeRepository,
	matches repository.MatchRepository,
	students repository.StudentRepository,
	listings repository.ListingRepository,
	exclusions *SwipeExclusionCache,
	sender email.Sender,
	logger *zap.Logger,
) *SwipeService {
	return &SwipeService{
		swipes:     swipes,
		matches:    matches,
		students:   students,
		listings:   listings,
		exclusions: exclusions,
		sender:     sender,
		logger:     logger,
	}
}

// RecordSwipe persists the decision and, for an interested swipe on an active
// listing, creates the match with a compatibility snapshot taken now. A repeat
// swipe overwrites the stored direction; an existing match is left untouched,
// whatever the new direction says.
func (s *SwipeService) RecordSwipe(ctx context.Context, studentID, listingID string, direction domain.SwipeDirection) (SwipeResult, error) {
	if !direction.Valid() {
		return SwipeResult{}, ErrInvalidDirection
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SwipeResult{}, ErrStudentNotFound
		}
		return SwipeResult{}, fmt.Errorf("load student %s: %w", studentID, err)
	}
	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SwipeResult{}, ErrListingNotFound
		}
		return SwipeResult{}, fmt.Errorf("load listing %s: %w", listingID, err)
	}

	// Once a match exists the pair is settled: the swipe row is frozen and the
	// request is a no-op returning the existing outcome.
	if existing, err := s.matches.GetByPair(ctx, studentID, listingID); err == nil {
		result := SwipeResult{Match: &existing}
		if swipe, err := s.swipes.GetByPair(ctx, studentID, listingID); err == nil {
			result.Swipe = swipe
		}
		return result, nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return SwipeResult{}, fmt.Errorf("check match: %w", err)
	}

	now := time.Now().UTC()
	swipe := domain.Swipe{
		ID:        uuid.NewString(),
		StudentID: studentID,
		ListingID: listingID,
		Direction: direction,
		SwipedAt:  now,
	}
	if err := s.swipes.Upsert(ctx, swipe); err != nil {
		return SwipeResult{}, fmt.Errorf("record swipe: %w", err)
	}
	if s.exclusions != nil {
		s.exclusions.Add(ctx, studentID, listingID)
	}

	result := SwipeResult{Swipe: swipe}
	if direction != domain.SwipeInterested {
		return result, nil
	}
	if !listing.Active || listing.SpotsAvailable <= 0 {
		s.logger.Info("interested swipe on unmatchable listing",
			zap.String("student_id", studentID),
			zap.String("listing_id", listingID),
		)
		return result, nil
	}

	// The score is a snapshot of the fit at match time; later quiz retakes
	// never rewrite it.
	var score *int
	if student.HasCompletedQuiz() {
		if computed, ok := matching.Compatibility(student.Traits.Holland, listing.Ideal); ok {
			value := computed.Value
			score = &value
		}
	}

	match, isNew, err := s.matches.Create(ctx, domain.Match{
		ID:                 uuid.NewString(),
		StudentID:          studentID,
		ListingID:          listingID,
		CompanyID:          listing.CompanyID,
		CompatibilityScore: score,
		MatchedAt:          now,
	})
	if err != nil {
		return SwipeResult{}, fmt.Errorf("create match: %w", err)
	}
	result.Match = &match
	result.MatchIsNew = isNew

	if isNew {
		s.logger.Info("match created",
			zap.String("match_id", match.ID),
			zap.String("student_id", studentID),
			zap.String("listing_id", listingID),
		)
		s.notifyMatch(ctx, domain.MatchCreated{
			Match:        match,
			StudentEmail: student.Email,
			ListingTitle: listing.Title,
			CompanyName:  listing.CompanyName,
		})
	}
	return result, nil
}

// notifyMatch delivers best-effort; a mail failure never fails the swipe.
func (s *SwipeService) notifyMatch(ctx context.Context, event domain.MatchCreated) {
	if s.sender == nil {
		return
	}
	if err := s.sender.SendMatchNotification(ctx, event); err != nil {
		s.logger.Warn("match notification failed",
			zap.String("match_id", event.Match.ID),
			zap.Error(err),
		)
	}
}

// ListMatches returns the student's matches, newest first.
func (s *SwipeService) ListMatches(ctx context.Context, studentID string) ([]domain.Match, error) {
	matches, err := s.matches.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return matches, nil
}
