package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"lehrmatch/internal/matching"
	"lehrmatch/internal/repository"
)

// feedLimit caps a single feed page.
const feedLimit = 50

// candidateFetchLimit bounds how many listings are pulled for ranking. Ranking
// happens in memory, so the pool must stay comfortably above feedLimit without
// loading the whole table.
const candidateFetchLimit = 200

// FeedService assembles the swipe feed: active listings the student has not
// swiped yet, ordered by compatibility when a trait vector exists.
type FeedService struct {
	students   repository.StudentRepository
	listings   repository.ListingRepository
	swipes     repository.SwipeRepository
	exclusions *SwipeExclusionCache
	logger     *zap.Logger
}

func NewFeedService(
	students repository.StudentRepository,
	listings repository.ListingRepository,
	swipes repository.SwipeRepository,
	exclusions *SwipeExclusionCache,
	logger *zap.Logger,
) *FeedService {
	return &FeedService{
		students:   students,
		listings:   listings,
		swipes:     swipes,
		exclusions: exclusions,
		logger:     logger,
	}
}

// Generate returns up to feedLimit candidates. A student without a computed
// trait vector still gets a feed, just unranked with nil scores.
func (s *FeedService) Generate(ctx context.Context, studentID string) ([]matching.RankedListing, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("load student %s: %w", studentID, err)
	}

	excluded, err := s.excludedListingIDs(ctx, studentID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.listings.ListActiveExcluding(ctx, excluded, candidateFetchLimit)
	if err != nil {
		return nil, fmt.Errorf("load feed candidates: %w", err)
	}

	var feed []matching.RankedListing
	if student.HasCompletedQuiz() {
		feed = matching.Rank(student.Traits.Holland, candidates)
	} else {
		feed = make([]matching.RankedListing, 0, len(candidates))
		for _, listing := range candidates {
			feed = append(feed, matching.RankedListing{Listing: listing})
		}
	}

	if len(feed) > feedLimit {
		feed = feed[:feedLimit]
	}
	return feed, nil
}

// excludedListingIDs reads the exclusion set from the cache and falls back to
// the swipe table on a miss, warming the cache with what it finds.
func (s *FeedService) excludedListingIDs(ctx context.Context, studentID string) ([]string, error) {
	if ids, ok := s.exclusions.Members(ctx, studentID); ok {
		return ids, nil
	}

	ids, err := s.swipes.ListListingIDs(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("load swiped listings: %w", err)
	}
	s.exclusions.Warm(ctx, studentID, ids)
	return ids, nil
}
