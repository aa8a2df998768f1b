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
	"lehrmatch/internal/repository"
)

var (
	ErrMatchNotFound       = errors.New("match not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrNotApplicationOwner = errors.New("application belongs to another student")
	ErrIllegalTransition   = errors.New("illegal status transition")
	ErrUnknownStatus       = errors.New("unknown application status")
	ErrTimelineDiverged    = errors.New("application status diverged from timeline")
	ErrActorNotAllowed     = errors.New("actor may not perform this transition")
)

// Actor is the authenticated caller attempting a transition.
type Actor struct {
	ID   string
	Role string
}

// IllegalTransitionError carries the rejected edge. It matches
// ErrIllegalTransition under errors.Is.
type IllegalTransitionError struct {
	From domain.ApplicationStatus
	To   domain.ApplicationStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition %s -> %s", e.From, e.To)
}

func (e *IllegalTransitionError) Is(target error) bool {
	return target == ErrIllegalTransition
}

// ApplicationService manages the formal follow-through on a match: creation
// in PENDING and the guarded walk through the status lifecycle.
type ApplicationService struct {
	applications repository.ApplicationRepository
	matches      repository.MatchRepository
	students     repository.StudentRepository
	listings     repository.ListingRepository
	sender       email.Sender
	logger       *zap.Logger
}

func NewApplicationService(
	applications repository.ApplicationRepository,
	matches repository.MatchRepository,
	students repository.StudentRepository,
	listings repository.ListingRepository,
	sender email.Sender,
	logger *zap.Logger,
) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		matches:      matches,
		students:     students,
		listings:     listings,
		sender:       sender,
		logger:       logger,
	}
}

// CreateFromMatch opens an application for the student's match. The
// application starts in PENDING with a single timeline entry; a second create
// for the same match returns the existing application unchanged.
func (s *ApplicationService) CreateFromMatch(ctx context.Context, studentID, matchID string) (domain.Application, error) {
	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Application{}, ErrMatchNotFound
		}
		return domain.Application{}, fmt.Errorf("load match %s: %w", matchID, err)
	}
	if match.StudentID != studentID {
		return domain.Application{}, ErrNotApplicationOwner
	}

	now := time.Now().UTC()
	app, isNew, err := s.applications.Create(ctx, domain.Application{
		ID:        uuid.NewString(),
		MatchID:   match.ID,
		StudentID: match.StudentID,
		ListingID: match.ListingID,
		Status:    domain.StatusPending,
		Timeline: []domain.TimelineEntry{
			{Status: domain.StatusPending, Timestamp: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return domain.Application{}, fmt.Errorf("create application: %w", err)
	}
	if isNew {
		s.logger.Info("application created",
			zap.String("application_id", app.ID),
			zap.String("match_id", match.ID),
			zap.String("student_id", studentID),
		)
	}
	return app, nil
}

// Transition moves the application to next if the lifecycle allows it. The
// check runs against the latest persisted state under a row lock, so two
// racing requests serialize and the loser is validated against the winner's
// result. An illegal edge leaves the record untouched.
//
// WITHDRAWN is reserved for the owning student; every other transition is a
// company-side decision and requires the company role.
func (s *ApplicationService) Transition(ctx context.Context, actor Actor, id string, next domain.ApplicationStatus, note string) (domain.Application, error) {
	if !next.Valid() {
		return domain.Application{}, fmt.Errorf("%w: %q", ErrUnknownStatus, next)
	}

	var previous domain.ApplicationStatus
	updated, err := s.applications.ApplyTransition(ctx, id, func(current domain.Application) (domain.TimelineEntry, error) {
		previous = current.Status
		// The status column is derived from the timeline tail; a mismatch
		// means the record is corrupt and must not accept further entries.
		if tail, ok := current.CurrentStatus(); !ok || tail != current.Status {
			return domain.TimelineEntry{}, fmt.Errorf("%w: status %s, timeline tail %q", ErrTimelineDiverged, current.Status, tail)
		}
		if err := authorizeTransition(actor, current, next); err != nil {
			return domain.TimelineEntry{}, err
		}
		if !current.Status.CanTransitionTo(next) {
			return domain.TimelineEntry{}, &IllegalTransitionError{From: current.Status, To: next}
		}
		return domain.TimelineEntry{
			Status:    next,
			Timestamp: time.Now().UTC(),
			Note:      note,
		}, nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Application{}, ErrApplicationNotFound
		}
		return domain.Application{}, err
	}

	s.logger.Info("application transitioned",
		zap.String("application_id", updated.ID),
		zap.String("from", string(previous)),
		zap.String("to", string(updated.Status)),
	)
	s.notifyStatusChange(ctx, updated, previous)
	return updated, nil
}

func authorizeTransition(actor Actor, current domain.Application, next domain.ApplicationStatus) error {
	if next == domain.StatusWithdrawn {
		if actor.ID != current.StudentID {
			return ErrNotApplicationOwner
		}
		return nil
	}
	if actor.Role != RoleCompany {
		return ErrActorNotAllowed
	}
	return nil
}

// Get returns the application after an ownership check.
func (s *ApplicationService) Get(ctx context.Context, studentID, id string) (domain.Application, error) {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Application{}, ErrApplicationNotFound
		}
		return domain.Application{}, fmt.Errorf("load application %s: %w", id, err)
	}
	if app.StudentID != studentID {
		return domain.Application{}, ErrNotApplicationOwner
	}
	return app, nil
}

// ListForStudent returns the student's applications, most recently updated
// first.
func (s *ApplicationService) ListForStudent(ctx context.Context, studentID string) ([]domain.Application, error) {
	apps, err := s.applications.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

// notifyStatusChange delivers best-effort; a mail failure never fails the
// transition.
func (s *ApplicationService) notifyStatusChange(ctx context.Context, app domain.Application, previous domain.ApplicationStatus) {
	if s.sender == nil {
		return
	}
	student, err := s.students.GetByID(ctx, app.StudentID)
	if err != nil {
		s.logger.Warn("status notification skipped, student lookup failed",
			zap.String("application_id", app.ID),
			zap.Error(err),
		)
		return
	}
	listing, err := s.listings.GetByID(ctx, app.ListingID)
	if err != nil {
		s.logger.Warn("status notification skipped, listing lookup failed",
			zap.String("application_id", app.ID),
			zap.Error(err),
		)
		return
	}
	event := domain.ApplicationStatusChanged{
		Application:  app,
		Previous:     previous,
		StudentEmail: student.Email,
		ListingTitle: listing.Title,
	}
	if err := s.sender.SendApplicationStatusUpdate(ctx, event); err != nil {
		s.logger.Warn("status notification failed",
			zap.String("application_id", app.ID),
			zap.Error(err),
		)
	}
}
