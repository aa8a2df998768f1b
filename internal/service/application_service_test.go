package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"lehrmatch/internal/domain"
)

type applicationFixture struct {
	svc          *ApplicationService
	applications *mockApplicationRepo
	matches      *mockMatchRepo
	sender       *mockSender
}

func newApplicationFixture(t *testing.T) applicationFixture {
	t.Helper()
	f := applicationFixture{
		applications: newMockApplicationRepo(),
		matches:      newMockMatchRepo(),
		sender:       &mockSender{},
	}
	students := newMockStudentRepo(domain.StudentProfile{ID: "s1", Email: "s1@example.ch"})
	listings := newMockListingRepo(activeListing("l1"))
	f.svc = NewApplicationService(f.applications, f.matches, students, listings, f.sender, zap.NewNop())
	return f
}

var (
	companyActor = Actor{ID: "c-hr-1", Role: RoleCompany}
	ownerActor   = Actor{ID: "s1", Role: RoleStudent}
)

// actorFor picks the actor that is allowed to move the given edge: students
// withdraw, companies decide everything else.
func actorFor(next domain.ApplicationStatus) Actor {
	if next == domain.StatusWithdrawn {
		return ownerActor
	}
	return companyActor
}

func (f applicationFixture) seedMatch(t *testing.T, studentID, listingID string) domain.Match {
	t.Helper()
	match, _, err := f.matches.Create(context.Background(), domain.Match{
		ID:        "match-" + studentID + "-" + listingID,
		StudentID: studentID,
		ListingID: listingID,
		CompanyID: "c1",
		MatchedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed match: %v", err)
	}
	return match
}

// seedApplication plants an application already sitting in the given status,
// with a timeline whose last entry carries that status.
func (f applicationFixture) seedApplication(t *testing.T, id string, status domain.ApplicationStatus) {
	t.Helper()
	now := time.Now().UTC()
	_, _, err := f.applications.Create(context.Background(), domain.Application{
		ID:        id,
		MatchID:   "match-" + id,
		StudentID: "s1",
		ListingID: "l1",
		Status:    status,
		Timeline: []domain.TimelineEntry{
			{Status: status, Timestamp: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("seed application: %v", err)
	}
}

func TestCreateFromMatch(t *testing.T) {
	f := newApplicationFixture(t)
	match := f.seedMatch(t, "s1", "l1")

	app, err := f.svc.CreateFromMatch(context.Background(), "s1", match.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if app.Status != domain.StatusPending {
		t.Fatalf("expected PENDING, got %s", app.Status)
	}
	if len(app.Timeline) != 1 || app.Timeline[0].Status != domain.StatusPending {
		t.Fatalf("expected single PENDING timeline entry, got %+v", app.Timeline)
	}

	again, err := f.svc.CreateFromMatch(context.Background(), "s1", match.ID)
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if again.ID != app.ID {
		t.Fatalf("second create must return the existing application")
	}
}

func TestCreateFromMatch_Guards(t *testing.T) {
	f := newApplicationFixture(t)
	match := f.seedMatch(t, "s1", "l1")

	if _, err := f.svc.CreateFromMatch(context.Background(), "s1", "ghost"); err != ErrMatchNotFound {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
	if _, err := f.svc.CreateFromMatch(context.Background(), "intruder", match.ID); err != ErrNotApplicationOwner {
		t.Fatalf("expected ErrNotApplicationOwner, got %v", err)
	}
}

// allowedEdges lists every legal transition, spelled out independently of the
// domain rules so the full matrix below catches a wrongly extended rule table.
var allowedEdges = map[[2]domain.ApplicationStatus]bool{
	{domain.StatusPending, domain.StatusViewed}:                     true,
	{domain.StatusViewed, domain.StatusShortlisted}:                 true,
	{domain.StatusShortlisted, domain.StatusInterviewScheduled}:     true,
	{domain.StatusInterviewScheduled, domain.StatusAccepted}:        true,
	{domain.StatusInterviewScheduled, domain.StatusRejected}:        true,
	{domain.StatusPending, domain.StatusWithdrawn}:                  true,
	{domain.StatusViewed, domain.StatusWithdrawn}:                   true,
	{domain.StatusShortlisted, domain.StatusWithdrawn}:              true,
	{domain.StatusInterviewScheduled, domain.StatusWithdrawn}:       true,
}

// TestTransition_FullMatrix drives every (from, to) pair of known statuses
// through the service and checks each against the allowed-edge set.
func TestTransition_FullMatrix(t *testing.T) {
	for _, from := range domain.AllStatuses {
		for _, to := range domain.AllStatuses {
			t.Run(string(from)+"_to_"+string(to), func(t *testing.T) {
				f := newApplicationFixture(t)
				f.seedApplication(t, "a1", from)

				app, err := f.svc.Transition(context.Background(), actorFor(to), "a1", to, "")

				if allowedEdges[[2]domain.ApplicationStatus{from, to}] {
					if err != nil {
						t.Fatalf("transition %s -> %s: %v", from, to, err)
					}
					if app.Status != to {
						t.Fatalf("expected status %s, got %s", to, app.Status)
					}
					last, ok := app.CurrentStatus()
					if !ok || last != to {
						t.Fatalf("timeline tail must carry the new status, got %v %v", last, ok)
					}
					return
				}

				if !errors.Is(err, ErrIllegalTransition) {
					t.Fatalf("expected ErrIllegalTransition for %s -> %s, got %v", from, to, err)
				}
				unchanged, getErr := f.applications.GetByID(context.Background(), "a1")
				if getErr != nil {
					t.Fatalf("reload: %v", getErr)
				}
				if unchanged.Status != from || len(unchanged.Timeline) != 1 {
					t.Fatalf("rejected transition must not mutate, got %+v", unchanged)
				}
			})
		}
	}
}

func TestTransition_DivergedTimelineIsRejected(t *testing.T) {
	f := newApplicationFixture(t)
	now := time.Now().UTC()
	// Status column and timeline tail disagree: the record is corrupt and no
	// edge out of it may be accepted.
	if _, _, err := f.applications.Create(context.Background(), domain.Application{
		ID:        "a1",
		MatchID:   "match-a1",
		StudentID: "s1",
		ListingID: "l1",
		Status:    domain.StatusShortlisted,
		Timeline: []domain.TimelineEntry{
			{Status: domain.StatusPending, Timestamp: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("seed application: %v", err)
	}

	_, err := f.svc.Transition(context.Background(), companyActor, "a1", domain.StatusInterviewScheduled, "")
	if !errors.Is(err, ErrTimelineDiverged) {
		t.Fatalf("expected ErrTimelineDiverged, got %v", err)
	}

	unchanged, getErr := f.applications.GetByID(context.Background(), "a1")
	if getErr != nil {
		t.Fatalf("reload: %v", getErr)
	}
	if unchanged.Status != domain.StatusShortlisted || len(unchanged.Timeline) != 1 {
		t.Fatalf("diverged record must stay untouched, got %+v", unchanged)
	}
}

func TestTransition_EmptyTimelineIsRejected(t *testing.T) {
	f := newApplicationFixture(t)
	now := time.Now().UTC()
	if _, _, err := f.applications.Create(context.Background(), domain.Application{
		ID:        "a1",
		MatchID:   "match-a1",
		StudentID: "s1",
		ListingID: "l1",
		Status:    domain.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("seed application: %v", err)
	}

	_, err := f.svc.Transition(context.Background(), companyActor, "a1", domain.StatusViewed, "")
	if !errors.Is(err, ErrTimelineDiverged) {
		t.Fatalf("expected ErrTimelineDiverged for empty timeline, got %v", err)
	}
}

func TestTransition_ActorAuthorization(t *testing.T) {
	t.Run("student cannot advance", func(t *testing.T) {
		f := newApplicationFixture(t)
		f.seedApplication(t, "a1", domain.StatusPending)

		if _, err := f.svc.Transition(context.Background(), ownerActor, "a1", domain.StatusViewed, ""); !errors.Is(err, ErrActorNotAllowed) {
			t.Fatalf("expected ErrActorNotAllowed, got %v", err)
		}
	})

	t.Run("company cannot withdraw", func(t *testing.T) {
		f := newApplicationFixture(t)
		f.seedApplication(t, "a1", domain.StatusPending)

		if _, err := f.svc.Transition(context.Background(), companyActor, "a1", domain.StatusWithdrawn, ""); !errors.Is(err, ErrNotApplicationOwner) {
			t.Fatalf("expected ErrNotApplicationOwner, got %v", err)
		}
	})

	t.Run("foreign student cannot withdraw", func(t *testing.T) {
		f := newApplicationFixture(t)
		f.seedApplication(t, "a1", domain.StatusPending)

		intruder := Actor{ID: "s2", Role: RoleStudent}
		if _, err := f.svc.Transition(context.Background(), intruder, "a1", domain.StatusWithdrawn, ""); !errors.Is(err, ErrNotApplicationOwner) {
			t.Fatalf("expected ErrNotApplicationOwner, got %v", err)
		}
	})

	t.Run("denied actor leaves record untouched", func(t *testing.T) {
		f := newApplicationFixture(t)
		f.seedApplication(t, "a1", domain.StatusPending)

		_, _ = f.svc.Transition(context.Background(), ownerActor, "a1", domain.StatusViewed, "")
		unchanged, err := f.applications.GetByID(context.Background(), "a1")
		if err != nil {
			t.Fatalf("reload: %v", err)
		}
		if unchanged.Status != domain.StatusPending || len(unchanged.Timeline) != 1 {
			t.Fatalf("denied transition must not mutate, got %+v", unchanged)
		}
	})
}

func TestTransition_FullLifecycle(t *testing.T) {
	f := newApplicationFixture(t)
	match := f.seedMatch(t, "s1", "l1")

	app, err := f.svc.CreateFromMatch(context.Background(), "s1", match.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	walk := []domain.ApplicationStatus{
		domain.StatusViewed,
		domain.StatusShortlisted,
		domain.StatusInterviewScheduled,
		domain.StatusAccepted,
	}
	for _, next := range walk {
		app, err = f.svc.Transition(context.Background(), companyActor, app.ID, next, "")
		if err != nil {
			t.Fatalf("transition to %s: %v", next, err)
		}
	}

	if len(app.Timeline) != 5 {
		t.Fatalf("expected 5 timeline entries, got %d", len(app.Timeline))
	}
	want := []domain.ApplicationStatus{
		domain.StatusPending,
		domain.StatusViewed,
		domain.StatusShortlisted,
		domain.StatusInterviewScheduled,
		domain.StatusAccepted,
	}
	for i, entry := range app.Timeline {
		if entry.Status != want[i] {
			t.Fatalf("timeline[%d] = %s, want %s", i, entry.Status, want[i])
		}
	}

	if _, err := f.svc.Transition(context.Background(), ownerActor, app.ID, domain.StatusWithdrawn, ""); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("ACCEPTED is terminal, got %v", err)
	}
}

func TestTransition_EmitsStatusNotification(t *testing.T) {
	f := newApplicationFixture(t)
	f.seedApplication(t, "a1", domain.StatusPending)

	if _, err := f.svc.Transition(context.Background(), companyActor, "a1", domain.StatusViewed, "seen by HR"); err != nil {
		t.Fatalf("transition: %v", err)
	}
	if len(f.sender.statusEvents) != 1 {
		t.Fatalf("expected one status notification, got %d", len(f.sender.statusEvents))
	}
	event := f.sender.statusEvents[0]
	if event.Previous != domain.StatusPending || event.Application.Status != domain.StatusViewed {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.StudentEmail != "s1@example.ch" {
		t.Fatalf("notification addressed to %q", event.StudentEmail)
	}
}

func TestTransition_Guards(t *testing.T) {
	f := newApplicationFixture(t)
	f.seedApplication(t, "a1", domain.StatusPending)

	if _, err := f.svc.Transition(context.Background(), companyActor, "ghost", domain.StatusViewed, ""); err != ErrApplicationNotFound {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
	if _, err := f.svc.Transition(context.Background(), companyActor, "a1", "ARCHIVED", ""); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestGet_OwnershipCheck(t *testing.T) {
	f := newApplicationFixture(t)
	f.seedApplication(t, "a1", domain.StatusPending)

	if _, err := f.svc.Get(context.Background(), "s1", "a1"); err != nil {
		t.Fatalf("owner read: %v", err)
	}
	if _, err := f.svc.Get(context.Background(), "intruder", "a1"); err != ErrNotApplicationOwner {
		t.Fatalf("expected ErrNotApplicationOwner, got %v", err)
	}
	if _, err := f.svc.Get(context.Background(), "s1", "ghost"); err != ErrApplicationNotFound {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}
