package service

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"

	"lehrmatch/internal/domain"
)

type mockStudentRepo struct {
	mu       sync.Mutex
	students map[string]domain.StudentProfile
}

func newMockStudentRepo(students ...domain.StudentProfile) *mockStudentRepo {
	m := &mockStudentRepo{students: make(map[string]domain.StudentProfile)}
	for _, s := range students {
		m.students[s.ID] = s
	}
	return m
}

func (m *mockStudentRepo) Create(_ context.Context, profile domain.StudentProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.students[profile.ID] = profile
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (domain.StudentProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.students[id]
	if !ok {
		return domain.StudentProfile{}, pgx.ErrNoRows
	}
	return s, nil
}

func (m *mockStudentRepo) SaveTraitVector(_ context.Context, studentID string, traits domain.TraitVector) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.students[studentID]
	if !ok {
		return pgx.ErrNoRows
	}
	s.Traits = traits
	done := traits.ComputedAt
	s.QuizCompletedAt = &done
	s.UpdatedAt = traits.ComputedAt
	m.students[studentID] = s
	return nil
}

type mockListingRepo struct {
	listings map[string]domain.Listing
	order    []string
}

func newMockListingRepo(listings ...domain.Listing) *mockListingRepo {
	m := &mockListingRepo{listings: make(map[string]domain.Listing)}
	for _, l := range listings {
		m.listings[l.ID] = l
		m.order = append(m.order, l.ID)
	}
	return m
}

func (m *mockListingRepo) GetByID(_ context.Context, id string) (domain.Listing, error) {
	l, ok := m.listings[id]
	if !ok {
		return domain.Listing{}, pgx.ErrNoRows
	}
	return l, nil
}

func (m *mockListingRepo) ListActiveExcluding(_ context.Context, excludedIDs []string, limit int) ([]domain.Listing, error) {
	excluded := make(map[string]bool, len(excludedIDs))
	for _, id := range excludedIDs {
		excluded[id] = true
	}
	var out []domain.Listing
	for _, id := range m.order {
		l := m.listings[id]
		if !l.Active || l.SpotsAvailable <= 0 || excluded[id] {
			continue
		}
		out = append(out, l)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

type pairKey struct {
	studentID string
	listingID string
}

type mockSwipeRepo struct {
	mu     sync.Mutex
	swipes map[pairKey]domain.Swipe
}

func newMockSwipeRepo() *mockSwipeRepo {
	return &mockSwipeRepo{swipes: make(map[pairKey]domain.Swipe)}
}

func (m *mockSwipeRepo) Upsert(_ context.Context, swipe domain.Swipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.swipes[pairKey{swipe.StudentID, swipe.ListingID}] = swipe
	return nil
}

func (m *mockSwipeRepo) GetByPair(_ context.Context, studentID, listingID string) (domain.Swipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.swipes[pairKey{studentID, listingID}]
	if !ok {
		return domain.Swipe{}, pgx.ErrNoRows
	}
	return s, nil
}

func (m *mockSwipeRepo) ListListingIDs(_ context.Context, studentID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for key := range m.swipes {
		if key.studentID == studentID {
			ids = append(ids, key.listingID)
		}
	}
	return ids, nil
}

type mockMatchRepo struct {
	mu      sync.Mutex
	byID    map[string]domain.Match
	byPair  map[pairKey]string
	inOrder []string
}

func newMockMatchRepo() *mockMatchRepo {
	return &mockMatchRepo{
		byID:   make(map[string]domain.Match),
		byPair: make(map[pairKey]string),
	}
}

func (m *mockMatchRepo) Create(_ context.Context, match domain.Match) (domain.Match, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := pairKey{match.StudentID, match.ListingID}
	if existingID, ok := m.byPair[key]; ok {
		return m.byID[existingID], false, nil
	}
	m.byID[match.ID] = match
	m.byPair[key] = match.ID
	m.inOrder = append(m.inOrder, match.ID)
	return match, true, nil
}

func (m *mockMatchRepo) GetByID(_ context.Context, id string) (domain.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	match, ok := m.byID[id]
	if !ok {
		return domain.Match{}, pgx.ErrNoRows
	}
	return match, nil
}

func (m *mockMatchRepo) GetByPair(_ context.Context, studentID, listingID string) (domain.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byPair[pairKey{studentID, listingID}]
	if !ok {
		return domain.Match{}, pgx.ErrNoRows
	}
	return m.byID[id], nil
}

func (m *mockMatchRepo) ListByStudent(_ context.Context, studentID string) ([]domain.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Match
	for i := len(m.inOrder) - 1; i >= 0; i-- {
		match := m.byID[m.inOrder[i]]
		if match.StudentID == studentID {
			out = append(out, match)
		}
	}
	return out, nil
}

type mockApplicationRepo struct {
	mu      sync.Mutex
	byID    map[string]domain.Application
	byMatch map[string]string
}

func newMockApplicationRepo() *mockApplicationRepo {
	return &mockApplicationRepo{
		byID:    make(map[string]domain.Application),
		byMatch: make(map[string]string),
	}
}

func (m *mockApplicationRepo) Create(_ context.Context, app domain.Application) (domain.Application, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existingID, ok := m.byMatch[app.MatchID]; ok {
		return m.byID[existingID], false, nil
	}
	m.byID[app.ID] = app
	m.byMatch[app.MatchID] = app.ID
	return app, true, nil
}

func (m *mockApplicationRepo) GetByID(_ context.Context, id string) (domain.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	app, ok := m.byID[id]
	if !ok {
		return domain.Application{}, pgx.ErrNoRows
	}
	return app, nil
}

func (m *mockApplicationRepo) ListByStudent(_ context.Context, studentID string) ([]domain.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Application
	for _, app := range m.byID {
		if app.StudentID == studentID {
			out = append(out, app)
		}
	}
	return out, nil
}

func (m *mockApplicationRepo) ApplyTransition(_ context.Context, id string, decide func(domain.Application) (domain.TimelineEntry, error)) (domain.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.byID[id]
	if !ok {
		return domain.Application{}, pgx.ErrNoRows
	}
	entry, err := decide(current)
	if err != nil {
		return domain.Application{}, err
	}
	updated := current
	updated.Timeline = append(append([]domain.TimelineEntry{}, current.Timeline...), entry)
	updated.Status = entry.Status
	updated.UpdatedAt = entry.Timestamp
	m.byID[id] = updated
	return updated, nil
}

type mockSender struct {
	mu           sync.Mutex
	matchEvents  []domain.MatchCreated
	statusEvents []domain.ApplicationStatusChanged
	fail         error
}

func (m *mockSender) SendMatchNotification(_ context.Context, event domain.MatchCreated) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.matchEvents = append(m.matchEvents, event)
	return nil
}

func (m *mockSender) SendApplicationStatusUpdate(_ context.Context, event domain.ApplicationStatusChanged) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.statusEvents = append(m.statusEvents, event)
	return nil
}
