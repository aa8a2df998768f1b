package email

import (
	"context"
	"errors"

	"lehrmatch/internal/domain"
)

// Sender delivers match and application notifications to students.
type Sender interface {
	SendMatchNotification(ctx context.Context, event domain.MatchCreated) error
	SendApplicationStatusUpdate(ctx context.Context, event domain.ApplicationStatusChanged) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendMatchNotification(_ context.Context, _ domain.MatchCreated) error {
	return s.err()
}

func (s *disabledSender) SendApplicationStatusUpdate(_ context.Context, _ domain.ApplicationStatusChanged) error {
	return s.err()
}

func (s *disabledSender) err() error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
