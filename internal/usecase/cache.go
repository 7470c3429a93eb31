package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeletePatterns(ctx context.Context, patterns ...string) error
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	ReleaseLock(ctx context.Context, key, token string) error
	Enabled() bool
}

// EventPublisher pushes user-facing events. Implementations must not block.
type EventPublisher interface {
	Publish(userID uuid.UUID, eventType string, payload any)
}

const (
	EventAssessmentCompleted   = "assessment_completed"
	EventLearningSupportIssued = "learning_support_issued"
)
