package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"techsync/internal/domain/learning"
	"techsync/internal/domain/matching"
	"techsync/internal/repository"

	"github.com/google/uuid"
)

type fakeProfiles struct {
	users map[uuid.UUID]matching.UserProfile
	err   error
}

func (f *fakeProfiles) FindUserProfile(_ context.Context, id uuid.UUID) (matching.UserProfile, error) {
	if f.err != nil {
		return matching.UserProfile{}, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return matching.UserProfile{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeProfiles) ListUserIDs(_ context.Context, limit, offset int) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, id)
	}
	if offset >= len(ids) {
		return nil, nil
	}
	ids = ids[offset:]
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

type fakeProjects struct {
	items []matching.ProjectProfile
	err   error
}

func (f *fakeProjects) FindByID(_ context.Context, id uuid.UUID) (matching.ProjectProfile, error) {
	for _, p := range f.items {
		if p.ID == id {
			return p, nil
		}
	}
	return matching.ProjectProfile{}, repository.ErrProjectNotFound
}

func (f *fakeProjects) ListRecruitingProjects(context.Context) ([]matching.ProjectProfile, error) {
	return f.items, f.err
}

type fakeAttempts struct {
	mu      sync.Mutex
	created []repository.ChallengeAttempt
	// priorFailures are failed scores recorded before the test started.
	priorFailures []int
}

func (f *fakeAttempts) Create(_ context.Context, a repository.ChallengeAttempt) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = uuid.New()
	f.created = append(f.created, a)
	return a.ID, nil
}

func (f *fakeAttempts) FailureSummary(_ context.Context, userID uuid.UUID) (learning.FailureSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	scores := append([]int(nil), f.priorFailures...)
	for _, a := range f.created {
		if a.UserID == userID && a.Status == repository.AttemptStatusFailed {
			scores = append(scores, a.Score)
		}
	}
	if len(scores) == 0 {
		return learning.FailureSummary{}, nil
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return learning.FailureSummary{FailureCount: len(scores), AvgScore: float64(sum) / float64(len(scores))}, nil
}

type fakeLearningRecs struct {
	stored []learning.LearningRecommendation
}

func (f *fakeLearningRecs) CreateBatch(_ context.Context, recs []learning.LearningRecommendation) (int64, error) {
	f.stored = append(f.stored, recs...)
	return int64(len(recs)), nil
}

func (f *fakeLearningRecs) ListByUserID(_ context.Context, userID uuid.UUID, _ int) ([]repository.StoredLearningRecommendation, error) {
	out := make([]repository.StoredLearningRecommendation, 0)
	for _, r := range f.stored {
		if r.UserID == userID {
			out = append(out, repository.StoredLearningRecommendation{LearningRecommendation: r, ID: uuid.New(), CreatedAt: time.Now()})
		}
	}
	return out, nil
}

type fakeMatches struct {
	upserts []repository.ProjectMatchUpsert
}

func (f *fakeMatches) Upsert(_ context.Context, m repository.ProjectMatchUpsert) error {
	f.upserts = append(f.upserts, m)
	return nil
}

type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	enabled bool
	setErr  error
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, enabled: true}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memCache) DeletePatterns(_ context.Context, patterns ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range patterns {
		prefix := strings.TrimSuffix(p, "*")
		for k := range c.data {
			if strings.HasPrefix(k, prefix) {
				delete(c.data, k)
			}
		}
	}
	return nil
}

func (c *memCache) AcquireLock(_ context.Context, key string, _ time.Duration) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; ok {
		return "", false, nil
	}
	token := uuid.NewString()
	c.data[key] = []byte(token)
	return token, true, nil
}

func (c *memCache) ReleaseLock(_ context.Context, key, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if string(c.data[key]) == token {
		delete(c.data, key)
	}
	return nil
}

func (c *memCache) Enabled() bool { return c.enabled }

type recordedEvent struct {
	userID uuid.UUID
	typ    string
}

type fakeEvents struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (f *fakeEvents) Publish(userID uuid.UUID, eventType string, _ any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{userID: userID, typ: eventType})
}

func (f *fakeEvents) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.typ)
	}
	return out
}
