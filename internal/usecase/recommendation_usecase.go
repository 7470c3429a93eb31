package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"techsync/internal/domain/matching"
	"techsync/internal/metrics"
	"techsync/internal/repository"

	"github.com/google/uuid"
)

type RecommendationParams struct {
	Limit int
	// DiversityWeight overrides the configured default when set.
	DiversityWeight *float64
}

type RecommendationResult struct {
	UserID          uuid.UUID                 `json:"user_id"`
	Recommendations []matching.Recommendation `json:"recommendations"`
	Limit           int                       `json:"limit"`
	DiversityWeight float64                   `json:"diversity_weight"`
	Threshold       float64                   `json:"threshold"`
	Cached          bool                      `json:"cached"`
	GeneratedAt     time.Time                 `json:"generated_at"`
}

type RecommendationUsecase interface {
	GetRecommendations(ctx context.Context, userID uuid.UUID, params RecommendationParams) (RecommendationResult, error)
}

type RecommendationOptions struct {
	MaxLimit        int
	DiversityWeight float64
	CacheTTL        time.Duration
}

type Recommendation struct {
	engine   *matching.Engine
	profiles repository.ProfileRepository
	projects repository.ProjectRepository
	cache    Cache
	opts     RecommendationOptions
	logger   *log.Logger
}

func NewRecommendationUsecase(engine *matching.Engine, profiles repository.ProfileRepository, projects repository.ProjectRepository, cache Cache, opts RecommendationOptions, logger *log.Logger) *Recommendation {
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 50
	}
	return &Recommendation{engine: engine, profiles: profiles, projects: projects, cache: cache, opts: opts, logger: logger}
}

func (u *Recommendation) GetRecommendations(ctx context.Context, userID uuid.UUID, params RecommendationParams) (RecommendationResult, error) {
	start := time.Now()
	if userID == uuid.Nil {
		return RecommendationResult{}, ErrInvalidInput
	}

	limit := params.Limit
	if limit == 0 {
		limit = u.engine.Settings().DefaultLimit
	}
	if limit < 0 || limit > u.opts.MaxLimit {
		return RecommendationResult{}, ErrInvalidInput
	}
	diversity := u.opts.DiversityWeight
	if params.DiversityWeight != nil {
		diversity = *params.DiversityWeight
	}
	if diversity < 0 || diversity > 1 {
		return RecommendationResult{}, ErrInvalidInput
	}

	cacheKey := RecommendationCacheKey(userID, limit, diversity)
	if u.cache != nil {
		var cached RecommendationResult
		hit, err := u.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && hit {
			u.logf("[Recommend] Cache HIT: %s", cacheKey)
			metrics.ObserveRecommendation("cache_hit", start, len(cached.Recommendations))
			cached.Cached = true
			return cached, nil
		}
		u.logf("[Recommend] Cache MISS: %s", cacheKey)
	}

	res, err := u.compute(ctx, userID, limit, diversity)
	if err != nil {
		metrics.ObserveRecommendation("error", start, 0)
		return RecommendationResult{}, err
	}
	metrics.ObserveRecommendation("computed", start, len(res.Recommendations))

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, res, u.opts.CacheTTL); err != nil {
			u.logf("[Recommend] Cache SET error key=%s err=%v", cacheKey, err)
		}
	}
	return res, nil
}

func (u *Recommendation) compute(ctx context.Context, userID uuid.UUID, limit int, diversity float64) (RecommendationResult, error) {
	profile, err := u.profiles.FindUserProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return RecommendationResult{}, ErrUserNotFound
		}
		u.logf("[Recommend] profile load failed user_id=%s err=%v", userID, err)
		return RecommendationResult{}, ErrInternal
	}
	candidates, err := u.projects.ListRecruitingProjects(ctx)
	if err != nil {
		u.logf("[Recommend] project load failed err=%v", err)
		return RecommendationResult{}, ErrInternal
	}

	recs, err := u.engine.Recommend(profile, candidates, limit)
	if err != nil {
		if errors.Is(err, matching.ErrInvalidLimit) {
			return RecommendationResult{}, ErrInvalidInput
		}
		return RecommendationResult{}, ErrInternal
	}
	recs, err = matching.RerankForDiversity(recs, diversity)
	if err != nil {
		return RecommendationResult{}, ErrInvalidInput
	}

	u.logf("[Recommend] user_id=%s candidates=%d recommended=%d diversity=%.2f", userID, len(candidates), len(recs), diversity)
	return RecommendationResult{
		UserID:          userID,
		Recommendations: recs,
		Limit:           limit,
		DiversityWeight: diversity,
		Threshold:       u.engine.Settings().RecommendationThreshold,
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

func (u *Recommendation) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
