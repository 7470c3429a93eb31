package pipeline

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"techsync/internal/domain/matching"
	"techsync/internal/metrics"
	"techsync/internal/repository"
	"techsync/internal/usecase"
	"techsync/internal/worker"

	"github.com/google/uuid"
)

const userPageSize = 500

var ErrNotConfigured = errors.New("rescore pipeline not configured")

type Rescore struct {
	engine   *matching.Engine
	profiles repository.ProfileRepository
	projects repository.ProjectRepository
	matches  repository.ProjectMatchRepository
	cache    usecase.Cache

	log *log.Logger
}

type RescoreParams struct {
	Workers int
	// Limit caps the number of users rescored; 0 means all.
	Limit int
	// RPS throttles user tasks; 0 disables throttling.
	RPS float64
}

type RescoreSummary struct {
	Users    int           `json:"users"`
	Projects int           `json:"projects"`
	Pairs    int64         `json:"pairs"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"duration"`
}

func NewRescore(
	engine *matching.Engine,
	profiles repository.ProfileRepository,
	projects repository.ProjectRepository,
	matches repository.ProjectMatchRepository,
	cache usecase.Cache,
	logger *log.Logger,
) *Rescore {
	if logger == nil {
		logger = log.Default()
	}
	return &Rescore{
		engine:   engine,
		profiles: profiles,
		projects: projects,
		matches:  matches,
		cache:    cache,
		log:      logger,
	}
}

// Run scores every recruiting project for each user and stores the results as project matches.
// A failing user is counted and logged; the run continues with the rest.
func (p *Rescore) Run(ctx context.Context, params RescoreParams) (RescoreSummary, error) {
	if p == nil || p.engine == nil || p.profiles == nil || p.projects == nil || p.matches == nil {
		return RescoreSummary{}, ErrNotConfigured
	}
	start := time.Now()
	p.log.Printf("pipeline=rescore status=started")

	summary, err := p.run(ctx, params)
	summary.Duration = time.Since(start)
	if err != nil {
		metrics.ObserveRescore("error", start)
		p.log.Printf("pipeline=rescore status=error duration=%s err=%v", summary.Duration, err)
		return summary, err
	}
	metrics.ObserveRescore("ok", start)
	p.log.Printf("pipeline=rescore status=finished users=%d projects=%d pairs=%d failed=%d duration=%s",
		summary.Users, summary.Projects, summary.Pairs, summary.Failed, summary.Duration)
	return summary, nil
}

func (p *Rescore) run(ctx context.Context, params RescoreParams) (RescoreSummary, error) {
	var summary RescoreSummary

	workers := params.Workers
	if workers <= 0 {
		workers = 10
	}

	userIDs, err := p.listUsers(ctx, params.Limit)
	if err != nil {
		return summary, err
	}
	summary.Users = len(userIDs)
	if len(userIDs) == 0 {
		return summary, nil
	}

	projects, err := p.projects.ListRecruitingProjects(ctx)
	if err != nil {
		return summary, err
	}
	summary.Projects = len(projects)
	if len(projects) == 0 {
		return summary, nil
	}

	p.log.Printf("pipeline=rescore status=info users=%d projects=%d workers=%d", len(userIDs), len(projects), workers)

	pool := worker.NewPool(workers, workers*2)
	pool.SetRateLimit(params.RPS)
	results := pool.Run(ctx)

	var pairs atomic.Int64
	go func() {
		defer pool.Close()
		for _, uid := range userIDs {
			err := pool.SubmitContext(ctx, func(ctx context.Context) error {
				n, err := p.rescoreUser(ctx, uid, projects)
				pairs.Add(int64(n))
				return err
			})
			if err != nil {
				return
			}
		}
	}()

	for r := range results {
		if r.Err != nil {
			summary.Failed++
		}
	}
	summary.Pairs = pairs.Load()
	return summary, ctx.Err()
}

func (p *Rescore) listUsers(ctx context.Context, limit int) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0)
	for off := 0; ; {
		page := userPageSize
		if limit > 0 && limit-len(out) < page {
			page = limit - len(out)
		}
		if page <= 0 {
			break
		}
		ids, err := p.profiles.ListUserIDs(ctx, page, off)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			break
		}
		out = append(out, ids...)
		off += len(ids)
	}
	return out, nil
}

func (p *Rescore) rescoreUser(ctx context.Context, uid uuid.UUID, projects []matching.ProjectProfile) (int, error) {
	profile, err := p.profiles.FindUserProfile(ctx, uid)
	if err != nil {
		p.log.Printf("pipeline=rescore status=error user_id=%s err=%v", uid, err)
		return 0, err
	}

	scoredAt := time.Now().UTC()
	var stored int
	for _, proj := range projects {
		res := p.engine.ScoreProject(profile, proj)
		err := p.matches.Upsert(ctx, repository.ProjectMatchUpsert{
			UserID:       uid,
			ProjectID:    proj.ID,
			Score:        res.Score,
			MatchFactors: res.MatchFactors,
			ScoredAt:     scoredAt,
		})
		if err != nil {
			p.log.Printf("pipeline=rescore status=error user_id=%s project_id=%s score=%.2f err=%v", uid, proj.ID, res.Score, err)
			return stored, err
		}
		stored++
	}

	if p.cache != nil {
		if err := p.cache.DeletePatterns(ctx, usecase.UserCachePatterns(uid)...); err != nil {
			p.log.Printf("pipeline=rescore status=warn user_id=%s cache_invalidate_err=%v", uid, err)
		}
	}
	p.log.Printf("pipeline=rescore status=ok user_id=%s projects=%d", uid, stored)
	return stored, nil
}
