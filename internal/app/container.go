package app

import (
	"context"
	"errors"
	"log"
	"time"

	"techsync/internal/config"
	"techsync/internal/database"
	dbpostgres "techsync/internal/database/postgres"
	"techsync/internal/domain/assessment"
	"techsync/internal/domain/learning"
	"techsync/internal/domain/matching"
	"techsync/internal/infrastructure/cache"
	"techsync/internal/metrics"
	"techsync/internal/pipeline"
	"techsync/internal/repository"
	"techsync/internal/usecase"
	"techsync/internal/ws"
)

type Repositories struct {
	Profiles *repository.PostgresProfileRepository
	Projects *repository.PostgresProjectRepository
	Attempts *repository.PostgresChallengeAttemptRepository
	Learning *repository.PostgresLearningRecommendationRepository
	Matches  *repository.PostgresProjectMatchRepository
}

type Usecases struct {
	Recommendation *usecase.Recommendation
	ProjectScore   *usecase.ProjectScorer
	Assessment     *usecase.Assessment
	Learning       *usecase.Learning
}

type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis
	Hub   *ws.Hub

	Engine   *matching.Engine
	Assessor *assessment.Assessor
	Advisor  *learning.Advisor

	Repos    Repositories
	Usecases Usecases
	Rescore  *pipeline.Rescore
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.Default()

	engine, err := matching.NewEngine(cfg.Scoring.EngineSettings())
	if err != nil {
		return nil, err
	}
	assessor, err := assessment.NewAssessor(cfg.Scoring.MinPassingScore)
	if err != nil {
		return nil, err
	}
	advisor, err := learning.NewAdvisor(cfg.Scoring.MaxFailedAttempts)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if pool, ok := db.(*dbpostgres.Pool); ok {
		if err := metrics.Register(dbpostgres.NewPoolCollector(pool)); err != nil {
			logger.Printf("[Metrics] db pool collector not registered err=%v", err)
		}
	}

	c := &Container{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Cache:    cache.NewRedis(cfg.Redis, logger),
		Hub:      ws.NewHub(logger),
		Engine:   engine,
		Assessor: assessor,
		Advisor:  advisor,
	}
	c.wire()
	return c, nil
}

func (c *Container) wire() {
	c.Repos = Repositories{
		Profiles: repository.NewPostgresProfileRepository(c.DB),
		Projects: repository.NewPostgresProjectRepository(c.DB, c.Logger),
		Attempts: repository.NewPostgresChallengeAttemptRepository(c.DB),
		Learning: repository.NewPostgresLearningRecommendationRepository(c.DB),
		Matches:  repository.NewPostgresProjectMatchRepository(c.DB),
	}

	scoring := c.Config.Scoring
	c.Usecases = Usecases{
		Recommendation: usecase.NewRecommendationUsecase(
			c.Engine, c.Repos.Profiles, c.Repos.Projects, c.Cache,
			usecase.RecommendationOptions{
				MaxLimit:        scoring.MaxLimit,
				DiversityWeight: scoring.DiversityWeight,
				CacheTTL:        c.Config.Redis.TTL,
			},
			c.Logger,
		),
		ProjectScore: usecase.NewProjectScoreUsecase(
			c.Engine, c.Repos.Profiles, c.Repos.Projects, c.Repos.Matches, c.Cache, c.Config.Redis.TTL, c.Logger,
		),
		Assessment: usecase.NewAssessmentUsecase(usecase.AssessmentDeps{
			Assessor: c.Assessor,
			Advisor:  c.Advisor,
			Profiles: c.Repos.Profiles,
			Projects: c.Repos.Projects,
			Attempts: c.Repos.Attempts,
			Learning: c.Repos.Learning,
			Cache:    c.Cache,
			Events:   c.Hub,
			Logger:   c.Logger,
		}),
		Learning: usecase.NewLearningUsecase(c.Advisor, c.Repos.Profiles, c.Repos.Attempts, c.Repos.Learning, c.Logger),
	}

	c.Rescore = pipeline.NewRescore(c.Engine, c.Repos.Profiles, c.Repos.Projects, c.Repos.Matches, c.Cache, c.Logger)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
