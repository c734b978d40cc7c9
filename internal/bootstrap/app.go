package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"career-backend/internal/assessment"
	"career-backend/internal/career"
	"career-backend/internal/llm"
	"career-backend/internal/llm/gemini"
	"career-backend/internal/llm/openai"
	"career-backend/internal/reports"
	"career-backend/internal/services/health"
	"career-backend/internal/shared/config"
	"career-backend/internal/shared/server"
	"career-backend/internal/shared/storage/artifact"
	localstore "career-backend/internal/shared/storage/artifact/local"
	pgstore "career-backend/internal/shared/storage/artifact/pg"
	s3store "career-backend/internal/shared/storage/artifact/s3"
	"career-backend/internal/shared/storage/db"
	"career-backend/internal/shared/telemetry"
	"career-backend/report/render"
)

// App holds shared dependencies.
type App struct {
	Config  config.Config
	Router  *gin.Engine
	DB      *sql.DB
	Store   artifact.Store
	LLM     llm.Client
	Service *reports.Service
	Handler *reports.Handler
}

// Build wires the artifact store, generation client, report service and router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ArtifactStoreType) == "" {
		cfg.ArtifactStoreType = "local"
	}

	store, sqlDB, err := BuildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client, err := BuildLLM(ctx, cfg)
	if err != nil {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}

	svc := NewService(cfg, store, client)
	handler := reports.NewHandler(svc)

	app := &App{
		Config:  cfg,
		DB:      sqlDB,
		Store:   store,
		LLM:     client,
		Service: svc,
		Handler: handler,
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:        cfg,
		ReportHandler: handler,
		Health:        newHealth(cfg.ArtifactStoreType, sqlDB),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":          cfg.Env,
		"store":        cfg.ArtifactStoreType,
		"llm_provider": cfg.LLMProvider,
		"llm_model":    cfg.LLMModel,
	})
	return app, nil
}

func newHealth(storeType string, sqlDB *sql.DB) *health.Service {
	if sqlDB == nil {
		return health.NewService(storeType, nil)
	}
	return health.NewService(storeType, sqlDB)
}

// Close releases the database handle, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// NewService assembles the pipeline stages around store and client.
func NewService(cfg config.Config, store artifact.Store, client llm.Client) *reports.Service {
	return &reports.Service{
		Scorer:        assessment.DefaultScorer(),
		Goals:         career.NewExtractor(client, cfg.GenerationTimeout),
		Sections:      reports.NewSectionGenerator(client, cfg.GenerationTimeout, cfg.SectionConcurrency),
		Renderer:      render.NewPDFRenderer(),
		Store:         store,
		RenderTimeout: cfg.RenderTimeout,
	}
}

// BuildStore opens the configured artifact store. The returned *sql.DB is non-nil only for postgres.
func BuildStore(ctx context.Context, cfg config.Config) (artifact.Store, *sql.DB, error) {
	switch cfg.ArtifactStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, nil, fmt.Errorf("ARTIFACT_STORE=s3 requires S3_BUCKET")
		}
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	case "postgres":
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return nil, nil, fmt.Errorf("ARTIFACT_STORE=postgres requires DATABASE_URL")
		}
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		return pgstore.New(sqlDB), sqlDB, nil
	default:
		store, err := localstore.New(cfg.ReportsDir)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	}
}

// BuildLLM constructs the configured generation client.
// Outside prod a missing API key yields a client whose calls fail, so the server still starts.
func BuildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	var key string
	switch cfg.LLMProvider {
	case "openai":
		key = cfg.OpenAIAPIKey
	default:
		key = cfg.GoogleAPIKey
	}
	if strings.TrimSpace(key) == "" {
		if cfg.IsProd() {
			return nil, fmt.Errorf("missing API key for LLM_PROVIDER=%s", cfg.LLMProvider)
		}
		telemetry.Warn("bootstrap.llm.unconfigured", map[string]any{"llm_provider": cfg.LLMProvider})
		return unconfiguredClient{provider: cfg.LLMProvider}, nil
	}

	switch cfg.LLMProvider {
	case "openai":
		return openai.New(openai.Options{
			APIKey:  key,
			Model:   cfg.LLMModel,
			Timeout: cfg.GenerationTimeout,
		})
	default:
		return gemini.New(ctx, gemini.Options{APIKey: key, Model: cfg.LLMModel})
	}
}

// ErrLLMUnconfigured is returned by the placeholder client when no API key is set.
var ErrLLMUnconfigured = errors.New("llm client not configured")

type unconfiguredClient struct {
	provider string
}

func (c unconfiguredClient) Complete(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: set the API key for %s", ErrLLMUnconfigured, c.provider)
}
