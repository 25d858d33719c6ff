package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"tailor-backend/internal/documents"
	"tailor-backend/internal/jobsearch"
	"tailor-backend/internal/llm"
	"tailor-backend/internal/llm/gemini"
	"tailor-backend/internal/shared/config"
	"tailor-backend/internal/shared/server"
	"tailor-backend/internal/shared/storage/object"
	"tailor-backend/internal/shared/storage/object/local"
	"tailor-backend/internal/shared/storage/object/s3"
	"tailor-backend/internal/shared/telemetry"
	"tailor-backend/internal/tailoring"
)

// App is the assembled application.
type App struct {
	Router *gin.Engine
	Close  func()
}

// Build wires config into a runnable app: store, repo, LLM client, services,
// handlers, router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient, closeLLM := buildLLM(ctx, cfg)

	repo := documents.NewMemoryRepo()
	docsSvc := &documents.Service{Store: store, Repo: repo, LLM: llmClient}
	tailorSvc := tailoring.NewService(repo, store, llmClient, time.Duration(cfg.ExportURLTTLSecs)*time.Second)
	searcher := jobsearch.NewTheirStackClient(cfg.TheirStackBaseURL, cfg.TheirStackAPIKey)

	router := server.NewRouter(server.RouterDeps{
		Env:             cfg.Env,
		CORSAllowOrigin: cfg.CORSAllowOrigin,
		Documents:       documents.NewHandler(docsSvc),
		Tailoring:       tailoring.NewHandler(tailorSvc),
		JobSearch:       jobsearch.NewHandler(searcher),
	})

	return &App{Router: router, Close: closeLLM}, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		store, err := s3.New(ctx, s3.Options{
			Region:    cfg.SpacesRegion,
			Endpoint:  cfg.SpacesEndpoint,
			Bucket:    cfg.SpacesBucket,
			AccessKey: cfg.SpacesKey,
			SecretKey: cfg.SpacesSecret,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 store: %w", err)
		}
		telemetry.Info("object store ready", map[string]any{"type": "s3", "bucket": cfg.SpacesBucket})
		return store, nil
	default:
		telemetry.Info("object store ready", map[string]any{"type": "local", "dir": cfg.LocalStoreDir})
		return local.New(cfg.LocalStoreDir), nil
	}
}

func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, func()) {
	if cfg.GeminiAPIKey == "" {
		telemetry.Info("llm disabled, using placeholder", map[string]any{"provider": cfg.LLMProvider})
		return llm.PlaceholderClient{}, func() {}
	}

	client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		telemetry.Error("gemini init failed, using placeholder", map[string]any{"model": cfg.GeminiModel, "error": err.Error()})
		return llm.PlaceholderClient{}, func() {}
	}
	telemetry.Info("llm ready", map[string]any{"provider": "gemini", "model": cfg.GeminiModel})
	return client, func() { _ = client.Close() }
}
