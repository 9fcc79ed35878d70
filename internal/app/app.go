package app

import (
	"context"

	"github.com/carousell/ct-go/pkg/logger"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"

	"github.com/cibf/call-postprocessor/internal/config"
	"github.com/cibf/call-postprocessor/internal/repo/llm"
	"github.com/cibf/call-postprocessor/internal/repo/mongodb"
	"github.com/cibf/call-postprocessor/internal/server"
	"github.com/cibf/call-postprocessor/internal/usecase"
)

func Invoke(funcs ...any) *fx.App {
	log := logger.MustNamed("app")
	conf := config.MustLoad()
	log.Debugw("config loaded", log.Reflect("config", conf))
	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Unwrap().Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Provide(
			newGenkitClient,
			newMongoDB,

			server.NewHandler,

			usecase.NewProcessUsecase,

			mongodb.NewUserRepository,
			mongodb.NewAnalyticsRepository,
			mongodb.NewHistoryRepository,

			llm.NewGateway,
		),
		fx.Supply(conf),
		fx.Invoke(InitializeIndexes),
		fx.Invoke(funcs...),
	)
}

func newGenkitClient(cfg *config.Config) (*genkit.Genkit, error) {
	ctx := context.Background()
	googleAI := &googlegenai.GoogleAI{
		APIKey: cfg.LLM.GoogleAIAPIKey,
	}
	return genkit.Init(ctx, genkit.WithPlugins(googleAI)), nil
}

// InitializeIndexes creates the unique and query indexes on startup. The
// unique ones back the identity lookups, so the service must not serve
// traffic without them.
func InitializeIndexes(lc fx.Lifecycle, db *mongodb.DB) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return mongodb.EnsureIndexes(ctx, db)
		},
	})
}
