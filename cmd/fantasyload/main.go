package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "embed"

	"go.uber.org/fx"

	"github.com/tigerroll/fantasyload/pkg/etl/adapter/database/gorm"
	_ "github.com/tigerroll/fantasyload/pkg/etl/adapter/database/gorm/mysql"
	_ "github.com/tigerroll/fantasyload/pkg/etl/adapter/database/gorm/postgres"
	_ "github.com/tigerroll/fantasyload/pkg/etl/adapter/database/gorm/sqlite"
	"github.com/tigerroll/fantasyload/pkg/etl/adapter/dataset"
	"github.com/tigerroll/fantasyload/pkg/etl/core/config"
	"github.com/tigerroll/fantasyload/pkg/etl/core/record"
	"github.com/tigerroll/fantasyload/pkg/etl/domain/entity"
	inframetrics "github.com/tigerroll/fantasyload/pkg/etl/infrastructure/metrics"
	"github.com/tigerroll/fantasyload/pkg/etl/orchestrator"
	"github.com/tigerroll/fantasyload/pkg/etl/support/logger"
)

// embeddedConfig embeds the application's YAML configuration file. It is
// loaded once at startup, then overridden by environment variables.
//
//go:embed resources/application.yaml
var embeddedConfig []byte

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Warnf("Received signal '%v'. Attempting to stop the load...", sig)
		cancel()
	}()

	envFilePath := os.Getenv("ENV_FILE_PATH")
	if envFilePath == "" {
		envFilePath = ".env"
	}

	app := fx.New(
		fx.Supply(
			config.EmbeddedConfig(embeddedConfig),
			fx.Annotate(envFilePath, fx.ResultTags(`name:"envFilePath"`)),
			fx.Annotate(
				ctx,
				fx.As(new(context.Context)),
				fx.ResultTags(`name:"appCtx"`),
			),
		),

		logger.Module,
		config.Module,
		gorm.Module,
		inframetrics.Module,
		orchestrator.Module,

		fx.Invoke(fx.Annotate(startLoad, fx.ParamTags(
			"",              // lc fx.Lifecycle
			"",              // shutdowner fx.Shutdowner
			"",              // conn *gorm.Connection
			"",              // orch *orchestrator.Orchestrator
			"",              // cfg *config.Config
			`name:"appCtx"`, // appCtx context.Context
		))),
	)

	app.Run()

	if app.Err() != nil {
		logger.Fatalf("Application run failed: %v", app.Err())
	}
}

// startLoad hooks the load run onto application startup and requests a
// shutdown once it finishes.
func startLoad(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	conn *gorm.Connection,
	orch *orchestrator.Orchestrator,
	cfg *config.Config,
	appCtx context.Context,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if r := recover(); r != nil {
						logger.Errorf("Panic recovered in load execution: %v", r)
					}
					if err := shutdowner.Shutdown(); err != nil {
						logger.Errorf("Failed to shutdown application: %v", err)
					}
				}()
				runLoad(appCtx, conn, orch, cfg)
			}()
			return nil
		},
	})
}

// runLoad performs one complete load: schema setup, dataset ingestion, and
// post-load consistency validation.
func runLoad(ctx context.Context, conn *gorm.Connection, orch *orchestrator.Orchestrator, cfg *config.Config) {
	if cfg.Fantasyload.System.AutoMigrate {
		if err := conn.AutoMigrate(entity.All()...); err != nil {
			logger.Errorf("Schema setup failed: %v", err)
			return
		}
	}

	path := cfg.Fantasyload.Input.DatasetPath
	data, err := dataset.ReadFile(path)
	if err != nil {
		logger.Errorf("Failed to read dataset %s: %v", path, err)
		return
	}

	results, err := orch.LoadAll(ctx, data)
	if err != nil {
		logger.Errorf("Load finished with errors: %v", err)
	}

	summary := orchestrator.Summarize(results)
	logger.Infof("Load summary: datasets=%d records=%d inserted=%d updated=%d skipped=%d failed=%d",
		summary.Datasets, summary.TotalRecords, summary.Inserted, summary.Updated, summary.Skipped, summary.Failed)

	for _, leagueKey := range leagueKeys(data) {
		report, err := orch.ValidateConsistency(ctx, leagueKey)
		if err != nil {
			logger.Errorf("Consistency validation for %s failed: %v", leagueKey, err)
			continue
		}
		for _, w := range report.Warnings {
			logger.Warnf("Consistency warning for %s: %s", leagueKey, w)
		}
		for _, e := range report.Errors {
			logger.Errorf("Consistency error for %s: %s", leagueKey, e)
		}
	}
}

// leagueKeys extracts the distinct league keys of the loaded snapshot.
func leagueKeys(data map[string][]record.Record) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, rec := range data["leagues"] {
		if key, ok := rec.StringField("league_key"); ok && !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys
}
