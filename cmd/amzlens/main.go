package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"amzlens/internal/api"
	"amzlens/internal/api/serp/amazon_search"
	"amzlens/internal/config"
	"amzlens/internal/database"
	"amzlens/internal/function"
	"amzlens/internal/logger"
	"amzlens/internal/processor"
	"amzlens/internal/repository"
	"amzlens/internal/scheduler"
	"amzlens/internal/searcher"
	"amzlens/internal/task"
	"amzlens/internal/tasks"

	"go.uber.org/zap"
)

func main() {
	// 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	zapLogger, err := logger.New(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		OutputPath: cfg.Logger.OutputPath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	zapLogger.Info("application starting",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
	)

	// 初始化数据库连接
	dbs, err := database.New(database.ConfigFromAppConfig(cfg, zapLogger))
	if err != nil {
		zapLogger.Fatal("failed to initialize databases", zap.Error(err))
	}
	database.SetGlobal(dbs)

	// 加载监控清单配置
	watchlists, err := config.LoadWatchlistsConfig("", zapLogger)
	if err != nil {
		zapLogger.Warn("failed to load watchlists config, watchlist refresh disabled",
			zap.Error(err),
		)
		watchlists = &config.WatchlistsConfig{}
	}

	// 组装搜索链路
	searchStack := buildSearchStack(cfg, zapLogger)

	// 创建任务注册表并注册任务
	registry := task.NewRegistry()
	if err := registerTasks(registry, cfg, watchlists, searchStack, zapLogger); err != nil {
		zapLogger.Fatal("failed to register tasks", zap.Error(err))
	}

	// 获取时区和超时配置
	location, err := cfg.GetLocation()
	if err != nil {
		zapLogger.Warn("failed to load location, using local time",
			zap.Error(err),
		)
		location = time.Local
	}

	defaultTimeout, err := cfg.GetDefaultTimeout()
	if err != nil {
		zapLogger.Warn("failed to parse default timeout, using 30m",
			zap.Error(err),
		)
		defaultTimeout = 30 * time.Minute
	}

	// 创建并启动调度器
	sched := scheduler.New(scheduler.Config{
		Logger:         zapLogger,
		Registry:       registry,
		DefaultTimeout: defaultTimeout,
		Location:       location,
	})

	if err := sched.Start(); err != nil {
		zapLogger.Fatal("failed to start scheduler", zap.Error(err))
	}

	zapLogger.Info("scheduler started successfully",
		zap.Int("task_count", sched.TaskCount()),
	)

	// 创建并启动 HTTP 服务器
	server := function.NewServerWithDeps(&cfg.Server, zapLogger, &function.Dependencies{
		Config:           cfg,
		WatchlistsConfig: watchlists,
		Logger:           zapLogger,
	})
	if err := server.Start(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	zapLogger.Info("received signal, shutting down...",
		zap.String("signal", sig.String()),
	)

	// 优雅关闭
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		zapLogger.Error("error stopping HTTP server", zap.Error(err))
	}

	if err := sched.Stop(shutdownCtx); err != nil {
		zapLogger.Error("error stopping scheduler", zap.Error(err))
	}

	if err := dbs.Close(); err != nil {
		zapLogger.Error("error closing databases", zap.Error(err))
	}

	zapLogger.Info("application stopped")
}

// buildSearchStack 组装 SerpAPI 客户端到搜索器的完整链路
func buildSearchStack(cfg *config.Config, zapLogger *zap.Logger) *searcher.Searcher {
	client := api.NewClient(api.Config{
		BaseURL:           cfg.SerpAPI.BaseURL,
		APIKey:            cfg.SerpAPI.APIKey,
		Timeout:           cfg.SerpAPI.TimeoutDuration,
		MaxRetries:        cfg.SerpAPI.MaxRetries,
		RequestsPerMinute: cfg.SerpAPI.RequestsPerMinute,
		Logger:            zapLogger,
	})

	service := amazon_search.NewService(client, zapLogger)
	proc := processor.NewProcessor(zapLogger)
	return searcher.New(service, proc, zapLogger)
}

// registerTasks 注册所有定时任务
// 快照相关任务依赖 MongoDB，未启用时跳过注册
func registerTasks(
	registry *task.Registry,
	cfg *config.Config,
	watchlists *config.WatchlistsConfig,
	searchStack *searcher.Searcher,
	zapLogger *zap.Logger,
) error {
	mongoDB, err := database.GetMongoDB()
	if err != nil {
		zapLogger.Warn("MongoDB not available, snapshot tasks disabled",
			zap.Error(err),
		)
		return nil
	}

	storage := database.NewStorage(mongoDB, zapLogger)
	repo := repository.NewSearchRepository(storage, zapLogger)

	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repo.EnsureIndexes(indexCtx); err != nil {
		zapLogger.Warn("failed to ensure snapshot indexes", zap.Error(err))
	}

	if err := registry.Register(tasks.NewWatchlistRefreshTask(searchStack, repo, watchlists, zapLogger)); err != nil {
		return fmt.Errorf("failed to register watchlist refresh task: %w", err)
	}

	if err := registry.Register(tasks.NewSnapshotCleanupTask(repo, cfg.Search.SnapshotRetentionDuration, zapLogger)); err != nil {
		return fmt.Errorf("failed to register snapshot cleanup task: %w", err)
	}

	return nil
}
