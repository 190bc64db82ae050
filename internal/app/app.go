// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/haierkeys/lifeframe-journal-service/internal/dao"
	"github.com/haierkeys/lifeframe-journal-service/internal/domain"
	"github.com/haierkeys/lifeframe-journal-service/internal/enrich"
	"github.com/haierkeys/lifeframe-journal-service/internal/search"
	"github.com/haierkeys/lifeframe-journal-service/internal/service"
	"github.com/haierkeys/lifeframe-journal-service/pkg/storage"
	"github.com/haierkeys/lifeframe-journal-service/pkg/workerpool"
	"github.com/haierkeys/lifeframe-journal-service/pkg/writequeue"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// 并发控制组件
	workerPool    *workerpool.Pool
	writeQueueMgr *writequeue.Manager

	// Repository 层
	ChapterRepo domain.ChapterRepository
	ItemRepo    domain.ItemRepository

	// Service 层
	ChapterService service.ChapterService
	EntryService   service.EntryService

	// 基础设施组件
	Storage  storage.Storager
	Notifier *service.Notifier
	Enricher *enrich.Pipeline
	Search   *search.Coordinator

	// 私密模式开关，开启后章节视图隐藏条目内容
	privateMode atomic.Bool
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config: cfg,
		logger: logger,
		DB:     db,
	}

	// 初始化 Worker Pool
	wpConfig := cfg.GetWorkerPoolConfig()
	a.workerPool = workerpool.New(&wpConfig, logger)

	// 初始化 Write Queue Manager
	wqConfig := cfg.GetWriteQueueConfig()
	a.writeQueueMgr = writequeue.New(&wqConfig, logger)

	// 初始化 DAO
	a.Dao = dao.New(db)
	if cfg.Database.AutoMigrate {
		if err := a.Dao.Migrate(); err != nil {
			return nil, fmt.Errorf("database migrate failed: %w", err)
		}
	}

	// 初始化附件存储
	store, err := storage.NewClient(&cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}
	a.Storage = store

	// 初始化 Repository 层
	a.ChapterRepo = dao.NewChapterRepository(a.Dao)
	a.ItemRepo = dao.NewItemRepository(a.Dao)

	// 存储变更通知
	a.Notifier = service.NewNotifier()

	svcConfig := cfg.GetServiceConfig()

	// 初始化 Service 层（依赖注入）
	a.ChapterService = service.NewChapterService(a.ChapterRepo, a.ItemRepo,
		a.Storage, a.writeQueueMgr, a.Notifier, logger, svcConfig)

	// 情感富集管道
	pipeline, err := enrich.NewPipeline(enrich.NewLexiconClassifier(), a.ItemRepo,
		a.workerPool, logger, cfg.GetEnrichConfig())
	if err != nil {
		return nil, fmt.Errorf("enrich pipeline init failed: %w", err)
	}
	a.Enricher = pipeline

	a.EntryService = service.NewEntryService(a.ItemRepo, a.ChapterRepo,
		a.ChapterService, a.Storage, a.writeQueueMgr, a.Notifier, pipeline, logger, svcConfig)

	// 搜索协调器，订阅存储变更以保持投影最新
	a.Search = search.New(cfg.GetSearchConfig(), a.ChapterRepo, logger)
	a.Search.Start(a.Notifier.Subscribe())
	a.Search.Refresh()

	logger.Info("App container initialized successfully",
		zap.Int("workerPoolMaxWorkers", wpConfig.MaxWorkers),
		zap.Int("writeQueueCapacity", wqConfig.QueueCapacity))

	return a, nil
}

// Shutdown 按依赖顺序关停组件并释放数据库连接
func (a *App) Shutdown(ctx context.Context) error {
	a.Search.Stop()

	if err := a.writeQueueMgr.Shutdown(ctx); err != nil {
		a.logger.Warn("write queue shutdown", zap.Error(err))
	}
	if err := a.workerPool.Shutdown(ctx); err != nil {
		a.logger.Warn("worker pool shutdown", zap.Error(err))
	}

	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// IsPrivateMode 私密模式是否开启
func (a *App) IsPrivateMode() bool {
	return a.privateMode.Load()
}

// SetPrivateMode 设置私密模式开关，返回设置后的状态
func (a *App) SetPrivateMode(on bool) bool {
	a.privateMode.Store(on)
	return on
}

// SubmitTaskAsync 异步提交任务到 Worker Pool（不等待结果）
// 返回错误如果池已满或已关闭
func (a *App) SubmitTaskAsync(ctx context.Context, task func(context.Context) error) error {
	return a.workerPool.SubmitAsync(ctx, task)
}

// ExecuteWrite 执行写操作（通过 Write Queue 按章节串行化）
func (a *App) ExecuteWrite(ctx context.Context, chapterID string, fn func() error) error {
	return a.writeQueueMgr.Execute(ctx, chapterID, fn)
}

// WorkerPool 获取 Worker Pool（用于高级操作）
func (a *App) WorkerPool() *workerpool.Pool {
	return a.workerPool
}

// WriteQueueManager 获取 Write Queue Manager（用于高级操作）
func (a *App) WriteQueueManager() *writequeue.Manager {
	return a.writeQueueMgr
}

// IsProductionMode 是否为生产模式
// 根据日志配置中的 Production 字段判断
func (a *App) IsProductionMode() bool {
	return a.config.Log.Production
}
