// Package task 提供定时任务调度
package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Task 定义任务接口
type Task interface {
	Name() string                  // 任务名称
	Spec() string                  // cron 表达式
	Run(ctx context.Context) error // 执行任务
}

// Manager 任务调度器，基于 cron 表达式触发
type Manager struct {
	logger *zap.Logger
	cron   *cron.Cron
	tasks  []Task
}

// NewManager 创建任务调度器
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		logger: logger,
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger{logger}),
		)),
	}
}

// Register 注册任务
func (m *Manager) Register(task Task) error {
	_, err := m.cron.AddFunc(task.Spec(), func() {
		start := time.Now()
		m.logger.Info("task running", zap.String("name", task.Name()))

		if err := m.run(task); err != nil {
			m.logger.Error("task running error",
				zap.String("name", task.Name()),
				zap.Error(err))
			return
		}

		m.logger.Info("task finished",
			zap.String("name", task.Name()),
			zap.Duration("duration", time.Since(start)))
	})
	if err != nil {
		return err
	}
	m.tasks = append(m.tasks, task)
	return nil
}

func (m *Manager) run(task Task) error {
	return task.Run(context.Background())
}

// Start 启动调度器
func (m *Manager) Start() {
	if len(m.tasks) == 0 {
		m.logger.Info("no tasks to schedule")
		return
	}
	m.logger.Info("tasks starting", zap.Int("count", len(m.tasks)))
	m.cron.Start()
}

// Stop 停止调度器，等待运行中的任务完成
func (m *Manager) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
}

// cronLogger 适配 cron.Logger 到 zap
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Infow(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
