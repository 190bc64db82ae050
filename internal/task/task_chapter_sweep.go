package task

import (
	"context"
	"time"

	"github.com/haierkeys/lifeframe-journal-service/internal/app"
	"github.com/haierkeys/lifeframe-journal-service/pkg/logger"

	"go.uber.org/zap"
)

// ChapterSweepTask 空章节清理任务
// 删除既无条目又非当日的遗留章节，作为同步删除路径之外的兜底
type ChapterSweepTask struct {
	app  *app.App
	spec string
}

// NewChapterSweepTask 创建空章节清理任务
func NewChapterSweepTask(appContainer *app.App) *ChapterSweepTask {
	spec := appContainer.Config().App.SweepSchedule
	if spec == "" {
		spec = "10 0 * * *"
	}
	return &ChapterSweepTask{
		app:  appContainer,
		spec: spec,
	}
}

// Name 返回任务名称
func (t *ChapterSweepTask) Name() string {
	return "ChapterSweep"
}

// Spec 返回 cron 表达式
func (t *ChapterSweepTask) Spec() string {
	return t.spec
}

// Run 执行清理任务
func (t *ChapterSweepTask) Run(ctx context.Context) error {
	count, err := t.app.ChapterService.SweepAutoDeletable(ctx, time.Now())
	if err != nil {
		return err
	}

	if count > 0 {
		t.app.Logger().Info("task log",
			zap.String("task", t.Name()),
			zap.Int(logger.FieldCount, count))
	}
	return nil
}
