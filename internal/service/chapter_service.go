package service

import (
	"context"
	"errors"
	"time"

	"github.com/haierkeys/lifeframe-journal-service/internal/domain"
	"github.com/haierkeys/lifeframe-journal-service/internal/dto"
	"github.com/haierkeys/lifeframe-journal-service/pkg/code"
	"github.com/haierkeys/lifeframe-journal-service/pkg/storage"
	"github.com/haierkeys/lifeframe-journal-service/pkg/timex"
	"github.com/haierkeys/lifeframe-journal-service/pkg/writequeue"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ChapterService 章节业务服务接口
type ChapterService interface {
	// Current 返回最近的章节；尚无任何章节时返回未持久化的今日新章节
	Current(ctx context.Context) (*domain.Chapter, error)
	// GetOrCreateToday 解析今日章节，不存在时创建
	GetOrCreateToday(ctx context.Context) (*domain.Chapter, error)
	// Delete 级联删除章节、条目与附件内容；幂等
	Delete(ctx context.Context, id string) error
	// List 按日期升序返回全部章节（含条目）
	List(ctx context.Context) ([]*domain.Chapter, error)
	// ActivityStatus 返回距最近一次记录的天数
	ActivityStatus(ctx context.Context) (*dto.ActivityStatusDTO, error)
	// SweepAutoDeletable 清理满足级联删除条件的空章节，返回清理数量
	SweepAutoDeletable(ctx context.Context, now time.Time) (int, error)
}

type chapterService struct {
	chapterRepo domain.ChapterRepository
	itemRepo    domain.ItemRepository
	store       storage.Storager
	wq          *writequeue.Manager
	notifier    *Notifier
	logger      *zap.Logger
	cfg         ServiceConfig
	sf          singleflight.Group
}

func NewChapterService(chapterRepo domain.ChapterRepository, itemRepo domain.ItemRepository,
	store storage.Storager, wq *writequeue.Manager, notifier *Notifier,
	logger *zap.Logger, cfg ServiceConfig) ChapterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &chapterService{
		chapterRepo: chapterRepo,
		itemRepo:    itemRepo,
		store:       store,
		wq:          wq,
		notifier:    notifier,
		logger:      logger,
		cfg:         cfg,
	}
}

func (s *chapterService) Current(ctx context.Context) (*domain.Chapter, error) {
	chapter, err := s.chapterRepo.GetLatest(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// 尚无章节，给出今日的新章节值，首次写入时才会落库
			return &domain.Chapter{
				ID:          uuid.NewString(),
				DateContent: time.Now(),
			}, nil
		}
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	return chapter, nil
}

func (s *chapterService) GetOrCreateToday(ctx context.Context) (*domain.Chapter, error) {
	dayKey := timex.StartOfDay(time.Now()).Format("2006-01-02")

	v, err, _ := s.sf.Do("chapter_day_"+dayKey, func() (interface{}, error) {
		chapter, err := s.chapterRepo.GetByDay(ctx, time.Now())
		if err == nil {
			return chapter, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, code.ErrorServerInternal.WithDetails(err.Error())
		}

		fresh := &domain.Chapter{
			ID:          uuid.NewString(),
			DateContent: time.Now(),
		}
		err = s.wq.Execute(ctx, fresh.ID, func() error {
			_, err := s.chapterRepo.Create(ctx, fresh)
			return err
		})
		if err != nil {
			return nil, code.ErrorPersistenceFailed.WithDetails(err.Error())
		}
		s.notifier.Publish()
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Chapter), nil
}

func (s *chapterService) Delete(ctx context.Context, id string) error {
	// 行删除前先收集附件 key，行删除成功后再清理 blob
	items, err := s.itemRepo.ListByChapter(ctx, id)
	if err != nil {
		return code.ErrorServerInternal.WithDetails(err.Error())
	}

	err = s.wq.Execute(ctx, id, func() error {
		return s.chapterRepo.Delete(ctx, id)
	})
	if err != nil {
		return code.ErrorPersistenceFailed.WithDetails(err.Error())
	}

	s.deleteMediaBlobs(items)
	s.notifier.Publish()
	return nil
}

// deleteMediaBlobs 清理条目携带的附件内容，失败只记录告警
func (s *chapterService) deleteMediaBlobs(items []*domain.Item) {
	for _, item := range items {
		for _, m := range item.Media {
			if err := s.store.Delete(m.StorageKey); err != nil {
				s.logger.Warn("delete media blob failed",
					zap.String("storageKey", m.StorageKey), zap.Error(err))
			}
		}
	}
}

func (s *chapterService) List(ctx context.Context) ([]*domain.Chapter, error) {
	chapters, err := s.chapterRepo.List(ctx)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	return chapters, nil
}

func (s *chapterService) ActivityStatus(ctx context.Context) (*dto.ActivityStatusDTO, error) {
	inactiveAfter := s.cfg.Entry.InactiveAfterDays
	if inactiveAfter <= 0 {
		inactiveAfter = 7
	}

	latest, err := s.chapterRepo.GetLatest(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &dto.ActivityStatusDTO{DaysSinceLastEntry: -1, Inactive: true}, nil
		}
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}

	days := int(timex.StartOfDay(time.Now()).Sub(timex.StartOfDay(latest.DateContent)).Hours() / 24)
	return &dto.ActivityStatusDTO{
		DaysSinceLastEntry: days,
		Inactive:           days > inactiveAfter,
	}, nil
}

func (s *chapterService) SweepAutoDeletable(ctx context.Context, now time.Time) (int, error) {
	chapters, err := s.chapterRepo.ListAutoDeletable(ctx, now)
	if err != nil {
		return 0, code.ErrorServerInternal.WithDetails(err.Error())
	}

	count := 0
	for _, c := range chapters {
		if err := s.Delete(ctx, c.ID); err != nil {
			s.logger.Warn("sweep chapter failed", zap.String("chapterId", c.ID), zap.Error(err))
			continue
		}
		count++
	}
	return count, nil
}
