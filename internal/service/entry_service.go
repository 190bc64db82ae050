package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/haierkeys/lifeframe-journal-service/internal/domain"
	"github.com/haierkeys/lifeframe-journal-service/internal/dto"
	"github.com/haierkeys/lifeframe-journal-service/pkg/code"
	"github.com/haierkeys/lifeframe-journal-service/pkg/fileurl"
	"github.com/haierkeys/lifeframe-journal-service/pkg/storage"
	"github.com/haierkeys/lifeframe-journal-service/pkg/writequeue"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Enricher 情感富集调度接口
// 条目创建成功后调度一次异步分类，实现方立即返回
type Enricher interface {
	Enqueue(item *domain.Item)
}

// EntryService 条目业务服务接口
// chapterID 为空时落到今日章节（不存在则创建）
type EntryService interface {
	// AddTextItem 新增纯文本条目，情感标记为 pending 并调度异步分类
	AddTextItem(ctx context.Context, chapterID string, text string) (*dto.ItemDTO, error)
	// AddMediaItem 新增纯媒体条目，情感固定为 neutral，不参与分类
	AddMediaItem(ctx context.Context, chapterID string, media []dto.MediaPayload) (*dto.ItemDTO, error)
	// AddTextAndMediaItem 新增图文条目，情感标记为 pending 并调度异步分类
	AddTextAndMediaItem(ctx context.Context, chapterID string, text string, media []dto.MediaPayload) (*dto.ItemDTO, error)
	// EditItem 编辑文本条目；非文本条目返回 ErrorNotEditable，不触发重新分类
	EditItem(ctx context.Context, itemID string, text string) (*dto.ItemDTO, error)
	// DeleteItem 删除条目及附件内容；空且非当日的父章节随之销毁
	DeleteItem(ctx context.Context, itemID string) error
	// DeleteAllItems 清空章节内全部条目，章节本身保留
	DeleteAllItems(ctx context.Context, chapterID string) error
}

type entryService struct {
	itemRepo    domain.ItemRepository
	chapterRepo domain.ChapterRepository
	chapterSvc  ChapterService
	store       storage.Storager
	wq          *writequeue.Manager
	notifier    *Notifier
	enricher    Enricher
	logger      *zap.Logger
	cfg         ServiceConfig
}

func NewEntryService(itemRepo domain.ItemRepository, chapterRepo domain.ChapterRepository,
	chapterSvc ChapterService, store storage.Storager, wq *writequeue.Manager,
	notifier *Notifier, enricher Enricher, logger *zap.Logger, cfg ServiceConfig) EntryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &entryService{
		itemRepo:    itemRepo,
		chapterRepo: chapterRepo,
		chapterSvc:  chapterSvc,
		store:       store,
		wq:          wq,
		notifier:    notifier,
		enricher:    enricher,
		logger:      logger,
		cfg:         cfg,
	}
}

// resolveChapter 解析目标章节：显式 ID 或今日章节
func (s *entryService) resolveChapter(ctx context.Context, chapterID string) (*domain.Chapter, error) {
	if chapterID == "" {
		return s.chapterSvc.GetOrCreateToday(ctx)
	}
	chapter, err := s.chapterRepo.GetByID(ctx, chapterID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, code.ErrorNotFound
		}
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	return chapter, nil
}

// mediaItemType 根据附件载荷推导条目类型
func mediaItemType(media []dto.MediaPayload, hasText bool) (domain.ItemType, domain.MediaKind, error) {
	// 附件类条目至少要有一个附件
	if len(media) == 0 {
		return "", "", code.ErrorTooManyAttachments
	}
	kind := domain.MediaKind(media[0].Kind)
	for _, m := range media {
		if domain.MediaKind(m.Kind) != kind {
			return "", "", code.ErrorInvalidParams.WithDetails("media kinds cannot be mixed")
		}
	}
	switch kind {
	case domain.MediaKindAudio:
		if hasText {
			return "", "", code.ErrorInvalidParams.WithDetails("audio cannot carry text")
		}
		return domain.ItemTypeAudio, kind, nil
	case domain.MediaKindImage:
		if hasText {
			return domain.ItemTypeTextWithPhoto, kind, nil
		}
		return domain.ItemTypePhoto, kind, nil
	}
	return "", "", code.ErrorInvalidParams.WithDetails("unknown media kind: " + media[0].Kind)
}

// storeMedia 落盘附件内容并生成附件记录
// 任一附件失败时回滚已写入的内容
func (s *entryService) storeMedia(media []dto.MediaPayload, kind domain.MediaKind) ([]*domain.Media, error) {
	datePathFormat := s.cfg.Entry.MediaDatePathFormat
	if datePathFormat == "" {
		datePathFormat = "2006/01"
	}

	var stored []*domain.Media
	rollback := func() {
		for _, m := range stored {
			if err := s.store.Delete(m.StorageKey); err != nil {
				s.logger.Warn("rollback media blob failed",
					zap.String("storageKey", m.StorageKey), zap.Error(err))
			}
		}
	}

	for _, payload := range media {
		content, err := base64.StdEncoding.DecodeString(payload.Content)
		if err != nil {
			rollback()
			return nil, code.ErrorInvalidParams.WithDetails("media content is not valid base64")
		}

		ext := filepath.Ext(payload.Name)
		if ext == "" {
			if kind == domain.MediaKindAudio {
				ext = ".m4a"
			} else {
				ext = ".jpg"
			}
		}
		// GetDatePath 返回的路径自带结尾斜杠
		pathKey := fmt.Sprintf("%s%s%s", fileurl.GetDatePath(datePathFormat), uuid.NewString(), ext)

		key, err := s.store.SendContent(pathKey, content)
		if err != nil {
			rollback()
			return nil, code.ErrorMediaStoreFailed.WithDetails(err.Error())
		}
		stored = append(stored, &domain.Media{
			ID:         uuid.NewString(),
			Kind:       kind,
			StorageKey: key,
		})
	}
	return stored, nil
}

// createItem 通过章节写队列落库；失败时回滚附件内容，内存状态不变
func (s *entryService) createItem(ctx context.Context, item *domain.Item) (*dto.ItemDTO, error) {
	err := s.wq.Execute(ctx, item.ChapterID, func() error {
		_, err := s.itemRepo.Create(ctx, item)
		return err
	})
	if err != nil {
		for _, m := range item.Media {
			if derr := s.store.Delete(m.StorageKey); derr != nil {
				s.logger.Warn("rollback media blob failed",
					zap.String("storageKey", m.StorageKey), zap.Error(derr))
			}
		}
		return nil, code.ErrorPersistenceFailed.WithDetails(err.Error())
	}

	s.notifier.Publish()
	return dto.ToItemDTO(item), nil
}

func (s *entryService) AddTextItem(ctx context.Context, chapterID string, text string) (*dto.ItemDTO, error) {
	chapter, err := s.resolveChapter(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	item := &domain.Item{
		ID:        uuid.NewString(),
		ChapterID: chapter.ID,
		Timestamp: time.Now(),
		Type:      domain.ItemTypeText,
		Text:      text,
		Sentiment: domain.SentimentPending,
	}

	res, err := s.createItem(ctx, item)
	if err != nil {
		return nil, err
	}
	s.enricher.Enqueue(item)
	return res, nil
}

func (s *entryService) AddMediaItem(ctx context.Context, chapterID string, media []dto.MediaPayload) (*dto.ItemDTO, error) {
	itemType, kind, err := mediaItemType(media, false)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateMediaArity(itemType, len(media)); err != nil {
		return nil, code.ErrorTooManyAttachments
	}

	chapter, err := s.resolveChapter(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	stored, err := s.storeMedia(media, kind)
	if err != nil {
		return nil, err
	}

	item := &domain.Item{
		ID:        uuid.NewString(),
		ChapterID: chapter.ID,
		Timestamp: time.Now(),
		Type:      itemType,
		Sentiment: domain.SentimentNeutral,
		Media:     stored,
	}
	return s.createItem(ctx, item)
}

func (s *entryService) AddTextAndMediaItem(ctx context.Context, chapterID string, text string, media []dto.MediaPayload) (*dto.ItemDTO, error) {
	itemType, kind, err := mediaItemType(media, true)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateMediaArity(itemType, len(media)); err != nil {
		return nil, code.ErrorTooManyAttachments
	}

	chapter, err := s.resolveChapter(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	stored, err := s.storeMedia(media, kind)
	if err != nil {
		return nil, err
	}

	item := &domain.Item{
		ID:        uuid.NewString(),
		ChapterID: chapter.ID,
		Timestamp: time.Now(),
		Type:      itemType,
		Text:      text,
		Sentiment: domain.SentimentPending,
		Media:     stored,
	}

	res, err := s.createItem(ctx, item)
	if err != nil {
		return nil, err
	}
	s.enricher.Enqueue(item)
	return res, nil
}

func (s *entryService) EditItem(ctx context.Context, itemID string, text string) (*dto.ItemDTO, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, code.ErrorNotFound
		}
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	if !item.IsEditable() {
		return nil, code.ErrorNotEditable
	}

	err = s.wq.Execute(ctx, item.ChapterID, func() error {
		return s.itemRepo.UpdateText(ctx, itemID, text)
	})
	if err != nil {
		return nil, code.ErrorPersistenceFailed.WithDetails(err.Error())
	}

	// 编辑不触发重新分类，已有情感标签保持不变
	item.Text = text
	item.UpdatedAt = time.Now()
	s.notifier.Publish()
	return dto.ToItemDTO(item), nil
}

func (s *entryService) DeleteItem(ctx context.Context, itemID string) error {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// 幂等：条目不存在视为已删除
			return nil
		}
		return code.ErrorServerInternal.WithDetails(err.Error())
	}

	err = s.wq.Execute(ctx, item.ChapterID, func() error {
		if derr := s.itemRepo.Delete(ctx, itemID); derr != nil {
			return derr
		}
		// 删除最后一个条目时，空且非当日的章节一并销毁。
		// 判定与销毁必须和同章节的其他写入在同一闭包内串行，
		// 空快照与章节删除之间不允许插入新的提交
		chapter, gerr := s.chapterRepo.GetByID(ctx, item.ChapterID)
		if gerr != nil {
			return nil
		}
		if chapter.ShouldAutoDelete(time.Now()) {
			if cerr := s.chapterRepo.Delete(ctx, chapter.ID); cerr != nil {
				s.logger.Warn("auto delete chapter failed",
					zap.String("chapterId", chapter.ID), zap.Error(cerr))
			}
		}
		return nil
	})
	if err != nil {
		return code.ErrorPersistenceFailed.WithDetails(err.Error())
	}

	for _, m := range item.Media {
		if derr := s.store.Delete(m.StorageKey); derr != nil {
			s.logger.Warn("delete media blob failed",
				zap.String("storageKey", m.StorageKey), zap.Error(derr))
		}
	}

	s.notifier.Publish()
	return nil
}

func (s *entryService) DeleteAllItems(ctx context.Context, chapterID string) error {
	items, err := s.itemRepo.ListByChapter(ctx, chapterID)
	if err != nil {
		return code.ErrorServerInternal.WithDetails(err.Error())
	}

	err = s.wq.Execute(ctx, chapterID, func() error {
		return s.itemRepo.DeleteByChapter(ctx, chapterID)
	})
	if err != nil {
		return code.ErrorPersistenceFailed.WithDetails(err.Error())
	}

	for _, item := range items {
		for _, m := range item.Media {
			if derr := s.store.Delete(m.StorageKey); derr != nil {
				s.logger.Warn("delete media blob failed",
					zap.String("storageKey", m.StorageKey), zap.Error(derr))
			}
		}
	}

	// 清空操作保留章节本身，只有删除单个条目才会触发章节销毁
	s.notifier.Publish()
	return nil
}
