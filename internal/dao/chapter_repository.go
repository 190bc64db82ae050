package dao

import (
	"context"
	"errors"
	"time"

	"github.com/haierkeys/lifeframe-journal-service/internal/domain"
	"github.com/haierkeys/lifeframe-journal-service/internal/model"
	"github.com/haierkeys/lifeframe-journal-service/pkg/timex"

	"gorm.io/gorm"
)

// chapterRepository 实现 domain.ChapterRepository 接口
type chapterRepository struct {
	dao *Dao
}

// NewChapterRepository 创建 ChapterRepository 实例
func NewChapterRepository(dao *Dao) domain.ChapterRepository {
	return &chapterRepository{dao: dao}
}

// toDomain 将 DAO Chapter 转换为领域模型
func (r *chapterRepository) toDomain(ctx context.Context, m *model.Chapter) (*domain.Chapter, error) {
	if m == nil {
		return nil, nil
	}
	chapter := &domain.Chapter{
		ID:          m.ID,
		DateContent: m.DateContent.Time(),
		CreatedAt:   m.CreatedAt.Time(),
		UpdatedAt:   m.UpdatedAt.Time(),
	}
	items, err := listItemsByChapter(ctx, r.dao.Db, m.ID)
	if err != nil {
		return nil, err
	}
	chapter.Items = items
	return chapter, nil
}

// toModel 将领域模型转换为数据库模型
func (r *chapterRepository) toModel(c *domain.Chapter) *model.Chapter {
	if c == nil {
		return nil
	}
	return &model.Chapter{
		ID:          c.ID,
		DateContent: timex.Time(c.DateContent),
		CreatedAt:   timex.Time(c.CreatedAt),
		UpdatedAt:   timex.Time(c.UpdatedAt),
	}
}

// GetByID 根据ID获取章节（含条目）
func (r *chapterRepository) GetByID(ctx context.Context, id string) (*domain.Chapter, error) {
	var m model.Chapter
	err := r.dao.Db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.toDomain(ctx, &m)
}

// GetByDay 获取指定自然日的章节
func (r *chapterRepository) GetByDay(ctx context.Context, day time.Time) (*domain.Chapter, error) {
	start := timex.StartOfDay(day)
	end := start.AddDate(0, 0, 1)

	var m model.Chapter
	err := r.dao.Db.WithContext(ctx).
		Where("date_content >= ? AND date_content < ?", timex.Time(start), timex.Time(end)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.toDomain(ctx, &m)
}

// GetLatest 获取最近的章节
func (r *chapterRepository) GetLatest(ctx context.Context) (*domain.Chapter, error) {
	var m model.Chapter
	err := r.dao.Db.WithContext(ctx).Order("date_content DESC").First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.toDomain(ctx, &m)
}

// Create 创建章节
func (r *chapterRepository) Create(ctx context.Context, chapter *domain.Chapter) (*domain.Chapter, error) {
	now := time.Now()
	chapter.CreatedAt = now
	chapter.UpdatedAt = now
	m := r.toModel(chapter)
	if err := r.dao.Db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return chapter, nil
}

// Delete 删除章节及其全部条目与附件记录，幂等
func (r *chapterRepository) Delete(ctx context.Context, id string) error {
	return r.dao.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteItemsByChapter(ctx, tx, id); err != nil {
			return err
		}
		return tx.WithContext(ctx).Where("id = ?", id).Delete(&model.Chapter{}).Error
	})
}

// List 获取全部章节（含条目），按 dateContent 升序
func (r *chapterRepository) List(ctx context.Context) ([]*domain.Chapter, error) {
	var ms []*model.Chapter
	err := r.dao.Db.WithContext(ctx).Order("date_content ASC").Find(&ms).Error
	if err != nil {
		return nil, err
	}
	chapters := make([]*domain.Chapter, 0, len(ms))
	for _, m := range ms {
		c, err := r.toDomain(ctx, m)
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, c)
	}
	return chapters, nil
}

// ListAutoDeletable 获取空且非当日的章节
func (r *chapterRepository) ListAutoDeletable(ctx context.Context, now time.Time) ([]*domain.Chapter, error) {
	chapters, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []*domain.Chapter
	for _, c := range chapters {
		if c.ShouldAutoDelete(now) {
			out = append(out, c)
		}
	}
	return out, nil
}
