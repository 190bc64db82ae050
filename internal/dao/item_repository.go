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

// itemRepository 实现 domain.ItemRepository 接口
type itemRepository struct {
	dao *Dao
}

// NewItemRepository 创建 ItemRepository 实例
func NewItemRepository(dao *Dao) domain.ItemRepository {
	return &itemRepository{dao: dao}
}

// itemToDomain 将 DAO Item 转换为领域模型（含附件）
func itemToDomain(ctx context.Context, db *gorm.DB, m *model.Item) (*domain.Item, error) {
	if m == nil {
		return nil, nil
	}
	item := &domain.Item{
		ID:        m.ID,
		ChapterID: m.ChapterID,
		Timestamp: m.Timestamp.Time(),
		Type:      domain.ItemType(m.Type),
		Text:      m.Text,
		Sentiment: domain.Sentiment(m.Sentiment),
		CreatedAt: m.CreatedAt.Time(),
		UpdatedAt: m.UpdatedAt.Time(),
	}
	var ms []*model.Media
	if err := db.WithContext(ctx).Where("item_id = ?", m.ID).Order("created_at ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	for _, mm := range ms {
		item.Media = append(item.Media, &domain.Media{
			ID:         mm.ID,
			ItemID:     mm.ItemID,
			Kind:       domain.MediaKind(mm.Kind),
			StorageKey: mm.StorageKey,
			CreatedAt:  mm.CreatedAt.Time(),
		})
	}
	return item, nil
}

// itemToModel 将领域模型转换为数据库模型
func itemToModel(i *domain.Item) *model.Item {
	if i == nil {
		return nil
	}
	return &model.Item{
		ID:        i.ID,
		ChapterID: i.ChapterID,
		Timestamp: timex.Time(i.Timestamp),
		Type:      string(i.Type),
		Text:      i.Text,
		Sentiment: string(i.Sentiment),
		CreatedAt: timex.Time(i.CreatedAt),
		UpdatedAt: timex.Time(i.UpdatedAt),
	}
}

// listItemsByChapter 获取章节下全部条目（含附件），按 timestamp 升序
func listItemsByChapter(ctx context.Context, db *gorm.DB, chapterID string) ([]*domain.Item, error) {
	var ms []*model.Item
	err := db.WithContext(ctx).Where("chapter_id = ?", chapterID).Order("timestamp ASC").Find(&ms).Error
	if err != nil {
		return nil, err
	}
	items := make([]*domain.Item, 0, len(ms))
	for _, m := range ms {
		item, err := itemToDomain(ctx, db, m)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// deleteItemsByChapter 删除章节下全部条目及附件记录
func deleteItemsByChapter(ctx context.Context, db *gorm.DB, chapterID string) error {
	var ids []string
	if err := db.WithContext(ctx).Model(&model.Item{}).Where("chapter_id = ?", chapterID).Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) > 0 {
		if err := db.WithContext(ctx).Where("item_id IN ?", ids).Delete(&model.Media{}).Error; err != nil {
			return err
		}
	}
	return db.WithContext(ctx).Where("chapter_id = ?", chapterID).Delete(&model.Item{}).Error
}

// GetByID 根据ID获取条目（含附件）
func (r *itemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	var m model.Item
	err := r.dao.Db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return itemToDomain(ctx, r.dao.Db, &m)
}

// ListByChapter 获取章节下全部条目
func (r *itemRepository) ListByChapter(ctx context.Context, chapterID string) ([]*domain.Item, error) {
	return listItemsByChapter(ctx, r.dao.Db, chapterID)
}

// Create 在一个事务内创建条目及其附件记录
func (r *itemRepository) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	err := r.dao.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(itemToModel(item)).Error; err != nil {
			return err
		}
		for _, media := range item.Media {
			media.ItemID = item.ID
			media.CreatedAt = now
			m := &model.Media{
				ID:         media.ID,
				ItemID:     media.ItemID,
				Kind:       string(media.Kind),
				StorageKey: media.StorageKey,
				CreatedAt:  timex.Time(media.CreatedAt),
			}
			if err := tx.Create(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateText 更新条目文本
func (r *itemRepository) UpdateText(ctx context.Context, id string, text string) error {
	result := r.dao.Db.WithContext(ctx).Model(&model.Item{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"text":       text,
			"updated_at": timex.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateSentiment 更新条目情感标签
func (r *itemRepository) UpdateSentiment(ctx context.Context, id string, sentiment domain.Sentiment) error {
	result := r.dao.Db.WithContext(ctx).Model(&model.Item{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"sentiment":  string(sentiment),
			"updated_at": timex.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete 删除条目及其附件记录
func (r *itemRepository) Delete(ctx context.Context, id string) error {
	return r.dao.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&model.Media{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Item{}).Error
	})
}

// DeleteByChapter 删除章节下全部条目及附件记录
func (r *itemRepository) DeleteByChapter(ctx context.Context, chapterID string) error {
	return r.dao.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteItemsByChapter(ctx, tx, chapterID)
	})
}

// CountByChapter 统计章节下条目数量
func (r *itemRepository) CountByChapter(ctx context.Context, chapterID string) (int64, error) {
	var count int64
	err := r.dao.Db.WithContext(ctx).Model(&model.Item{}).Where("chapter_id = ?", chapterID).Count(&count).Error
	return count, err
}
