// Package domain 定义领域模型和接口
package domain

import (
	"context"
	"time"
)

// ChapterRepository 章节仓储接口
type ChapterRepository interface {
	// GetByID 根据ID获取章节（含条目）
	GetByID(ctx context.Context, id string) (*Chapter, error)

	// GetByDay 获取指定自然日的章节，不存在时返回 ErrNotFound
	GetByDay(ctx context.Context, day time.Time) (*Chapter, error)

	// GetLatest 获取最近创建的章节，不存在时返回 ErrNotFound
	GetLatest(ctx context.Context) (*Chapter, error)

	// Create 创建章节
	Create(ctx context.Context, chapter *Chapter) (*Chapter, error)

	// Delete 删除章节及其全部条目与附件记录；幂等，不存在时为 no-op
	Delete(ctx context.Context, id string) error

	// List 获取全部章节（含条目），按 dateContent 升序
	List(ctx context.Context) ([]*Chapter, error)

	// ListAutoDeletable 获取满足级联删除条件的章节（空且非 now 所在日）
	ListAutoDeletable(ctx context.Context, now time.Time) ([]*Chapter, error)
}

// ItemRepository 条目仓储接口
type ItemRepository interface {
	// GetByID 根据ID获取条目（含附件），不存在时返回 ErrNotFound
	GetByID(ctx context.Context, id string) (*Item, error)

	// ListByChapter 获取章节下全部条目，按 timestamp 升序
	ListByChapter(ctx context.Context, chapterID string) ([]*Item, error)

	// Create 在一个事务内创建条目及其附件记录
	Create(ctx context.Context, item *Item) (*Item, error)

	// UpdateText 更新条目文本
	UpdateText(ctx context.Context, id string, text string) error

	// UpdateSentiment 更新条目情感标签
	UpdateSentiment(ctx context.Context, id string, sentiment Sentiment) error

	// Delete 删除条目及其附件记录
	Delete(ctx context.Context, id string) error

	// DeleteByChapter 删除章节下全部条目及附件记录
	DeleteByChapter(ctx context.Context, chapterID string) error

	// CountByChapter 统计章节下条目数量
	CountByChapter(ctx context.Context, chapterID string) (int64, error)
}
