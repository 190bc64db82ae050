package dao

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/haierkeys/lifeframe-journal-service/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDao 基于临时 sqlite 文件构建 Dao
func newTestDao(t *testing.T) *Dao {
	t.Helper()

	db, err := NewDBEngine(Database{
		Type:        "sqlite",
		Path:        filepath.Join(t.TempDir(), "journal_test.db"),
		TablePrefix: "lf_",
	}, "release")
	require.NoError(t, err)

	d := New(db)
	require.NoError(t, d.Migrate())
	return d
}

func newTestChapter(day time.Time) *domain.Chapter {
	return &domain.Chapter{
		ID:          uuid.NewString(),
		DateContent: day,
	}
}

func newTestItem(chapterID string, text string) *domain.Item {
	return &domain.Item{
		ID:        uuid.NewString(),
		ChapterID: chapterID,
		Timestamp: time.Now(),
		Type:      domain.ItemTypeText,
		Text:      text,
		Sentiment: domain.SentimentPending,
	}
}

func TestChapterRepository_CreateAndGet(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()
	repo := NewChapterRepository(d)

	day := time.Date(2026, 8, 30, 14, 30, 0, 0, time.Local)
	created, err := repo.Create(ctx, newTestChapter(day))
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.True(t, got.IsEmpty())

	byDay, err := repo.GetByDay(ctx, time.Date(2026, 8, 30, 23, 59, 0, 0, time.Local))
	require.NoError(t, err)
	assert.Equal(t, created.ID, byDay.ID)

	_, err = repo.GetByDay(ctx, day.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChapterRepository_GetLatest(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()
	repo := NewChapterRepository(d)

	_, err := repo.GetLatest(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	older, err := repo.Create(ctx, newTestChapter(time.Now().AddDate(0, 0, -2)))
	require.NoError(t, err)
	newer, err := repo.Create(ctx, newTestChapter(time.Now()))
	require.NoError(t, err)

	latest, err := repo.GetLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, latest.ID)
	assert.NotEqual(t, older.ID, latest.ID)
}

func TestChapterRepository_DeleteCascadesAndIdempotent(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()
	chapters := NewChapterRepository(d)
	items := NewItemRepository(d)

	chapter, err := chapters.Create(ctx, newTestChapter(time.Now()))
	require.NoError(t, err)

	item := newTestItem(chapter.ID, "cascade me")
	item.Type = domain.ItemTypeTextWithPhoto
	item.Media = []*domain.Media{
		{ID: uuid.NewString(), Kind: domain.MediaKindImage, StorageKey: "2026/08/a.jpg"},
	}
	_, err = items.Create(ctx, item)
	require.NoError(t, err)

	require.NoError(t, chapters.Delete(ctx, chapter.ID))

	_, err = chapters.GetByID(ctx, chapter.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	count, err := items.CountByChapter(ctx, chapter.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// 重复删除不报错
	assert.NoError(t, chapters.Delete(ctx, chapter.ID))
	assert.NoError(t, chapters.Delete(ctx, "never-existed"))
}

func TestItemRepository_CreateWithMedia(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()
	chapters := NewChapterRepository(d)
	items := NewItemRepository(d)

	chapter, err := chapters.Create(ctx, newTestChapter(time.Now()))
	require.NoError(t, err)

	item := newTestItem(chapter.ID, "with photos")
	item.Type = domain.ItemTypeTextWithPhoto
	item.Media = []*domain.Media{
		{ID: uuid.NewString(), Kind: domain.MediaKindImage, StorageKey: "2026/08/1.jpg"},
		{ID: uuid.NewString(), Kind: domain.MediaKindImage, StorageKey: "2026/08/2.jpg"},
	}
	_, err = items.Create(ctx, item)
	require.NoError(t, err)

	got, err := items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "with photos", got.Text)
	assert.Equal(t, domain.SentimentPending, got.Sentiment)
	assert.Len(t, got.Media, 2)
	assert.Equal(t, item.ID, got.Media[0].ItemID)
}

func TestItemRepository_ListByChapterOrder(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()
	chapters := NewChapterRepository(d)
	items := NewItemRepository(d)

	chapter, err := chapters.Create(ctx, newTestChapter(time.Now()))
	require.NoError(t, err)

	base := time.Date(2026, 8, 30, 9, 0, 0, 0, time.Local)
	for i, text := range []string{"second", "third", "first"} {
		item := newTestItem(chapter.ID, text)
		switch i {
		case 0:
			item.Timestamp = base.Add(time.Hour)
		case 1:
			item.Timestamp = base.Add(2 * time.Hour)
		case 2:
			item.Timestamp = base
		}
		_, err = items.Create(ctx, item)
		require.NoError(t, err)
	}

	list, err := items.ListByChapter(ctx, chapter.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Text)
	assert.Equal(t, "second", list[1].Text)
	assert.Equal(t, "third", list[2].Text)
}

func TestItemRepository_UpdateTextAndSentiment(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()
	chapters := NewChapterRepository(d)
	items := NewItemRepository(d)

	chapter, err := chapters.Create(ctx, newTestChapter(time.Now()))
	require.NoError(t, err)

	item := newTestItem(chapter.ID, "before")
	_, err = items.Create(ctx, item)
	require.NoError(t, err)

	require.NoError(t, items.UpdateText(ctx, item.ID, "after"))
	require.NoError(t, items.UpdateSentiment(ctx, item.ID, domain.SentimentPositive))

	got, err := items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Text)
	assert.Equal(t, domain.SentimentPositive, got.Sentiment)

	assert.ErrorIs(t, items.UpdateText(ctx, "missing", "x"), domain.ErrNotFound)
	assert.ErrorIs(t, items.UpdateSentiment(ctx, "missing", domain.SentimentNegative), domain.ErrNotFound)
}

func TestItemRepository_DeleteByChapter(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()
	chapters := NewChapterRepository(d)
	items := NewItemRepository(d)

	chapter, err := chapters.Create(ctx, newTestChapter(time.Now()))
	require.NoError(t, err)

	for _, text := range []string{"a", "b"} {
		_, err = items.Create(ctx, newTestItem(chapter.ID, text))
		require.NoError(t, err)
	}

	require.NoError(t, items.DeleteByChapter(ctx, chapter.ID))

	count, err := items.CountByChapter(ctx, chapter.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// 章节本身保留
	_, err = chapters.GetByID(ctx, chapter.ID)
	assert.NoError(t, err)
}
