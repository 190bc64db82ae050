package service

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/lifeframe-journal-service/internal/domain"
	"github.com/haierkeys/lifeframe-journal-service/pkg/writequeue"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWriteQueue(t *testing.T) *writequeue.Manager {
	t.Helper()

	wq := writequeue.New(nil, nil)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = wq.Shutdown(ctx)
	})
	return wq
}

type chapterFixture struct {
	chapterRepo *mockChapterRepo
	itemRepo    *mockItemRepo
	store       *mockStorage
	svc         ChapterService
}

func newChapterFixture(t *testing.T) *chapterFixture {
	t.Helper()

	f := &chapterFixture{
		chapterRepo: newMockChapterRepo(),
		itemRepo:    newMockItemRepo(),
		store:       &mockStorage{},
	}
	f.chapterRepo.items = f.itemRepo
	f.svc = NewChapterService(f.chapterRepo, f.itemRepo, f.store,
		newTestWriteQueue(t), NewNotifier(), nil, ServiceConfig{})
	return f
}

func TestChapterCurrent_EmptyStore(t *testing.T) {
	f := newChapterFixture(t)

	got, err := f.svc.Current(context.Background())
	require.NoError(t, err)

	// 新值指向今天，且尚未落库
	assert.True(t, got.IsToday())
	assert.Empty(t, f.chapterRepo.chapters)
}

func TestChapterCurrent_ReturnsLatest(t *testing.T) {
	f := newChapterFixture(t)

	older := &domain.Chapter{ID: uuid.NewString(), DateContent: time.Now().AddDate(0, 0, -3)}
	newer := &domain.Chapter{ID: uuid.NewString(), DateContent: time.Now().AddDate(0, 0, -1)}
	f.chapterRepo.chapters[older.ID] = older
	f.chapterRepo.chapters[newer.ID] = newer

	got, err := f.svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)
}

func TestGetOrCreateToday(t *testing.T) {
	f := newChapterFixture(t)
	ctx := context.Background()

	first, err := f.svc.GetOrCreateToday(ctx)
	require.NoError(t, err)
	assert.True(t, first.IsToday())
	assert.Len(t, f.chapterRepo.chapters, 1)

	// 再次解析命中同一章节，不重复创建
	second, err := f.svc.GetOrCreateToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, f.chapterRepo.chapters, 1)
}

func TestChapterDelete_Idempotent(t *testing.T) {
	f := newChapterFixture(t)
	ctx := context.Background()

	chapter := &domain.Chapter{ID: uuid.NewString(), DateContent: time.Now()}
	f.chapterRepo.chapters[chapter.ID] = chapter

	require.NoError(t, f.svc.Delete(ctx, chapter.ID))
	require.NoError(t, f.svc.Delete(ctx, chapter.ID))
	assert.NoError(t, f.svc.Delete(ctx, "never-existed"))
}

func TestChapterDelete_RemovesMediaBlobs(t *testing.T) {
	f := newChapterFixture(t)
	ctx := context.Background()

	chapter := &domain.Chapter{ID: uuid.NewString(), DateContent: time.Now()}
	f.chapterRepo.chapters[chapter.ID] = chapter
	item := &domain.Item{
		ID: uuid.NewString(), ChapterID: chapter.ID, Type: domain.ItemTypePhoto,
		Media: []*domain.Media{
			{ID: uuid.NewString(), StorageKey: "2026/08/x.jpg"},
			{ID: uuid.NewString(), StorageKey: "2026/08/y.jpg"},
		},
	}
	f.itemRepo.items[item.ID] = item

	require.NoError(t, f.svc.Delete(ctx, chapter.ID))
	assert.ElementsMatch(t, []string{"2026/08/x.jpg", "2026/08/y.jpg"}, f.store.deleted)
}

func TestActivityStatus(t *testing.T) {
	tests := []struct {
		name         string
		lastEntryAgo int // 天数，-1 表示没有任何章节
		wantDays     int
		wantInactive bool
	}{
		{"no chapters", -1, -1, true},
		{"today", 0, 0, false},
		{"three days ago", 3, 3, false},
		{"ten days ago", 10, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newChapterFixture(t)
			if tt.lastEntryAgo >= 0 {
				c := &domain.Chapter{
					ID:          uuid.NewString(),
					DateContent: time.Now().AddDate(0, 0, -tt.lastEntryAgo),
				}
				f.chapterRepo.chapters[c.ID] = c
			}

			got, err := f.svc.ActivityStatus(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantDays, got.DaysSinceLastEntry)
			assert.Equal(t, tt.wantInactive, got.Inactive)
		})
	}
}

func TestSweepAutoDeletable(t *testing.T) {
	f := newChapterFixture(t)
	ctx := context.Background()
	now := time.Now()

	emptyOld := &domain.Chapter{ID: uuid.NewString(), DateContent: now.AddDate(0, 0, -2)}
	emptyToday := &domain.Chapter{ID: uuid.NewString(), DateContent: now}
	filledOld := &domain.Chapter{ID: uuid.NewString(), DateContent: now.AddDate(0, 0, -5)}
	for _, c := range []*domain.Chapter{emptyOld, emptyToday, filledOld} {
		f.chapterRepo.chapters[c.ID] = c
	}
	item := &domain.Item{ID: uuid.NewString(), ChapterID: filledOld.ID, Type: domain.ItemTypeText, Text: "keep"}
	f.itemRepo.items[item.ID] = item

	count, err := f.svc.SweepAutoDeletable(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = f.chapterRepo.GetByID(ctx, emptyOld.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.chapterRepo.GetByID(ctx, emptyToday.ID)
	assert.NoError(t, err)
	_, err = f.chapterRepo.GetByID(ctx, filledOld.ID)
	assert.NoError(t, err)
}
