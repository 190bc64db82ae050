package service

import (
	"context"
	"encoding/base64"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/haierkeys/lifeframe-journal-service/internal/domain"
	"github.com/haierkeys/lifeframe-journal-service/internal/dto"
	"github.com/haierkeys/lifeframe-journal-service/pkg/code"
	"github.com/haierkeys/lifeframe-journal-service/pkg/writequeue"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockChapterRepo struct {
	domain.ChapterRepository
	chapters    map[string]*domain.Chapter
	items       *mockItemRepo
	deleted     []string
	getByIDHook func(snapshot *domain.Chapter)
}

func newMockChapterRepo() *mockChapterRepo {
	return &mockChapterRepo{chapters: make(map[string]*domain.Chapter)}
}

// withItems 返回填充了条目切片的章节副本，对齐真实仓储的读取行为
func (m *mockChapterRepo) withItems(c *domain.Chapter) *domain.Chapter {
	filled := *c
	filled.Items = nil
	if m.items != nil {
		filled.Items, _ = m.items.ListByChapter(context.Background(), c.ID)
	}
	return &filled
}

func (m *mockChapterRepo) GetByID(ctx context.Context, id string) (*domain.Chapter, error) {
	if c, ok := m.chapters[id]; ok {
		snapshot := m.withItems(c)
		if m.getByIDHook != nil {
			m.getByIDHook(snapshot)
		}
		return snapshot, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockChapterRepo) GetByDay(ctx context.Context, day time.Time) (*domain.Chapter, error) {
	for _, c := range m.chapters {
		if c.DateContent.Year() == day.Year() && c.DateContent.YearDay() == day.YearDay() {
			return m.withItems(c), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockChapterRepo) GetLatest(ctx context.Context) (*domain.Chapter, error) {
	var latest *domain.Chapter
	for _, c := range m.chapters {
		if latest == nil || c.DateContent.After(latest.DateContent) {
			latest = c
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	return m.withItems(latest), nil
}

func (m *mockChapterRepo) List(ctx context.Context) ([]*domain.Chapter, error) {
	var out []*domain.Chapter
	for _, c := range m.chapters {
		out = append(out, m.withItems(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateContent.Before(out[j].DateContent) })
	return out, nil
}

func (m *mockChapterRepo) ListAutoDeletable(ctx context.Context, now time.Time) ([]*domain.Chapter, error) {
	chapters, _ := m.List(ctx)
	var out []*domain.Chapter
	for _, c := range chapters {
		if c.ShouldAutoDelete(now) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockChapterRepo) Create(ctx context.Context, chapter *domain.Chapter) (*domain.Chapter, error) {
	m.chapters[chapter.ID] = chapter
	return chapter, nil
}

func (m *mockChapterRepo) Delete(ctx context.Context, id string) error {
	// 对齐真实仓储：章节删除级联清除条目行
	if m.items != nil {
		_ = m.items.DeleteByChapter(ctx, id)
	}
	delete(m.chapters, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockItemRepo struct {
	domain.ItemRepository
	items     map[string]*domain.Item
	createErr error
}

func newMockItemRepo() *mockItemRepo {
	return &mockItemRepo{items: make(map[string]*domain.Item)}
}

func (m *mockItemRepo) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	if item, ok := m.items[id]; ok {
		return item, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockItemRepo) ListByChapter(ctx context.Context, chapterID string) ([]*domain.Item, error) {
	var out []*domain.Item
	for _, item := range m.items {
		if item.ChapterID == chapterID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockItemRepo) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.items[item.ID] = item
	return item, nil
}

func (m *mockItemRepo) UpdateText(ctx context.Context, id string, text string) error {
	item, ok := m.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	item.Text = text
	return nil
}

func (m *mockItemRepo) UpdateSentiment(ctx context.Context, id string, sentiment domain.Sentiment) error {
	item, ok := m.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	item.Sentiment = sentiment
	return nil
}

func (m *mockItemRepo) Delete(ctx context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *mockItemRepo) DeleteByChapter(ctx context.Context, chapterID string) error {
	for id, item := range m.items {
		if item.ChapterID == chapterID {
			delete(m.items, id)
		}
	}
	return nil
}

func (m *mockItemRepo) CountByChapter(ctx context.Context, chapterID string) (int64, error) {
	var count int64
	for _, item := range m.items {
		if item.ChapterID == chapterID {
			count++
		}
	}
	return count, nil
}

type mockStorage struct {
	stored  []string
	deleted []string
	sendErr error
}

func (m *mockStorage) SendContent(pathKey string, content []byte) (string, error) {
	if m.sendErr != nil {
		return "", m.sendErr
	}
	m.stored = append(m.stored, pathKey)
	return pathKey, nil
}

func (m *mockStorage) Delete(pathKey string) error {
	m.deleted = append(m.deleted, pathKey)
	return nil
}

type mockEnricher struct {
	enqueued []*domain.Item
}

func (m *mockEnricher) Enqueue(item *domain.Item) {
	m.enqueued = append(m.enqueued, item)
}

type entryFixture struct {
	chapterRepo *mockChapterRepo
	itemRepo    *mockItemRepo
	store       *mockStorage
	enricher    *mockEnricher
	chapterSvc  ChapterService
	svc         EntryService
	wq          *writequeue.Manager
}

func newEntryFixture(t *testing.T) *entryFixture {
	t.Helper()

	f := &entryFixture{
		chapterRepo: newMockChapterRepo(),
		itemRepo:    newMockItemRepo(),
		store:       &mockStorage{},
		enricher:    &mockEnricher{},
	}
	f.chapterRepo.items = f.itemRepo
	wq := newTestWriteQueue(t)
	f.wq = wq
	notifier := NewNotifier()
	f.chapterSvc = NewChapterService(f.chapterRepo, f.itemRepo, f.store, wq, notifier, nil, ServiceConfig{})
	f.svc = NewEntryService(f.itemRepo, f.chapterRepo, f.chapterSvc, f.store, wq, notifier, f.enricher, nil, ServiceConfig{})
	return f
}

// addChapter 预置一个指定日期的章节
func (f *entryFixture) addChapter(day time.Time) *domain.Chapter {
	c := &domain.Chapter{ID: uuid.NewString(), DateContent: day}
	f.chapterRepo.chapters[c.ID] = c
	return c
}

func photoPayloads(n int) []dto.MediaPayload {
	payloads := make([]dto.MediaPayload, 0, n)
	for i := 0; i < n; i++ {
		payloads = append(payloads, dto.MediaPayload{
			Kind:    "image",
			Name:    "photo.jpg",
			Content: base64.StdEncoding.EncodeToString([]byte("fake-jpeg")),
		})
	}
	return payloads
}

func TestAddTextItem(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	got, err := f.svc.AddTextItem(ctx, "", "today was good #sunny")
	require.NoError(t, err)

	assert.Equal(t, string(domain.SentimentPending), got.Sentiment)
	assert.Equal(t, []string{"sunny"}, got.Hashtags)

	// 今日章节隐式创建
	chapter, err := f.chapterRepo.GetByDay(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, chapter.ID, got.ChapterID)

	// 调度了一次异步分类
	require.Len(t, f.enricher.enqueued, 1)
	assert.Equal(t, got.ID, f.enricher.enqueued[0].ID)
}

func TestAddMediaItem(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	got, err := f.svc.AddMediaItem(ctx, "", photoPayloads(2))
	require.NoError(t, err)

	assert.Equal(t, string(domain.ItemTypePhoto), got.Type)
	assert.Equal(t, string(domain.SentimentNeutral), got.Sentiment)
	assert.Len(t, got.Media, 2)
	assert.Len(t, f.store.stored, 2)

	// 纯媒体条目不参与情感分类
	assert.Empty(t, f.enricher.enqueued)
}

func TestAddMediaItem_TooManyPhotos(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddMediaItem(ctx, "", photoPayloads(4))
	assert.ErrorIs(t, err, code.ErrorTooManyAttachments)

	// 拒绝时不落任何数据
	assert.Empty(t, f.store.stored)
	assert.Empty(t, f.itemRepo.items)
}

func TestAddMediaItem_EmptyMedia(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddMediaItem(ctx, "", nil)
	assert.ErrorIs(t, err, code.ErrorTooManyAttachments)

	_, err = f.svc.AddTextAndMediaItem(ctx, "", "no photos", []dto.MediaPayload{})
	assert.ErrorIs(t, err, code.ErrorTooManyAttachments)

	assert.Empty(t, f.itemRepo.items)
}

func TestAddMediaItem_MixedKinds(t *testing.T) {
	f := newEntryFixture(t)

	payloads := photoPayloads(1)
	payloads = append(payloads, dto.MediaPayload{
		Kind:    "audio",
		Content: base64.StdEncoding.EncodeToString([]byte("fake-audio")),
	})

	_, err := f.svc.AddMediaItem(context.Background(), "", payloads)
	require.Error(t, err)
	var c *code.Code
	require.ErrorAs(t, err, &c)
	assert.Equal(t, code.ErrorInvalidParams.Code(), c.Code())
}

func TestAddMediaItem_AudioArity(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	audio := func(n int) []dto.MediaPayload {
		var payloads []dto.MediaPayload
		for i := 0; i < n; i++ {
			payloads = append(payloads, dto.MediaPayload{
				Kind:    "audio",
				Content: base64.StdEncoding.EncodeToString([]byte("voice")),
			})
		}
		return payloads
	}

	got, err := f.svc.AddMediaItem(ctx, "", audio(1))
	require.NoError(t, err)
	assert.Equal(t, string(domain.ItemTypeAudio), got.Type)

	_, err = f.svc.AddMediaItem(ctx, "", audio(2))
	assert.ErrorIs(t, err, code.ErrorTooManyAttachments)
}

func TestAddTextAndMediaItem(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	got, err := f.svc.AddTextAndMediaItem(ctx, "", "beach day", photoPayloads(3))
	require.NoError(t, err)

	assert.Equal(t, string(domain.ItemTypeTextWithPhoto), got.Type)
	assert.Equal(t, string(domain.SentimentPending), got.Sentiment)
	assert.Len(t, got.Media, 3)
	assert.Len(t, f.enricher.enqueued, 1)
}

func TestAddItem_PersistenceFailureRollsBackBlobs(t *testing.T) {
	f := newEntryFixture(t)
	f.itemRepo.createErr = errors.New("disk full")

	_, err := f.svc.AddMediaItem(context.Background(), "", photoPayloads(2))
	require.Error(t, err)
	var c *code.Code
	require.ErrorAs(t, err, &c)
	assert.Equal(t, code.ErrorPersistenceFailed.Code(), c.Code())

	// 已写入的附件内容被回滚
	assert.Len(t, f.store.deleted, 2)
	assert.Empty(t, f.itemRepo.items)
}

func TestEditItem(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	created, err := f.svc.AddTextItem(ctx, "", "draft")
	require.NoError(t, err)
	f.enricher.enqueued = nil

	got, err := f.svc.EditItem(ctx, created.ID, "final")
	require.NoError(t, err)
	assert.Equal(t, "final", got.Text)

	// 编辑不触发重新分类
	assert.Empty(t, f.enricher.enqueued)
}

func TestEditItem_NotEditable(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	created, err := f.svc.AddMediaItem(ctx, "", photoPayloads(1))
	require.NoError(t, err)

	_, err = f.svc.EditItem(ctx, created.ID, "sneaky caption")
	assert.ErrorIs(t, err, code.ErrorNotEditable)

	// 条目保持原样
	item := f.itemRepo.items[created.ID]
	assert.Empty(t, item.Text)
}

func TestEditItem_NotFound(t *testing.T) {
	f := newEntryFixture(t)

	_, err := f.svc.EditItem(context.Background(), "missing", "text")
	assert.ErrorIs(t, err, code.ErrorNotFound)
}

func TestDeleteItem_CascadesEmptyPastChapter(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	yesterday := f.addChapter(time.Now().AddDate(0, 0, -1))
	item := &domain.Item{
		ID: uuid.NewString(), ChapterID: yesterday.ID,
		Type: domain.ItemTypeText, Text: "old entry", Sentiment: domain.SentimentPositive,
	}
	f.itemRepo.items[item.ID] = item

	require.NoError(t, f.svc.DeleteItem(ctx, item.ID))

	// 昨天的章节变空，随条目一并销毁
	_, err := f.chapterRepo.GetByID(ctx, yesterday.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteItem_CascadeSerializedWithLateWrite(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	yesterday := f.addChapter(time.Now().AddDate(0, 0, -1))
	item := &domain.Item{
		ID: uuid.NewString(), ChapterID: yesterday.ID,
		Type: domain.ItemTypeText, Text: "old entry",
	}
	f.itemRepo.items[item.ID] = item

	// 级联判定读到空快照的瞬间，另一个写入者向同章节提交新条目。
	// 判定与章节删除和条目删除同在一个队列闭包时，该提交只能排到
	// 级联之后，不会被章节级联清除
	late := &domain.Item{
		ID: uuid.NewString(), ChapterID: yesterday.ID,
		Type: domain.ItemTypeText, Text: "late entry",
	}
	committed := make(chan error, 1)
	f.chapterRepo.getByIDHook = func(snapshot *domain.Chapter) {
		f.chapterRepo.getByIDHook = nil
		go func() {
			committed <- f.wq.Execute(ctx, yesterday.ID, func() error {
				_, err := f.itemRepo.Create(ctx, late)
				return err
			})
		}()
		// 给写入者充分的抢跑窗口
		time.Sleep(100 * time.Millisecond)
	}

	require.NoError(t, f.svc.DeleteItem(ctx, item.ID))
	require.NoError(t, <-committed)

	// 排在级联之后提交的条目必须存活
	_, err := f.itemRepo.GetByID(ctx, late.ID)
	assert.NoError(t, err)
}

func TestDeleteItem_KeepsTodayChapter(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	created, err := f.svc.AddTextItem(ctx, "", "ephemeral")
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteItem(ctx, created.ID))

	// 今日章节即使变空也保留
	_, err = f.chapterRepo.GetByID(ctx, created.ChapterID)
	assert.NoError(t, err)
}

func TestDeleteItem_Idempotent(t *testing.T) {
	f := newEntryFixture(t)
	assert.NoError(t, f.svc.DeleteItem(context.Background(), "never-existed"))
}

func TestDeleteItem_RemovesMediaBlobs(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	created, err := f.svc.AddMediaItem(ctx, "", photoPayloads(2))
	require.NoError(t, err)
	require.Len(t, f.store.stored, 2)

	require.NoError(t, f.svc.DeleteItem(ctx, created.ID))
	assert.Len(t, f.store.deleted, 2)
}

func TestDeleteAllItems_KeepsChapter(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	yesterday := f.addChapter(time.Now().AddDate(0, 0, -1))
	for _, text := range []string{"one", "two"} {
		item := &domain.Item{
			ID: uuid.NewString(), ChapterID: yesterday.ID,
			Type: domain.ItemTypeText, Text: text,
		}
		f.itemRepo.items[item.ID] = item
	}

	require.NoError(t, f.svc.DeleteAllItems(ctx, yesterday.ID))

	count, err := f.itemRepo.CountByChapter(ctx, yesterday.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// 清空不销毁章节，即使它已空且不是今天
	_, err = f.chapterRepo.GetByID(ctx, yesterday.ID)
	assert.NoError(t, err)
}
