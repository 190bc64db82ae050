package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/haierkeys/lifeframe-journal-service/internal/domain"
	"github.com/haierkeys/lifeframe-journal-service/pkg/code"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// 验证图片附件上限：1~3 张成功，其余（含空列表）一律拒绝且不留痕迹

func TestProperty_PhotoAttachmentArity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("photo count accepted iff between 1 and 3", prop.ForAll(
		func(n int) bool {
			f := newEntryFixture(t)
			ctx := context.Background()

			_, err := f.svc.AddMediaItem(ctx, "", photoPayloads(n))
			wantOK := n >= 1 && n <= domain.MaxPhotoAttachments

			if wantOK {
				return err == nil && len(f.itemRepo.items) == 1
			}
			// 拒绝时条目与附件内容都不落地
			return errors.Is(err, code.ErrorTooManyAttachments) &&
				len(f.itemRepo.items) == 0 && len(f.store.stored) == 0
		},
		gen.IntRange(0, 8),
	))

	properties.TestingRun(t)
}

// 验证非文本条目编辑被拒绝且条目保持原样

func TestProperty_NonTextItemsNeverChange(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("editing a non-text item leaves it untouched", prop.ForAll(
		func(itemType string, newText string) bool {
			f := newEntryFixture(t)
			ctx := context.Background()

			chapter := f.addChapter(time.Now())
			item := &domain.Item{
				ID:        uuid.NewString(),
				ChapterID: chapter.ID,
				Type:      domain.ItemType(itemType),
				Text:      "original",
				Sentiment: domain.SentimentNeutral,
			}
			f.itemRepo.items[item.ID] = item

			_, err := f.svc.EditItem(ctx, item.ID, newText)
			if !errors.Is(err, code.ErrorNotEditable) {
				return false
			}
			got := f.itemRepo.items[item.ID]
			return got.Text == "original" && got.Sentiment == domain.SentimentNeutral
		},
		gen.OneConstOf("photo", "textWithPhoto", "audio"),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

// 验证级联删除判定：删除唯一条目后，章节销毁当且仅当它不是今天的章节

func TestProperty_ChapterCascadeOnLastItemDelete(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)

	properties.Property("chapter removed iff not today's", prop.ForAll(
		func(daysAgo int) bool {
			f := newEntryFixture(t)
			ctx := context.Background()

			chapter := f.addChapter(time.Now().AddDate(0, 0, -daysAgo))
			item := &domain.Item{
				ID:        uuid.NewString(),
				ChapterID: chapter.ID,
				Type:      domain.ItemTypeText,
				Text:      "only entry",
			}
			f.itemRepo.items[item.ID] = item

			if err := f.svc.DeleteItem(ctx, item.ID); err != nil {
				return false
			}

			_, err := f.chapterRepo.GetByID(ctx, chapter.ID)
			if daysAgo == 0 {
				return err == nil
			}
			return errors.Is(err, domain.ErrNotFound)
		},
		gen.IntRange(0, 30),
	))

	properties.TestingRun(t)
}

// 验证章节删除的幂等性：重复删除与删除一次结果一致

func TestProperty_ChapterDeleteIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)

	properties.Property("repeated deletes behave like a single delete", prop.ForAll(
		func(times int) bool {
			f := newChapterFixture(t)
			ctx := context.Background()

			chapter := &domain.Chapter{ID: uuid.NewString(), DateContent: time.Now()}
			f.chapterRepo.chapters[chapter.ID] = chapter

			for i := 0; i < times; i++ {
				if err := f.svc.Delete(ctx, chapter.ID); err != nil {
					return false
				}
			}

			_, err := f.chapterRepo.GetByID(ctx, chapter.ID)
			return errors.Is(err, domain.ErrNotFound)
		},
		gen.IntRange(1, 5),
	))

	properties.TestingRun(t)
}
