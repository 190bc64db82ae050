package dto

import (
	"github.com/haierkeys/lifeframe-journal-service/internal/domain"
	"github.com/haierkeys/lifeframe-journal-service/pkg/convert"
	"github.com/haierkeys/lifeframe-journal-service/pkg/timex"
	"github.com/haierkeys/lifeframe-journal-service/pkg/util"
)

// MediaDTO 附件数据传输对象
type MediaDTO struct {
	ID         string     `json:"id" form:"id"`
	Kind       string     `json:"kind" form:"kind"`
	StorageKey string     `json:"storageKey" form:"storageKey"`
	CreatedAt  timex.Time `json:"-"`
}

// ItemDTO 条目数据传输对象
type ItemDTO struct {
	ID        string      `json:"id" form:"id"`
	ChapterID string      `json:"chapterId" form:"chapterId"`
	Timestamp timex.Time  `json:"timestamp" form:"timestamp"`
	Type      string      `json:"type" form:"type"`
	Text      string      `json:"text" form:"text"`
	Sentiment string      `json:"sentiment" form:"sentiment"`
	Hashtags  []string    `json:"hashtags" form:"hashtags"`
	Media     []*MediaDTO `json:"media" form:"media"`
}

// ChapterDTO 章节数据传输对象
type ChapterDTO struct {
	ID          string     `json:"id" form:"id"`
	DateContent timex.Time `json:"dateContent" form:"dateContent"`
	Items       []*ItemDTO `json:"items" form:"items"`
}

// SearchProjectionDTO 搜索投影数据传输对象
// Filtering 为 true 时表示过滤中，Chapters 为上一次完成的投影
type SearchProjectionDTO struct {
	Term      string        `json:"term" form:"term"`
	Filtering bool          `json:"filtering" form:"filtering"`
	Chapters  []*ChapterDTO `json:"chapters" form:"chapters"`
}

// ActivityStatusDTO 记录活跃度数据传输对象
type ActivityStatusDTO struct {
	DaysSinceLastEntry int  `json:"daysSinceLastEntry" form:"daysSinceLastEntry"`
	Inactive           bool `json:"inactive" form:"inactive"`
}

// ToMediaDTO 将附件领域模型转换为 DTO
func ToMediaDTO(m *domain.Media) *MediaDTO {
	if m == nil {
		return nil
	}
	return convert.StructAssign(m, &MediaDTO{}).(*MediaDTO)
}

// ToItemDTO 将条目领域模型转换为 DTO，并提取话题标签
func ToItemDTO(item *domain.Item) *ItemDTO {
	if item == nil {
		return nil
	}
	d := convert.StructAssign(item, &ItemDTO{}).(*ItemDTO)
	d.Media = nil
	for _, m := range item.Media {
		d.Media = append(d.Media, ToMediaDTO(m))
	}
	if item.HasText() {
		d.Hashtags = util.ExtractHashtags(item.Text)
	}
	return d
}

// ToChapterDTO 将章节领域模型转换为 DTO
// private 为 true 时仅保留元信息，隐藏条目内容
func ToChapterDTO(c *domain.Chapter, private bool) *ChapterDTO {
	if c == nil {
		return nil
	}
	d := &ChapterDTO{
		ID:          c.ID,
		DateContent: timex.Time(c.DateContent),
	}
	if private {
		return d
	}
	for _, item := range c.Items {
		d.Items = append(d.Items, ToItemDTO(item))
	}
	return d
}

// ToChapterDTOList 批量转换章节列表
func ToChapterDTOList(chapters []*domain.Chapter, private bool) []*ChapterDTO {
	out := make([]*ChapterDTO, 0, len(chapters))
	for _, c := range chapters {
		out = append(out, ToChapterDTO(c, private))
	}
	return out
}
