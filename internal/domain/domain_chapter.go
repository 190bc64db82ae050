package domain

import (
	"time"

	"github.com/haierkeys/lifeframe-journal-service/pkg/timex"
)

// Chapter 章节领域模型，按自然日组织条目
type Chapter struct {
	ID          string
	DateContent time.Time
	Items       []*Item
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsToday 判断章节是否为今天的章节
func (c *Chapter) IsToday() bool {
	return timex.IsToday(c.DateContent)
}

// IsEmpty 判断章节是否不含任何条目
func (c *Chapter) IsEmpty() bool {
	return len(c.Items) == 0
}

// ShouldAutoDelete 级联删除判定
// 章节为空且不是今天的章节时，随最后一个条目的删除一并销毁
func (c *Chapter) ShouldAutoDelete(now time.Time) bool {
	return c.IsEmpty() && !timex.SameDay(c.DateContent, now)
}
