// Package domain 定义领域模型和接口
package domain

import (
	"errors"
	"time"
)

// ItemType 定义条目内容类型，创建后不可变更
type ItemType string

const (
	ItemTypeText          ItemType = "text"
	ItemTypePhoto         ItemType = "photo"
	ItemTypeTextWithPhoto ItemType = "textWithPhoto"
	ItemTypeAudio         ItemType = "audio"
)

// MaxPhotoAttachments 单条目图片附件上限
const MaxPhotoAttachments = 3

// 领域错误定义
var (
	// ErrTooManyAttachments 附件数量超过上限或为空
	ErrTooManyAttachments = errors.New("too many attachments")
	// ErrNotEditable 条目类型不允许编辑
	ErrNotEditable = errors.New("item is not editable")
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("record not found")
	// ErrPersistenceFailed 持久化写入失败
	ErrPersistenceFailed = errors.New("persistence failed")
)

// Item 日志条目领域模型
type Item struct {
	ID        string
	ChapterID string
	Timestamp time.Time
	Type      ItemType
	Text      string
	Sentiment Sentiment
	Media     []*Media
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsEditable 仅纯文本条目允许编辑
func (i *Item) IsEditable() bool {
	return i.Type == ItemTypeText
}

// HasText 判断条目是否携带文本（text / textWithPhoto）
func (i *Item) HasText() bool {
	return i.Type == ItemTypeText || i.Type == ItemTypeTextWithPhoto
}

// ValidateMediaArity 校验条目类型与附件数量的约束
// text 不允许附件；photo/textWithPhoto 需要 1~3 个；audio 恰好 1 个
// 超限时返回 ErrTooManyAttachments，不做静默截断
func ValidateMediaArity(t ItemType, count int) error {
	switch t {
	case ItemTypeText:
		if count != 0 {
			return ErrTooManyAttachments
		}
	case ItemTypePhoto, ItemTypeTextWithPhoto:
		if count == 0 || count > MaxPhotoAttachments {
			return ErrTooManyAttachments
		}
	case ItemTypeAudio:
		if count != 1 {
			return ErrTooManyAttachments
		}
	}
	return nil
}
