package model

import "github.com/haierkeys/lifeframe-journal-service/pkg/timex"

const TableNameItem = "item"

// Item mapped from table <item>
type Item struct {
	ID        string     `gorm:"column:id;primaryKey" json:"id" form:"id"`
	ChapterID string     `gorm:"column:chapter_id;not null;index:idx_chapter_ts,priority:1" json:"chapterId" form:"chapterId"`
	Timestamp timex.Time `gorm:"column:timestamp;type:datetime;not null;index:idx_chapter_ts,priority:2" json:"timestamp" form:"timestamp"`
	Type      string     `gorm:"column:type;not null" json:"type" form:"type"`
	Text      string     `gorm:"column:text" json:"text" form:"text"`
	Sentiment string     `gorm:"column:sentiment;default:''" json:"sentiment" form:"sentiment"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Item's table name
func (*Item) TableName() string {
	return TableNameItem
}
