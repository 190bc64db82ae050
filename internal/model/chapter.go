package model

import "github.com/haierkeys/lifeframe-journal-service/pkg/timex"

const TableNameChapter = "chapter"

// Chapter mapped from table <chapter>
type Chapter struct {
	ID          string     `gorm:"column:id;primaryKey" json:"id" form:"id"`
	DateContent timex.Time `gorm:"column:date_content;type:datetime;not null;index:idx_date_content" json:"dateContent" form:"dateContent"`
	CreatedAt   timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt   timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Chapter's table name
func (*Chapter) TableName() string {
	return TableNameChapter
}
