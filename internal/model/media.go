package model

import "github.com/haierkeys/lifeframe-journal-service/pkg/timex"

const TableNameMedia = "media"

// Media mapped from table <media>
type Media struct {
	ID         string     `gorm:"column:id;primaryKey" json:"id" form:"id"`
	ItemID     string     `gorm:"column:item_id;not null;index:idx_item" json:"itemId" form:"itemId"`
	Kind       string     `gorm:"column:kind;not null" json:"kind" form:"kind"`
	StorageKey string     `gorm:"column:storage_key;not null" json:"storageKey" form:"storageKey"`
	CreatedAt  timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName Media's table name
func (*Media) TableName() string {
	return TableNameMedia
}
