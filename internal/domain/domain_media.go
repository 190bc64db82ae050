package domain

import "time"

// MediaKind 附件类型
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindAudio MediaKind = "audio"
)

// Media 附件领域模型
// 生命周期严格绑定所属条目：随条目创建，随条目删除，不跨条目共享
type Media struct {
	ID         string
	ItemID     string
	Kind       MediaKind
	StorageKey string
	CreatedAt  time.Time
}
