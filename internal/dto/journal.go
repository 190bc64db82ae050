// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

// MediaPayload 附件上传载荷，内容为 base64 编码
type MediaPayload struct {
	Kind    string `json:"kind" form:"kind" binding:"required,oneof=image audio"`
	Name    string `json:"name" form:"name"`
	Content string `json:"content" form:"content" binding:"required"`
}

// ItemTextCreateRequest 创建纯文本条目的请求参数
type ItemTextCreateRequest struct {
	Text string `json:"text" form:"text" binding:"required"`
}

// ItemMediaCreateRequest 创建纯媒体条目的请求参数
type ItemMediaCreateRequest struct {
	Media []MediaPayload `json:"media" form:"media" binding:"required,min=1,dive"`
}

// ItemTextMediaCreateRequest 创建图文条目的请求参数
type ItemTextMediaCreateRequest struct {
	Text  string         `json:"text" form:"text" binding:"required"`
	Media []MediaPayload `json:"media" form:"media" binding:"required,min=1,dive"`
}

// ItemModifyRequest 编辑条目文本的请求参数
type ItemModifyRequest struct {
	Text string `json:"text" form:"text" binding:"required"`
}

// SearchRequest 搜索请求参数
type SearchRequest struct {
	Q string `json:"q" form:"q"`
}

// PrivateModeRequest 私密模式开关请求参数
type PrivateModeRequest struct {
	Enabled *bool `json:"enabled" form:"enabled" binding:"required"`
}
