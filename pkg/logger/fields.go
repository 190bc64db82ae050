package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldChapterID 章节 ID 字段
	FieldChapterID = "chapterId"

	// FieldItemID 条目 ID 字段
	FieldItemID = "itemId"

	// FieldStorageKey 附件存储键字段
	FieldStorageKey = "storageKey"

	// FieldSentiment 情感标签字段
	FieldSentiment = "sentiment"

	// FieldTerm 搜索词字段
	FieldTerm = "term"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldError 错误信息字段
	FieldError = "error"

	// FieldCount 数量字段
	FieldCount = "count"
)
