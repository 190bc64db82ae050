// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	Entry EntryServiceConfig // Entry related config // 条目相关配置
}

// EntryServiceConfig entry service configuration
// EntryServiceConfig 条目服务配置
type EntryServiceConfig struct {
	MediaDatePathFormat string // Date directory layout for stored media // 附件按日期分目录的格式（例如 2006/01）
	InactiveAfterDays   int    // Days without entries before the journal counts as inactive // 连续无记录多少天后视为不活跃
}
