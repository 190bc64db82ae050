// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/haierkeys/lifeframe-journal-service/internal/dao"
	"github.com/haierkeys/lifeframe-journal-service/internal/enrich"
	"github.com/haierkeys/lifeframe-journal-service/internal/middleware"
	"github.com/haierkeys/lifeframe-journal-service/internal/search"
	"github.com/haierkeys/lifeframe-journal-service/internal/service"
	"github.com/haierkeys/lifeframe-journal-service/pkg/storage"
	"github.com/haierkeys/lifeframe-journal-service/pkg/util"
	"github.com/haierkeys/lifeframe-journal-service/pkg/workerpool"
	"github.com/haierkeys/lifeframe-journal-service/pkg/writequeue"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File     string                  `yaml:"-"` // 配置文件路径，不序列化
	Server   ServerConfig            `yaml:"server"`
	Log      LogConfig               `yaml:"log"`
	Database dao.Database            `yaml:"database"`
	App      AppSettings             `yaml:"app"`
	Search   SearchConfig            `yaml:"search"`
	Enrich   EnrichConfig            `yaml:"enrich"`
	Storage  storage.Config          `yaml:"storage"`
	Tracer   middleware.TracerConfig `yaml:"tracer"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"warn"`
	// File 日志文件路径，默认为 stderr
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 端口
	HttpPort string `yaml:"http-port" default:":9000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen 私有 HTTP 监听地址（监控与调试接口）
	PrivateHttpListen string `yaml:"private-http-listen" default:":9001"`
}

// AppSettings 应用设置
type AppSettings struct {
	// DefaultContextTimeout 默认上下文超时时间（秒）
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
	// MediaDatePathFormat 附件按日期分目录的格式
	MediaDatePathFormat string `yaml:"media-date-path-format" default:"2006/01"`
	// InactiveAfterDays 连续无记录多少天后视为不活跃
	InactiveAfterDays int `yaml:"inactive-after-days" default:"7"`
	// SweepSchedule 空章节清理任务的 cron 表达式
	SweepSchedule string `yaml:"sweep-schedule" default:"10 0 * * *"`

	// Worker Pool 配置
	WorkerPoolMaxWorkers int `yaml:"worker-pool-max-workers" default:"100"`
	WorkerPoolQueueSize  int `yaml:"worker-pool-queue-size" default:"1000"`

	// Write Queue 配置
	WriteQueueCapacity int    `yaml:"write-queue-capacity" default:"100"`
	WriteQueueTimeout  string `yaml:"write-queue-timeout" default:"30s"`
	WriteQueueIdleTime string `yaml:"write-queue-idle-time" default:"10m"`
}

// SearchConfig 搜索配置
type SearchConfig struct {
	// DebounceDelay 按键防抖延迟，支持格式：500ms、1s
	DebounceDelay string `yaml:"debounce-delay" default:"500ms"`
}

// EnrichConfig 情感富集配置
type EnrichConfig struct {
	// CacheSize 分类结果缓存容量
	CacheSize int `yaml:"cache-size" default:"512"`
	// TaskTimeout 单次分类任务超时
	TaskTimeout string `yaml:"task-timeout" default:"10s"`
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	// 设置默认值
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	err = yaml.Unmarshal(file, c)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// 再次设置默认值，以填充 YAML 中存在但值为空的字段
	// defaults.Set 只有在字段为该类型的零值时才会填充
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "re-set default config failed")
	}

	return c, realpath, nil
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	err = os.WriteFile(c.File, data, 0644)
	if err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}

// GetWorkerPoolConfig 获取 Worker Pool 配置
func (c *AppConfig) GetWorkerPoolConfig() workerpool.Config {
	cfg := workerpool.DefaultConfig()

	if c.App.WorkerPoolMaxWorkers > 0 {
		cfg.MaxWorkers = c.App.WorkerPoolMaxWorkers
	}
	if c.App.WorkerPoolQueueSize > 0 {
		cfg.QueueSize = c.App.WorkerPoolQueueSize
	}

	return cfg
}

// GetWriteQueueConfig 获取 Write Queue 配置
func (c *AppConfig) GetWriteQueueConfig() writequeue.Config {
	cfg := writequeue.DefaultConfig()

	if c.App.WriteQueueCapacity > 0 {
		cfg.QueueCapacity = c.App.WriteQueueCapacity
	}
	if c.App.WriteQueueTimeout != "" {
		if timeout, err := util.ParseDuration(c.App.WriteQueueTimeout); err == nil {
			cfg.WriteTimeout = timeout
		}
	}
	if c.App.WriteQueueIdleTime != "" {
		if idleTime, err := util.ParseDuration(c.App.WriteQueueIdleTime); err == nil {
			cfg.IdleTimeout = idleTime
		}
	}

	return cfg
}

// GetSearchConfig 获取搜索协调器配置
func (c *AppConfig) GetSearchConfig() search.Config {
	cfg := search.Config{}
	if c.Search.DebounceDelay != "" {
		if delay, err := util.ParseDuration(c.Search.DebounceDelay); err == nil {
			cfg.DebounceDelay = delay
		}
	}
	return cfg
}

// GetEnrichConfig 获取情感富集配置
func (c *AppConfig) GetEnrichConfig() enrich.Config {
	cfg := enrich.Config{CacheSize: c.Enrich.CacheSize}
	if c.Enrich.TaskTimeout != "" {
		if timeout, err := util.ParseDuration(c.Enrich.TaskTimeout); err == nil {
			cfg.TaskTimeout = timeout
		}
	}
	return cfg
}

// GetServiceConfig 获取 Service 层配置
func (c *AppConfig) GetServiceConfig() service.ServiceConfig {
	return service.ServiceConfig{
		Entry: service.EntryServiceConfig{
			MediaDatePathFormat: c.App.MediaDatePathFormat,
			InactiveAfterDays:   c.App.InactiveAfterDays,
		},
	}
}

// GetContextTimeout 获取默认请求上下文超时时间
func (c *AppConfig) GetContextTimeout() time.Duration {
	if c.App.DefaultContextTimeout <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.App.DefaultContextTimeout) * time.Second
}
