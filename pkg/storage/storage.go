// Package storage 提供附件 blob 存储的统一入口
// 核心只持有 storage key，不持有字节内容
package storage

import (
	"errors"

	"github.com/haierkeys/lifeframe-journal-service/pkg/storage/local_fs"
)

type Type = string

const LOCAL Type = "localfs"

var StorageTypeMap = map[Type]bool{
	LOCAL: true,
}

var ErrInvalidStorageType = errors.New("invalid storage type")

// Config Unified storage configuration
type Config struct {
	Type Type `yaml:"type" default:"localfs"`

	// Local FS
	SavePath   string `yaml:"save-path" default:"storage/uploads"`
	CustomPath string `yaml:"custom-path"`
}

// Storager 附件存储接口
type Storager interface {
	// SendContent 保存内容并返回 storage key
	SendContent(pathKey string, content []byte) (string, error)
	// Delete 删除 storage key 对应的内容，key 不存在时为 no-op
	Delete(pathKey string) error
}

func NewClient(config *Config) (Storager, error) {
	if config == nil {
		return nil, ErrInvalidStorageType
	}

	switch config.Type {
	case LOCAL:
		return local_fs.NewClient(&local_fs.Config{
			SavePath:   config.SavePath,
			CustomPath: config.CustomPath,
		})
	}
	return nil, ErrInvalidStorageType
}
