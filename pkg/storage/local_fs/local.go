// Package local_fs 本地文件系统存储后端
package local_fs

import (
	"os"

	"github.com/haierkeys/lifeframe-journal-service/pkg/fileurl"
)

type Config struct {
	SavePath   string `yaml:"save-path" default:"storage/uploads"`
	CustomPath string `yaml:"custom-path"`
}

type LocalFS struct {
	Config *Config
}

func NewClient(conf *Config) (*LocalFS, error) {
	if conf.SavePath == "" {
		conf.SavePath = "storage/uploads"
	}
	return &LocalFS{Config: conf}, nil
}

// getSavePath 返回带斜杠后缀的保存根目录
func (p *LocalFS) getSavePath() string {
	if p.Config.CustomPath != "" {
		return fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/")
	}
	return fileurl.PathSuffixCheckAdd(p.Config.SavePath, "/")
}

// SendContent 将内容写入 pathKey 对应的文件并返回 pathKey
func (p *LocalFS) SendContent(pathKey string, content []byte) (string, error) {
	dst := p.getSavePath() + pathKey

	if err := fileurl.CreatePath(dst, os.ModePerm); err != nil {
		return "", err
	}
	if err := os.WriteFile(dst, content, 0644); err != nil {
		return "", err
	}
	return pathKey, nil
}
