package local_fs

import (
	"os"

	"github.com/haierkeys/lifeframe-journal-service/pkg/fileurl"
)

// Delete 删除 fileKey 对应的文件，文件不存在时为 no-op
func (p *LocalFS) Delete(fileKey string) error {
	dstFileKey := p.getSavePath() + fileKey
	if fileurl.IsExist(dstFileKey) {
		return os.Remove(dstFileKey)
	}
	return nil
}
