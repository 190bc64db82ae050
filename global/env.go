package global

import (
	"github.com/haierkeys/lifeframe-journal-service/pkg/fileurl"
)

var (
	// 程序执行目录
	ROOT string
	Name string = "LifeFrame Journal Service"
)

func init() {

	filename := fileurl.GetExePath()
	ROOT = filename + "/"

}
