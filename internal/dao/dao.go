// Package dao 实现数据访问层
package dao

import (
	"fmt"
	"os"
	"time"

	"github.com/haierkeys/lifeframe-journal-service/internal/model"
	"github.com/haierkeys/lifeframe-journal-service/pkg/fileurl"
	"github.com/haierkeys/lifeframe-journal-service/pkg/util"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Database 数据库配置
type Database struct {
	Type         string `yaml:"type" default:"sqlite"`
	Path         string `yaml:"path" default:"storage/database/journal.db"`
	Name         string `yaml:"name" default:""`
	UserName     string `yaml:"user-name" default:""`
	Password     string `yaml:"password" default:""`
	Host         string `yaml:"host" default:""`
	TablePrefix  string `yaml:"table-prefix" default:"lf_"`
	// AutoMigrate 是否启用自动迁移
	AutoMigrate  bool   `yaml:"auto-migrate" default:"true"`
	Charset      string `yaml:"charset" default:"utf8mb4"`
	ParseTime    bool   `yaml:"parse-time" default:"true"`
	MaxIdleConns int    `yaml:"max-idle-conns" default:"10"`
	MaxOpenConns int    `yaml:"max-open-conns" default:"30"`
	// ConnMaxLifetime 连接最大生命周期，支持格式：30m（分钟）、1h（小时）
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// ConnMaxIdleTime 空闲连接最大生命周期
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
}

type Dao struct {
	Db *gorm.DB
}

func New(db *gorm.DB) *Dao {
	return &Dao{Db: db}
}

func (d *Dao) DB() *gorm.DB {
	return d.Db
}

// Migrate 执行全部数据表迁移
func (d *Dao) Migrate() error {
	for _, key := range []string{"Chapter", "Item", "Media"} {
		if err := model.AutoMigrate(d.Db, key); err != nil {
			return err
		}
	}
	return nil
}

func NewDBEngine(c Database, runMode string) (*gorm.DB, error) {

	db, err := gorm.Open(dialector(c), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix, // 表名前缀，`Item` 的表名应该是 `lf_item`
			SingularTable: true,          // 使用单数表名
		},
	})
	if err != nil {
		return nil, err
	}
	if runMode == "debug" {
		db.Config.Logger = logger.Default.LogMode(logger.Info)
	}

	// 获取通用数据库对象 sql.DB ，然后使用其提供的功能
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// SetMaxIdleConns 用于设置连接池中空闲连接的最大数量。
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)

	// SetMaxOpenConns 设置打开数据库连接的最大数量。
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)

	// SetConnMaxLifetime 设置了连接可复用的最大时间。
	if d, err := util.ParseDuration(c.ConnMaxLifetime); err == nil && d > 0 {
		sqlDB.SetConnMaxLifetime(d)
	} else {
		sqlDB.SetConnMaxLifetime(time.Minute * 30)
	}
	if d, err := util.ParseDuration(c.ConnMaxIdleTime); err == nil && d > 0 {
		sqlDB.SetConnMaxIdleTime(d)
	}

	return db, nil
}

func dialector(c Database) gorm.Dialector {
	if c.Type == "mysql" {
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			c.Charset,
			c.ParseTime,
		))
	} else if c.Type == "sqlite" {
		if !fileurl.IsExist(c.Path) {
			fileurl.CreatePath(c.Path, os.ModePerm)
		}
		return sqlite.Open(c.Path)
	}
	return nil
}
