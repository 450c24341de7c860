package database

import (
	"fmt"
	"strings"

	"hostel/config"
	"hostel/ledger"
	"hostel/models"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 存储驱动
const (
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

var DB *gorm.DB

// Init 初始化数据库连接
func Init(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(cfg.Database.LogLevel)),
		// 唯一索引冲突转换为 gorm.ErrDuplicatedKey，加入码重试依赖此行为
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 连接池配置
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(positiveOr(cfg.Database.MaxIdleConns, 10))
	sqlDB.SetMaxOpenConns(positiveOr(cfg.Database.MaxOpenConns, 100))

	if err := Migrate(DB); err != nil {
		return err
	}

	zap.L().Info("数据库初始化成功",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName))
	return nil
}

// Migrate 自动迁移数据库表
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Room{},
		&models.User{},
		&models.Expense{},
	); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	return nil
}

// NewStore 按配置创建账本存储
func NewStore(cfg *config.Config) (ledger.Store, error) {
	switch strings.ToLower(cfg.Database.Driver) {
	case DriverMemory:
		zap.L().Warn("使用内存存储，进程退出后数据丢失")
		return ledger.NewMemoryStore(), nil
	case "", DriverMySQL:
		if err := Init(cfg); err != nil {
			return nil, err
		}
		return ledger.NewGormStore(DB), nil
	default:
		return nil, fmt.Errorf("不支持的存储驱动: %s", cfg.Database.Driver)
	}
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func positiveOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
