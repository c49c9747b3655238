package dal

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"payment-ipn-api/internal/config"
)

// DSN 构建 MySQL 连接串
func DSN(c config.MysqlCfg) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		c.Username, c.Password, c.Host, c.Port, c.Database, c.Charset)
}

// NewMainDB 连接支付/订单库
func NewMainDB(c config.MysqlCfg, log *logrus.Logger) (*gorm.DB, error) {
	// 慢 SQL 与错误输出到 logrus
	newLogger := logger.New(
		log,
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true, // pending 记录不存在是正常的幂等分支
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(mysql.Open(DSN(c)), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect main db failed: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db failed: %w", err)
	}
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(2 * time.Hour)
	return db, nil
}
