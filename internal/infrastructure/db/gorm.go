package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Pool sizes the database/sql connection pool.
type Pool struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	MaxIdleTime time.Duration
}

var DefaultPool = Pool{MaxOpen: 30, MaxIdle: 10, MaxLifetime: 30 * time.Minute, MaxIdleTime: 10 * time.Minute}

// slowQuery is the duration above which a statement is logged at warn.
const slowQuery = 200 * time.Millisecond

func OpenGorm(dsn string, log *zap.Logger) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn), DefaultPool, log)
}

// OpenGormWithDialector opens with SQL logged through zap, sizes the pool and pings once.
func OpenGormWithDialector(dial gorm.Dialector, pool Pool, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(dial, &gorm.Config{
		Logger:               NewLogger(log, slowQuery),
		DisableAutomaticPing: true,
		NowFunc:              func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(pool.MaxOpen)
	sqlDB.SetMaxIdleConns(pool.MaxIdle)
	sqlDB.SetConnMaxLifetime(pool.MaxLifetime)
	sqlDB.SetConnMaxIdleTime(pool.MaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
