package db

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func mockDialector(t *testing.T) (gorm.Dialector, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true, // don't query @@version
	}), mock
}

func TestOpenGormWithDialector_AppliesPool(t *testing.T) {
	dial, mock := mockDialector(t)
	mock.ExpectPing()

	pool := Pool{MaxOpen: 7, MaxIdle: 3, MaxLifetime: time.Minute, MaxIdleTime: time.Minute}
	gdb, err := OpenGormWithDialector(dial, pool, nil)
	if err != nil {
		t.Fatalf("OpenGormWithDialector error: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatal(err)
	}
	if got := sqlDB.Stats().MaxOpenConnections; got != 7 {
		t.Fatalf("MaxOpenConnections = %d, want 7", got)
	}
	if _, ok := gdb.Config.Logger.(*Logger); !ok {
		t.Fatalf("logger = %T, want *db.Logger", gdb.Config.Logger)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOpenGormWithDialector_PingFails(t *testing.T) {
	dial, mock := mockDialector(t)
	mock.ExpectPing().WillReturnError(errors.New("no ping"))

	gdb, err := OpenGormWithDialector(dial, DefaultPool, nil)
	if err == nil {
		t.Fatalf("expected error, got nil (gdb=%v)", gdb)
	}
	if !strings.Contains(err.Error(), "ping database") {
		t.Fatalf("err = %v, want ping context", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
