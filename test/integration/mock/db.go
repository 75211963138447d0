// Package mock provides in-memory test doubles for external dependencies.
package mock

import (
	"database/sql"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dompetku/backend/internal/integration/persistence/model"
)

var dbOnce sync.Once
var db *Db

// Db wraps a shared in-memory SQLite connection for integration tests.
type Db struct {
	Conn   *gorm.DB
	models []any
}

// NewDb opens the shared in-memory database and migrates the schema. The
// connection is a singleton: SQLite keeps the schema alive only while at
// least one connection is open.
func NewDb() *Db {
	dbOnce.Do(func() {
		db = open()
	})
	return db
}

func open() *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	// A single connection keeps every session on the same in-memory schema.
	dbSQL.SetMaxOpenConns(1)

	conn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database: " + err.Error())
	}

	models := []any{
		&model.UserModel{},
		&model.RefreshTokenModel{},
		&model.CategoryModel{},
		&model.WalletModel{},
		&model.TransactionModel{},
		&model.BudgetModel{},
		&model.WalletShareModel{},
	}

	if err := conn.AutoMigrate(models...); err != nil {
		panic("failed to migrate schema: " + err.Error())
	}

	return &Db{
		Conn:   conn,
		models: models,
	}
}

// Reset removes every row from every table so each scenario starts clean.
func (d *Db) Reset() error {
	for _, m := range d.models {
		err := d.Conn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error
		if err != nil {
			return err
		}
	}
	return nil
}
