// Package database manages the GORM connection to the users store.
package database

import (
	"errors"
	"log"
	"strings"

	"userhub/config"
	"userhub/database/model"
	"userhub/util/common"
	"userhub/util/crypto"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin"
	defaultAdminEmail    = "admin@localhost"
)

// Dialector picks the GORM driver from the environment-supplied database
// configuration: MySQL when configured, a local SQLite file otherwise.
func Dialector() (gorm.Dialector, error) {
	cfg := config.GetDatabaseConfig()
	if err := cfg.EnsureDirectoryExists(); err != nil {
		return nil, err
	}
	if cfg.IsMySQL() {
		return mysql.Open(cfg.GetDSN()), nil
	}
	return sqlite.Open(cfg.GetDSN()), nil
}

func initModels() error {
	models := []any{
		&model.User{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// initAdmin seeds the administrator account when the table is empty. The
// admin row never shows up in the public directory listing.
func initAdmin() error {
	empty, err := isTableEmpty("users")
	if err != nil {
		log.Printf("Error checking if users table is empty: %v", err)
		return err
	}
	if !empty {
		return nil
	}
	hash, err := crypto.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}
	admin := &model.User{
		FirstName: "Default",
		LastName:  "Admin",
		Username:  defaultAdminUsername,
		Email:     defaultAdminEmail,
		Password:  hash,
		Role:      model.RoleAdmin,
	}
	return db.Create(admin).Error
}

func isTableEmpty(tableName string) (bool, error) {
	var count int64
	err := db.Table(tableName).Count(&count).Error
	return count == 0, err
}

// InitDB opens the store through the given dialector, migrates the schema and
// seeds the admin account.
func InitDB(dialector gorm.Dialector) error {
	var gormLogger gormlogger.Interface
	if config.IsDebug() {
		gormLogger = gormlogger.Default
	} else {
		gormLogger = gormlogger.Discard
	}

	c := &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	}

	var err error
	db, err = gorm.Open(dialector, c)
	if err != nil {
		return err
	}

	if err := initModels(); err != nil {
		return err
	}
	return initAdmin()
}

// CloseDB closes the underlying connection pool.
func CloseDB() error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping probes store connectivity for the health endpoint.
func Ping() error {
	if db == nil {
		return common.NewErrorf("database not initialized")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports whether err is a unique-constraint violation. GORM's
// error translation covers both drivers; the text checks catch paths the
// translation misses (MySQL 1062, SQLite 2067).
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
