package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DatabaseType represents the kind of relational store backing the users table.
type DatabaseType string

const (
	DatabaseTypeSQLite DatabaseType = "sqlite"
	DatabaseTypeMySQL  DatabaseType = "mysql"
)

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Type   DatabaseType
	SQLite SQLiteConfig
	MySQL  MySQLConfig
}

// SQLiteConfig holds SQLite specific configuration.
type SQLiteConfig struct {
	Path string
}

// MySQLConfig holds MySQL specific configuration.
type MySQLConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
}

// GetDatabaseConfig builds the database configuration from the environment.
// MySQL is used when MYSQL_HOST is set; otherwise a local SQLite file serves
// as the development fallback.
func GetDatabaseConfig() *DatabaseConfig {
	if os.Getenv("MYSQL_HOST") == "" {
		return &DatabaseConfig{
			Type:   DatabaseTypeSQLite,
			SQLite: SQLiteConfig{Path: getDefaultSQLitePath()},
		}
	}
	return &DatabaseConfig{
		Type: DatabaseTypeMySQL,
		MySQL: MySQLConfig{
			Host:     os.Getenv("MYSQL_HOST"),
			Port:     getEnvInt("MYSQL_PORT", 3306),
			Database: getEnv("MYSQL_DATABASE", "userhub"),
			Username: os.Getenv("MYSQL_USER"),
			Password: os.Getenv("MYSQL_PASSWORD"),
		},
	}
}

// GetDSN returns the data source name for the configured database.
func (c *DatabaseConfig) GetDSN() string {
	switch c.Type {
	case DatabaseTypeMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.MySQL.Username,
			c.MySQL.Password,
			c.MySQL.Host,
			c.MySQL.Port,
			c.MySQL.Database,
		)
	default:
		return c.SQLite.Path
	}
}

// IsMySQL returns true if the database type is MySQL.
func (c *DatabaseConfig) IsMySQL() bool {
	return c.Type == DatabaseTypeMySQL
}

// EnsureDirectoryExists creates the directory holding the SQLite file.
func (c *DatabaseConfig) EnsureDirectoryExists() error {
	if c.Type == DatabaseTypeSQLite {
		dir := filepath.Dir(c.SQLite.Path)
		return os.MkdirAll(dir, 0o755)
	}
	return nil
}

func getDefaultSQLitePath() string {
	if IsDebug() {
		return "db/userhub.db"
	}
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}
