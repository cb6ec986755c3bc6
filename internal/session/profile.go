package session

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DBType selects the backend dialect.
type DBType string

const (
	DBTypeSQLite   DBType = "sqlite"
	DBTypePostgres DBType = "postgresql"
	DBTypeMySQL    DBType = "mysql"
)

// Pool bounds for the client-server dialects. The sqlite backend is a
// single file and effectively single-writer.
const (
	maxIdleConns    = 3
	maxOpenConns    = 10
	connMaxLifetime = time.Hour
)

// Profile carries everything needed to open a backing data source. The
// password arrives already decrypted; encryption at rest is handled by the
// profile-file collaborator.
type Profile struct {
	Type     DBType
	Path     string // sqlite file path
	Host     string
	Port     int
	Database string
	User     string
	Password string

	// CoderID is the coder this session works as.
	CoderID int64
	// RefreshInterval drives the coder-change poller; zero disables it.
	RefreshInterval time.Duration
}

// DSN renders the dialect-specific connection string.
func (p Profile) DSN() string {
	switch p.Type {
	case DBTypePostgres:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
			p.Host, p.User, p.Password, p.Database, p.Port)
	case DBTypeMySQL:
		// clientFoundRows makes UPDATE report matched rows instead of
		// changed rows, which the value upserts rely on
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&clientFoundRows=true",
			p.User, p.Password, p.Host, p.Port, p.Database)
	default:
		// foreign keys are off by default in sqlite
		return p.Path + "?_fk=1"
	}
}

// Open builds a gorm connection from the profile: a bounded pool for the
// client-server dialects, a single file handle for sqlite.
func Open(p Profile) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch p.Type {
	case DBTypePostgres:
		dialector = postgres.Open(p.DSN())
	case DBTypeMySQL:
		dialector = mysql.Open(p.DSN())
	case DBTypeSQLite:
		dialector = sqlite.Open(p.DSN())
	default:
		return nil, fmt.Errorf("unknown database type %q", p.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if p.Type != DBTypeSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxIdleConns(maxIdleConns)
		sqlDB.SetMaxOpenConns(maxOpenConns)
		sqlDB.SetConnMaxLifetime(connMaxLifetime)
	}

	return db, nil
}
