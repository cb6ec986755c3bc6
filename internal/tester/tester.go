package tester

import (
	"context"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openqda/qda/internal/store"
)

const (
	testPath = "../../.test/"

	// AdminPassword is the clear-text admin password seeded into test
	// databases.
	AdminPassword = "admin"
)

var (
	db *gorm.DB
	st store.Store
)

// Setup creates a fresh sqlite database with the full schema and seed rows.
// Every call gets its own file, so parallel test packages do not collide.
func Setup() {
	_ = os.Setenv("ENV", "test")

	err := os.MkdirAll(testPath+"db", os.ModePerm)
	if err != nil {
		panic(err)
	}

	path := testPath + "db/" + uuid.New().String() + ".db"
	db, err = gorm.Open(sqlite.Open(path+"?_fk=1"), &gorm.Config{TranslateError: true})
	if err != nil {
		panic(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	st = store.NewGormStore(db)
	if err := st.CreateSchema(context.Background(), string(hash)); err != nil {
		panic(err)
	}
}

func TestDB() *gorm.DB {
	return db
}

func TestStore() store.Store {
	return st
}

// Provider returns a static provider for the current test store.
func Provider() store.Provider {
	return store.StaticProvider{S: st}
}

func RemoveDBFile() {
	err := os.RemoveAll(testPath)
	if err != nil {
		panic(err)
	}
}
