package db

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: conn,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}
	return gormDB, mock
}

func TestNewDBReplacesSingleton(t *testing.T) {
	gormDB, mock := NewMockDB(t)

	NewDB(gormDB)
	assert.Same(t, gormDB, GetDb())

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow(1, "asha@example.com"))

	var row struct {
		ID    uint
		Email string
	}
	err := GetDb().Raw(`SELECT * FROM "users"`).Scan(&row).Error
	assert.NoError(t, err)
	assert.Equal(t, "asha@example.com", row.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}
