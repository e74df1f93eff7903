package migration

import (
	"errors"
	"testing"

	"github.com/SscSPs/invoice_drafting_app/internal/platform/config"
	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockMigrator is a mock for the Migrator interface
type MockMigrator struct {
	mock.Mock
}

func (m *MockMigrator) Up() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockMigrator) Down() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockMigrator) Close() (error, error) {
	args := m.Called()
	return args.Error(0), args.Error(1)
}

func sqliteConfig() *config.Config {
	return &config.Config{StorageDriver: config.StorageSQLite, SQLitePath: "drafts.db", MigrationsPath: "migrations"}
}

func TestMigration_Up_Success(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(nil)
	mockM.On("Close").Return(nil, nil)

	var gotSource, gotDB string
	engine := func(source, db string) (Migrator, error) {
		gotSource, gotDB = source, db
		return mockM, nil
	}

	err := NewMigration(sqliteConfig(), engine).Up()

	assert.NoError(t, err)
	assert.Equal(t, "file://migrations/sqlite", gotSource)
	assert.Equal(t, "sqlite3://drafts.db", gotDB)
	mockM.AssertExpectations(t)
}

func TestMigration_Up_NoChange(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(migrate.ErrNoChange)
	mockM.On("Close").Return(nil, nil)

	engine := func(source, db string) (Migrator, error) { return mockM, nil }

	assert.NoError(t, NewMigration(sqliteConfig(), engine).Up())
	mockM.AssertExpectations(t)
}

func TestMigration_Up_FailureAndCloseError(t *testing.T) {
	mockM := new(MockMigrator)
	upErr := errors.New("dirty database")
	closeErr := errors.New("close failed")
	mockM.On("Up").Return(upErr)
	mockM.On("Close").Return(nil, closeErr)

	engine := func(source, db string) (Migrator, error) { return mockM, nil }

	err := NewMigration(sqliteConfig(), engine).Up()
	assert.ErrorIs(t, err, upErr)
	assert.ErrorIs(t, err, closeErr)
}

func TestMigration_Up_EngineError(t *testing.T) {
	engine := func(source, db string) (Migrator, error) {
		return nil, errors.New("engine crash")
	}

	err := NewMigration(sqliteConfig(), engine).Up()

	assert.Error(t, err)
	assert.Equal(t, "engine crash", err.Error())
}

func TestMigration_Down(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Down").Return(nil)
	mockM.On("Close").Return(nil, nil)

	engine := func(source, db string) (Migrator, error) { return mockM, nil }

	assert.NoError(t, NewMigration(sqliteConfig(), engine).Down())
	mockM.AssertExpectations(t)
}

func TestMigration_URLs(t *testing.T) {
	cfg := &config.Config{StorageDriver: config.StoragePostgres, DatabaseURL: "postgres://u:p@db:5432/app?sslmode=disable", MigrationsPath: "migrations"}
	mg := NewMigration(cfg, DefaultEngine)

	source, db, err := mg.URLs()
	assert.NoError(t, err)
	assert.Equal(t, "file://migrations/postgres", source)
	assert.Equal(t, "pgx5://u:p@db:5432/app?sslmode=disable", db)
	assert.True(t, mg.Enabled())

	mem := NewMigration(&config.Config{StorageDriver: config.StorageMemory}, DefaultEngine)
	assert.False(t, mem.Enabled())
	_, _, err = mem.URLs()
	assert.Error(t, err)
}
