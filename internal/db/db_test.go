package db

import (
	"errors"
	"os"
	"os/exec"
	"testing"

	"myshop-be/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(name string) *config.Config {
	return &config.Config{
		DBHost:     "localhost",
		DBUser:     "shop",
		DBPassword: "secret",
		DBName:     name,
		DBPort:     "5432",
	}
}

func TestBuildDSN(t *testing.T) {
	assert.Equal(t,
		"host=localhost user=shop password=secret dbname=myshop port=5432 sslmode=disable",
		buildDSN(testConfig("myshop")),
	)
}

func TestNewDatabaseWithDriver(t *testing.T) {
	t.Run("Ping succeeds and pool is tuned", func(t *testing.T) {
		cfg := testConfig("db_ok")
		_, mock, err := sqlmock.NewWithDSN(buildDSN(cfg), sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		mock.ExpectPing()

		db, err := newDatabaseWithDriver(cfg, "sqlmock")
		require.NoError(t, err)
		defer db.Close()

		assert.Equal(t, 25, db.Stats().MaxOpenConnections)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ping fails", func(t *testing.T) {
		cfg := testConfig("db_down")
		_, mock, err := sqlmock.NewWithDSN(buildDSN(cfg), sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		db, err := newDatabaseWithDriver(cfg, "sqlmock")
		assert.Nil(t, db)
		assert.ErrorContains(t, err, "failed to ping DB")
	})

	t.Run("Unknown driver", func(t *testing.T) {
		db, err := newDatabaseWithDriver(&config.Config{}, "no_such_driver")
		assert.Nil(t, db)
		assert.ErrorContains(t, err, "failed to connect to DB")
	})
}

// InitDB exits the process, so it runs in a child test binary.
func TestInitDB_Failure(t *testing.T) {
	if os.Getenv("DB_INIT_CRASH") == "1" {
		InitDB(&config.Config{DBHost: "127.0.0.1", DBPort: "1"})
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestInitDB_Failure")
	cmd.Env = append(os.Environ(), "DB_INIT_CRASH=1", "APP_ENV=test")
	err := cmd.Run()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && !exitErr.Success() {
		return
	}
	t.Fatalf("process ran with err %v, want non-zero exit", err)
}
