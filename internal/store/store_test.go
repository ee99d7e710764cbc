package store

import (
	"context"
	"database/sql"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/mutker/hwprint/internal/errors"
	"codeberg.org/mutker/hwprint/internal/fingerprint"
	"codeberg.org/mutker/hwprint/internal/logger"
	"codeberg.org/mutker/hwprint/internal/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		DBPath:  filepath.Join(t.TempDir(), "db", "reports.db"),
		Enabled: true,
	}
}

func sampleReport(name string) *fingerprint.Report {
	return &fingerprint.Report{
		Arch:            "x86_64",
		Cores:           signal.Known(8),
		GPU:             signal.Known("ANGLE (Intel, Intel(R) UHD Graphics 620)"),
		Vendor:          signal.Missing[string](),
		Memory:          signal.Known(8.0),
		ChargingStatus:  signal.Known(false),
		BatteryLevel:    signal.Known("42%"),
		ChargingTime:    signal.Known(math.Inf(1)),
		DischargingTime: signal.Known(5400.0),
		Width:           1366,
		Height:          768,
		ColorDepth:      24,
		IsLaptop:        true,
		Name:            name,
	}
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.NoError(t, Config{}.Validate())

	err := Config{Enabled: true}.Validate()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, ErrInvalidDBPath))
}

func TestDisabledStore(t *testing.T) {
	repo, err := New(Config{}, logger.Get())
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), "s", sampleReport("Laptop")))
	records, err := repo.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, repo.Close())
}

func TestSaveAndList(t *testing.T) {
	cfg := testConfig(t)
	repo, err := New(cfg, logger.Get())
	require.NoError(t, err)

	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.(*repository).now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, "engagement-1", sampleReport("Laptop")))
	require.NoError(t, repo.Save(ctx, "engagement-1", sampleReport("Virtual Machine")))
	require.NoError(t, repo.Save(ctx, "engagement-2", sampleReport("iPhone")))

	records, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "iPhone", records[0].Report.Name)
	assert.Equal(t, "engagement-2", records[0].Session)
	assert.Equal(t, "Laptop", records[2].Report.Name)
	assert.True(t, records[0].CapturedAt.After(records[1].CapturedAt))
	assert.NotEqual(t, records[0].ID, records[1].ID)

	got := records[2].Report
	assert.Equal(t, 8, got.Cores.Or(0))
	assert.False(t, got.Vendor.IsKnown())
	assert.Equal(t, "42%", got.BatteryLevel.Or(""))
	charging, ok := got.ChargingTime.Get()
	require.True(t, ok)
	assert.True(t, math.IsInf(charging, 1))
	assert.True(t, got.IsLaptop)

	limited, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	_, err = repo.List(ctx, -1)
	assert.True(t, errors.HasCode(err, ErrInvalidLimit))

	require.NoError(t, repo.Close())

	reopened, err := New(cfg, logger.Get())
	require.NoError(t, err)
	defer reopened.Close()

	records, err = reopened.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestSaveNilReport(t *testing.T) {
	repo, err := New(testConfig(t), logger.Get())
	require.NoError(t, err)
	defer repo.Close()

	err = repo.Save(context.Background(), "s", nil)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidArgument))
}

func TestSchemaVersionMismatch(t *testing.T) {
	cfg := testConfig(t)
	repo, err := New(cfg, logger.Get())
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), "old", sampleReport("Laptop")))
	require.NoError(t, repo.Close())

	db, err := sql.Open("sqlite3", cfg.DBPath)
	require.NoError(t, err)
	_, err = db.Exec("UPDATE schema_versions SET version = ?", SchemaVersion+1)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	repo, err = New(cfg, logger.Get())
	require.NoError(t, err)
	defer repo.Close()

	records, err := repo.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, records)

	backups, err := os.ReadDir(filepath.Join(filepath.Dir(cfg.DBPath), "backups"))
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}
