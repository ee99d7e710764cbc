package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"codeberg.org/mutker/hwprint/internal/errors"
	"codeberg.org/mutker/hwprint/internal/fingerprint"
	"codeberg.org/mutker/hwprint/internal/logger"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

type repository struct {
	db     *sql.DB
	logger logger.Logger
	mu     sync.Mutex
	now    func() time.Time
}

// New opens the report store. A disabled store discards reports.
func New(cfg Config, log logger.Logger) (Repository, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		log.Debug().Msg("Report store disabled")
		return noopRepository{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Path  string
			Error string
		}{
			Phase: "create_directory",
			Path:  cfg.DBPath,
			Error: err.Error(),
		})
	}

	dsn := cfg.DBPath + "?_journal=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Error string
		}{
			Phase: "open_database",
			Error: err.Error(),
		})
	}

	if err := ValidateAndUpdateSchema(db, cfg.DBPath, log); err != nil {
		db.Close()
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Error string
		}{
			Phase: "schema_version",
			Error: err.Error(),
		})
	}

	log.Debug().
		Str("path", cfg.DBPath).
		Int("schema_version", SchemaVersion).
		Msg("Report store initialized")

	return &repository{
		db:     db,
		logger: log,
		now:    time.Now,
	}, nil
}

func (r *repository) Save(ctx context.Context, session string, report *fingerprint.Report) error {
	errFactory := errors.New()

	if report == nil {
		return errFactory.WithMessage(errors.ErrInvalidArgument, "nil report")
	}

	data, err := json.Marshal(report)
	if err != nil {
		return errFactory.Wrap(errors.ErrEncodeReport, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	if _, err := r.db.ExecContext(ctx, insertReportSQL,
		id,
		session,
		r.now().UTC().UnixMilli(),
		report.Name,
		report.Arch,
		boolToInt(report.IsVirtualMachine),
		boolToInt(report.IsMobileDevice),
		boolToInt(report.IsGameConsole),
		string(data),
	); err != nil {
		return errFactory.Wrap(ErrStorageAccess, err)
	}

	r.logger.Debug().
		Str("id", id).
		Str("session", session).
		Str("name", report.Name).
		Msg("Report stored")

	return nil
}

func (r *repository) List(ctx context.Context, limit int) ([]Record, error) {
	errFactory := errors.New()

	if limit < 0 {
		return nil, errFactory.New(ErrInvalidLimit)
	}

	query := selectReportsSQL
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageAccess, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec        Record
			capturedAt int64
			data       string
		)
		if err := rows.Scan(&rec.ID, &rec.Session, &capturedAt, &data); err != nil {
			return nil, errFactory.Wrap(ErrStorageAccess, err)
		}

		rec.CapturedAt = time.UnixMilli(capturedAt).UTC()
		rec.Report = &fingerprint.Report{}
		if err := json.Unmarshal([]byte(data), rec.Report); err != nil {
			return nil, errFactory.WithData(ErrDecodeRecord, struct {
				ID    string
				Error string
			}{
				ID:    rec.ID,
				Error: err.Error(),
			})
		}

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errFactory.Wrap(ErrStorageAccess, err)
	}

	return records, nil
}

func (r *repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		r.logger.Debug().Err(err).Msg("Failed to checkpoint WAL")
	}

	if err := r.db.Close(); err != nil {
		return errors.New().WithData(ErrStorageClose, struct {
			Phase string
			Error string
		}{
			Phase: "close_database",
			Error: err.Error(),
		})
	}

	r.logger.Debug().Msg("Report store closed")

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

type noopRepository struct{}

func (noopRepository) Save(context.Context, string, *fingerprint.Report) error { return nil }

func (noopRepository) List(context.Context, int) ([]Record, error) { return nil, nil }

func (noopRepository) Close() error { return nil }
