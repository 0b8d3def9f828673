// Package source loads flat record mappings from compiled MIB JSON files or
// SQL tables.
package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/dbsmedya/oidtree/internal/config"
	"github.com/dbsmedya/oidtree/internal/database"
	"github.com/dbsmedya/oidtree/internal/logger"
	"github.com/dbsmedya/oidtree/internal/record"
	"github.com/dbsmedya/oidtree/internal/sqlutil"
)

// ErrNotFound is returned when the input file does not exist.
var ErrNotFound = errors.New("input not found")

// LoadFile reads a compiled MIB JSON file.
func LoadFile(path string) (*record.Records, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	records, err := record.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return records, nil
}

// LoadSQL reads (key, record) rows from the configured table. Each record
// column holds one JSON object; a NULL record is an empty record. Rows are
// kept in the order the query returns them, and a repeated key keeps its
// first position with the later value.
func LoadSQL(ctx context.Context, db *sql.DB, dialect string, cfg *config.DatabaseConfig) (*record.Records, error) {
	query, err := sqlutil.SelectRecordsQuery(dialect, cfg.Table, cfg.KeyColumn, cfg.RecordColumn)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", cfg.Table, err)
	}
	defer rows.Close()

	records := record.NewRecords()
	for rows.Next() {
		var key string
		var raw []byte
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		rec := record.Record{}
		if raw != nil {
			rec, err = record.UnmarshalRecord(raw)
			if err != nil {
				return nil, fmt.Errorf("record %q: %w", key, err)
			}
		}
		records.Set(key, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

// Load reads the record mapping described by cfg.
func Load(ctx context.Context, cfg *config.Config, log *logger.Logger) (*record.Records, error) {
	log = logger.OrNop(log)

	switch cfg.Input.Format {
	case config.FormatJSON, "":
		log = log.WithSource(cfg.Input.Path)
		records, err := LoadFile(cfg.Input.Path)
		if err != nil {
			return nil, err
		}
		log.Debugw("loaded records", "count", records.Len())
		return records, nil

	case config.FormatMySQL, config.FormatSQLite:
		driver := database.DriverMySQL
		dialect := sqlutil.DialectMySQL
		if cfg.Input.Format == config.FormatSQLite {
			driver = database.DriverSQLite
			dialect = sqlutil.DialectSQLite
		}
		log = log.WithSource(cfg.Input.Format + ":" + cfg.Database.Table)

		mgr := database.NewManager(driver, &cfg.Database)
		if err := mgr.Connect(ctx); err != nil {
			return nil, err
		}
		defer func() {
			if err := mgr.Close(); err != nil {
				log.Warnw("failed to close database", "error", err)
			}
		}()

		records, err := LoadSQL(ctx, mgr.DB, dialect, &cfg.Database)
		if err != nil {
			return nil, err
		}
		log.Debugw("loaded records", "count", records.Len())
		return records, nil

	default:
		return nil, fmt.Errorf("unsupported input format %q", cfg.Input.Format)
	}
}
