// Package database opens the SQL databases that hold compiled MIB records.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "modernc.org/sqlite"             // SQLite driver

	"github.com/dbsmedya/oidtree/internal/config"
)

// Driver names registered with database/sql.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Manager handles the connection to the record database.
type Manager struct {
	DB     *sql.DB
	driver string
	config *config.DatabaseConfig

	// openFunc is sql.Open, replaceable in tests.
	openFunc func(driver, dsn string) (*sql.DB, error)
}

// NewManager creates a manager for the given driver and configuration.
func NewManager(driver string, cfg *config.DatabaseConfig) *Manager {
	return &Manager{
		driver:   driver,
		config:   cfg,
		openFunc: sql.Open,
	}
}

// Driver returns the database/sql driver name.
func (m *Manager) Driver() string {
	return m.driver
}

// Connect establishes the connection, retrying with exponential backoff.
func (m *Manager) Connect(ctx context.Context) error {
	if m.config == nil {
		return fmt.Errorf("database configuration is nil")
	}

	db, err := m.connectWithRetry(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", m.driver, err)
	}
	m.DB = db
	return nil
}

// connectWithRetry attempts to connect with exponential backoff.
func (m *Manager) connectWithRetry(ctx context.Context) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 3
	backoff := time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = m.connect()
		if err == nil {
			// Verify connection
			if pingErr := db.PingContext(ctx); pingErr == nil {
				return db, nil
			} else {
				_ = db.Close()
				err = pingErr
			}
		}

		if i < maxRetries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2 // Exponential backoff
			}
		}
	}

	return nil, fmt.Errorf("failed after %d retries: %w", maxRetries, err)
}

// connect creates a database handle.
func (m *Manager) connect() (*sql.DB, error) {
	dsn, err := BuildDSN(m.driver, m.config)
	if err != nil {
		return nil, err
	}

	db, err := m.openFunc(m.driver, dsn)
	if err != nil {
		return nil, err
	}

	if m.config.MaxConnections > 0 {
		db.SetMaxOpenConns(m.config.MaxConnections)
	}
	db.SetConnMaxLifetime(10 * time.Minute)

	return db, nil
}

// BuildDSN constructs a driver-specific DSN from configuration.
func BuildDSN(driver string, cfg *config.DatabaseConfig) (string, error) {
	switch driver {
	case DriverMySQL:
		return buildMySQLDSN(cfg), nil
	case DriverSQLite:
		if cfg.Path == "" {
			return "", fmt.Errorf("sqlite database path is empty")
		}
		return "file:" + cfg.Path + "?mode=ro", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// buildMySQLDSN formats user:password@tcp(host:port)/database?params.
func buildMySQLDSN(cfg *config.DatabaseConfig) string {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
	)

	if cfg.Database != "" {
		dsn += cfg.Database
	}

	params := "?parseTime=true"
	switch cfg.TLS {
	case "disable":
		params += "&tls=false"
	case "required":
		params += "&tls=true"
	case "preferred", "":
		params += "&tls=preferred"
	}

	return dsn + params
}

// Close closes the connection if it is open.
func (m *Manager) Close() error {
	if m.DB == nil {
		return nil
	}
	if err := m.DB.Close(); err != nil {
		return fmt.Errorf("%s close: %w", m.driver, err)
	}
	m.DB = nil
	return nil
}
