// Package sqlutil provides SQL helpers for reading records from MySQL and SQLite.
package sqlutil

import (
	"fmt"
	"regexp"
	"strings"
)

// Dialects understood by the quoting helpers.
const (
	DialectMySQL  = "mysql"
	DialectSQLite = "sqlite"
)

// QuoteIdentifier quotes a MySQL identifier (table name, column name) with backticks.
// It escapes any existing backticks by doubling them.
// Example: "mibs" -> "`mibs`"
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// QuoteIdentifierANSI quotes an identifier with double quotes, as SQLite expects.
func QuoteIdentifierANSI(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// QuoteFor quotes name for the given dialect. Unknown dialects use backticks.
func QuoteFor(dialect, name string) string {
	if dialect == DialectSQLite {
		return QuoteIdentifierANSI(name)
	}
	return QuoteIdentifier(name)
}

// validIdentifierRegex restricts identifiers to alphanumerics and underscore.
var validIdentifierRegex = regexp.MustCompile("^[a-zA-Z0-9_]+$")

// IsValidIdentifier checks if a name only contains alphanumeric characters and underscores.
func IsValidIdentifier(name string) bool {
	return validIdentifierRegex.MatchString(name)
}

// QuoteIdentifierSafe quotes an identifier for dialect after validating it.
// Identifiers come from configuration files, so they are never trusted.
func QuoteIdentifierSafe(dialect, name string) (string, error) {
	if !IsValidIdentifier(name) {
		return "", &InvalidIdentifierError{Name: name}
	}
	return QuoteFor(dialect, name), nil
}

// InvalidIdentifierError is returned when an identifier contains invalid characters.
type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	return "invalid identifier: " + e.Name + " (must contain only alphanumeric characters and underscores)"
}

// SelectRecordsQuery builds the query that streams (key, record) rows from
// table in storage order. SQLite tables are read by rowid; MySQL tables are
// ordered by the key column.
func SelectRecordsQuery(dialect, table, keyColumn, recordColumn string) (string, error) {
	qTable, err := QuoteIdentifierSafe(dialect, table)
	if err != nil {
		return "", err
	}
	qKey, err := QuoteIdentifierSafe(dialect, keyColumn)
	if err != nil {
		return "", err
	}
	qRecord, err := QuoteIdentifierSafe(dialect, recordColumn)
	if err != nil {
		return "", err
	}

	order := qKey
	if dialect == DialectSQLite {
		order = "rowid"
	}
	return fmt.Sprintf("SELECT %s, %s FROM %s ORDER BY %s", qKey, qRecord, qTable, order), nil
}
