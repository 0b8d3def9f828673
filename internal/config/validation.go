package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateInput()...)

	switch c.Input.Format {
	case FormatMySQL, FormatSQLite:
		errors = append(errors, c.validateDatabase()...)
	}

	errors = append(errors, c.validateSearch()...)
	errors = append(errors, c.validateOutput()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateInput() ValidationErrors {
	var errors ValidationErrors

	validFormats := map[string]bool{FormatJSON: true, FormatMySQL: true, FormatSQLite: true}
	if !validFormats[c.Input.Format] {
		errors = append(errors, ValidationError{
			Field:   "input.format",
			Message: "format must be 'json', 'mysql', or 'sqlite'",
		})
	}

	if c.Input.Format == FormatJSON && c.Input.Path == "" {
		errors = append(errors, ValidationError{
			Field:   "input.path",
			Message: "path is required for json input",
		})
	}

	return errors
}

func (c *Config) validateDatabase() ValidationErrors {
	var errors ValidationErrors
	db := &c.Database

	if c.Input.Format == FormatSQLite {
		if db.Path == "" {
			errors = append(errors, ValidationError{
				Field:   "database.path",
				Message: "path is required for sqlite input",
			})
		}
	} else {
		if db.Host == "" {
			errors = append(errors, ValidationError{
				Field:   "database.host",
				Message: "host is required",
			})
		}

		if db.Port <= 0 || db.Port > 65535 {
			errors = append(errors, ValidationError{
				Field:   "database.port",
				Message: "port must be between 1 and 65535",
			})
		}

		if db.User == "" {
			errors = append(errors, ValidationError{
				Field:   "database.user",
				Message: "user is required",
			})
		}

		if db.Database == "" {
			errors = append(errors, ValidationError{
				Field:   "database.database",
				Message: "database name is required",
			})
		}

		validTLS := map[string]bool{"disable": true, "preferred": true, "required": true, "": true}
		if !validTLS[db.TLS] {
			errors = append(errors, ValidationError{
				Field:   "database.tls",
				Message: "tls must be 'disable', 'preferred', or 'required'",
			})
		}
	}

	for field, value := range map[string]string{
		"database.table":         db.Table,
		"database.key_column":    db.KeyColumn,
		"database.record_column": db.RecordColumn,
	} {
		if value == "" {
			errors = append(errors, ValidationError{
				Field:   field,
				Message: "must not be empty",
			})
		}
	}

	if db.MaxConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   "database.max_connections",
			Message: "max_connections cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateSearch() ValidationErrors {
	var errors ValidationErrors

	if c.Search.TreePath == "" {
		errors = append(errors, ValidationError{
			Field:   "search.tree_path",
			Message: "tree_path is required",
		})
	}

	return errors
}

func (c *Config) validateOutput() ValidationErrors {
	var errors ValidationErrors

	if c.Output.Indent < 0 {
		errors = append(errors, ValidationError{
			Field:   "output.indent",
			Message: "indent cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
