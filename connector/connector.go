//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Copyright (C) 2025 Aaron Mathis aaron.mathis@gmail.com
//
// This file is part of GoMart.
//
// GoMart is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GoMart is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GoMart. If not, see https://www.gnu.org/licenses/.

package connector

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"gopkg.in/yaml.v3"
)

// Package connector reads database credentials from YAML files and opens
// connections to the source and destination PostgreSQL databases.

// ConnectorError wraps connection and credential errors with context.
type ConnectorError struct {
	Op  string
	Err error
}

func (e *ConnectorError) Error() string {
	return fmt.Sprintf("connector %s: %v", e.Op, e.Err)
}

func (e *ConnectorError) Unwrap() error {
	return e.Err
}

// Credentials holds PostgreSQL connection parameters loaded from a YAML
// credentials file.
type Credentials struct {
	Host     string `yaml:"RDS_HOST"`
	Password string `yaml:"RDS_PASSWORD"`
	User     string `yaml:"RDS_USER"`
	Database string `yaml:"RDS_DATABASE"`
	Port     int    `yaml:"RDS_PORT"`
}

// LoadCredentials reads and parses a YAML credentials file.
func LoadCredentials(path string) (Credentials, error) {
	var creds Credentials
	data, err := os.ReadFile(path)
	if err != nil {
		return creds, &ConnectorError{Op: "read credentials", Err: err}
	}
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return creds, &ConnectorError{Op: "parse credentials", Err: err}
	}
	if creds.Host == "" || creds.Database == "" {
		return creds, &ConnectorError{Op: "parse credentials", Err: fmt.Errorf("missing RDS_HOST or RDS_DATABASE in %s", path)}
	}
	return creds, nil
}

// DSN renders the credentials as a lib/pq connection string.
func (c Credentials) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=prefer",
		c.Host, c.Port, c.User, c.Password, c.Database)
}

// Connector wraps an sqlx connection to one database.
type Connector struct {
	db    *sqlx.DB
	creds Credentials
}

// Connect opens and verifies a connection using the given credentials.
func Connect(ctx context.Context, creds Credentials) (*Connector, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", creds.DSN())
	if err != nil {
		return nil, &ConnectorError{Op: "connect", Err: err}
	}
	return &Connector{db: db, creds: creds}, nil
}

// ConnectFile loads credentials from path and connects.
func ConnectFile(ctx context.Context, path string) (*Connector, error) {
	creds, err := LoadCredentials(path)
	if err != nil {
		return nil, err
	}
	return Connect(ctx, creds)
}

// DB exposes the underlying connection.
func (c *Connector) DB() *sqlx.DB {
	return c.db
}

// DSN returns the connection string for readers and writers that open
// their own connections.
func (c *Connector) DSN() string {
	return c.creds.DSN()
}

// ListTables returns the table names in the public schema.
func (c *Connector) ListTables(ctx context.Context) ([]string, error) {
	var tables []string
	err := c.db.SelectContext(ctx, &tables,
		`SELECT table_name FROM information_schema.tables
		 WHERE table_schema = 'public' ORDER BY table_name`)
	if err != nil {
		return nil, &ConnectorError{Op: "list tables", Err: err}
	}
	return tables, nil
}

// HasTable reports whether name exists in the public schema.
func (c *Connector) HasTable(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := c.db.GetContext(ctx, &exists,
		`SELECT EXISTS (
		   SELECT 1 FROM information_schema.tables
		   WHERE table_schema = 'public' AND table_name = $1
		 )`, name)
	if err != nil {
		return false, &ConnectorError{Op: "has table", Err: err}
	}
	return exists, nil
}

// Close closes the connection.
func (c *Connector) Close() error {
	return c.db.Close()
}
