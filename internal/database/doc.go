// Package database provides PostgreSQL persistence for feedback records.
// Uses pgx for connection pooling and tern for migrations.
package database
