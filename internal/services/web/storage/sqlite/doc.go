// Package sqlite stores web sessions in a local SQLite file.
package sqlite
