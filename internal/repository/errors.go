// Package repository contains data access logic separated from HTTP
// handlers. This file defines error values and helpers shared by the
// individual repositories. Sentinel errors let handlers translate
// storage failures into precise HTTP statuses without inspecting SQL
// error text themselves.
package repository

import (
	"database/sql"
	"strings"
)

// dateString converts a scanned nullable DATE into the YYYY-MM-DD
// string the API exposes. The driver parses DATE columns into
// time.Time (parseTime=true), which must not leak into responses or
// be written back to a DATE column as an RFC3339 string.
func dateString(nt sql.NullTime) *string {
	if !nt.Valid {
		return nil
	}
	s := nt.Time.Format("2006-01-02")
	return &s
}

// isDuplicateKey reports whether err is a MySQL unique-constraint
// violation (error 1062). Pre-checks in the registries are advisory
// only; the unique index is the authoritative duplicate rejection, so
// every insert/update path maps 1062 back to a sentinel.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// duplicateKeyContains inspects a 1062 error message for the named
// index so duplicate citizen-id and tax-code violations can be told apart.
func duplicateKeyContains(err error, keyPart string) bool {
	return isDuplicateKey(err) && strings.Contains(strings.ToLower(err.Error()), keyPart)
}

// isForeignKeyErr reports whether err is a MySQL foreign-key violation
// (error 1452), raised when a referenced row does not exist.
func isForeignKeyErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1452")
}
