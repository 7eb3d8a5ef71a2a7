// Package gorm implements the store interfaces on top of GORM and
// PostgreSQL.
//
// Each store type wraps a *gorm.DB and maps between the wire-facing
// store types and the model structs that mirror the migrated schema.
package gorm
