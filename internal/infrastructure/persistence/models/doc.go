// Package models contains the GORM persistence models. They are kept apart
// from the domain entities so schema concerns (column types, indexes, table
// names) never leak into the domain layer; each model converts both ways
// with ToDomain/FromDomain.
package models
