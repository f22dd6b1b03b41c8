// Package models defines the typed rows of the order feature tables.
//
// TrainingRow carries both json and gorm tags: the HTTP API serves it and
// the database sink migrates and inserts it.
package models
