// Package entity defines the persistent models of the backfill example.
package entity

import "time"

// User is a minimal account record whose email address may need
// normalization.
type User struct {
	ID        uint `gorm:"primaryKey"`
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName fixes the table name for GORM.
func (User) TableName() string {
	return "users"
}

// RecordLabel identifies the user in progress prompts and the exception
// report.
func (u *User) RecordLabel() string {
	return u.Email
}

// Fields exposes the tracked fields for before/after diff display.
func (u *User) Fields() map[string]any {
	return map[string]any{"email": u.Email}
}
