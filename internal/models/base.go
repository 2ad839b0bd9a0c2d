package models

import "time"

// Base contains common columns for all tables. IDs are integers assigned by
// the store on insert; a zero ID marks a value that has not been saved yet.
type Base struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
