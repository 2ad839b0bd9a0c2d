package models

// User represents the user model in the database. The password hash is an
// opaque string; the plaintext password is never stored.
type User struct {
	Base
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
}
