package model

import "time"

// UserModel mirrors the 'users' table. The password column holds the bcrypt hash, never the plaintext.
// It is an exported type so it can be used by migrations and tooling from other packages.
type UserModel struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Username  string    `gorm:"type:varchar(150);uniqueIndex;not null"`
	Password  string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
