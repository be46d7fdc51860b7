// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is an authenticable principal. It is provisioned out of band and is read-only during login.
type User struct {
	Username     string    // Unique login name, immutable after creation.
	PasswordHash string    // Self-salting adaptive hash of the password; never the plaintext.
	CreatedAt    time.Time // Timestamp of when this user was provisioned.
	UpdatedAt    time.Time // Timestamp of the last password change.
}
