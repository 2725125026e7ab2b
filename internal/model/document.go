package model

import "time"

// Document is a compliance document tracked by the system.
// Verification metadata (date + verifier) is set if and only if the
// document is verified; clearing the flag clears both.
//
// This is a pure domain model with no database-specific dependencies or
// tags, so it can be used across layers without coupling to persistence.
type Document struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Verified         bool       `json:"verified"`
	VerificationDate *time.Time `json:"verification_date,omitempty"`
	VerifiedBy       *string    `json:"verified_by,omitempty"`
	FileKey          *string    `json:"file_key,omitempty"`
	FileSize         *int64     `json:"file_size,omitempty"`
	ContentType      *string    `json:"content_type,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}
