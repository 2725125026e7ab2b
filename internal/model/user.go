package model

// User is an API credential holder. HashedPassword carries a bcrypt hash
// and is never serialized.
type User struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	HashedPassword string `json:"-"`
}
