package domain

import "time"

type ID string

type User struct {
	ID           ID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Public is the caller-facing projection; it never carries the password hash.
type Public struct {
	ID        ID
	Username  string
	Email     string
	CreatedAt time.Time
}

func (u User) AsPublic() Public {
	return Public{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
