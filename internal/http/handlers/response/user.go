package response

import (
	"time"

	"cvmatch/internal/core/domain/user"
)

type User struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	FullName    *string    `json:"full_name,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

func (u *User) FromDomainUser(du user.User) {
	u.ID = int64(du.ID)
	u.Email = string(du.Email)
	if du.FullName.IsPresent {
		fullName := du.FullName.Value
		u.FullName = &fullName
	}
	u.CreatedAt = du.CreatedAt
	if du.LastLoginAt.IsPresent {
		u.LastLoginAt = &du.LastLoginAt.Value
	}
}
