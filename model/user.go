package model

import "time"

// Default role assigned when the roles lookup fails or returns nothing.
const RoleCorretor = "corretor"

const RoleAdmin = "admin"

// AuthUser is the credential document (collection auth_users). The profile
// row lives separately in profiles, mirroring the hosted-auth split.
type AuthUser struct {
	UserID    string    `firestore:"id,omitempty" json:"id"`
	Name      string    `firestore:"name,omitempty" json:"name"`
	Email     string    `firestore:"email,omitempty" json:"email"`
	Password  string    `firestore:"password,omitempty" json:"-"`
	CreatedAt time.Time `firestore:"created_at,omitempty" json:"created_at"`
}

type UserProfile struct {
	UserID    string `firestore:"id,omitempty" json:"id"`
	Name      string `firestore:"name,omitempty" json:"name"`
	Email     string `firestore:"email,omitempty" json:"email"`
	AvatarURL string `firestore:"avatar_url,omitempty" json:"avatar_url,omitempty"`
}

type UserRole struct {
	UserID string `firestore:"user_id,omitempty" json:"user_id"`
	Role   string `firestore:"role,omitempty" json:"role"`
}

// SessionUser is the profile merged with its role list, as handed to clients.
type SessionUser struct {
	UserProfile
	Roles []string `json:"roles"`
}

func (u *SessionUser) IsAdmin() bool {
	for _, r := range u.Roles {
		if r == RoleAdmin {
			return true
		}
	}
	return false
}
