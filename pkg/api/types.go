package api

import (
	"encoding/json"
	"time"
)

// Role is the authorization level of a user. Exactly three values
// exist; superadmin implies admin capability, admin does not imply
// superadmin.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// Valid reports whether the role is one of the three known values.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsAdmin reports whether the role grants admin capability.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// IsSuperAdmin reports whether the role is exactly superadmin.
func (r Role) IsSuperAdmin() bool {
	return r == RoleSuperAdmin
}

// User is an account in the system.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Pagination describes the paging metadata returned by listing
// endpoints.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// UserList is one page of users. Its JSON shape matches the inner
// envelope the users endpoint leaves behind after the transport's
// single unwrap: {"data": [...], "pagination": {...}}.
type UserList struct {
	Data       []User     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Article is a blog post. Content may contain Markdown; see
// pkg/markdown for rendering. The published flag travels on the wire
// as "isPublished".
type Article struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"isPublished"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Site-setting categories. The set is fixed by the admin UI; the key
// itself is free-form (snake_case by convention, not enforced).
const (
	CategoryGeneral    = "general"
	CategorySections   = "sections"
	CategoryFeatures   = "features"
	CategoryAppearance = "appearance"
	CategoryEmail      = "email"
	CategoryShowcase   = "showcase"
)

// SiteSetting is one key-value site configuration entry. Value is
// arbitrary JSON; uniqueness of Key is enforced server-side only.
type SiteSetting struct {
	ID          int64           `json:"id"`
	Key         string          `json:"key"`
	Category    string          `json:"category"`
	Value       json.RawMessage `json:"value"`
	IsPublic    bool            `json:"isPublic"`
	Description *string         `json:"description,omitempty"`
	UpdatedBy   *int64          `json:"updatedBy,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
