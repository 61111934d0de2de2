package models

import "time"

// Roles are a fixed two-tier model.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Audit actions.
const (
	ActionRegister   = "REGISTER"
	ActionLogin      = "LOGIN"
	ActionLogout     = "LOGOUT"
	ActionCreateUser = "CREATE_USER"
	ActionUpdateUser = "UPDATE_USER"
	ActionDeleteUser = "DELETE_USER"
)

type User struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FirstName    *string   `gorm:"size:100" json:"first_name,omitempty"`
	LastName     *string   `gorm:"size:100" json:"last_name,omitempty"`
	Role         string    `gorm:"size:50;not null;default:user" json:"role"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicUser is the outward projection of User. It is the only account
// representation handlers ever serialize; the password hash has no field
// here at all.
type PublicUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName *string   `json:"first_name,omitempty"`
	LastName  *string   `json:"last_name,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ActivityLog is append-only. UserID is a weak reference: deleting the
// actor nulls it rather than cascading, so old entries survive with an
// absent actor.
type ActivityLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *string   `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User      *User     `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Action    string    `gorm:"size:100;not null" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityActor carries the identity fields of an audit entry's actor.
type ActivityActor struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// ActivityItem is an audit entry joined with its actor, nil when the actor
// was never known or has since been deleted.
type ActivityItem struct {
	ID        int64          `json:"id"`
	Action    string         `json:"action"`
	Details   string         `json:"details"`
	IPAddress string         `json:"ip_address"`
	CreatedAt time.Time      `json:"created_at"`
	User      *ActivityActor `json:"user"`
}

// GrowthPoint is one day of the signup series. Days with no signups do not
// appear in the series.
type GrowthPoint struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int64  `json:"count"`
}

type DashboardStats struct {
	TotalUsers  int64 `json:"total_users"`
	ActiveUsers int64 `json:"active_users"`
	NewUsers    int64 `json:"new_users_this_month"`
	TotalAdmins int64 `json:"total_admins"`
}
