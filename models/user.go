package models

import (
	"time"
)

type User struct {
	UserID        int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	UserFname     string     `gorm:"column:user_fname" json:"user_fname"`
	UserLname     string     `gorm:"column:user_lname" json:"user_lname"`
	Email         string     `gorm:"column:email;unique" json:"email"`
	Password      string     `gorm:"column:password" json:"-"`
	RoleID        int        `gorm:"column:role_id" json:"role_id"`
	DesignationID *int       `gorm:"column:designation_id" json:"designation_id,omitempty"`
	OrgID         *int       `gorm:"column:org_id" json:"org_id,omitempty"`
	CreateAt      *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt      *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt      *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Role         Role          `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Designation  *Designation  `gorm:"foreignKey:DesignationID" json:"designation,omitempty"`
	Organization *Organization `gorm:"foreignKey:OrgID" json:"organization,omitempty"`
}

type Role struct {
	RoleID   int        `gorm:"primaryKey;column:role_id" json:"role_id"`
	Role     string     `gorm:"column:role" json:"role"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

type Permission struct {
	PermissionID   int        `gorm:"primaryKey;column:permission_id" json:"permission_id"`
	PermissionName string     `gorm:"column:permission_name;unique" json:"permission_name"`
	CreateAt       *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt       *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt       *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// PermissionRole is the flat role-permission join. Membership is a set
// lookup, there is no hierarchy or inheritance.
type PermissionRole struct {
	PermissionRoleID int `gorm:"primaryKey;column:permission_role_id" json:"permission_role_id"`
	PermissionID     int `gorm:"column:permission_id" json:"permission_id"`
	RoleID           int `gorm:"column:role_id" json:"role_id"`
}

// Session is the acting-session reference every status change is
// attributed to.
type Session struct {
	SessionID int        `gorm:"primaryKey;column:session_id" json:"session_id"`
	UserID    int        `gorm:"column:user_id" json:"user_id"`
	RoleID    int        `gorm:"column:role_id" json:"role_id"`
	Token     string     `gorm:"column:token" json:"-"`
	IssuedAt  time.Time  `gorm:"column:issued_at" json:"issued_at"`
	RevokedAt *time.Time `gorm:"column:revoked_at" json:"revoked_at,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

type Designation struct {
	DesignationID   int        `gorm:"primaryKey;column:designation_id" json:"designation_id"`
	DesignationName string     `gorm:"column:designation_name" json:"designation_name"`
	CreateAt        *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt        *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

type Organization struct {
	OrgID    int        `gorm:"primaryKey;column:org_id" json:"org_id"`
	OrgName  string     `gorm:"column:org_name" json:"org_name"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

type Division struct {
	DivisionID   int        `gorm:"primaryKey;column:division_id" json:"division_id"`
	DivisionName string     `gorm:"column:division_name" json:"division_name"`
	OrgID        *int       `gorm:"column:org_id" json:"org_id,omitempty"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Organization *Organization `gorm:"foreignKey:OrgID" json:"organization,omitempty"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

func (Role) TableName() string {
	return "roles"
}

func (Permission) TableName() string {
	return "permissions"
}

func (PermissionRole) TableName() string {
	return "permission_role"
}

func (Session) TableName() string {
	return "sessions"
}

func (Designation) TableName() string {
	return "designations"
}

func (Organization) TableName() string {
	return "organizations"
}

func (Division) TableName() string {
	return "divisions"
}
