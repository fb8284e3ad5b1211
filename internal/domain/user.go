package domain

import (
	"time"
)

type Role string

const (
	RoleCustomer Role = "顾客"
	RoleStaff    Role = "理疗师"
	RoleAdmin    Role = "管理员"
)

type StaffType string

const (
	StaffTypeStudent  StaffType = "学生兼职"
	StaffTypeFullTime StaffType = "全职"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	StaffType    StaffType `json:"staffType,omitempty"` // 仅理疗师有该属性，顾客和管理员为空
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
