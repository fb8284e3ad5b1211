package domain

import "time"

type SpaService struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DurationMinutes int32     `json:"durationMinutes"`
	Price           int64     `json:"price"` // 单位为分
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	Version         int32     `json:"-"`
}
