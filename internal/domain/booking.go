package domain

import "time"

type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "已预约"
	BookingStatusCancelled BookingStatus = "已取消"
	BookingStatusCompleted BookingStatus = "已完成"
)

type Booking struct {
	ID             int64         `json:"id"`
	CustomerID     int64         `json:"customerID"`
	StaffID        int64         `json:"staffID"`
	ServiceID      int64         `json:"serviceID"`
	BookingDate    time.Time     `json:"bookingDate"`
	StartTime      string        `json:"startTime"`
	EndTime        string        `json:"endTime"`
	Status         BookingStatus `json:"status"`
	ReminderSentAt *time.Time    `json:"reminderSentAt,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	Version        int32         `json:"-"`
}
