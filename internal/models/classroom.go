package models

import "time"

type ClassroomStatus string

const (
	ClassroomActive       ClassroomStatus = "active"
	ClassroomDisconnected ClassroomStatus = "disconnected"
)

// Classroom pairs a physical room with its IoT check-in device.
type Classroom struct {
	ID       string          `json:"id" gorm:"primaryKey;size:64"`
	Code     string          `json:"code" gorm:"size:10;not null"`
	DeviceID string          `json:"device_id" gorm:"uniqueIndex;size:50;not null"`
	Status   ClassroomStatus `json:"status" gorm:"size:20;default:active"`

	// LastSeenAt is updated whenever the device reports a scan.
	LastSeenAt *time.Time `json:"last_seen_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Classroom) TableName() string {
	return "classrooms"
}
