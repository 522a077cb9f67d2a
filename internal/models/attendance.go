package models

import (
	"time"
)

type AttendanceKind string

const (
	KindEntry AttendanceKind = "entry"
	KindExit  AttendanceKind = "exit"
)

type AttendanceStatus string

const (
	StatusOnTime            AttendanceStatus = "on_time"
	StatusLate              AttendanceStatus = "late"
	StatusAbsent            AttendanceStatus = "absent"
	StatusJustified         AttendanceStatus = "justified"
	StatusCompletedSchedule AttendanceStatus = "completed_schedule"
)

// DateLayout and TimeLayout are the calendar formats attendance records carry
// on the wire and in CSV exports.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// AttendanceRecord is one check-in/out event for a person. Records are
// created by manual registration or a QR scan and only ever mutated through
// status transitions; bulk clear is the only structural delete.
type AttendanceRecord struct {
	ID         string           `json:"id" gorm:"primaryKey;size:64"`
	Name       string           `json:"name" gorm:"not null;size:100"`
	NationalID string           `json:"national_id" gorm:"size:12;index"`
	Role       UserRole         `json:"role" gorm:"size:20;index"`
	Group      string           `json:"group" gorm:"size:20"`
	Classroom  string           `json:"classroom" gorm:"size:10"`
	Kind       AttendanceKind   `json:"kind" gorm:"size:10;not null"`
	Date       string           `json:"date" gorm:"size:10;index"`
	Time       string           `json:"time" gorm:"size:5"`
	Status     AttendanceStatus `json:"status" gorm:"size:20;index"`
	DeviceID   string           `json:"device_id,omitempty" gorm:"size:50"`

	CreatedAt time.Time `json:"created_at"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// DashboardSummary aggregates the current day's attendance activity.
// Punctuality is the rounded share of on-time entries among all entries,
// zero when the day has no entries.
type DashboardSummary struct {
	Total       int `json:"total"`
	Entries     int `json:"entries"`
	Exits       int `json:"exits"`
	Punctuality int `json:"punctuality"`
}
