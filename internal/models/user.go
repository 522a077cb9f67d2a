package models

import (
	"fmt"
	"math/rand"
	"regexp"
	"time"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
	RoleAdmin   UserRole = "admin"
)

// User is a platform member who can appear on attendance records.
type User struct {
	ID         string   `json:"id" gorm:"primaryKey;size:64"`
	Name       string   `json:"name" gorm:"not null;size:100"`
	NationalID string   `json:"national_id" gorm:"uniqueIndex;size:12;not null"`
	Role       UserRole `json:"role" gorm:"size:20;not null"`
	Group      string   `json:"group" gorm:"size:20"`
	Email      string   `json:"email" gorm:"uniqueIndex;size:120"`
	Active     bool     `json:"active" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// nationalIDPattern matches the national identity format: one leading digit
// 1-9, then two hyphen-separated blocks of four digits.
var nationalIDPattern = regexp.MustCompile(`^[1-9]-\d{4}-\d{4}$`)

// ValidNationalID reports whether s matches the D-DDDD-DDDD format.
func ValidNationalID(s string) bool {
	return nationalIDPattern.MatchString(s)
}

// GenerateNationalID produces a synthetic national ID for seed data.
func GenerateNationalID() string {
	return fmt.Sprintf("%d-%04d-%04d", rand.Intn(9)+1, rand.Intn(10000), rand.Intn(10000))
}
