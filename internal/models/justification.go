package models

import (
	"time"

	"gorm.io/datatypes"
)

// Justification is a document excusing an absence or lateness, optionally
// linked to one attendance record. Creating a linked justification marks the
// record justified; deleting it later does not revert that status.
type Justification struct {
	ID           string  `json:"id" gorm:"primaryKey;size:64"`
	RecordID     *string `json:"record_id,omitempty" gorm:"size:64;index"`
	UserID       string  `json:"user_id" gorm:"size:64;index"`
	Reason       string  `json:"reason" gorm:"type:text;not null"`
	Reference    string  `json:"reference" gorm:"size:50"`
	DocumentDate string  `json:"document_date" gorm:"size:10"`

	// Attachment holds uploaded document metadata (name, url, mime).
	Attachment datatypes.JSON `json:"attachment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (Justification) TableName() string {
	return "justifications"
}

// JustificationAttachment is the shape serialized into Justification.Attachment.
type JustificationAttachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Mime string `json:"mime"`
}
