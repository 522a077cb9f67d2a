package validator

// Request DTOs validated at the service boundary. National-ID format is
// only enforced where a rule is declared; storage accepts whatever the
// boundary let through.

type CreateAttendanceRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	NationalID string `json:"national_id" validate:"omitempty,max=12"`
	Role       string `json:"role" validate:"required,oneof=student teacher"`
	Group      string `json:"group" validate:"omitempty,max=20"`
	Classroom  string `json:"classroom" validate:"omitempty,max=10"`
	Kind       string `json:"kind" validate:"required,oneof=entry exit"`
	Date       string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time       string `json:"time" validate:"omitempty,datetime=15:04"`
	Status     string `json:"status" validate:"omitempty,oneof=on_time late absent justified completed_schedule"`
	DeviceID   string `json:"device_id" validate:"omitempty,max=50"`
}

type CreateJustificationRequest struct {
	RecordID     *string `json:"record_id" validate:"omitempty,max=64"`
	UserID       string  `json:"user_id" validate:"omitempty,max=64"`
	Reason       string  `json:"reason" validate:"required"`
	Reference    string  `json:"reference" validate:"omitempty,max=50"`
	DocumentDate string  `json:"document_date" validate:"omitempty,datetime=2006-01-02"`

	AttachmentName string `json:"attachment_name" validate:"omitempty,max=200"`
	AttachmentURL  string `json:"attachment_url" validate:"omitempty,max=500,url"`
	AttachmentMime string `json:"attachment_mime" validate:"omitempty,max=50"`
}

type CreateUserRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	NationalID string `json:"national_id" validate:"required,national_id"`
	Role       string `json:"role" validate:"required,oneof=student teacher admin"`
	Group      string `json:"group" validate:"omitempty,max=20"`
	Email      string `json:"email" validate:"omitempty,email,max=120"`
}

type UpdateUserRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	NationalID string `json:"national_id" validate:"required,national_id"`
	Role       string `json:"role" validate:"required,oneof=student teacher admin"`
	Group      string `json:"group" validate:"omitempty,max=20"`
	Email      string `json:"email" validate:"omitempty,email,max=120"`
	Active     *bool  `json:"active"`
}

type CreateClassroomRequest struct {
	Code     string `json:"code" validate:"required,max=10"`
	DeviceID string `json:"device_id" validate:"required,max=50"`
	Status   string `json:"status" validate:"omitempty,oneof=active disconnected"`
}

type UpdateClassroomRequest struct {
	Code     string `json:"code" validate:"required,max=10"`
	DeviceID string `json:"device_id" validate:"required,max=50"`
	Status   string `json:"status" validate:"omitempty,oneof=active disconnected"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type QRScanRequest struct {
	Payload string `json:"qr_payload" validate:"required"`
}
