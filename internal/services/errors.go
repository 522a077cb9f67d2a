package services

import "errors"

var (
	ErrRecordNotFound        = errors.New("attendance record not found")
	ErrJustificationNotFound = errors.New("justification not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrClassroomNotFound     = errors.New("classroom not found")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrAlreadyExists         = errors.New("entity already exists")
	ErrMalformedQRPayload    = errors.New("malformed qr payload")
	ErrUnknownProjection     = errors.New("unknown export projection")
)
