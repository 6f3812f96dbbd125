package models

import "time"

// User is a candidate or registered wallet user as seen by the service.
// Password, SecurityAnswer and OTP hold the plain values submitted by the
// caller; stores only ever receive hashes.
type User struct {
	ID                 int
	Name               string
	EmailID            string
	MobileNumber       string
	Password           string
	SecurityQuestionID int
	SecurityAnswer     string
	OTP                string
}

// SecurityQuestion is one entry of the question catalogue offered at registration.
type SecurityQuestion struct {
	QuestionID int    `json:"questionId"`
	Question   string `json:"question"`
}

// Registration is the persisted form of a user.
type Registration struct {
	ID                 int
	Name               string
	EmailID            string
	MobileNumber       string
	PasswordHash       []byte
	SecurityQuestionID int
	SecurityAnswerHash []byte
	CreatedAt          time.Time
}

// EventType names outbound registration events.
type EventType string

const (
	EventOTPIssued      EventType = "otp_issued"
	EventUserRegistered EventType = "user_registered"
)

// Event is published to the notifier. OTP is set only on otp_issued.
type Event struct {
	Type           EventType `json:"type"`
	Name           string    `json:"name"`
	EmailID        string    `json:"emailId"`
	OTP            string    `json:"otp,omitempty"`
	RegistrationID int       `json:"registrationId,omitempty"`
	ExpiresAt      time.Time `json:"expiresAt,omitzero"`
	OccurredAt     time.Time `json:"occurredAt"`
}
