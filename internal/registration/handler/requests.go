package handler

import (
	"strings"

	"amigowallet/internal/registration/models"
)

// UserRecord is the wire form of a registration candidate. The message
// fields are response annotations and are ignored on input.
type UserRecord struct {
	UserID             int     `json:"userId"`
	Name               string  `json:"name"`
	EmailID            string  `json:"emailId"`
	MobileNumber       string  `json:"mobileNumber"`
	Password           string  `json:"password"`
	SecurityQuestionID int     `json:"securityQuestionId"`
	SecurityAnswer     string  `json:"securityAnswer"`
	OTP                string  `json:"otp"`
	SuccessMessage     *string `json:"successMessage"`
	ErrorMessage       *string `json:"errorMessage"`
}

// Normalize trims identifying fields and lowercases the email.
// Password and security answer are passed through untouched.
func (r *UserRecord) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.EmailID = strings.ToLower(strings.TrimSpace(r.EmailID))
	r.MobileNumber = strings.TrimSpace(r.MobileNumber)
	r.OTP = strings.TrimSpace(r.OTP)
}

func (r *UserRecord) ToModel() *models.User {
	return &models.User{
		ID:                 r.UserID,
		Name:               r.Name,
		EmailID:            r.EmailID,
		MobileNumber:       r.MobileNumber,
		Password:           r.Password,
		SecurityQuestionID: r.SecurityQuestionID,
		SecurityAnswer:     r.SecurityAnswer,
		OTP:                r.OTP,
	}
}
