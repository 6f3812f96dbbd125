package handler

// UserRecordResponse echoes a UserRecord without its secrets. Unset
// messages serialize as null.
type UserRecordResponse struct {
	UserID             int     `json:"userId"`
	Name               string  `json:"name"`
	EmailID            string  `json:"emailId"`
	MobileNumber       string  `json:"mobileNumber"`
	SecurityQuestionID int     `json:"securityQuestionId"`
	SuccessMessage     *string `json:"successMessage"`
	ErrorMessage       *string `json:"errorMessage"`
}

// ErrorResponse is the body of every rejected registration request.
// Message is null when the error key has no configured text.
type ErrorResponse struct {
	Error   string  `json:"error"`
	Message *string `json:"message"`
}

func toUserRecordResponse(r *UserRecord, successMessage *string) *UserRecordResponse {
	return &UserRecordResponse{
		UserID:             r.UserID,
		Name:               r.Name,
		EmailID:            r.EmailID,
		MobileNumber:       r.MobileNumber,
		SecurityQuestionID: r.SecurityQuestionID,
		SuccessMessage:     successMessage,
	}
}
