package models

// Message keys. Handlers resolve them through the message catalogue; any key
// containing "Validator" is a validation rejection.
const (
	KeySuccessfullyValidated  = "RegistrationAPI.SUCCESSFULLY_VALIDATED"
	KeySuccessfulRegistration = "RegistrationAPI.SUCCESSFUL_REGISTRATION"

	KeyInvalidName             = "UserValidator.INVALID_NAME"
	KeyInvalidEmail            = "UserValidator.INVALID_EMAIL"
	KeyInvalidMobileNumber     = "UserValidator.INVALID_MOBILE_NUMBER"
	KeyInvalidPassword         = "UserValidator.INVALID_PASSWORD"
	KeyInvalidSecurityQuestion = "UserValidator.INVALID_SECURITY_QUESTION"
	KeyInvalidSecurityAnswer   = "UserValidator.INVALID_SECURITY_ANSWER"

	KeyEmailAlreadyRegistered  = "RegistrationService.EMAIL_ALREADY_REGISTERED"
	KeyMobileAlreadyRegistered = "RegistrationService.MOBILE_NUMBER_ALREADY_REGISTERED"
	KeyIncorrectOTP            = "RegistrationService.INCORRECT_OTP"
	KeyOTPExpired              = "RegistrationService.OTP_EXPIRED"
	KeyOTPDispatchFailed       = "RegistrationService.OTP_DISPATCH_FAILED"
	KeyRegistrationFailed      = "RegistrationService.REGISTRATION_FAILED"
)
