package service

type ErrorCode string

const (
	ErrorCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrorCodeDuplicateEmployee  ErrorCode = "DUPLICATE_EMPLOYEE_ID"
	ErrorCodeInvalidEmployeeID  ErrorCode = "INVALID_EMPLOYEE_ID_FORMAT"
	ErrorCodeMissingField       ErrorCode = "MISSING_FIELD"
	ErrorCodePasswordMismatch   ErrorCode = "PASSWORD_MISMATCH"
	ErrorCodeInvalidPhone       ErrorCode = "INVALID_PHONE_FORMAT"
	ErrorCodeInvalidRole        ErrorCode = "INVALID_ROLE"
	ErrorCodeInvalidTeam        ErrorCode = "INVALID_TEAM"
	ErrorCodeForbidden          ErrorCode = "FORBIDDEN"
	ErrorCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrorCodeMalformedSchema    ErrorCode = "MALFORMED_SCHEMA"
	ErrorCodeMalformedData      ErrorCode = "MALFORMED_DATA"
	ErrorCodeUnspecified        ErrorCode = "UNSPECIFIED"
)

type Error struct {
	Code    ErrorCode
	Message string
}

func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}
