package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// CodeOK is the sentinel for "no error"; it never appears inside an AppError.
const CodeOK ErrorCode = "OK"

// Common error codes
const (
	CodeUnknown            ErrorCode = "COMMON_000"
	CodeInternal           ErrorCode = "COMMON_001"
	CodeBadRequest         ErrorCode = "COMMON_002"
	CodeUnauthorized       ErrorCode = "COMMON_003"
	CodeForbidden          ErrorCode = "COMMON_004"
	CodeNotFound           ErrorCode = "COMMON_005"
	CodeConflict           ErrorCode = "COMMON_006"
	CodeTooManyRequests    ErrorCode = "COMMON_007"
	CodeServiceUnavailable ErrorCode = "COMMON_008"
	CodeTimeout            ErrorCode = "COMMON_009"
	CodeValidation         ErrorCode = "COMMON_010"
	CodeSerialization      ErrorCode = "COMMON_011"
	CodeDatabaseError      ErrorCode = "COMMON_012"
	CodeCacheError         ErrorCode = "COMMON_013"
	CodeExternalService    ErrorCode = "COMMON_014"
	CodeMessageQueueError  ErrorCode = "COMMON_015"
	CodeNotImplemented     ErrorCode = "COMMON_016"
)

// Processo module error codes
const (
	CodeProcessoNotFound      ErrorCode = "PROC_001"
	CodeProcessoAlreadyExists ErrorCode = "PROC_002"
	CodeNumeroInvalid         ErrorCode = "PROC_003"
	CodeProcessoStatusInvalid ErrorCode = "PROC_004"
)

// Alerta module error codes
const (
	CodeAlertaNotFound  ErrorCode = "ALR_001"
	CodeAlertaDuplicate ErrorCode = "ALR_002"
	CodeAlertaInvalid   ErrorCode = "ALR_003"
)

// Email ingestion error codes
const (
	CodeEmailNotNotification ErrorCode = "ING_001"
	CodeEmailUnparseable     ErrorCode = "ING_002"
	CodeOwnerNotFound        ErrorCode = "ING_003"
	CodeIngestionFailed      ErrorCode = "ING_004"
)

// User directory error codes
const (
	CodeUserNotFound ErrorCode = "USR_001"
)

// DataJud consultation error codes
const (
	CodeDataJudUnavailable ErrorCode = "DJD_001"
	CodeDataJudAuthFailed  ErrorCode = "DJD_002"
	CodeDataJudParseError  ErrorCode = "DJD_003"
	CodeDataJudNoResults   ErrorCode = "DJD_004"
)

// Scheduler error codes
const (
	CodeSchedulerAlreadyRunning ErrorCode = "SCH_001"
	CodeSchedulerNotRunning     ErrorCode = "SCH_002"
	CodeSweepFailed             ErrorCode = "SCH_003"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	CodeInternal:           http.StatusInternalServerError,
	CodeBadRequest:         http.StatusBadRequest,
	CodeUnauthorized:       http.StatusUnauthorized,
	CodeForbidden:          http.StatusForbidden,
	CodeNotFound:           http.StatusNotFound,
	CodeConflict:           http.StatusConflict,
	CodeTooManyRequests:    http.StatusTooManyRequests,
	CodeServiceUnavailable: http.StatusServiceUnavailable,
	CodeTimeout:            http.StatusGatewayTimeout,
	CodeValidation:         http.StatusUnprocessableEntity,
	CodeSerialization:      http.StatusInternalServerError,
	CodeDatabaseError:      http.StatusInternalServerError,
	CodeCacheError:         http.StatusInternalServerError,
	CodeExternalService:    http.StatusInternalServerError,
	CodeMessageQueueError:  http.StatusInternalServerError,
	CodeNotImplemented:     http.StatusNotImplemented,

	CodeProcessoNotFound:      http.StatusNotFound,
	CodeProcessoAlreadyExists: http.StatusConflict,
	CodeNumeroInvalid:         http.StatusBadRequest,
	CodeProcessoStatusInvalid: http.StatusBadRequest,

	CodeAlertaNotFound:  http.StatusNotFound,
	CodeAlertaDuplicate: http.StatusConflict,
	CodeAlertaInvalid:   http.StatusBadRequest,

	CodeEmailNotNotification: http.StatusOK,
	CodeEmailUnparseable:     http.StatusBadRequest,
	CodeOwnerNotFound:        http.StatusNotFound,
	CodeIngestionFailed:      http.StatusInternalServerError,

	CodeUserNotFound: http.StatusNotFound,

	CodeDataJudUnavailable: http.StatusServiceUnavailable,
	CodeDataJudAuthFailed:  http.StatusBadGateway,
	CodeDataJudParseError:  http.StatusBadGateway,
	CodeDataJudNoResults:   http.StatusNotFound,

	CodeSchedulerAlreadyRunning: http.StatusConflict,
	CodeSchedulerNotRunning:     http.StatusConflict,
	CodeSweepFailed:             http.StatusInternalServerError,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	CodeInternal:           "internal server error",
	CodeBadRequest:         "bad request",
	CodeUnauthorized:       "unauthorized",
	CodeForbidden:          "forbidden",
	CodeNotFound:           "resource not found",
	CodeConflict:           "resource conflict",
	CodeTooManyRequests:    "too many requests",
	CodeServiceUnavailable: "service unavailable",
	CodeTimeout:            "request timeout",
	CodeValidation:         "validation failed",
	CodeSerialization:      "serialization failed",
	CodeDatabaseError:      "database error",
	CodeCacheError:         "cache error",
	CodeExternalService:    "external service error",
	CodeMessageQueueError:  "message queue error",
	CodeNotImplemented:     "not implemented",

	CodeProcessoNotFound:      "processo not found",
	CodeProcessoAlreadyExists: "processo already exists",
	CodeNumeroInvalid:         "invalid process number",
	CodeProcessoStatusInvalid: "invalid processo status",

	CodeAlertaNotFound:  "alerta not found",
	CodeAlertaDuplicate: "duplicate alerta",
	CodeAlertaInvalid:   "invalid alerta",

	CodeEmailNotNotification: "message is not a tribunal notification",
	CodeEmailUnparseable:     "notification could not be parsed",
	CodeOwnerNotFound:        "recipient does not map to a known user",
	CodeIngestionFailed:      "email ingestion failed",

	CodeUserNotFound: "user not found",

	CodeDataJudUnavailable: "DataJud API unavailable",
	CodeDataJudAuthFailed:  "DataJud authentication failed",
	CodeDataJudParseError:  "failed to parse DataJud response",
	CodeDataJudNoResults:   "no results from DataJud",

	CodeSchedulerAlreadyRunning: "scheduler already running",
	CodeSchedulerNotRunning:     "scheduler not running",
	CodeSweepFailed:             "deadline sweep failed",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
