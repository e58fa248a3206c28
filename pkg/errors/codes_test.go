package errors

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "COMMON_001", CodeInternal.String())
}

func TestHTTPStatusForCode(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected int
	}{
		{CodeInternal, 500},
		{CodeBadRequest, 400},
		{CodeNotFound, 404},
		{CodeConflict, 409},
		{CodeValidation, 422},
		{CodeProcessoNotFound, 404},
		{CodeAlertaDuplicate, 409},
		{CodeOwnerNotFound, 404},
		{CodeEmailUnparseable, 400},
		{CodeDataJudUnavailable, 503},
		{ErrorCode("UNKNOWN"), 500},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, HTTPStatusForCode(tt.code))
	}
}

func TestDefaultMessageForCode(t *testing.T) {
	assert.Equal(t, "internal server error", DefaultMessageForCode(CodeInternal))
	assert.Equal(t, "unknown error", DefaultMessageForCode(ErrorCode("UNKNOWN")))
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(CodeBadRequest))
	assert.True(t, IsClientError(CodeOwnerNotFound))
	assert.False(t, IsClientError(CodeInternal))
}

func TestIsServerError(t *testing.T) {
	assert.True(t, IsServerError(CodeInternal))
	assert.True(t, IsServerError(CodeSweepFailed))
	assert.False(t, IsServerError(CodeBadRequest))
}

func TestModuleForCode(t *testing.T) {
	assert.Equal(t, "COMMON", ModuleForCode(CodeInternal))
	assert.Equal(t, "PROC", ModuleForCode(CodeProcessoNotFound))
	assert.Equal(t, "ALR", ModuleForCode(CodeAlertaDuplicate))
	assert.Equal(t, "ING", ModuleForCode(CodeEmailUnparseable))
	assert.Equal(t, "USR", ModuleForCode(CodeUserNotFound))
	assert.Equal(t, "DJD", ModuleForCode(CodeDataJudUnavailable))
	assert.Equal(t, "SCH", ModuleForCode(CodeSchedulerAlreadyRunning))
	assert.Equal(t, "UNKNOWN", ModuleForCode(ErrorCode("")))
}

func TestErrorCodeFormat_Convention(t *testing.T) {
	re := regexp.MustCompile(`^[A-Z]+_\d{3}$`)
	allCodes := []ErrorCode{
		CodeInternal, CodeBadRequest, CodeProcessoNotFound, CodeAlertaNotFound,
		CodeEmailNotNotification, CodeUserNotFound, CodeDataJudUnavailable,
		CodeSchedulerAlreadyRunning,
	}
	for _, code := range allCodes {
		assert.Regexp(t, re, string(code))
	}
}

func TestErrorCodeMappings_Completeness(t *testing.T) {
	for code := range ErrorCodeHTTPStatus {
		_, hasMessage := ErrorCodeMessage[code]
		assert.True(t, hasMessage, "missing message for %s", code)
	}
	for code := range ErrorCodeMessage {
		_, hasStatus := ErrorCodeHTTPStatus[code]
		assert.True(t, hasStatus, "missing status for %s", code)
	}
}

//Personal.AI order the ending
