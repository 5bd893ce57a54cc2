package errors

// ErrorCode is a string identifier for a specific failure category.
// Codes are grouped by module prefix so that dashboards and log queries can
// aggregate failures per subsystem.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes shared by every layer.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeValidation         ErrorCode = "COMMON_005"
	ErrCodeSerialization      ErrorCode = "COMMON_006"
	ErrCodeDatabaseError      ErrorCode = "COMMON_007"
	ErrCodeCacheError         ErrorCode = "COMMON_008"
	ErrCodeMessagingError     ErrorCode = "COMMON_009"
	ErrCodeStorageError       ErrorCode = "COMMON_010"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_011"
)

// Run module error codes.
const (
	ErrCodeRunNotFound      ErrorCode = "RUN_001"
	ErrCodeRunNotCompleted  ErrorCode = "RUN_002"
	ErrCodeRunStateConflict ErrorCode = "RUN_003"
	ErrCodeRunAborted       ErrorCode = "RUN_004"
	ErrCodePlanInvalid      ErrorCode = "RUN_005"
)

// Oracle module error codes.
const (
	ErrCodeOracleUnavailable ErrorCode = "ORACLE_001"
	ErrCodeOracleFailure     ErrorCode = "ORACLE_002"
)

// Short aliases used throughout the codebase.
const (
	CodeInternal       = ErrCodeInternal
	CodeInvalidParam   = ErrCodeBadRequest
	CodeNotFound       = ErrCodeNotFound
	CodeConflict       = ErrCodeConflict
	CodeDBQueryError   = ErrCodeDatabaseError
	CodeRunNotFound    = ErrCodeRunNotFound
	CodeUnknown        = ErrorCode("UNKNOWN")
	CodeOK             = ErrorCode("OK")
)

//Personal.AI order the ending
