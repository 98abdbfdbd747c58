package api

import "strconv"

// Result is the status code returned by every entry point.
type Result int32

const (
	Success           Result = 0
	NotReady          Result = 1
	Timeout           Result = 2
	Incomplete        Result = 5
	ThreadIdle        Result = 1000268000
	ThreadDone        Result = 1000268001
	OperationDeferred Result = 1000268002
	OperationNotDeferred Result = 1000268003

	ErrorOutOfHostMemory      Result = -1
	ErrorOutOfDeviceMemory    Result = -2
	ErrorInitializationFailed Result = -3
	ErrorDeviceLost           Result = -4
	ErrorValidationFailed     Result = -1000011001
	ErrorInvalidHandle        Result = -1000072003
	ErrorUnknown              Result = -13
)

// IsError reports whether r is a failure code. Positive non-success codes
// (NotReady, deferred-operation statuses) are informational, not failures.
func (r Result) IsError() bool {
	return r < 0
}

func (r Result) String() string {
	switch r {
	case Success:
		return "SUCCESS"
	case NotReady:
		return "NOT_READY"
	case Timeout:
		return "TIMEOUT"
	case Incomplete:
		return "INCOMPLETE"
	case ThreadIdle:
		return "THREAD_IDLE"
	case ThreadDone:
		return "THREAD_DONE"
	case OperationDeferred:
		return "OPERATION_DEFERRED"
	case OperationNotDeferred:
		return "OPERATION_NOT_DEFERRED"
	case ErrorOutOfHostMemory:
		return "ERROR_OUT_OF_HOST_MEMORY"
	case ErrorOutOfDeviceMemory:
		return "ERROR_OUT_OF_DEVICE_MEMORY"
	case ErrorInitializationFailed:
		return "ERROR_INITIALIZATION_FAILED"
	case ErrorDeviceLost:
		return "ERROR_DEVICE_LOST"
	case ErrorValidationFailed:
		return "ERROR_VALIDATION_FAILED"
	case ErrorInvalidHandle:
		return "ERROR_INVALID_HANDLE"
	case ErrorUnknown:
		return "ERROR_UNKNOWN"
	}
	return "Result(" + strconv.FormatInt(int64(r), 10) + ")"
}
