package apperrors

import "fmt"

// Errno is the numeric status the device reports for a failed operation.
// Values follow the Linux errno table so that callers porting code written
// against a character device keep the same numbers.
type Errno int

// Errno values reported by the device.
const (
	ENOMEM Errno = 12 // Cannot allocate memory.
	EFAULT Errno = 14 // Bad address.
	EBUSY  Errno = 16 // Device or resource busy.
)

// String returns the symbolic errno name.
func (e Errno) String() string {
	switch e {
	case ENOMEM:
		return "ENOMEM"
	case EFAULT:
		return "EFAULT"
	case EBUSY:
		return "EBUSY"
	}
	return fmt.Sprintf("errno(%d)", int(e))
}

func (e Errno) message() string {
	switch e {
	case ENOMEM:
		return "cannot allocate memory"
	case EFAULT:
		return "bad address"
	case EBUSY:
		return "device or resource busy"
	}
	return "unknown error"
}

// DeviceError describes a failed device operation. Op names the operation
// ("open", "write", ...) and Cause carries an optional underlying error.
//
// errors.Is matches a DeviceError against the package sentinels by Errno only,
// so a wrapped, operation-annotated error still satisfies
// errors.Is(err, ErrBusy).
type DeviceError struct {
	Op    string
	Errno Errno
	Cause error
}

// Sentinel device errors.
var (
	// ErrBusy reports that the single device session is already held.
	ErrBusy = &DeviceError{Errno: EBUSY}
	// ErrOutOfMemory reports that the transient staging buffer could not be allocated.
	ErrOutOfMemory = &DeviceError{Errno: ENOMEM}
	// ErrFault reports that the destination buffer was rejected.
	ErrFault = &DeviceError{Errno: EFAULT}
)

// NewDeviceError builds a DeviceError for the given operation.
func NewDeviceError(op string, errno Errno, cause error) *DeviceError {
	return &DeviceError{Op: op, Errno: errno, Cause: cause}
}

// Error returns "op: message (ERRNO)" optionally followed by the cause.
func (e *DeviceError) Error() string {
	msg := fmt.Sprintf("%s (%s)", e.Errno.message(), e.Errno)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *DeviceError) Unwrap() error { return e.Cause }

// Is reports whether target is a DeviceError with the same Errno.
func (e *DeviceError) Is(target error) bool {
	t, ok := target.(*DeviceError)
	if !ok {
		return false
	}
	return t.Errno == e.Errno
}
