// Package errs defines the sentinel error values returned by assetkit's
// parsing and decoding paths.
//
// Call sites wrap these with fmt.Errorf("%w: ...") to add context; callers
// that need to distinguish failure categories should use errors.Is against
// the sentinels here rather than string-matching error messages.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrEndOfInput is returned when a read crosses the end of the buffer.
	ErrEndOfInput = errors.New("assetkit: end of input")

	// ErrInvalidValue is returned when an enum discriminant, magic number,
	// or other structurally-invalid value is encountered.
	ErrInvalidValue = errors.New("assetkit: invalid value")

	// ErrUTF8 is returned when a byte sequence declared as text is not
	// valid UTF-8 and lossy recovery was not requested.
	ErrUTF8 = errors.New("assetkit: invalid utf-8")

	// ErrDecompress is returned on LZ4/LZMA codec failure, including
	// decompressed-size mismatches.
	ErrDecompress = errors.New("assetkit: decompression failed")

	// ErrDecodeImage is returned on per-format pixel decoding failure.
	ErrDecodeImage = errors.New("assetkit: image decode failed")

	// ErrUnimplemented is returned when a requested class or texture
	// format has no reader wired up.
	ErrUnimplemented = errors.New("assetkit: unimplemented")

	// ErrZeroSizeImage is returned for a texture with non-positive
	// dimensions.
	ErrZeroSizeImage = errors.New("assetkit: zero size image")

	// ErrObjectNotFound is returned when a PPtr or FindObject lookup has
	// no matching path id.
	ErrObjectNotFound = errors.New("assetkit: object not found")

	// ErrStreamingDataMissing is returned when an object's StreamingInfo
	// names a sibling node that cannot be found in its bundle.
	ErrStreamingDataMissing = errors.New("assetkit: streaming data missing")
)

// UnsupportedFileType reports a bundle signature or container kind assetkit
// does not decode (only UnityFS is in scope).
type UnsupportedFileType struct {
	Name string
}

func (e *UnsupportedFileType) Error() string {
	return fmt.Sprintf("assetkit: unsupported file type %q", e.Name)
}

// NewUnsupportedFileType builds an UnsupportedFileType error for name.
func NewUnsupportedFileType(name string) error {
	return &UnsupportedFileType{Name: name}
}

// CustomError is a structured parse-time failure that doesn't fit any of
// the sentinel categories above.
type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return "assetkit: " + e.Message
}

// Custom builds a CustomError with the given message.
func Custom(message string) error {
	return &CustomError{Message: message}
}

// Customf builds a CustomError with a formatted message.
func Customf(format string, args ...any) error {
	return &CustomError{Message: fmt.Sprintf(format, args...)}
}
