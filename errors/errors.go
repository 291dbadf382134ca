// Package errors provides the error taxonomy shared by every s3tool operation.
//
// Each failure carries a Kind (connection, not found, access denied, protocol,
// local input, unhandled), the resolution step that observed it and, for
// provider faults, the provider-supplied code and message. Error() renders the
// human-readable text that ends up in the message field of a response record.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go"
	"github.com/hashicorp/go-multierror"
)

// Kind classifies a failure.
type Kind int

const (
	// KindUnhandled is the catch-all for unexpected provider faults.
	KindUnhandled Kind = iota

	// KindConnection is an authentication or network failure at connect time.
	KindConnection

	// KindNotFound means the bucket or key does not exist.
	KindNotFound

	// KindAccessDenied is a provider-reported permission fault.
	KindAccessDenied

	// KindProtocol is any other provider-reported fault.
	KindProtocol

	// KindLocalInput is an invalid argument or missing local file.
	KindLocalInput
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "ConnectionError"
	case KindNotFound:
		return "NotFound"
	case KindAccessDenied:
		return "AccessDenied"
	case KindProtocol:
		return "ProtocolError"
	case KindLocalInput:
		return "LocalInputError"
	default:
		return "Unhandled"
	}
}

// Sentinel errors, one per kind. *Error matches its kind's sentinel with errors.Is.
var (
	// ErrConnection indicates the connection could not be made
	ErrConnection = errors.New("connection error")

	// ErrNotFound indicates that the bucket or key does not exist
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied indicates that access to the resource is denied
	ErrAccessDenied = errors.New("access denied")

	// ErrProtocol indicates a provider-reported fault
	ErrProtocol = errors.New("protocol error")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnhandled indicates an unexpected fault
	ErrUnhandled = errors.New("unhandled error")
)

// Error is a classified failure with context about where it was observed.
type Error struct {
	// Op is the resolution step or operation, e.g. "getting bucket"
	Op string

	// Kind classifies the failure
	Kind Kind

	// Code is the provider error code (or HTTP status) for provider faults
	Code string

	// Message is the provider error message or a local description
	Message string

	// Bucket is the bucket name (if applicable)
	Bucket string

	// Key is the object key (if applicable)
	Key string

	// Err is the underlying error
	Err error
}

// Error renders the message shown to users.
func (e *Error) Error() string {
	base := e.describe()
	if e.Op == "" || e.Kind == KindConnection {
		return base
	}
	return base + " when " + e.Op
}

func (e *Error) describe() string {
	switch {
	case e.Kind == KindConnection:
		return ErrConnection.Error()
	case e.Code != "":
		return strings.TrimSpace(fmt.Sprintf("S3ResponseError = %s %s", e.Code, e.Message))
	case e.Message != "":
		return e.Message
	case e.Kind == KindNotFound:
		switch {
		case e.Key != "":
			return fmt.Sprintf("key %s is not found", e.Key)
		case e.Bucket != "":
			return fmt.Sprintf("bucket %s is not found", e.Bucket)
		}
		return ErrNotFound.Error()
	case e.Kind == KindUnhandled:
		return "Unhandled error occurred"
	case e.Err != nil:
		return e.Err.Error()
	}
	return e.Kind.String()
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	return target == sentinel(e.Kind)
}

// WithBucket adds bucket context to an existing error.
func (e *Error) WithBucket(bucket string) *Error {
	e.Bucket = bucket
	return e
}

// WithKey adds object key context to an existing error.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithMessage sets the human-readable description.
func (e *Error) WithMessage(message string) *Error {
	e.Message = message
	return e
}

// NewError creates a new Error of the given kind.
func NewError(op string, kind Kind, err error) *Error {
	return &Error{
		Op:   op,
		Kind: kind,
		Err:  err,
	}
}

// NewConnectionError creates a connection failure. Its message is always "connection error".
func NewConnectionError(err error) *Error {
	return &Error{Kind: KindConnection, Err: err}
}

// NewInputError creates a local input failure with the given description.
func NewInputError(op, message string) *Error {
	return &Error{
		Op:      op,
		Kind:    KindLocalInput,
		Message: message,
		Err:     ErrInvalidInput,
	}
}

// FromAPI classifies an error returned by an SDK call made during op.
// A nil err yields nil. An err that is already an *Error is returned untouched.
func FromAPI(op, bucket, key string, err error) *Error {
	if err == nil {
		return nil
	}

	var existing *Error
	if errors.As(err, &existing) {
		return existing
	}

	e := &Error{Op: op, Bucket: bucket, Key: key, Err: err, Kind: KindUnhandled}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		e.Code = apiErr.ErrorCode()
		e.Message = apiErr.ErrorMessage()
		e.Kind = kindForCode(e.Code)
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		status := respErr.HTTPStatusCode()
		if e.Code == "" {
			e.Code = fmt.Sprintf("%d", status)
			e.Message = http.StatusText(status)
		}
		switch status {
		case http.StatusNotFound:
			e.Kind = KindNotFound
		case http.StatusForbidden:
			e.Kind = KindAccessDenied
		default:
			if e.Kind == KindUnhandled {
				e.Kind = KindProtocol
			}
		}
	}

	return e
}

func kindForCode(code string) Kind {
	switch code {
	case "NotFound", "NoSuchBucket", "NoSuchKey":
		return KindNotFound
	case "AccessDenied", "Forbidden", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return KindAccessDenied
	}
	return KindProtocol
}

func sentinel(k Kind) error {
	switch k {
	case KindConnection:
		return ErrConnection
	case KindNotFound:
		return ErrNotFound
	case KindAccessDenied:
		return ErrAccessDenied
	case KindProtocol:
		return ErrProtocol
	case KindLocalInput:
		return ErrInvalidInput
	}
	return ErrUnhandled
}

// KindOf returns the kind of err, or KindUnhandled if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnhandled
}

// IsNotFound checks if an error indicates that a bucket or key was not found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAccessDenied checks if an error indicates access was denied.
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

// IsConnection checks if an error indicates a connection failure.
func IsConnection(err error) bool {
	return errors.Is(err, ErrConnection)
}

// IsInvalidInput checks if an error indicates invalid input.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// Join aggregates the non-nil errs into one error whose message lists each
// failure separated by "; ". It returns nil when every err is nil.
func Join(errs ...error) error {
	var merr *multierror.Error
	for _, err := range errs {
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	if merr == nil {
		return nil
	}
	merr.ErrorFormat = listFormat
	return merr.ErrorOrNil()
}

func listFormat(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
