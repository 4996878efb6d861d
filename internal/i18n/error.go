package i18n

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kumar-97/kukkuta-Kendra/internal/common/cnst"
)

// ErrorCode represents an HTTP status code
type ErrorCode int

const (
	ErrorBadRequest     ErrorCode = http.StatusBadRequest
	ErrorUnauthorized   ErrorCode = http.StatusUnauthorized
	ErrorForbidden      ErrorCode = http.StatusForbidden
	ErrorNotFound       ErrorCode = http.StatusNotFound
	ErrorConflict       ErrorCode = http.StatusConflict
	ErrorTooLarge       ErrorCode = http.StatusRequestEntityTooLarge
	ErrorInternalServer ErrorCode = http.StatusInternalServerError
)

// Kind is the machine readable error category returned next to the message.
type Kind string

const (
	KindUnauthenticated  Kind = "Unauthenticated"
	KindInactiveAccount  Kind = "InactiveAccount"
	KindPermissionDenied Kind = "PermissionDenied"
	KindProfileMissing   Kind = "ProfileMissing"
	KindNotFound         Kind = "NotFound"
	KindInvalidState     Kind = "InvalidState"
	KindInvalidArgument  Kind = "InvalidArgument"
	KindConflict         Kind = "Conflict"
	KindInternal         Kind = "Internal"
)

var kindCodes = map[Kind]ErrorCode{
	KindUnauthenticated:  ErrorUnauthorized,
	KindInactiveAccount:  ErrorBadRequest,
	KindPermissionDenied: ErrorForbidden,
	KindProfileMissing:   ErrorNotFound,
	KindNotFound:         ErrorNotFound,
	KindInvalidState:     ErrorConflict,
	KindInvalidArgument:  ErrorBadRequest,
	KindConflict:         ErrorConflict,
	KindInternal:         ErrorInternalServer,
}

// Code returns the HTTP status a kind is reported with
func (k Kind) Code() ErrorCode {
	if code, ok := kindCodes[k]; ok {
		return code
	}
	return ErrorInternalServer
}

// I18nError represents an internationalized error
type I18nError struct {
	// MessageID is the key used for translation lookup
	MessageID string
	// DefaultMessage is used when translation is not available
	DefaultMessage string
	// Data holds template parameters for the message
	Data map[string]any
}

// New creates a new I18nError with the given message ID
func New(messageID string) *I18nError {
	return &I18nError{
		MessageID:      messageID,
		DefaultMessage: messageID,
		Data:           make(map[string]any),
	}
}

// clone returns a copy with its own Data map, so package level errors can
// be parameterised per request without sharing state.
func (e *I18nError) clone() *I18nError {
	return &I18nError{
		MessageID:      e.MessageID,
		DefaultMessage: e.DefaultMessage,
		Data:           maps.Clone(e.Data),
	}
}

// Error implements the error interface using the default language
func (e *I18nError) Error() string {
	if t := GetTranslator(); t != nil {
		if translated := t.Translate(e.MessageID, defaultLang, e.Data); translated != e.MessageID {
			return translated
		}
	}

	msg := e.DefaultMessage
	for k, v := range e.Data {
		msg = strings.ReplaceAll(msg, fmt.Sprintf("{{.%s}}", k), fmt.Sprintf("%v", v))
	}
	return msg
}

// TranslateByContext translates the error based on the context's language preference
func (e *I18nError) TranslateByContext(c *gin.Context) string {
	if t := GetTranslator(); t != nil {
		if translated := t.Translate(e.MessageID, langFromContext(c), e.Data); translated != e.MessageID {
			return translated
		}
	}
	return e.Error()
}

// ErrorWithCode is an error with a kind and status code that can be used in API responses
type ErrorWithCode struct {
	*I18nError
	Code ErrorCode
	Kind Kind
}

// NewErrorWithCode creates a new error of the given kind; the status code follows the kind
func NewErrorWithCode(messageID string, kind Kind) *ErrorWithCode {
	return &ErrorWithCode{
		I18nError: New(messageID),
		Code:      kind.Code(),
		Kind:      kind,
	}
}

// WithParam returns a copy of the error carrying one more template parameter
func (e *ErrorWithCode) WithParam(key string, value any) *ErrorWithCode {
	cp := &ErrorWithCode{I18nError: e.I18nError.clone(), Code: e.Code, Kind: e.Kind}
	cp.Data[key] = value
	return cp
}

// WithHttpCode returns a copy reported with a different HTTP status code
func (e *ErrorWithCode) WithHttpCode(code ErrorCode) *ErrorWithCode {
	return &ErrorWithCode{I18nError: e.I18nError.clone(), Code: code, Kind: e.Kind}
}

// GetCode returns the error code
func (e *ErrorWithCode) GetCode() ErrorCode {
	return e.Code
}

// Is matches errors built from the same message, regardless of parameters
func (e *ErrorWithCode) Is(target error) bool {
	var t *ErrorWithCode
	if !errors.As(target, &t) {
		return false
	}
	return t.MessageID == e.MessageID
}

// KindOf reports the kind of err; anything that is not an ErrorWithCode is Internal
func KindOf(err error) Kind {
	var ec *ErrorWithCode
	if errors.As(err, &ec) {
		return ec.Kind
	}
	return KindInternal
}

// TranslateError translates an error using the context's language preference
func TranslateError(c *gin.Context, err error) string {
	if err == nil {
		return ""
	}

	var errWithCode *ErrorWithCode
	if errors.As(err, &errWithCode) {
		return errWithCode.TranslateByContext(c)
	}

	var i18nErr *I18nError
	if errors.As(err, &i18nErr) {
		return i18nErr.TranslateByContext(c)
	}
	return err.Error()
}

func langFromContext(c *gin.Context) string {
	if c == nil {
		return defaultLang
	}
	if v, ok := c.Get(cnst.XLang); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return defaultLang
}
