package contentapi

import (
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

var (
	ErrBaseURLRequired  = errors.New("contentapi: base url is required")
	ErrUnexpectedStatus = errors.New("contentapi: unexpected status")
	ErrSchemaInvalid    = errors.New("contentapi: payload does not match the envelope schema")
)

const (
	textCodeRequestFailed = "CONTENT_API_REQUEST_FAILED"
	textCodeStatus        = "CONTENT_API_UNEXPECTED_STATUS"
	textCodeDecode        = "CONTENT_API_DECODE_FAILED"
	textCodeSchema        = "CONTENT_API_SCHEMA_INVALID"
	textCodeFiles         = "CONTENT_API_FILES_UNREADABLE"
)

// SchemaIssue is a single envelope validation failure.
type SchemaIssue struct {
	Location string
	Message  string
}

// SchemaError lists why an envelope was rejected.
type SchemaError struct {
	Endpoint string
	Issues   []SchemaIssue
}

func (e *SchemaError) Error() string {
	if len(e.Issues) == 0 {
		return fmt.Sprintf("%s: %s", ErrSchemaInvalid, e.Endpoint)
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return fmt.Sprintf("%s: %s: %s", ErrSchemaInvalid, e.Endpoint, strings.Join(parts, "; "))
}

func (e *SchemaError) Unwrap() error {
	return ErrSchemaInvalid
}

func wrapExternal(err error, message, textCode string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryExternal, message).
		WithTextCode(textCode)
}
