package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	snapshotcmd "github.com/goliatone/go-showcase/internal/commands/snapshot"
	"github.com/goliatone/go-showcase/internal/contentapi"
	"github.com/goliatone/go-showcase/internal/modal"
)

type errorResponse struct {
	Error    string                   `json:"error"`
	Message  string                   `json:"message,omitempty"`
	Redirect string                   `json:"redirect,omitempty"`
	Issues   []contentapi.SchemaIssue `json:"issues,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.Trim(strings.TrimSpace(base), "/")
	trimmedSuffix := strings.Trim(strings.TrimSpace(suffix), "/")
	switch {
	case trimmedBase == "" && trimmedSuffix == "":
		return "/"
	case trimmedBase == "":
		return "/" + trimmedSuffix
	case trimmedSuffix == "":
		return "/" + trimmedBase
	default:
		return "/" + trimmedBase + "/" + trimmedSuffix
	}
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	return decoder.Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func writeRedirect(w http.ResponseWriter, location string, err error) {
	w.Header().Set("Location", location)
	payload := errorResponse{Error: "not_found", Redirect: location}
	if err != nil {
		payload.Message = err.Error()
	}
	writeJSON(w, http.StatusSeeOther, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	if errors.Is(err, modal.ErrItemNotFound) || errors.Is(err, modal.ErrKindMismatch) ||
		goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()}
	}

	if goerrors.IsCategory(err, goerrors.CategoryValidation) {
		return http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()}
	}

	if errors.Is(err, contentapi.ErrSchemaInvalid) {
		payload := errorResponse{Error: "upstream_invalid", Message: err.Error()}
		var schemaErr *contentapi.SchemaError
		if errors.As(err, &schemaErr) {
			payload.Issues = schemaErr.Issues
		}
		return http.StatusBadGateway, payload
	}

	if goerrors.IsCategory(err, goerrors.CategoryExternal) || errors.Is(err, snapshotcmd.ErrReloadFailed) {
		return http.StatusBadGateway, errorResponse{Error: "upstream_unavailable", Message: err.Error()}
	}

	return http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: err.Error()}
}
