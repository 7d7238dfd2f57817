// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/canonical/autocrm/internal/storage"
	crm "github.com/canonical/autocrm/internal/types"
)

// maxBodySize bounds every JSON request body.
const maxBodySize = 1 << 20

var ErrBadRequest = errors.New("bad request")

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Status: status, Message: message})
}

// StatusFor maps an error to an HTTP status. extra lists package specific
// sentinels and is consulted before the shared ones.
func StatusFor(err error, extra map[error]int) int {
	for sentinel, status := range extra {
		if errors.Is(err, sentinel) {
			return status
		}
	}

	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrDuplicateKey):
		return http.StatusConflict
	case errors.Is(err, storage.ErrForeignKeyViolation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, crm.ErrInvalidTransition), errors.Is(err, crm.ErrInvalidPriority):
		return http.StatusUnprocessableEntity
	}

	return http.StatusInternalServerError
}

// WriteServiceError writes err with the status StatusFor picks. Internal
// errors get a generic message.
func WriteServiceError(w http.ResponseWriter, err error, extra map[error]int) {
	status := StatusFor(err, extra)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = http.StatusText(status)
	}
	WriteError(w, status, message)
}

// DecodeJSON reads a JSON body into v and validates its struct tags.
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", ErrBadRequest, err)
	}

	return Validate(v)
}

// Validate checks the struct tags of v, naming every failing field.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
	}

	return fmt.Errorf("%w: invalid fields: %s", ErrBadRequest, strings.Join(fields, ", "))
}
