// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/autocrm/internal/http/types"
	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/types"
)

type registrationResponse struct {
	Role types.Role `json:"role"`
}

type API struct {
	service ServiceInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(r chi.Router) {
	r.Post("/webhooks/registration", a.registration)
}

func (a *API) registration(w http.ResponseWriter, r *http.Request) {
	var hook RegistrationHook
	if err := json.NewDecoder(r.Body).Decode(&hook); err != nil {
		a.logger.Errorf("invalid registration hook body: %v", err)
		httptypes.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	role, err := a.service.HandleRegistration(r.Context(), hook.Identity.ID, hook.Identity.Traits.Email, hook.TransientPayload.Role)
	if errors.Is(err, ErrMissingIdentity) {
		httptypes.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		a.logger.Errorf("registration hook failed: %v", err)
		httptypes.WriteError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, registrationResponse{Role: role})
}
