// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package companies

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/autocrm/internal/http/types"
	"github.com/canonical/autocrm/internal/identity"
	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/objects"
	"github.com/canonical/autocrm/internal/types"
)

const (
	maxLogoSize   = 5 << 20
	logoFormField = "file"
)

var errorStatus = map[error]int{
	ErrForbidden:       http.StatusForbidden,
	ErrAlreadyAdmin:    http.StatusConflict,
	ErrNoCompany:       http.StatusNotFound,
	ErrUnsupportedLogo: http.StatusUnsupportedMediaType,
	ErrEmptyName:       http.StatusBadRequest,

	objects.ErrStorageDisabled: http.StatusServiceUnavailable,
}

type settingsRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Industry     *string `json:"industry,omitempty" validate:"omitempty,max=100"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Website      *string `json:"website,omitempty" validate:"omitempty,url"`
	SupportEmail *string `json:"support_email,omitempty" validate:"omitempty,email"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address      *string `json:"address,omitempty" validate:"omitempty,max=500"`
	City         *string `json:"city,omitempty" validate:"omitempty,max=100"`
	State        *string `json:"state,omitempty" validate:"omitempty,max=100"`
	Country      *string `json:"country,omitempty" validate:"omitempty,max=100"`
	PostalCode   *string `json:"postal_code,omitempty" validate:"omitempty,max=20"`
}

type logoResponse struct {
	LogoURL string `json:"logo_url"`
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

// RegisterPublicEndpoints mounts the company directory, readable without a session.
func (a *API) RegisterPublicEndpoints(r chi.Router) {
	r.Get("/api/v0/companies", a.listCompanies)
	r.Get("/api/v0/companies/{id}", a.getCompany)
}

func (a *API) RegisterEndpoints(r chi.Router) {
	r.Post("/api/v0/companies", a.registerCompany)
	r.Get("/api/v0/company", a.getOwnCompany)
	r.Patch("/api/v0/company", a.updateCompany)
	r.Put("/api/v0/company/logo", a.uploadLogo)
	r.Get("/api/v0/company/stats", a.stats)
}

func (a *API) fail(w http.ResponseWriter, err error) {
	if httptypes.StatusFor(err, errorStatus) >= http.StatusInternalServerError {
		a.logger.Errorf("companies request failed: %v", err)
	}
	httptypes.WriteServiceError(w, err, errorStatus)
}

func (a *API) principal(w http.ResponseWriter, r *http.Request) (*types.Principal, bool) {
	p, ok := identity.PrincipalFromContext(r.Context())
	if !ok {
		httptypes.WriteError(w, http.StatusUnauthorized, "unauthenticated")
	}
	return p, ok
}

func (a *API) listCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := a.service.ListVerified(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}

	if companies == nil {
		companies = []*types.Company{}
	}

	httptypes.WriteJSON(w, http.StatusOK, companies)
}

func (a *API) getCompany(w http.ResponseWriter, r *http.Request) {
	company, err := a.service.GetVerified(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, company)
}

func (a *API) registerCompany(w http.ResponseWriter, r *http.Request) {
	p, ok := a.principal(w, r)
	if !ok {
		return
	}

	req := new(RegisterCompanyRequest)
	if err := httptypes.DecodeJSON(r, req); err != nil {
		a.fail(w, err)
		return
	}

	company, err := a.service.Register(r.Context(), p, req)
	if err != nil {
		a.fail(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusCreated, company)
}

func (a *API) getOwnCompany(w http.ResponseWriter, r *http.Request) {
	p, ok := a.principal(w, r)
	if !ok {
		return
	}

	company, err := a.service.GetOwn(r.Context(), p)
	if err != nil {
		a.fail(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, company)
}

func (a *API) updateCompany(w http.ResponseWriter, r *http.Request) {
	p, ok := a.principal(w, r)
	if !ok {
		return
	}

	req := new(settingsRequest)
	if err := httptypes.DecodeJSON(r, req); err != nil {
		a.fail(w, err)
		return
	}

	company, err := a.service.UpdateSettings(r.Context(), p, types.CompanySettings(*req))
	if err != nil {
		a.fail(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, company)
}

func (a *API) uploadLogo(w http.ResponseWriter, r *http.Request) {
	p, ok := a.principal(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxLogoSize+1024)
	if err := r.ParseMultipartForm(maxLogoSize); err != nil {
		httptypes.WriteError(w, http.StatusBadRequest, "logo must be sent as multipart form data under 5MB")
		return
	}

	file, header, err := r.FormFile(logoFormField)
	if err != nil {
		httptypes.WriteError(w, http.StatusBadRequest, "missing logo file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := a.service.UploadLogo(r.Context(), p, header.Filename, file, header.Size, contentType)
	if err != nil {
		a.fail(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, logoResponse{LogoURL: url})
}

func (a *API) stats(w http.ResponseWriter, r *http.Request) {
	p, ok := a.principal(w, r)
	if !ok {
		return
	}

	stats, err := a.service.Stats(r.Context(), p)
	if err != nil {
		a.fail(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, stats)
}
