// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"encoding/json"

	fga "github.com/openfga/go-sdk"
	"github.com/openfga/language/pkg/go/transformer"
)

const modelV0 = `model
  schema 1.1

type user

type company
  relations
    define admin: [user]
    define agent: [user]
    define staff: admin or agent
    define can_view: staff
    define can_edit: admin

type ticket
  relations
    define company: [company]
    define customer: [user]
    define can_view: customer or staff from company
    define can_comment: customer or staff from company
    define can_edit: staff from company
`

var models = map[string]string{
	"v0": modelV0,
}

type AuthorizationModelProvider struct {
	version string
}

// GetModel compiles the DSL of the provider's version. The DSL is a constant
// so a failure here is a programming error.
func (a *AuthorizationModelProvider) GetModel() *fga.AuthorizationModel {
	dsl, ok := models[a.version]
	if !ok {
		panic("unknown authorization model version " + a.version)
	}

	js, err := transformer.TransformDSLToJSON(dsl)
	if err != nil {
		panic(err)
	}

	model := new(fga.AuthorizationModel)
	if err := json.Unmarshal([]byte(js), model); err != nil {
		panic(err)
	}

	return model
}

func (a *AuthorizationModelProvider) DSL() string {
	return models[a.version]
}

func NewAuthorizationModelProvider(version string) *AuthorizationModelProvider {
	return &AuthorizationModelProvider{version: version}
}
