// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"fmt"
	"slices"

	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring"
	"github.com/canonical/autocrm/internal/openfga"
	"github.com/canonical/autocrm/internal/tracing"
)

var ErrInvalidAuthModel = fmt.Errorf("invalid authorization model schema")

var _ AuthorizerInterface = (*Authorizer)(nil)

type Authorizer struct {
	client AuthzClientInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *Authorizer) Check(ctx context.Context, user string, relation string, object string, contextualTuples ...openfga.Tuple) (bool, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.Check")
	defer span.End()

	return a.client.Check(ctx, user, relation, object, contextualTuples...)
}

func (a *Authorizer) ListObjects(ctx context.Context, user string, relation string, objectType string) ([]string, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.ListObjects")
	defer span.End()

	return a.client.ListObjects(ctx, user, relation, objectType)
}

func (a *Authorizer) FilterObjects(ctx context.Context, user string, relation string, objectType string, objs []string) ([]string, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.FilterObjects")
	defer span.End()

	allowedObjs, err := a.ListObjects(ctx, user, relation, objectType)
	if err != nil {
		return nil, err
	}

	var ret []string
	for _, obj := range objs {
		if slices.Contains(allowedObjs, obj) {
			ret = append(ret, obj)
		}
	}
	return ret, nil
}

func (a *Authorizer) ValidateModel(ctx context.Context) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.ValidateModel")
	defer span.End()

	model := *NewAuthorizationModelProvider("v0").GetModel()

	eq, err := a.client.CompareModel(ctx, model)
	if err != nil {
		return err
	}
	if !eq {
		return ErrInvalidAuthModel
	}
	return nil
}

func (a *Authorizer) AssignCompanyAdmin(ctx context.Context, companyId, userId string) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.AssignCompanyAdmin")
	defer span.End()

	return a.client.WriteTuple(ctx, UserTuple(userId), ADMIN_RELATION, CompanyTuple(companyId))
}

func (a *Authorizer) AssignCompanyAgent(ctx context.Context, companyId, userId string) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.AssignCompanyAgent")
	defer span.End()

	return a.client.WriteTuple(ctx, UserTuple(userId), AGENT_RELATION, CompanyTuple(companyId))
}

func (a *Authorizer) RemoveCompanyAgent(ctx context.Context, companyId, userId string) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.RemoveCompanyAgent")
	defer span.End()

	return a.client.DeleteTuple(ctx, UserTuple(userId), AGENT_RELATION, CompanyTuple(companyId))
}

func (a *Authorizer) LinkTicket(ctx context.Context, ticketId, customerId, companyId string) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.LinkTicket")
	defer span.End()

	tuples := []openfga.Tuple{
		*openfga.NewTuple(UserTuple(customerId), CUSTOMER_RELATION, TicketTuple(ticketId)),
	}
	if companyId != "" {
		tuples = append(tuples, *openfga.NewTuple(CompanyTuple(companyId), COMPANY_RELATION, TicketTuple(ticketId)))
	}

	return a.client.WriteTuples(ctx, tuples...)
}

func (a *Authorizer) CanViewTicket(ctx context.Context, ticketId, userId string) (bool, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.CanViewTicket")
	defer span.End()

	return a.Check(ctx, UserTuple(userId), CAN_VIEW_PERMISSION, TicketTuple(ticketId))
}

func (a *Authorizer) CanEditTicket(ctx context.Context, ticketId, userId string) (bool, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.CanEditTicket")
	defer span.End()

	return a.Check(ctx, UserTuple(userId), CAN_EDIT_PERMISSION, TicketTuple(ticketId))
}

func NewAuthorizer(client AuthzClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Authorizer {
	authorizer := new(Authorizer)
	authorizer.client = client
	authorizer.tracer = tracer
	authorizer.monitor = monitor
	authorizer.logger = logger

	return authorizer
}
