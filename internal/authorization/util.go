// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

const (
	ADMIN_RELATION    = "admin"
	AGENT_RELATION    = "agent"
	CUSTOMER_RELATION = "customer"
	COMPANY_RELATION  = "company"

	CAN_VIEW_PERMISSION    = "can_view"
	CAN_EDIT_PERMISSION    = "can_edit"
	CAN_COMMENT_PERMISSION = "can_comment"
)

func UserTuple(userId string) string {
	return "user:" + userId
}

func CompanyTuple(companyId string) string {
	return "company:" + companyId
}

func TicketTuple(ticketId string) string {
	return "ticket:" + ticketId
}
