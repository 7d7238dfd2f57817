// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package openfga

import (
	fga "github.com/openfga/go-sdk"
)

// Tuple is a relationship between a user and an object, e.g.
// user:1234 customer ticket:abcd.
type Tuple struct {
	User     string
	Relation string
	Object   string
}

func (t Tuple) Values() (string, string, string) {
	return t.User, t.Relation, t.Object
}

func (t Tuple) key() fga.TupleKey {
	return fga.TupleKey{User: t.User, Relation: t.Relation, Object: t.Object}
}

func (t Tuple) keyWithoutCondition() fga.TupleKeyWithoutCondition {
	return fga.TupleKeyWithoutCondition{User: t.User, Relation: t.Relation, Object: t.Object}
}

func NewTuple(user, relation, object string) *Tuple {
	t := new(Tuple)

	t.User = user
	t.Relation = relation
	t.Object = object

	return t
}
