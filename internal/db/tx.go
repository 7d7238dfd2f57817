// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type txKey struct{}

// beginFunc starts the underlying transaction, *sql.DB satisfies it through
// a method value.
type beginFunc func(context.Context, *sql.TxOptions) (*sql.Tx, error)

// pendingTx is bound to a context by WithTx and only opens a transaction
// when a statement first needs one, so handlers that never reach the
// database never hold a connection.
type pendingTx struct {
	begin   beginFunc
	timeout time.Duration

	tx     TxInterface
	cancel context.CancelFunc
	done   bool

	afterCommit []func()
}

func (p *pendingTx) runner() (TxInterface, error) {
	if p.done {
		return nil, sql.ErrTxDone
	}
	if p.tx != nil {
		return p.tx, nil
	}

	// detached from the request so a client disconnect cannot roll back a
	// transaction the handler already decided to commit
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	tx, err := p.begin(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		cancel()
		return nil, err
	}

	p.tx, p.cancel = tx, cancel
	return tx, nil
}

func (p *pendingTx) started() bool {
	return p.tx != nil
}

// finish commits or rolls back whatever was started and releases it. The
// after commit hooks run once a commit went through.
func (p *pendingTx) finish(commit bool) error {
	if p.done {
		return nil
	}
	p.done = true

	if p.cancel != nil {
		defer p.cancel()
	}

	if commit {
		if p.tx != nil {
			if err := p.tx.Commit(); err != nil {
				return fmt.Errorf("failed to commit transaction: %w", err)
			}
		}
		for _, fn := range p.afterCommit {
			fn()
		}
		return nil
	}

	if p.tx == nil {
		return nil
	}
	if err := p.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to roll back transaction: %w", err)
	}
	return nil
}

// AfterCommit defers fn until the transaction WithTx bound to ctx commits,
// and drops it on rollback. Outside of a transaction fn runs right away.
func AfterCommit(ctx context.Context, fn func()) {
	p := pendingTxFrom(ctx)
	if p == nil {
		fn()
		return
	}
	p.afterCommit = append(p.afterCommit, fn)
}

func withPendingTx(ctx context.Context, p *pendingTx) context.Context {
	return context.WithValue(ctx, txKey{}, p)
}

func pendingTxFrom(ctx context.Context) *pendingTx {
	p, _ := ctx.Value(txKey{}).(*pendingTx)
	return p
}
