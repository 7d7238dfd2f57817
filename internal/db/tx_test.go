// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"
)

func TestLimit(t *testing.T) {
	tests := []struct {
		requested uint64
		want      uint64
	}{
		{0, 100},
		{1, 1},
		{250, 250},
		{500, 500},
		{10000, 500},
	}

	for _, tt := range tests {
		if got := Limit(tt.requested); got != tt.want {
			t.Errorf("Limit(%d) = %d, want %d", tt.requested, got, tt.want)
		}
	}
}

func TestPendingTxContext(t *testing.T) {
	if p := pendingTxFrom(context.Background()); p != nil {
		t.Fatal("expected no transaction in a bare context")
	}

	p := &pendingTx{}
	if got := pendingTxFrom(withPendingTx(context.Background(), p)); got != p {
		t.Fatal("expected the transaction to round trip through the context")
	}
}

func TestPendingTxIsLazy(t *testing.T) {
	calls := 0
	p := &pendingTx{
		begin: func(context.Context, *sql.TxOptions) (*sql.Tx, error) {
			calls++
			return nil, errors.New("unreachable")
		},
		timeout: time.Second,
	}

	if p.started() {
		t.Fatal("transaction must not start before first use")
	}
	if err := p.finish(true); err != nil {
		t.Fatalf("finishing an unused transaction should succeed, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no transaction to be opened, got %d", calls)
	}
}

func TestPendingTxBeginFailure(t *testing.T) {
	boom := errors.New("too many connections")

	var isolation sql.IsolationLevel
	p := &pendingTx{
		begin: func(_ context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
			isolation = opts.Isolation
			return nil, boom
		},
		timeout: time.Second,
	}

	if _, err := p.runner(); !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
	if isolation != sql.LevelReadCommitted {
		t.Fatalf("expected read committed isolation, got %v", isolation)
	}
	if p.started() {
		t.Fatal("a failed begin must not count as started")
	}
}

func TestPendingTxFinishedRejectsStatements(t *testing.T) {
	p := &pendingTx{timeout: time.Second}

	if err := p.finish(false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.finish(true); err != nil {
		t.Fatalf("finishing twice should be a no-op, got %v", err)
	}
	if _, err := p.runner(); !errors.Is(err, sql.ErrTxDone) {
		t.Fatalf("expected sql.ErrTxDone, got %v", err)
	}
}

type fakeTx struct {
	commitErr  error
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Commit() error {
	f.committed = f.commitErr == nil
	return f.commitErr
}

func (f *fakeTx) Rollback() error {
	f.rolledBack = true
	return nil
}

func (f *fakeTx) Exec(string, ...interface{}) (sql.Result, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeTx) Query(string, ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("not implemented")
}

func TestAfterCommit(t *testing.T) {
	tests := []struct {
		name      string
		tx        *fakeTx
		commit    bool
		expectErr bool
		expectRun bool
	}{
		{name: "commit runs hooks", tx: &fakeTx{}, commit: true, expectRun: true},
		{name: "unused transaction runs hooks", commit: true, expectRun: true},
		{name: "rollback drops hooks", tx: &fakeTx{}, commit: false},
		{name: "failed commit drops hooks", tx: &fakeTx{commitErr: errors.New("serialization failure")}, commit: true, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &pendingTx{timeout: time.Second}
			if tt.tx != nil {
				p.tx = tt.tx
			}
			ctx := withPendingTx(context.Background(), p)

			ran := 0
			AfterCommit(ctx, func() { ran++ })

			if ran != 0 {
				t.Fatal("hook ran before the transaction finished")
			}

			err := p.finish(tt.commit)
			if (err != nil) != tt.expectErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if (ran == 1) != tt.expectRun {
				t.Fatalf("expected hook run %v, ran %d times", tt.expectRun, ran)
			}
		})
	}
}

func TestAfterCommitWithoutTransaction(t *testing.T) {
	ran := false
	AfterCommit(context.Background(), func() { ran = true })

	if !ran {
		t.Fatal("expected the hook to run right away outside of a transaction")
	}
}
