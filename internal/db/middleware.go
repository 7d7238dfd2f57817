// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/canonical/autocrm/internal/logging"
)

// TransactionMiddleware runs every mutating request inside a lazily started
// transaction. The transaction commits when the handler answers below 400 and
// rolls back otherwise. The response is held back until the transaction is
// over, a failed commit turns it into a 500. Safe methods bypass it.
func TransactionMiddleware(db DBClientInterface, logger logging.LoggerInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			rw := newBufferedResponse()

			err := db.WithTx(r.Context(), func(txCtx context.Context) error {
				next.ServeHTTP(rw, r.WithContext(txCtx))

				if rw.statusCode >= http.StatusBadRequest {
					return fmt.Errorf("%s %s answered %d", r.Method, r.URL.Path, rw.statusCode)
				}
				return nil
			})

			if err != nil {
				logger.Debugf("transaction rolled back: %v", err)
			}

			if err != nil && rw.statusCode < http.StatusBadRequest {
				logger.Errorf("failed to commit %s %s: %v", r.Method, r.URL.Path, err)
				writeCommitFailure(w)
				return
			}

			rw.flush(w)
		})
	}
}

// bufferedResponse keeps what a handler wrote until the transaction it ran
// in is settled.
type bufferedResponse struct {
	header     http.Header
	statusCode int
	body       bytes.Buffer
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{header: make(http.Header), statusCode: http.StatusOK}
}

func (rw *bufferedResponse) Header() http.Header {
	return rw.header
}

func (rw *bufferedResponse) WriteHeader(code int) {
	rw.statusCode = code
}

func (rw *bufferedResponse) Write(b []byte) (int, error) {
	return rw.body.Write(b)
}

func (rw *bufferedResponse) flush(w http.ResponseWriter) {
	for k, v := range rw.header {
		w.Header()[k] = v
	}
	w.WriteHeader(rw.statusCode)
	_, _ = w.Write(rw.body.Bytes())
}

func writeCommitFailure(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  http.StatusInternalServerError,
		"message": "failed to save changes",
	})
}
