// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/tracing"
)

// newKratosProxy forwards the Kratos self-service and session endpoints so
// clients only need the service URL.
func newKratosProxy(kratosPublicURL string, logger logging.LoggerInterface) (http.Handler, error) {
	target, err := url.Parse(kratosPublicURL)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid kratos public url %q", kratosPublicURL)
	}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(target)
			r.SetXForwarded()
		},
		Transport: tracing.NewHTTPClient().Transport,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Errorf("kratos proxy error on %s: %v", r.URL.Path, err)
			w.WriteHeader(http.StatusBadGateway)
		},
	}

	return proxy, nil
}
