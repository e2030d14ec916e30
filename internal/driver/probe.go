package driver

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// probeSessionID is a session that can never exist; deleting it is handled
// by every driver regardless of dialect, which makes it the one safe
// readiness endpoint.
const probeSessionID = "drover-readiness-probe"

// CheckReady issues one readiness probe against a driver's base URL.
//
// The probe is a DELETE on a session known not to exist. A spec-compliant
// driver answers it with a success status carrying an error body; a legacy
// driver answers the same condition with a 500. Both mean the driver is up,
// so the classifier accepts either as long as the reply is JSON. Any
// transport-level failure (connection refused, reset, timeout) means "not
// listening yet" and reports false.
func CheckReady(ctx context.Context, client *http.Client, baseURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	url := strings.TrimSuffix(baseURL, "/") + "/session/" + probeSessionID
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return false
	}

	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return false
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true
	case resp.StatusCode >= 500:
		return true
	default:
		return false
	}
}

// waitReady polls CheckReady until it succeeds or the deadline passes.
func waitReady(ctx context.Context, client *http.Client, baseURL string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if CheckReady(ctx, client, baseURL) {
			return true
		}
		if time.Now().After(deadline) || ctx.Err() != nil {
			return false
		}
		select {
		case <-time.After(probeInterval):
		case <-ctx.Done():
			return false
		}
	}
}
