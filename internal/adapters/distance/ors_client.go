package distance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ORSProfile selects the ORS routing graph a matrix is computed on.
type ORSProfile string

const (
	ProfileDrivingCar      ORSProfile = "driving-car"
	ProfileDrivingHGV      ORSProfile = "driving-hgv"
	ProfileCyclingRegular  ORSProfile = "cycling-regular"
	ProfileCyclingElectric ORSProfile = "cycling-electric"
	ProfileFootWalking     ORSProfile = "foot-walking"
	ProfileWheelchair      ORSProfile = "wheelchair"
)

func ParseORSProfile(s string) (ORSProfile, error) {
	p := ORSProfile(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case ProfileDrivingCar, ProfileDrivingHGV, ProfileCyclingRegular,
		ProfileCyclingElectric, ProfileFootWalking, ProfileWheelchair:
		return p, nil
	}
	return "", fmt.Errorf("unknown ORS profile %q", s)
}

// orsUnknownError is the code ORS uses for failures on its side; the other 60xx
// codes reject the request itself.
const orsUnknownError = 6099

// orsError is a non-2xx ORS reply. ORS usually wraps the failure as
// {"error":{"code":6004,"message":"..."}}; gateways in front of it answer in plain text.
type orsError struct {
	Status     int
	Code       int
	Message    string
	RetryAfter time.Duration
	// HasRetryAfter is set when the reply carried a Retry-After delay, which may be zero.
	HasRetryAfter bool
}

func (e *orsError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("ors: status %d: code %d: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("ors: status %d: %s", e.Status, e.Message)
}

func (e *orsError) transient() bool {
	switch e.Status {
	case http.StatusTooManyRequests, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	case http.StatusInternalServerError:
		return e.Code == 0 || e.Code == orsUnknownError
	}
	return false
}

func readORSError(resp *http.Response) *orsError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	e := &orsError{Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}

	if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs >= 0 {
		e.RetryAfter, e.HasRetryAfter = time.Duration(secs)*time.Second, true
	}

	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if json.Unmarshal(body, &envelope) != nil || len(envelope.Error) == 0 {
		return e
	}
	var detail struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	var text string
	switch {
	case json.Unmarshal(envelope.Error, &detail) == nil && detail.Message != "":
		e.Code, e.Message = detail.Code, detail.Message
	case json.Unmarshal(envelope.Error, &text) == nil && text != "":
		e.Message = text
	}
	return e
}

func retryable(err error) bool {
	var oe *orsError
	if errors.As(err, &oe) {
		return oe.transient()
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// postJSON sends payload to the ORS path and returns the 2xx response. Transient
// failures are retried with doubling backoff; a Retry-After hint replaces the
// backoff for the next attempt.
func (o *ORSMatrixProvider) postJSON(ctx context.Context, path string, payload []byte) (*http.Response, error) {
	backoff := o.backoff
	var lastErr error

	for attempt := 1; attempt <= o.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Authorization", o.apiKey)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json; charset=utf-8")

		resp, err := o.session.Do(req)
		if err == nil && resp.StatusCode < 300 {
			return resp, nil
		}
		wait := backoff
		if err == nil {
			oe := readORSError(resp)
			resp.Body.Close()
			if oe.HasRetryAfter {
				wait = oe.RetryAfter
			}
			err = oe
		}
		lastErr = err

		if !retryable(err) || attempt == o.attempts {
			break
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}
	return nil, lastErr
}
