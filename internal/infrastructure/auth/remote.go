package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Remote verification errors
var (
	ErrRemoteVerifyRejected    = errors.New("token rejected by remote verifier")
	ErrRemoteVerifyUnavailable = errors.New("remote verifier unavailable")
)

// RemoteVerifier validates tokens against a central identity service.
// It is the fallback in the authentication chain for tokens that were not
// issued locally (e.g. single sign-on tokens from the main ERP).
type RemoteVerifier struct {
	endpoint string
	client   *http.Client
}

// RemoteVerifyResult carries the identity asserted by the remote verifier
type RemoteVerifyResult struct {
	UserID      string   `json:"user_id"`
	Username    string   `json:"username"`
	EmployeeID  string   `json:"employee_id,omitempty"`
	RoleIDs     []string `json:"role_ids,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

type remoteVerifyRequest struct {
	Token string `json:"token"`
}

type remoteVerifyResponse struct {
	Valid       bool     `json:"valid"`
	UserID      string   `json:"user_id"`
	Username    string   `json:"username"`
	EmployeeID  string   `json:"employee_id"`
	RoleIDs     []string `json:"role_ids"`
	Permissions []string `json:"permissions"`
}

// NewRemoteVerifier creates a verifier pointed at the identity service.
// endpoint is the base URL; verification posts to {endpoint}/verify.
func NewRemoteVerifier(endpoint string, timeout time.Duration) *RemoteVerifier {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &RemoteVerifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Verify asks the remote identity service whether the token is valid.
// Network failures and non-2xx responses map to ErrRemoteVerifyUnavailable;
// an explicit "valid": false maps to ErrRemoteVerifyRejected.
func (v *RemoteVerifier) Verify(ctx context.Context, token string) (*RemoteVerifyResult, error) {
	body, err := json.Marshal(remoteVerifyRequest{Token: token})
	if err != nil {
		return nil, fmt.Errorf("failed to encode verify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint+"/verify", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteVerifyUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrRemoteVerifyRejected
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: unexpected status %d", ErrRemoteVerifyUnavailable, resp.StatusCode)
	}

	var decoded remoteVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrRemoteVerifyUnavailable, err)
	}

	if !decoded.Valid || decoded.UserID == "" {
		return nil, ErrRemoteVerifyRejected
	}

	return &RemoteVerifyResult{
		UserID:      decoded.UserID,
		Username:    decoded.Username,
		EmployeeID:  decoded.EmployeeID,
		RoleIDs:     decoded.RoleIDs,
		Permissions: decoded.Permissions,
	}, nil
}
