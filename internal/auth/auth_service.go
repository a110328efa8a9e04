package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// AuthService is the subset of the hosted auth REST API the portal uses.
type AuthService interface {
	SignUp(ctx context.Context, email, password string, metadata map[string]any) (*User, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (*Session, error)
	UpdatePassword(ctx context.Context, accessToken, newPassword string) error
	SignOut(ctx context.Context, accessToken string) error
}

// APIError carries the auth service's own message for a non-2xx answer.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

type authService struct {
	baseURL string
	anonKey string
	http    *http.Client
}

// NewAuthService builds a client for the auth service at baseURL (without the /auth/v1 suffix).
func NewAuthService(baseURL, anonKey string) AuthService {
	return &authService{
		baseURL: strings.TrimRight(baseURL, "/") + "/auth/v1",
		anonKey: anonKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *authService) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*User, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
		"data":     metadata,
	}
	// With email confirmation on, the user comes back bare; otherwise nested in a session.
	var out struct {
		User
		Nested *User `json:"user"`
	}
	if err := s.do(ctx, http.MethodPost, "/signup", "", body, &out); err != nil {
		return nil, err
	}
	if out.Nested != nil {
		return out.Nested, nil
	}
	return &out.User, nil
}

func (s *authService) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	var sess Session
	body := map[string]string{"email": email, "password": password}
	if err := s.do(ctx, http.MethodPost, "/token?grant_type=password", "", body, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *authService) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	var sess Session
	body := map[string]string{"refresh_token": refreshToken}
	if err := s.do(ctx, http.MethodPost, "/token?grant_type=refresh_token", "", body, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *authService) UpdatePassword(ctx context.Context, accessToken, newPassword string) error {
	body := map[string]string{"password": newPassword}
	return s.do(ctx, http.MethodPut, "/user", accessToken, body, nil)
}

func (s *authService) SignOut(ctx context.Context, accessToken string) error {
	return s.do(ctx, http.MethodPost, "/logout", accessToken, nil, nil)
}

func (s *authService) do(ctx context.Context, method, path, accessToken string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding auth request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building auth request: %w", err)
	}
	req.Header.Set("apikey", s.anonKey)
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	} else {
		req.Header.Set("Authorization", "Bearer "+s.anonKey)
	}

	res, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("auth service unreachable: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("reading auth response: %w", err)
	}

	if res.StatusCode >= http.StatusBadRequest {
		return &APIError{StatusCode: res.StatusCode, Message: errorMessage(raw, res.Status)}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding auth response: %w", err)
	}
	return nil
}

// errorMessage picks the first message field the auth service filled in.
func errorMessage(raw []byte, fallback string) string {
	var body struct {
		Msg              string `json:"msg"`
		ErrorDescription string `json:"error_description"`
		Message          string `json:"message"`
		Error            string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, m := range []string{body.Msg, body.ErrorDescription, body.Message, body.Error} {
			if m != "" {
				return m
			}
		}
	}
	return fallback
}
