package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_SignInWithPassword(t *testing.T) {
	userID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon", r.Header.Get("apikey"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "secreta" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "at",
			"refresh_token": "rt",
			"token_type":    "bearer",
			"expires_in":    3600,
			"user":          map[string]any{"id": userID, "email": body["email"]},
		})
	}))
	defer srv.Close()

	svc := NewAuthService(srv.URL+"/", "anon")

	sess, err := svc.SignInWithPassword(context.Background(), "ana@club.cl", "secreta")
	require.NoError(t, err)
	assert.Equal(t, "at", sess.AccessToken)
	assert.Equal(t, userID, sess.User.ID)

	_, err = svc.SignInWithPassword(context.Background(), "ana@club.cl", "otra")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Invalid login credentials", apiErr.Message)
}

func TestAuthService_SignUp(t *testing.T) {
	userID := uuid.New()

	t.Run("bare user", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/v1/signup", r.URL.Path)
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]any{"rut": "11.222.333-4"}, body["data"])
			_ = json.NewEncoder(w).Encode(map[string]any{"id": userID, "email": "ana@club.cl"})
		}))
		defer srv.Close()

		u, err := NewAuthService(srv.URL, "anon").SignUp(context.Background(), "ana@club.cl", "1234",
			map[string]any{"rut": "11.222.333-4"})
		require.NoError(t, err)
		assert.Equal(t, userID, u.ID)
	})

	t.Run("session with nested user", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token": "at",
				"user":         map[string]any{"id": userID, "email": "ana@club.cl"},
			})
		}))
		defer srv.Close()

		u, err := NewAuthService(srv.URL, "anon").SignUp(context.Background(), "ana@club.cl", "1234", nil)
		require.NoError(t, err)
		assert.Equal(t, userID, u.ID)
	})

	t.Run("already registered", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"code":422,"msg":"User already registered"}`))
		}))
		defer srv.Close()

		_, err := NewAuthService(srv.URL, "anon").SignUp(context.Background(), "ana@club.cl", "1234", nil)
		assert.EqualError(t, err, "User already registered")
	})
}

func TestAuthService_UpdatePasswordAndSignOut(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		if r.URL.Path == "/auth/v1/logout" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(`{"id":"` + uuid.NewString() + `"}`))
	}))
	defer srv.Close()

	svc := NewAuthService(srv.URL, "anon")
	require.NoError(t, svc.UpdatePassword(context.Background(), "user-token", "nueva"))
	require.NoError(t, svc.SignOut(context.Background(), "user-token"))
	assert.Equal(t, []string{"PUT /auth/v1/user", "POST /auth/v1/logout"}, calls)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "a", errorMessage([]byte(`{"msg":"a","message":"b"}`), "x"))
	assert.Equal(t, "b", errorMessage([]byte(`{"message":"b"}`), "x"))
	assert.Equal(t, "x", errorMessage([]byte(`not json`), "x"))
}
