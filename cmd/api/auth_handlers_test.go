package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewhub/proj/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performJSON(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	handler.ServeHTTP(rr, req)
	return rr
}

func TestSignupValidation(t *testing.T) {
	app := newAuthedApp(t, nil)

	cases := []struct {
		name  string
		body  map[string]string
		field string
	}{
		{"missing email", map[string]string{"username": "booklover"}, "email"},
		{"invalid email", map[string]string{"username": "booklover", "email": "not-an-email"}, "email"},
		{"bad username characters", map[string]string{"username": "book lover!", "email": "a@b.com"}, "username"},
		{"reserved username", map[string]string{"username": "me", "email": "a@b.com"}, "username"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := performJSON(t, app.signup, tc.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

			var resp Response
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Contains(t, resp.Data["errors"], tc.field)
		})
	}
}

func TestSignupRejectsUnknownFields(t *testing.T) {
	app := newAuthedApp(t, nil)
	rr := performJSON(t, app.signup, map[string]string{
		"username": "booklover",
		"email":    "a@b.com",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestObtainTokenForUnknownUser(t *testing.T) {
	app := newAuthedApp(t, nil)
	rr := performJSON(t, app.obtainToken, map[string]string{
		"username":          "ghost",
		"confirmation_code": "ABC123",
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestObtainTokenWithInvalidCode(t *testing.T) {
	user := &models.User{
		ID:               1,
		Username:         "booklover",
		Email:            "booklover@example.com",
		Role:             models.RoleUser,
		ConfirmationCode: "ABC123",
	}
	app := newAuthedApp(t, user)
	rr := performJSON(t, app.obtainToken, map[string]string{
		"username":          "booklover",
		"confirmation_code": "XYZ999",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, user.ConfirmationCode)
}
