package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubAdminAuthService struct {
	token string
	err   error
}

func (s *stubAdminAuthService) Login(email, password string) (string, error) {
	return s.token, s.err
}

func (s *stubAdminAuthService) CreateAdmin(email, password string) error {
	return s.err
}

func TestAdminLogin(t *testing.T) {
	testCases := []struct {
		name         string
		body         string
		svc          *stubAdminAuthService
		expectedCode int
		expectedBody string
	}{
		{
			name:         "valid credentials",
			body:         `{"email":"admin@vitrio.fr","password":"secret"}`,
			svc:          &stubAdminAuthService{token: "jwt-token"},
			expectedCode: http.StatusOK,
			expectedBody: `"token":"jwt-token"`,
		},
		{
			name:         "rejected credentials",
			body:         `{"email":"admin@vitrio.fr","password":"wrong"}`,
			svc:          &stubAdminAuthService{err: errors.New("invalid credentials")},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "malformed body",
			body:         `{not json`,
			svc:          &stubAdminAuthService{},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewAdminAuthHandler(tc.svc)
			req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			handler.Login(rec, req)

			assert.Equal(t, tc.expectedCode, rec.Code)
			if tc.expectedBody != "" {
				assert.Contains(t, rec.Body.String(), tc.expectedBody)
			}
		})
	}
}

func TestCreateUserAdmin(t *testing.T) {
	handler := NewAdminAuthHandler(&stubAdminAuthService{})
	req := httptest.NewRequest(http.MethodPost, "/admin/users", strings.NewReader(`{"email":"a@vitrio.fr","password":"pw"}`))
	rec := httptest.NewRecorder()

	handler.CreateUserAdmin(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Admin created")
}
