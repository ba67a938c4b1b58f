package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"fintrack/identity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider scripts identity responses per test.
type fakeProvider struct {
	signUpFn func(identity.SignUpParams) (*identity.User, error)
	signInFn func(email, password string) (*identity.Session, error)
}

func (f *fakeProvider) SignUp(_ context.Context, params identity.SignUpParams) (*identity.User, error) {
	return f.signUpFn(params)
}

func (f *fakeProvider) SignInWithPassword(_ context.Context, email, password string) (*identity.Session, error) {
	return f.signInFn(email, password)
}

func newAuthRouter(p identity.Provider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAuthHandler(p)
	r.POST("/api/auth/signup", h.Signup)
	r.POST("/api/auth/login", h.Login)
	return r
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	provider := &fakeProvider{
		signUpFn: func(params identity.SignUpParams) (*identity.User, error) {
			return &identity.User{
				ID:           "user-123",
				Email:        params.Email,
				UserMetadata: identity.Metadata{Username: params.Username},
			}, nil
		},
	}
	router := newAuthRouter(provider)

	w := postJSON(router, "/api/auth/signup", `{"username":"alice","email":"a@x.com","password":"pw123"}`)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Signup successful! You can now login.", resp["message"])
	user := resp["user"].(map[string]interface{})
	meta := user["user_metadata"].(map[string]interface{})
	// the submitted username comes back as profile metadata
	assert.Equal(t, "alice", meta["username"])
	assert.Equal(t, "a@x.com", user["email"])
}

func TestAuthHandler_Signup_MissingFields(t *testing.T) {
	provider := &fakeProvider{
		signUpFn: func(identity.SignUpParams) (*identity.User, error) {
			t.Fatal("provider must not be called for invalid input")
			return nil, nil
		},
	}
	router := newAuthRouter(provider)

	for _, body := range []string{
		`{"email":"a@x.com","password":"pw123"}`,
		`{"username":"alice","password":"pw123"}`,
		`{"username":"alice","email":"a@x.com"}`,
		`{}`,
	} {
		w := postJSON(router, "/api/auth/signup", body)
		assert.Equal(t, 400, w.Code, "body: %s", body)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Please provide all fields", resp["error"])
	}
}

func TestAuthHandler_Signup_ProviderError(t *testing.T) {
	provider := &fakeProvider{
		signUpFn: func(identity.SignUpParams) (*identity.User, error) {
			return nil, &identity.Error{Code: identity.CodeUserExists, Message: "User already registered"}
		},
	}
	router := newAuthRouter(provider)

	w := postJSON(router, "/api/auth/signup", `{"username":"alice","email":"a@x.com","password":"pw123"}`)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "User already registered", resp["error"])
}

func TestAuthHandler_Login(t *testing.T) {
	provider := &fakeProvider{
		signInFn: func(email, password string) (*identity.Session, error) {
			return &identity.Session{
				AccessToken: "token-abc",
				TokenType:   "bearer",
				ExpiresIn:   3600,
				User: identity.User{
					ID:           "user-123",
					Email:        email,
					UserMetadata: identity.Metadata{Username: "alice"},
				},
			}, nil
		},
	}
	router := newAuthRouter(provider)

	w := postJSON(router, "/api/auth/login", `{"email":"a@x.com","password":"pw123"}`)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Login successful!", resp["message"])
	user := resp["user"].(map[string]interface{})
	assert.Equal(t, "user-123", user["id"])
	meta := user["user_metadata"].(map[string]interface{})
	assert.Equal(t, "alice", meta["username"])
	session := resp["session"].(map[string]interface{})
	assert.Equal(t, "token-abc", session["access_token"])
}

func TestAuthHandler_Login_UserNotFound(t *testing.T) {
	provider := &fakeProvider{
		signInFn: func(email, password string) (*identity.Session, error) {
			return nil, &identity.Error{Code: identity.CodeUserNotFound, Message: "User not found"}
		},
	}
	router := newAuthRouter(provider)

	w := postJSON(router, "/api/auth/login", `{"email":"nobody@x.com","password":"pw123"}`)

	assert.Equal(t, 404, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "User not found", resp["error"])
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	provider := &fakeProvider{
		signInFn: func(email, password string) (*identity.Session, error) {
			return nil, &identity.Error{Code: identity.CodeInvalidCredentials, Message: "Invalid login credentials"}
		},
	}
	router := newAuthRouter(provider)

	w := postJSON(router, "/api/auth/login", `{"email":"a@x.com","password":"wrong"}`)

	assert.Equal(t, 401, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Incorrect password", resp["error"])
}

func TestAuthHandler_Login_GenericProviderError(t *testing.T) {
	provider := &fakeProvider{
		signInFn: func(email, password string) (*identity.Session, error) {
			return nil, errors.New("provider unavailable")
		},
	}
	router := newAuthRouter(provider)

	w := postJSON(router, "/api/auth/login", `{"email":"a@x.com","password":"pw123"}`)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "provider unavailable", resp["error"])
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	provider := &fakeProvider{
		signInFn: func(email, password string) (*identity.Session, error) {
			t.Fatal("provider must not be called for invalid input")
			return nil, nil
		},
	}
	router := newAuthRouter(provider)

	w := postJSON(router, "/api/auth/login", `{"email":"a@x.com"}`)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Provide email and password", resp["error"])
}
