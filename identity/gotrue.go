package identity

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

const (
	gotrueSignupPath        = "/auth/v1/signup"
	gotruePasswordGrantPath = "/auth/v1/token?grant_type=password"
)

// GoTrueClient talks to a hosted GoTrue-compatible identity service
// (Supabase Auth and friends).
type GoTrueClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewGoTrueClient creates a client for the service at baseURL. apiKey is
// sent as the `apikey` header on every request.
func NewGoTrueClient(baseURL, apiKey string) *GoTrueClient {
	return &GoTrueClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type gotrueSignupRequest struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Data     Metadata `json:"data"`
}

type gotruePasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// gotrueErrorBody covers the error envelope variants GoTrue has shipped over
// the years: modern responses carry error_code, older ones only msg/message
// or OAuth-style error/error_description.
type gotrueErrorBody struct {
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorField       string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// SignUp registers a new user, attaching the username as user_metadata.
// Depending on server settings the response is either a bare user object or
// a session with the user embedded; both shapes are accepted.
func (g *GoTrueClient) SignUp(ctx context.Context, params SignUpParams) (*User, error) {
	body := gotrueSignupRequest{
		Email:    params.Email,
		Password: params.Password,
		Data:     Metadata{Username: params.Username},
	}
	data, err := g.post(ctx, gotrueSignupPath, body)
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err == nil && sess.User.ID != "" {
		return &sess.User, nil
	}
	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("parse signup response: %w", err)
	}
	return &user, nil
}

// SignInWithPassword performs the password grant and returns the session.
func (g *GoTrueClient) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	data, err := g.post(ctx, gotruePasswordGrantPath, gotruePasswordRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parse token response: %w", err)
	}
	return &sess, nil
}

func (g *GoTrueClient) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("apikey", g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request identity provider: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, mapGoTrueError(data)
	}
	return data, nil
}

// mapGoTrueError converts a provider error payload into a structured
// *Error. The error_code field is preferred; the message substring checks
// exist only as legacy compatibility for servers that do not send it, and
// are not assumed to be exhaustive.
func mapGoTrueError(data []byte) error {
	var body gotrueErrorBody
	_ = json.Unmarshal(data, &body)

	msg := body.Msg
	if msg == "" {
		msg = body.Message
	}
	if msg == "" {
		msg = body.ErrorDescription
	}
	if msg == "" {
		msg = body.ErrorField
	}
	if msg == "" {
		msg = string(data)
	}

	switch body.ErrorCode {
	case "user_not_found":
		return &Error{Code: CodeUserNotFound, Message: msg}
	case "invalid_credentials":
		return &Error{Code: CodeInvalidCredentials, Message: msg}
	case "user_already_exists", "email_exists":
		return &Error{Code: CodeUserExists, Message: msg}
	}

	if strings.Contains(msg, "User not found") {
		return &Error{Code: CodeUserNotFound, Message: msg}
	}
	if strings.Contains(msg, "Invalid login credentials") {
		return &Error{Code: CodeInvalidCredentials, Message: msg}
	}

	return &Error{Code: CodeUnknown, Message: msg}
}
