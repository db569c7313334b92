package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// --- Errors ---

// ErrorKind categorizes client errors for handling.
type ErrorKind int

const (
	ErrKindUnknown ErrorKind = iota
	ErrKindConnection
	ErrKindTimeout
	ErrKindHTTP
	ErrKindDecode
)

// APIError represents a failure talking to the Query Genie backend.
// For HTTP errors Message carries the backend-supplied detail/error
// text when the body had one.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Cause   error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error { return e.Cause }

// IsTimeout reports whether err is a request timeout.
func IsTimeout(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == ErrKindTimeout
}

// --- Wire types ---

// User is the identity record the backend returns on login/signup.
type User struct {
	ID            int    `json:"id"`
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Username      string `json:"username"`
	ContactNumber string `json:"contactNumber"`
	Gender        string `json:"gender"`
}

// FullName is the display form used in the sidebar profile line.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type ConnectRequest struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
}

type ConnectResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type ChatRequest struct {
	Question    string        `json:"question"`
	ChatHistory []ChatMessage `json:"chat_history"`
}

type ChatResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

type ConfirmSQLRequest struct {
	UserID  int    `json:"user_id"`
	Confirm bool   `json:"confirm"`
	SQL     string `json:"sql"`
}

type ConfirmSQLResponse struct {
	Message string `json:"message,omitempty"`
}

type CreateSessionRequest struct {
	Title    string        `json:"title"`
	Messages []ChatMessage `json:"messages"`
	UserID   int           `json:"user_id"`
}

// UpdateSessionRequest is a partial update: nil Title leaves the title
// alone, nil Messages leaves the log alone.
type UpdateSessionRequest struct {
	Title    *string        `json:"title,omitempty"`
	Messages *[]ChatMessage `json:"messages,omitempty"`
	UserID   int            `json:"user_id"`
}

type SignupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Gender    string `json:"gender"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	OTP       string `json:"otp"`
	Username  string `json:"username"`
}

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    *User  `json:"user,omitempty"`
}

type OTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// errorBody is what the backend puts in non-2xx responses.
type errorBody struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

// --- Client ---

// Client talks to the Query Genie backend. All query execution,
// inference, OTP issuance and persistence live server-side; the client
// only moves JSON over REST.
//
// The original system sends no authentication header on any call; the
// backend scopes data by the user_id carried in each request instead.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return &APIError{Kind: ErrKindDecode, Message: "failed to marshal request", Cause: err}
		}
		body = bytes.NewReader(payload)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &APIError{Kind: ErrKindConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return &APIError{Kind: ErrKindTimeout, Message: "request timed out", Cause: err}
		}
		return &APIError{Kind: ErrKindConnection, Message: "backend unreachable", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("api: %s %s -> %s", method, path, resp.Status)
		msg := "request failed: " + resp.Status
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
			if eb.Detail != "" {
				msg = eb.Detail
			} else if eb.Error != "" {
				msg = eb.Error
			}
		}
		return &APIError{Kind: ErrKindHTTP, Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Kind: ErrKindDecode, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// Connect points the backend at a target database.
func (c *Client) Connect(ctx context.Context, req ConnectRequest) (*ConnectResponse, error) {
	var out ConnectResponse
	if err := c.do(ctx, http.MethodPost, "/api/connect", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Disconnect clears the backend's active database connection.
func (c *Client) Disconnect(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/disconnect", nil, nil)
}

// Chat forwards a question plus prior history to the inference service.
// Backend-reported failures come back as a value with Success false, so
// the caller can embed the error text in the transcript.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if req.ChatHistory == nil {
		req.ChatHistory = []ChatMessage{}
	}
	var out ChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConfirmSQL executes a previously previewed mutating statement.
//
// The backend keys pending confirmations by its active connection and
// currently ignores user_id; the original client sends a literal 1 and
// this one preserves that until the backend contract changes.
func (c *Client) ConfirmSQL(ctx context.Context, sql string) (*ConfirmSQLResponse, error) {
	req := ConfirmSQLRequest{UserID: 1, Confirm: true, SQL: sql}
	var out ConfirmSQLResponse
	if err := c.do(ctx, http.MethodPost, "/api/confirm-sql", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListSessions fetches all chat sessions owned by a user.
func (c *Client) ListSessions(ctx context.Context, userID int) ([]ChatSession, error) {
	var out []ChatSession
	path := "/api/chat-sessions?user_id=" + strconv.Itoa(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSession creates a new chat session and returns the stored record.
func (c *Client) CreateSession(ctx context.Context, req CreateSessionRequest) (*ChatSession, error) {
	if req.Messages == nil {
		req.Messages = []ChatMessage{}
	}
	var out ChatSession
	if err := c.do(ctx, http.MethodPost, "/api/chat-sessions", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSession applies a partial update (title and/or messages).
func (c *Client) UpdateSession(ctx context.Context, id int, req UpdateSessionRequest) (*ChatSession, error) {
	var out ChatSession
	path := "/api/chat-sessions/" + strconv.Itoa(id)
	if err := c.do(ctx, http.MethodPut, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSession removes a session from the backend.
func (c *Client) DeleteSession(ctx context.Context, id, userID int) error {
	path := fmt.Sprintf("/api/chat-sessions/%d?user_id=%s", id, url.QueryEscape(strconv.Itoa(userID)))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// SendOTP asks the backend to email a verification code.
func (c *Client) SendOTP(ctx context.Context, email string) (*OTPResponse, error) {
	var out OTPResponse
	if err := c.do(ctx, http.MethodPost, "/api/send-otp", map[string]string{"email": email}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Signup registers a new user; the OTP must match the emailed code.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/signup", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates by username-or-email identifier.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
