package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Commands ---
//
// Every network call runs in a command with a per-request timeout; the
// result comes back to Update as a message. Commands never touch model
// state.

func reqContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func loginCmd(api *Client, timeout time.Duration, identifier, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqContext(timeout)
		defer cancel()
		resp, err := api.Login(ctx, LoginRequest{Identifier: identifier, Password: password})
		if err != nil {
			return authResultMsg{err: err}
		}
		var user *User
		if resp.Success {
			user = resp.User
		}
		return authResultMsg{resp: resp, user: user}
	}
}

func signupCmd(api *Client, timeout time.Duration, v signupValues) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqContext(timeout)
		defer cancel()
		resp, err := api.Signup(ctx, SignupRequest{
			FirstName: v.FirstName,
			LastName:  v.LastName,
			Gender:    v.Gender,
			Email:     v.Email,
			Password:  v.Password,
			OTP:       v.OTP,
			Username:  v.Username,
		})
		if err != nil {
			return authResultMsg{err: err, signup: true}
		}
		var user *User
		if resp.Success {
			user = resp.User
			if user == nil {
				// Older backends omit the user record on signup; build
				// one from the form so the session can start anyway.
				user = &User{
					ID:        int(time.Now().UnixMilli()),
					Email:     v.Email,
					FirstName: v.FirstName,
					LastName:  v.LastName,
					Username:  v.Username,
					Gender:    v.Gender,
				}
			}
		}
		return authResultMsg{resp: resp, user: user, signup: true}
	}
}

func sendOTPCmd(api *Client, timeout time.Duration, email string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqContext(timeout)
		defer cancel()
		resp, err := api.SendOTP(ctx, email)
		return otpSentMsg{resp: resp, err: err}
	}
}

func loadSessionsCmd(api *Client, timeout time.Duration, userID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqContext(timeout)
		defer cancel()
		sessions, err := api.ListSessions(ctx, userID)
		return sessionsLoadedMsg{sessions: sessions, err: err}
	}
}

func createChatCmd(api *Client, timeout time.Duration, userID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqContext(timeout)
		defer cancel()
		sess, err := api.CreateSession(ctx, CreateSessionRequest{
			Title:  newChatTitle,
			UserID: userID,
		})
		if err != nil {
			return sessionCreatedMsg{err: err}
		}
		return sessionCreatedMsg{session: *sess}
	}
}

func deleteChatCmd(api *Client, timeout time.Duration, id, userID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqContext(timeout)
		defer cancel()
		err := api.DeleteSession(ctx, id, userID)
		return sessionDeletedMsg{id: id, err: err}
	}
}

func persistMessagesCmd(api *Client, timeout time.Duration, userID, sessionID int, msgs []ChatMessage) tea.Cmd {
	history := append([]ChatMessage(nil), msgs...)
	return func() tea.Msg {
		ctx, cancel := reqContext(timeout)
		defer cancel()
		_, err := api.UpdateSession(ctx, sessionID, UpdateSessionRequest{
			Messages: &history,
			UserID:   userID,
		})
		return sessionPersistedMsg{id: sessionID, err: err}
	}
}

// submitChatCmd runs the full question turn: optional first-message
// rename, persisting the user message, then the inference call. The
// steps run sequentially so the backend never sees the question before
// the transcript write that contains it. Failures after the rename
// surface as an error message in the transcript, like any failed
// question.
func submitChatCmd(api *Client, timeout time.Duration, userID, sessionID int, token string, needRename bool, title, question string, history []ChatMessage) tea.Cmd {
	prior := append([]ChatMessage(nil), history...)
	return func() tea.Msg {
		if needRename {
			ctx, cancel := reqContext(timeout)
			t := title
			_, _ = api.UpdateSession(ctx, sessionID, UpdateSessionRequest{Title: &t, UserID: userID})
			cancel()
		}

		{
			ctx, cancel := reqContext(timeout)
			withQuestion := append(append([]ChatMessage(nil), prior...), ChatMessage{Role: roleUser, Content: question})
			_, _ = api.UpdateSession(ctx, sessionID, UpdateSessionRequest{Messages: &withQuestion, UserID: userID})
			cancel()
		}

		ctx, cancel := reqContext(timeout)
		defer cancel()
		resp, err := api.Chat(ctx, ChatRequest{Question: question, ChatHistory: prior})

		var content string
		switch {
		case err != nil:
			content = "Error: " + err.Error()
		case !resp.Success:
			if resp.Error != "" {
				content = "Error: " + resp.Error
			} else {
				content = "Error: Unknown error occurred"
			}
		default:
			content = resp.Response
		}
		return chatResultMsg{sessionID: sessionID, token: token, content: content}
	}
}

func connectCmd(api *Client, timeout time.Duration, req ConnectRequest) tea.Cmd {
	profile := ConnectionProfile{Host: req.Host, Port: req.Port, User: req.User, Database: req.Database}
	return func() tea.Msg {
		ctx, cancel := reqContext(timeout)
		defer cancel()
		resp, err := api.Connect(ctx, req)
		if err != nil {
			return connectResultMsg{err: err}
		}
		if !resp.Success {
			msg := resp.Error
			if msg == "" {
				msg = "connection failed"
			}
			return connectResultMsg{err: &APIError{Kind: ErrKindHTTP, Message: msg}}
		}
		return connectResultMsg{database: req.Database, profile: profile, password: req.Password}
	}
}

func disconnectCmd(api *Client, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqContext(timeout)
		defer cancel()
		return disconnectResultMsg{err: api.Disconnect(ctx)}
	}
}

func confirmSQLCmd(api *Client, timeout time.Duration, sessionID int, sql string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqContext(timeout)
		defer cancel()
		resp, err := api.ConfirmSQL(ctx, sql)
		var content string
		switch {
		case err != nil:
			content = "Error: " + err.Error()
		case resp.Message != "":
			content = resp.Message
		default:
			content = "SQL executed successfully"
		}
		return confirmSQLResultMsg{sessionID: sessionID, content: content}
	}
}

func copyTableCmd(t *ResultTable) tea.Cmd {
	return func() tea.Msg {
		return clipboardCopiedMsg{kind: copyKindTable, err: t.CopyToClipboard()}
	}
}

func copySQLCmd(sql string) tea.Cmd {
	return func() tea.Msg {
		return clipboardCopiedMsg{kind: copyKindSQL, err: clipboard.WriteAll(sql)}
	}
}

func exportCSVCmd(t *ResultTable) tea.Cmd {
	return func() tea.Msg {
		dir, err := os.Getwd()
		if err != nil {
			dir = "."
		}
		path, err := t.ExportCSV(dir)
		return csvExportedMsg{path: path, err: err}
	}
}

// expireCopiedCmd clears the "Copied!" flash after two seconds.
func expireCopiedCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return copyExpiredMsg{}
	})
}

// trimDraft normalizes text coming back from the external editor.
func trimDraft(s string) string {
	return strings.TrimRight(s, "\n")
}
