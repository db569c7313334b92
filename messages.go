package main

// --- Messages ---

type authResultMsg struct {
	resp   *AuthResponse
	user   *User
	err    error
	signup bool
}

type otpSentMsg struct {
	resp *OTPResponse
	err  error
}

type sessionsLoadedMsg struct {
	sessions []ChatSession
	err      error
}

type sessionCreatedMsg struct {
	session ChatSession
	err     error
}

type sessionDeletedMsg struct {
	id  int
	err error
}

type sessionPersistedMsg struct {
	id  int
	err error
}

// chatResultMsg carries the assistant content produced by one submit
// dispatch. The token pins it to the dispatch that created it so a
// result landing after a session switch can be discarded.
type chatResultMsg struct {
	sessionID int
	token     string
	content   string
}

type connectResultMsg struct {
	database string
	profile  ConnectionProfile
	password string
	err      error
}

type disconnectResultMsg struct {
	err error
}

type confirmSQLResultMsg struct {
	sessionID int
	content   string
}

type copyKind int

const (
	copyKindTable copyKind = iota
	copyKindSQL
)

type clipboardCopiedMsg struct {
	kind copyKind
	err  error
}

type copyExpiredMsg struct{}

type csvExportedMsg struct {
	path string
	err  error
}

type editorFinishedMsg struct {
	draft string
	err   error
}

type configReloadedMsg struct {
	cfg Config
	err error
}

type errMsg error
