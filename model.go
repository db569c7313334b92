package main

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/fsnotify/fsnotify"
)

// --- Model ---

type currentView int

const (
	viewLogin currentView = iota
	viewSignup
	viewChat
	viewConnect
	viewResults
	viewConfirmSQL
)

type focusArea int

const (
	focusSidebar focusArea = iota
	focusInput
)

// Input placeholders track the connection state.
const (
	placeholderReady = "Ask me anything about your data..."
	placeholderNoDB  = "Please connect to a database first"
)

// Login form field indexes.
const (
	loginFieldIdentifier = iota
	loginFieldPassword
)

// Signup form field indexes.
const (
	signupFieldFirstName = iota
	signupFieldLastName
	signupFieldUsername
	signupFieldGender
	signupFieldEmail
	signupFieldPassword
	signupFieldConfirm
	signupFieldOTP
)

// Connect form field indexes.
const (
	connectFieldHost = iota
	connectFieldPort
	connectFieldUser
	connectFieldPassword
	connectFieldDatabase
)

type loginForm struct {
	inputs []textinput.Model
	focus  int
	errs   map[string]string
	notice string
}

type signupForm struct {
	inputs  []textinput.Model
	focus   int
	errs    map[string]string
	otpSent bool
	notice  string
}

type connectForm struct {
	inputs     []textinput.Model
	focus      int
	errs       map[string]string
	errText    string
	connecting bool
}

// Confirmation outcomes recorded per transcript message index, so a
// resolved confirmation renders its result instead of live controls.
const (
	confirmExecuted  = "executed"
	confirmCancelled = "cancelled"
)

// confirmState is the pending mutating statement awaiting a y/n answer.
type confirmState struct {
	preview   *ResultTable
	sql       string
	message   string
	sessionID int
	msgIndex  int
}

// confirmKey addresses one confirmation message across sessions.
type confirmKey struct {
	sessionID int
	index     int
}

type model struct {
	cfg     Config
	th      theme
	styles  styleSet
	api     *Client
	auth    *AuthStore
	secrets SecretStore
	store   SessionStore

	view   currentView
	width  int
	height int

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	sending bool

	login   loginForm
	signup  signupForm
	connect connectForm

	transcript       viewport.Model
	transcriptReady  bool
	input            textarea.Model
	focus            focusArea
	sessionCursor    int
	sidebarCollapsed bool

	connected         bool
	connectedDatabase string
	pendingToken      string

	results       *ResultTable
	resultsSQL    string
	showSQL       bool
	resultsSearch textinput.Model
	searching     bool
	colCursor     int
	tableCopied   bool
	sqlCopied     bool

	confirm     confirmState
	confirmDone map[confirmKey]string

	status  string
	errText string

	watcher  *fsnotify.Watcher
	renderer *glamour.TermRenderer
	timeout  time.Duration
}

func newInput(placeholder string, secret bool) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 128
	in.Width = 36
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	return in
}

func newLoginForm() loginForm {
	inputs := []textinput.Model{
		newInput("username or email", false),
		newInput("password", true),
	}
	inputs[loginFieldIdentifier].Focus()
	return loginForm{inputs: inputs, errs: map[string]string{}}
}

func newSignupForm() signupForm {
	inputs := []textinput.Model{
		newInput("first name", false),
		newInput("last name", false),
		newInput("username", false),
		newInput("male / female / other", false),
		newInput("email", false),
		newInput("password", true),
		newInput("confirm password", true),
		newInput("6-digit code", false),
	}
	inputs[signupFieldFirstName].Focus()
	inputs[signupFieldOTP].CharLimit = 6
	return signupForm{inputs: inputs, errs: map[string]string{}}
}

func newConnectForm(profile ConnectionProfile, password string) connectForm {
	inputs := []textinput.Model{
		newInput("localhost", false),
		newInput("5432", false),
		newInput("postgres", false),
		newInput("password", true),
		newInput("database name", false),
	}
	inputs[connectFieldHost].SetValue(profile.Host)
	if profile.Port != 0 {
		inputs[connectFieldPort].SetValue(strconv.Itoa(profile.Port))
	}
	inputs[connectFieldUser].SetValue(profile.User)
	inputs[connectFieldPassword].SetValue(password)
	inputs[connectFieldDatabase].SetValue(profile.Database)
	inputs[connectFieldHost].Focus()
	return connectForm{inputs: inputs, errs: map[string]string{}}
}

func initialModel(cfg Config, api *Client, auth *AuthStore, secrets SecretStore, watcher *fsnotify.Watcher) model {
	th := resolveTheme(cfg.Theme)
	st := newStyles(th)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.highlight

	ta := textarea.New()
	ta.Placeholder = placeholderNoDB
	ta.CharLimit = 2000
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	search := textinput.New()
	search.Placeholder = "filter rows"
	search.CharLimit = 128
	search.Width = 30

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(78),
	)

	view := viewLogin
	if auth.Authenticated() {
		view = viewChat
	}

	m := model{
		cfg:           cfg,
		th:            th,
		styles:        st,
		api:           api,
		auth:          auth,
		secrets:       secrets,
		view:          view,
		keys:          keys,
		help:          help.New(),
		spinner:       sp,
		login:         newLoginForm(),
		signup:        newSignupForm(),
		input:         ta,
		focus:         focusInput,
		resultsSearch: search,
		confirmDone:   map[confirmKey]string{},
		watcher:       watcher,
		renderer:      renderer,
		timeout:       timeoutFromConfig(cfg),
	}
	m.connect = newConnectForm(cfg.Connection, secrets.Get(cfg.Connection.Key()))
	if view == viewChat {
		m.input.Focus()
	}
	return m
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, waitForConfigChange(m.watcher)}
	if m.auth.Authenticated() {
		cmds = append(cmds, loadSessionsCmd(m.api, m.timeout, m.auth.UserID()))
	}
	return tea.Batch(cmds...)
}
