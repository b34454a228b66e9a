// Package session models the interactive session state that the original
// application kept in process-wide globals. Each Session is owned by its
// caller, so multiple sessions can coexist and tests can drive one directly.
package session

// State is the current screen of a session.
type State string

const (
	StateAuth State = "AUTH"
	StateHome State = "HOME"
)

// Session tracks the current state and logged-in user of one interactive
// session. The zero value is not ready to use; call New.
type Session struct {
	state State
	user  string
}

// New returns a session starting on the AUTH screen with no user.
func New() *Session {
	return &Session{state: StateAuth}
}

// State returns the current screen.
func (s *Session) State() State {
	return s.state
}

// User returns the logged-in username, or the empty string on AUTH.
func (s *Session) User() string {
	return s.user
}

// LoggedIn reports whether a user is logged in.
func (s *Session) LoggedIn() bool {
	return s.state == StateHome && s.user != ""
}

// Login moves the session to HOME for the given user.
func (s *Session) Login(user string) {
	s.state = StateHome
	s.user = user
}

// Logout clears the user and returns to AUTH.
func (s *Session) Logout() {
	s.state = StateAuth
	s.user = ""
}
