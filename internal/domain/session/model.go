package session

import "time"

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

// Session is the token material issued by the hosted auth service.
type Session struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresAt    time.Time
	User         Principal
}

func (s Session) HasTokens() bool {
	return s.AccessToken != "" && s.RefreshToken != ""
}

type Kind string

const (
	KindUnauthenticated Kind = "unauthenticated"
	KindAuthenticated   Kind = "authenticated"
	KindInvalid         Kind = "invalid"
)

// State is computed once per request. Only the fields of the active Kind are
// meaningful.
type State struct {
	Kind            Kind
	Principal       Principal
	ProfileComplete bool
	Reason          string
}

func Unauthenticated() State {
	return State{Kind: KindUnauthenticated}
}

func Authenticated(principal Principal, profileComplete bool) State {
	return State{Kind: KindAuthenticated, Principal: principal, ProfileComplete: profileComplete}
}

func Invalid(reason string) State {
	return State{Kind: KindInvalid, Reason: reason}
}

func (s State) IsAuthenticated() bool {
	return s.Kind == KindAuthenticated
}
