package domain

import "time"

type EventType string

const (
	TypeTrack    EventType = "track"
	TypeIdentify EventType = "identify"
	TypeAlias    EventType = "alias"
	TypePage     EventType = "page"
	TypeScreen   EventType = "screen"
)

// Event is a canonical analytics event, independent of the destination format.
// Only the fields relevant to its Type are expected to be set.
type Event struct {
	Type        EventType
	UserID      string
	AnonymousID string
	Timestamp   time.Time
	Channel     string

	Event      string // track
	Name       string // page, screen
	Category   string // page
	PreviousID string // alias

	Properties map[string]any
	Traits     map[string]any
	Context    Context
}

type Context struct {
	IP        string
	UserAgent string
	Screen    *Screen
	Campaign  *Campaign
}

// Screen holds the raw device dimensions as received; they may be numbers,
// numeric strings or garbage.
type Screen struct {
	Width  any
	Height any
}

type Campaign struct {
	Name    string
	Source  string
	Medium  string
	Content string
	Term    string
}

// SessionID is the anonymous id the caller assigned before the user was known.
func (e *Event) SessionID() string {
	return e.AnonymousID
}

// Actor returns the user id, falling back to the session id.
func (e *Event) Actor() string {
	if e.UserID != "" {
		return e.UserID
	}
	return e.SessionID()
}
