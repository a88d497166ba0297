package booking

import (
	"errors"
	"strings"
	"time"

	"zorp/internal/domain/catalog"
)

// Stage is the position of a booking session inside the drawer flow.
type Stage string

const (
	StageSelectingPreferences Stage = "SELECTING_PREFERENCES"
	StageSelectingRide        Stage = "SELECTING_RIDE"
	StageHandedOff            Stage = "HANDED_OFF"
)

// Tab identifies which of the two parallel booking forms is confirming.
type Tab string

const (
	TabMyself Tab = "myself"
	TabFriend Tab = "friend"
)

// ParseTab validates a booking tab string.
func ParseTab(s string) (Tab, error) {
	switch Tab(strings.ToLower(strings.TrimSpace(s))) {
	case TabMyself:
		return TabMyself, nil
	case TabFriend:
		return TabFriend, nil
	default:
		return "", ErrInvalidTab
	}
}

// Preferences is the form state accumulated while the drawer is open.
type Preferences struct {
	Passengers  int               `json:"passengers"`
	RideClass   catalog.RideClass `json:"ride_type"`
	Destination string            `json:"destination"`
	Pickup      string            `json:"pickup"`
}

// FriendDetails is required only when confirming on the friend tab.
type FriendDetails struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

var (
	ErrInvalidTab            = errors.New("invalid booking tab")
	ErrInvalidPassengerCount = errors.New("passengers must be between 1 and 6")
	ErrNoRideSelected        = errors.New("no ride selected")
	ErrFriendDetailsRequired = errors.New("friend name and phone are required")
	ErrSessionClosed         = errors.New("booking session already handed off")
)

// Session is the in-memory record accumulated across the booking drawer.
// Both tabs share the same selectedRide slot; repeated selections are
// last-write-wins.
type Session struct {
	ID        string
	OwnerID   string
	Stage     Stage
	Prefs     Preferences
	Friend    FriendDetails
	Selected  *catalog.RideOption
	Prefilled bool
	OpenedAt  time.Time
	UpdatedAt time.Time
}

// Open starts a fresh session with the documented defaults, regardless of
// any prior session state.
func Open(id, ownerID string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:      strings.TrimSpace(id),
		OwnerID: strings.TrimSpace(ownerID),
		Stage:   StageSelectingPreferences,
		Prefs: Preferences{
			Passengers:  1,
			RideClass:   catalog.ClassBasic,
			Destination: "",
			Pickup:      "",
		},
		OpenedAt:  now,
		UpdatedAt: now,
	}
}

// SetPreferences mutates the form field-by-field. Zero values leave the
// corresponding field untouched so callers can patch a single field.
func (session *Session) SetPreferences(passengers int, class catalog.RideClass, destination, pickup *string) error {
	if session.Stage == StageHandedOff {
		return ErrSessionClosed
	}
	if passengers != 0 {
		if passengers < 1 || passengers > 6 {
			return ErrInvalidPassengerCount
		}
		session.Prefs.Passengers = passengers
	}
	if class != "" {
		if !class.Valid() {
			return catalog.ErrInvalidRideClass
		}
		session.Prefs.RideClass = class
	}
	if destination != nil {
		session.Prefs.Destination = strings.TrimSpace(*destination)
	}
	if pickup != nil {
		session.Prefs.Pickup = strings.TrimSpace(*pickup)
	}
	session.touch()
	return nil
}

// SetFriendDetails stores the friend-tab contact fields.
func (session *Session) SetFriendDetails(name, phone string) error {
	if session.Stage == StageHandedOff {
		return ErrSessionClosed
	}
	session.Friend = FriendDetails{
		Name:  strings.TrimSpace(name),
		Phone: strings.TrimSpace(phone),
	}
	session.touch()
	return nil
}

// SelectRide sets the shared selectedRide slot and advances the stage.
// Re-selecting a different option simply overwrites the previous choice.
func (session *Session) SelectRide(option catalog.RideOption) error {
	if session.Stage == StageHandedOff {
		return ErrSessionClosed
	}
	opt := option
	session.Selected = &opt
	session.Stage = StageSelectingRide
	session.touch()
	return nil
}

// Prefill seeds the form from a previously completed ride and reopens the
// flow at the preferences stage with the prefilled flag raised. Any prior
// ride selection is discarded.
func (session *Session) Prefill(pickup, destination string, class catalog.RideClass) error {
	if session.Stage == StageHandedOff {
		return ErrSessionClosed
	}
	if !class.Valid() {
		return catalog.ErrInvalidRideClass
	}
	session.Prefs.Pickup = strings.TrimSpace(pickup)
	session.Prefs.Destination = strings.TrimSpace(destination)
	session.Prefs.RideClass = class
	session.Selected = nil
	session.Stage = StageSelectingPreferences
	session.Prefilled = true
	session.touch()
	return nil
}

// FilteredOptions returns the candidate set for the current preferences.
func (session *Session) FilteredOptions(options []catalog.RideOption) []catalog.RideOption {
	return catalog.Filter(options, session.Prefs.Passengers, session.Prefs.RideClass)
}

// Confirm is the terminal transition. It is guarded: no ride selected is
// always a rejection, and the friend tab additionally requires both friend
// fields. On success the session is closed and an immutable Details
// payload is produced for hand-off.
func (session *Session) Confirm(tab Tab) (*Details, error) {
	if session.Stage == StageHandedOff {
		return nil, ErrSessionClosed
	}
	if session.Selected == nil {
		return nil, ErrNoRideSelected
	}
	var friend *FriendDetails
	if tab == TabFriend {
		if session.Friend.Name == "" || session.Friend.Phone == "" {
			return nil, ErrFriendDetailsRequired
		}
		f := session.Friend
		friend = &f
	} else if tab != TabMyself {
		return nil, ErrInvalidTab
	}

	details := newDetails(session, tab, friend)
	session.Stage = StageHandedOff
	session.touch()
	return details, nil
}

func (session *Session) touch() {
	session.UpdatedAt = time.Now().UTC()
}
