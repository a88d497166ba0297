package service

import (
	"context"

	"zorp/internal/domain/booking"
	"zorp/internal/domain/catalog"
	"zorp/internal/ports"
)

// OpenSession starts a fresh drawer session for the user. Reopening
// replaces any previous unfinished session, matching the drawer resetting
// its form every time it opens.
func (service *Service) OpenSession(ctx context.Context, userID string) (ports.SessionView, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	if oldID, ok := service.byOwner[userID]; ok {
		delete(service.sessions, oldID)
	}

	session := booking.Open(service.newID(), userID)
	service.sessions[session.ID] = session
	service.byOwner[userID] = session.ID

	service.logger.Debug(ctx, "booking_session_opened", "Opened booking session",
		map[string]any{"session_id": session.ID, "user_id": userID})

	return sessionView(session), nil
}

// GetSession returns the caller's session state.
func (service *Service) GetSession(ctx context.Context, userID, sessionID string) (ports.SessionView, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	session, err := service.sessionFor(userID, sessionID)
	if err != nil {
		return ports.SessionView{}, err
	}
	return sessionView(session), nil
}

// UpdatePreferences patches the drawer form. Zero-valued fields in the
// input leave the stored value untouched.
func (service *Service) UpdatePreferences(ctx context.Context, userID string, in ports.UpdatePreferencesInput) (ports.SessionView, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	session, err := service.sessionFor(userID, in.SessionID)
	if err != nil {
		return ports.SessionView{}, err
	}

	var class catalog.RideClass
	if in.RideClass != "" {
		class, err = catalog.ParseRideClass(in.RideClass)
		if err != nil {
			return ports.SessionView{}, err
		}
	}

	if err := session.SetPreferences(in.Passengers, class, in.Destination, in.Pickup); err != nil {
		return ports.SessionView{}, err
	}

	return sessionView(session), nil
}

// SetFriendDetails stores the friend-tab contact fields.
func (service *Service) SetFriendDetails(ctx context.Context, userID string, in ports.FriendDetailsInput) (ports.SessionView, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	session, err := service.sessionFor(userID, in.SessionID)
	if err != nil {
		return ports.SessionView{}, err
	}

	if err := session.SetFriendDetails(in.Name, in.Phone); err != nil {
		return ports.SessionView{}, err
	}

	return sessionView(session), nil
}

// SelectRide picks one of the filtered catalog options for the session.
func (service *Service) SelectRide(ctx context.Context, userID, sessionID, optionID string) (ports.SessionView, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	session, err := service.sessionFor(userID, sessionID)
	if err != nil {
		return ports.SessionView{}, err
	}

	option, ok := catalog.ByID(catalog.Options(), optionID)
	if !ok {
		return ports.SessionView{}, ErrUnknownOption
	}

	if err := session.SelectRide(option); err != nil {
		return ports.SessionView{}, err
	}

	service.logger.Debug(ctx, "booking_ride_selected", "Ride option selected",
		map[string]any{"session_id": session.ID, "option_id": optionID})

	return sessionView(session), nil
}

// PrefillFromHistory seeds the caller's open session from one of their
// past rides and reopens the flow at the preferences stage.
func (service *Service) PrefillFromHistory(ctx context.Context, userID, recordID string) (ports.SessionView, error) {
	rec, err := service.historyRecord(ctx, userID, recordID)
	if err != nil {
		return ports.SessionView{}, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	sessionID, ok := service.byOwner[userID]
	if !ok {
		return ports.SessionView{}, ErrSessionNotFound
	}
	session, err := service.sessionFor(userID, sessionID)
	if err != nil {
		return ports.SessionView{}, err
	}

	if err := session.Prefill(rec.Pickup, rec.Destination, rec.RideClass); err != nil {
		return ports.SessionView{}, err
	}

	service.logger.Debug(ctx, "booking_prefilled", "Session prefilled from ride history",
		map[string]any{"session_id": session.ID, "record_id": recordID})

	return sessionView(session), nil
}

// sessionView maps a session to its wire shape, including the options
// that survive the current passenger and class filter.
func sessionView(session *booking.Session) ports.SessionView {
	view := ports.SessionView{
		SessionID:   session.ID,
		Stage:       string(session.Stage),
		Preferences: session.Prefs,
		Prefilled:   session.Prefilled,
		Options:     session.FilteredOptions(catalog.Options()),
	}
	if session.Selected != nil {
		selected := *session.Selected
		view.Selected = &selected
	}
	if session.Friend.Name != "" || session.Friend.Phone != "" {
		friend := session.Friend
		view.Friend = &friend
	}
	return view
}
