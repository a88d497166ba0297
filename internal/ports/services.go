package ports

import (
	"context"
	"time"

	"zorp/internal/domain/booking"
	"zorp/internal/domain/cart"
	"zorp/internal/domain/catalog"
	"zorp/internal/domain/trip"
)

// ----- DTOs for Identity -----

// LoginInput is the validated input for POST /auth/login.
type LoginInput struct {
	Email    string
	Password string
}

// SignupInput is the validated input for POST /auth/signup.
type SignupInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

// AuthResult matches the API response for login/signup/role changes.
type AuthResult struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Token  string `json:"token"`
}

// ProfileResult matches the API response for GET /auth/me.
type ProfileResult struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Phone  string `json:"phone,omitempty"`
}

// ----- Identity Service Interface -----

// IdentityService exposes the authentication boundary shared by all services.
type IdentityService interface {
	Login(ctx context.Context, in LoginInput) (AuthResult, error)
	Signup(ctx context.Context, in SignupInput) (AuthResult, error)
	Logout(ctx context.Context, userID string) error
	SetRole(ctx context.Context, userID, role string) (AuthResult, error)
	Current(ctx context.Context, userID string) (ProfileResult, error)
}

// ---------------------------------------------------------------------------------------------------------------

// ----- DTOs for Booking Service -----

// LocationResult matches the API response for GET /locations/current.
type LocationResult struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Address   string  `json:"address"`
	Fallback  bool    `json:"fallback"`
}

// SessionView is the wire shape of an open booking session.
type SessionView struct {
	SessionID   string                 `json:"session_id"`
	Stage       string                 `json:"stage"`
	Preferences booking.Preferences    `json:"preferences"`
	Friend      *booking.FriendDetails `json:"friend,omitempty"`
	Selected    *catalog.RideOption    `json:"selected_ride,omitempty"`
	Prefilled   bool                   `json:"prefilled"`
	Options     []catalog.RideOption   `json:"options"`
}

// UpdatePreferencesInput carries the partial preference patch for a session.
// Zero values leave the corresponding field untouched.
type UpdatePreferencesInput struct {
	SessionID   string
	Passengers  int
	RideClass   string
	Destination *string
	Pickup      *string
}

// FriendDetailsInput carries recipient details for a friend booking.
type FriendDetailsInput struct {
	SessionID string
	Name      string
	Phone     string
}

// ConfirmBookingInput confirms a session for the given tab ("myself" or "friend").
type ConfirmBookingInput struct {
	SessionID string
	Tab       string
}

// ConfirmBookingResult matches the API response for a confirmed booking.
type ConfirmBookingResult struct {
	BookingID    string                 `json:"booking_id"`
	HandoffToken string                 `json:"handoff_token"`
	Details      *booking.Details       `json:"details"`
	Price        booking.PriceBreakdown `json:"price"`
}

// PreviewResult is returned when a hand-off token is claimed.
type PreviewResult struct {
	Details *booking.Details       `json:"details"`
	Price   booking.PriceBreakdown `json:"price"`
}

// HistoryView is the wire shape of one completed ride.
type HistoryView struct {
	ID          string      `json:"id"`
	Date        string      `json:"date"`
	Time        string      `json:"time"`
	Pickup      string      `json:"pickup"`
	Destination string      `json:"destination"`
	Driver      trip.Driver `json:"driver"`
	Vehicle     string      `json:"vehicle"`
	RideClass   string      `json:"ride_type"`
	Price       int         `json:"price"`
}

// ----- Booking Service Interface -----

// BookingService exposes the boundary for the booking service.
type BookingService interface {
	CurrentLocation(ctx context.Context) LocationResult
	RideOptions(ctx context.Context, passengers int, rideClass string) ([]catalog.RideOption, error)
	OpenSession(ctx context.Context, userID string) (SessionView, error)
	GetSession(ctx context.Context, userID, sessionID string) (SessionView, error)
	UpdatePreferences(ctx context.Context, userID string, in UpdatePreferencesInput) (SessionView, error)
	SetFriendDetails(ctx context.Context, userID string, in FriendDetailsInput) (SessionView, error)
	SelectRide(ctx context.Context, userID, sessionID, optionID string) (SessionView, error)
	ConfirmBooking(ctx context.Context, userID string, in ConfirmBookingInput) (ConfirmBookingResult, error)
	ClaimHandoff(ctx context.Context, token string) (PreviewResult, bool)
	PrefillFromHistory(ctx context.Context, userID, recordID string) (SessionView, error)
	RideHistory(ctx context.Context, userID string) ([]HistoryView, error)
}

// ---------------------------------------------------------------------------------------------------------------

// ----- DTOs for Trip Service -----

// TripView is the wire shape of one ongoing trip.
type TripView struct {
	TripID           string      `json:"trip_id"`
	Driver           trip.Driver `json:"driver"`
	Vehicle          string      `json:"vehicle"`
	Pickup           string      `json:"pickup"`
	Destination      string      `json:"destination"`
	Status           string      `json:"status"`
	ETA              string      `json:"eta"`
	Price            int         `json:"price"`
	PaymentCompleted bool        `json:"payment_completed"`
	PaymentReleased  bool        `json:"payment_released"`
}

// ReleasePaymentResult matches the API response for releasing an escrowed payment.
type ReleasePaymentResult struct {
	TripID     string    `json:"trip_id"`
	Released   bool      `json:"released"`
	ReleasedAt time.Time `json:"released_at"`
	Message    string    `json:"message"`
}

// ----- Trip Service Interface -----

// TripService exposes the boundary for the trip service.
type TripService interface {
	OngoingTrips(ctx context.Context, riderID string) ([]TripView, error)
	ReleasePayment(ctx context.Context, riderID, tripID string) (ReleasePaymentResult, error)
	RunBackgroundConsumers(ctx context.Context)
}

// ---------------------------------------------------------------------------------------------------------------

// ----- DTOs for Grocery Service -----

// CartItemView is the wire shape of one cart line.
type CartItemView struct {
	Product  cart.Product `json:"product"`
	Quantity int          `json:"quantity"`
}

// CartView matches the API response for all cart operations.
type CartView struct {
	Items []CartItemView `json:"items"`
	Count int            `json:"count"`
	Total int            `json:"total"`
}

// UpdateQuantityInput sets the quantity of a cart line; zero removes it.
type UpdateQuantityInput struct {
	ProductID string
	Quantity  int
}

// ----- Grocery Service Interface -----

// GroceryService exposes the boundary for the grocery service.
type GroceryService interface {
	Products(ctx context.Context) []cart.Product
	GetCart(ctx context.Context, userID string) (CartView, error)
	AddItem(ctx context.Context, userID, productID string) (CartView, error)
	UpdateQuantity(ctx context.Context, userID string, in UpdateQuantityInput) (CartView, error)
	RemoveItem(ctx context.Context, userID, productID string) (CartView, error)
}
