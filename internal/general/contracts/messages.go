package contracts

import "time"

// BookingConfirmedMessage is published by the booking service on the
// booking topic when a drawer session reaches its terminal transition.
// The trip service materializes an ongoing trip from it.
type BookingConfirmedMessage struct {
	BookingID     string    `json:"booking_id"`
	RiderID       string    `json:"rider_id"`
	Passengers    int       `json:"passengers"`
	RideType      string    `json:"ride_type"`
	Pickup        string    `json:"pickup"`
	Destination   string    `json:"destination"`
	RideOptionID  string    `json:"ride_option_id"`
	RideName      string    `json:"ride_name"`
	Price         int       `json:"price"`
	Total         int       `json:"total"`
	BookingType   string    `json:"booking_type"`
	FriendName    string    `json:"friend_name,omitempty"`
	FriendPhone   string    `json:"friend_phone,omitempty"`
	ConfirmedAt   time.Time `json:"confirmed_at"`
	CorrelationID string    `json:"correlation_id"`
}

// PaymentCompletedMessage is published when the checkout simulator
// reaches 100%. Consumers unlock the chat affordance for the booking.
type PaymentCompletedMessage struct {
	BookingID     string    `json:"booking_id"`
	WalletID      string    `json:"wallet_id"`
	Amount        int       `json:"amount"`
	CompletedAt   time.Time `json:"completed_at"`
	CorrelationID string    `json:"correlation_id"`
}

// PaymentReleasedMessage is published by the trip service when the rider
// confirms releasing the held payment to the driver.
type PaymentReleasedMessage struct {
	TripID        string    `json:"trip_id"`
	Amount        int       `json:"amount"`
	DriverName    string    `json:"driver_name"`
	ReleasedAt    time.Time `json:"released_at"`
	CorrelationID string    `json:"correlation_id"`
}
