package booking

import (
	"math"
	"time"

	"zorp/internal/domain/catalog"
)

// ServiceFeeNaira is the flat per-booking service fee.
const ServiceFeeNaira = 200

// TaxRate is applied to the selected ride's price.
const TaxRate = 0.05

// PriceBreakdown itemizes what the checkout screen charges.
type PriceBreakdown struct {
	RidePrice  int `json:"ride_price"`
	ServiceFee int `json:"service_fee"`
	Tax        int `json:"tax"`
	Total      int `json:"total"`
}

// Details is the immutable payload handed off from the booking drawer to
// the preview screen. It is constructed only through Session.Confirm and
// consumed exactly once.
type Details struct {
	BookingID   string             `json:"booking_id"`
	Passengers  int                `json:"passengers"`
	RideClass   catalog.RideClass  `json:"ride_type"`
	Destination string             `json:"destination"`
	Pickup      string             `json:"pickup"`
	Selected    catalog.RideOption `json:"selected_ride"`
	Friend      *FriendDetails     `json:"friend_details,omitempty"`
	BookingType Tab                `json:"booking_type"`
	Price       PriceBreakdown     `json:"price"`
	ConfirmedAt time.Time          `json:"confirmed_at"`
}

func newDetails(session *Session, tab Tab, friend *FriendDetails) *Details {
	price := Breakdown(session.Selected.Price)
	return &Details{
		BookingID:   session.ID,
		Passengers:  session.Prefs.Passengers,
		RideClass:   session.Prefs.RideClass,
		Destination: session.Prefs.Destination,
		Pickup:      session.Prefs.Pickup,
		Selected:    *session.Selected,
		Friend:      friend,
		BookingType: tab,
		Price:       price,
		ConfirmedAt: time.Now().UTC(),
	}
}

// Breakdown computes the checkout totals for a ride price:
// flat service fee plus tax rounded to the nearest naira.
func Breakdown(ridePrice int) PriceBreakdown {
	tax := int(math.Round(float64(ridePrice) * TaxRate))
	return PriceBreakdown{
		RidePrice:  ridePrice,
		ServiceFee: ServiceFeeNaira,
		Tax:        tax,
		Total:      ridePrice + ServiceFeeNaira + tax,
	}
}
