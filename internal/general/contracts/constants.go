package contracts

// Exchanges
const (
	ExchangeBookingTopic = "booking_topic"
	ExchangePaymentTopic = "payment_topic"
)

// Queues
const (
	QueueBookingConfirmed = "booking_confirmed"
	QueuePaymentCompleted = "payment_completed"
	QueuePaymentReleased  = "payment_released"
)

// Routing patterns
const (
	RouteBookingConfirmedPrefix = "booking.confirmed." // {booking_id}
	RoutePaymentCompletedPrefix = "payment.completed." // {booking_id}
	RoutePaymentReleasedPrefix  = "payment.released."  // {trip_id}
)
