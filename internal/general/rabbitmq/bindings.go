package rabbitmq

import (
	"fmt"

	"zorp/internal/general/contracts"

	amqp "github.com/rabbitmq/amqp091-go"
)

func declareTopology(ch *amqp.Channel) error {
	// 1. Exchanges
	exchanges := []struct {
		name string
		kind string
	}{
		{contracts.ExchangeBookingTopic, "topic"},
		{contracts.ExchangePaymentTopic, "topic"},
	}

	for _, ex := range exchanges {
		if err := ch.ExchangeDeclare(ex.name, ex.kind, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare exchange %s: %w", ex.name, err)
		}
	}

	// 2. Queues
	queues := []string{
		contracts.QueueBookingConfirmed,
		contracts.QueuePaymentCompleted,
		contracts.QueuePaymentReleased,
	}

	for _, q := range queues {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", q, err)
		}
	}

	// 3. Bindings
	bindings := []struct {
		queue      string
		exchange   string
		routingKey string
	}{
		{contracts.QueueBookingConfirmed, contracts.ExchangeBookingTopic, contracts.RouteBookingConfirmedPrefix + "*"},
		{contracts.QueuePaymentCompleted, contracts.ExchangePaymentTopic, contracts.RoutePaymentCompletedPrefix + "*"},
		{contracts.QueuePaymentReleased, contracts.ExchangePaymentTopic, contracts.RoutePaymentReleasedPrefix + "*"},
	}

	for _, b := range bindings {
		if err := ch.QueueBind(b.queue, b.routingKey, b.exchange, false, nil); err != nil {
			return fmt.Errorf("bind queue %s to %s: %w", b.queue, b.exchange, err)
		}
	}

	return nil
}
