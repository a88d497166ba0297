package checkout

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"math/big"
	"sync"
	"time"

	"zorp/internal/general/contracts"
	"zorp/internal/general/logger"
	"zorp/internal/general/rabbitmq"
)

// Publisher is the messaging dependency of the processor.
type Publisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

var _ Publisher = (*rabbitmq.MQPublisher)(nil)

// Event is one frame of checkout progress streamed to the client.
type Event struct {
	Type     string `json:"type"` // "progress" | "completed" | "confirmed"
	Progress int    `json:"progress"`
	WalletID string `json:"wallet_id,omitempty"`
}

// Processor drives the simulated payment: progress ticks up in fixed
// steps, then a confirmation fires after a short settle delay.
type Processor struct {
	step         int
	tick         time.Duration
	confirmDelay time.Duration
	pub          Publisher
	logger       *logger.Logger

	// injected for tests
	newWalletID func() string
}

// NewProcessor wires a checkout processor.
func NewProcessor(step int, tick, confirmDelay time.Duration, pub Publisher, logger *logger.Logger) *Processor {
	if step <= 0 {
		step = 10
	}
	return &Processor{
		step:         step,
		tick:         tick,
		confirmDelay: confirmDelay,
		pub:          pub,
		logger:       logger,
		newWalletID:  NewWalletID,
	}
}

// Run is a single in-flight checkout. Events() closes when the run
// finishes or is stopped; Stop is safe to call more than once.
type Run struct {
	BookingID string
	WalletID  string

	events chan Event
	cancel context.CancelFunc
	done   chan struct{}

	mu        sync.Mutex
	completed bool
}

// Events streams progress frames in order. The channel is closed after
// the confirmed frame, or early if the run is stopped.
func (run *Run) Events() <-chan Event { return run.events }

// Done closes once the run has fully ended, whether it confirmed or was
// stopped mid-flight.
func (run *Run) Done() <-chan struct{} { return run.done }

// Stop cancels the run. Pending ticks and the confirmation are dropped.
func (run *Run) Stop() {
	run.cancel()
	<-run.done
}

// Completed reports whether progress reached 100 before the run ended.
func (run *Run) Completed() bool {
	run.mu.Lock()
	defer run.mu.Unlock()
	return run.completed
}

// Start launches the checkout for a booking and returns its handle.
// The run ends on its own after confirmation; leaving the page maps to
// calling Stop, which halts the timer mid-flight.
func (processor *Processor) Start(ctx context.Context, bookingID string, amount int) *Run {
	runCtx, cancel := context.WithCancel(ctx)

	run := &Run{
		BookingID: bookingID,
		WalletID:  processor.newWalletID(),
		events:    make(chan Event, 100/processor.step+3),
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	go processor.drive(runCtx, run, amount)

	return run
}

func (processor *Processor) drive(ctx context.Context, run *Run, amount int) {
	defer close(run.done)
	defer close(run.events)
	defer run.cancel()

	ticker := time.NewTicker(processor.tick)
	defer ticker.Stop()

	progress := 0
	for progress < 100 {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		progress += processor.step
		if progress > 100 {
			progress = 100
		}

		select {
		case run.events <- Event{Type: "progress", Progress: progress}:
		case <-ctx.Done():
			return
		}
	}

	run.mu.Lock()
	run.completed = true
	run.mu.Unlock()

	select {
	case run.events <- Event{Type: "completed", Progress: 100}:
	case <-ctx.Done():
		return
	}

	// settle window between the bar filling and the confirmation screen
	select {
	case <-ctx.Done():
		return
	case <-time.After(processor.confirmDelay):
	}

	select {
	case run.events <- Event{Type: "confirmed", Progress: 100, WalletID: run.WalletID}:
	case <-ctx.Done():
		return
	}

	processor.publishCompleted(ctx, run, amount)
}

// publishCompleted emits payment.completed so the trip service can
// unlock chat for the paid trip.
func (processor *Processor) publishCompleted(ctx context.Context, run *Run, amount int) {
	if processor.pub == nil {
		return
	}

	msg := contracts.PaymentCompletedMessage{
		BookingID:     run.BookingID,
		WalletID:      run.WalletID,
		Amount:        amount,
		CorrelationID: run.BookingID,
		CompletedAt:   time.Now().UTC(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		processor.logger.Error(ctx, "payment_completed_marshal_failed", "Failed to marshal payment completed message", err, nil)
		return
	}

	routingKey := contracts.RoutePaymentCompletedPrefix + run.BookingID
	if err := processor.pub.Publish(contracts.ExchangePaymentTopic, routingKey, body); err != nil {
		processor.logger.Error(ctx, "payment_completed_publish_failed", "Failed to publish payment completed message", err,
			map[string]any{"booking_id": run.BookingID})
		return
	}

	processor.logger.Info(ctx, "payment_completed_published", "Published payment completed message",
		map[string]any{"booking_id": run.BookingID, "wallet_id": run.WalletID})
}

const walletAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewWalletID returns an 8-char uppercase base36 wallet reference.
func NewWalletID() string {
	out := make([]byte, 8)
	size := big.NewInt(int64(len(walletAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			out[i] = walletAlphabet[0]
			continue
		}
		out[i] = walletAlphabet[n.Int64()]
	}
	return string(out)
}
