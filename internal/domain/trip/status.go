package trip

import (
	"errors"
	"strings"
)

// Status is an ongoing trip status as shown on the rides screen.
type Status string

const (
	StatusEnRoute    Status = "en_route"
	StatusArrived    Status = "arrived"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

var ErrInvalidStatus = errors.New("invalid trip status")

// ParseStatus normalizes and validates a status string.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	if status.Valid() {
		return status, nil
	}
	return "", ErrInvalidStatus
}

// Valid reports whether the status is one of the known constants.
func (status Status) Valid() bool {
	switch status {
	case StatusEnRoute, StatusArrived, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further status change is expected.
func (status Status) Terminal() bool { return status == StatusCompleted }

// String returns the string representation of the Status.
func (status Status) String() string { return string(status) }
