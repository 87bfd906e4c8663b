package model

import "time"

const (
	EventCreated = "reservation.created"
	EventUpdated = "reservation.updated"
	EventDeleted = "reservation.deleted"
)

// Event is the lifecycle message published for every reservation mutation.
type Event struct {
	Type          string    `json:"type"`
	ReservationID string    `json:"reservation_id"`
	RoomID        string    `json:"room_id"`
	UserID        string    `json:"user_id"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	Status        Status    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewEvent(eventType string, r Reservation, occurredAt time.Time) Event {
	return Event{
		Type:          eventType,
		ReservationID: r.ID,
		RoomID:        r.RoomID,
		UserID:        r.UserID,
		StartAt:       r.StartAt.UTC(),
		EndAt:         r.EndAt.UTC(),
		Status:        r.Status,
		OccurredAt:    occurredAt.UTC(),
	}
}
