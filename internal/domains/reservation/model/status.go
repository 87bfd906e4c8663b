package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Status is the reservation lifecycle state. Its external form is the
// Portuguese label stored in the database and returned by the API.
type Status int

const (
	StatusUnknown Status = iota
	StatusPending
	StatusConfirmed
	StatusCancelled
)

const (
	StatusLabelPending   = "Pendente"
	StatusLabelConfirmed = "Confirmada"
	StatusLabelCancelled = "Cancelada"
)

var statusLabels = map[Status]string{
	StatusPending:   StatusLabelPending,
	StatusConfirmed: StatusLabelConfirmed,
	StatusCancelled: StatusLabelCancelled,
}

var statusAliases = map[string]Status{
	"pendente":   StatusPending,
	"confirmada": StatusConfirmed,
	"cancelada":  StatusCancelled,
	"pending":    StatusPending,
	"confirmed":  StatusConfirmed,
	"cancelled":  StatusCancelled,
}

// ParseStatus accepts the stored labels and their English aliases, case insensitive.
func ParseStatus(value string) (Status, error) {
	status, ok := statusAliases[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return StatusUnknown, fmt.Errorf("unknown reservation status %q", value)
	}

	return status, nil
}

func (s Status) String() string {
	return statusLabels[s]
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]

	return ok
}

func (s Status) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid reservation status %d", int(s))
	}

	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("reservation status must be a string: %w", err)
	}

	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

// Value implements driver.Valuer.
func (s Status) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid reservation status %d", int(s))
	}

	return s.String(), nil
}

// Scan implements sql.Scanner.
func (s *Status) Scan(src any) error {
	var raw string

	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into reservation status", src)
	}

	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}
