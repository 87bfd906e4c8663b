package validator_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"lodging/shared/failure"
	"lodging/shared/validator"
)

type roomPayload struct {
	LodgingID string          `json:"lodging_id" validate:"required"`
	Number    int             `json:"number"     validate:"gt=0"`
	Rate      decimal.Decimal `json:"rate"       validate:"gt=0"`
	Status    string          `json:"status"     validate:"omitempty,oneof=Pendente Confirmada Cancelada"`
	StartAt   string          `json:"start_at"   validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		data    roomPayload
		wantErr string
	}{
		{
			name: "valid",
			data: roomPayload{LodgingID: "l1", Number: 101, Rate: decimal.RequireFromString("100.00"), StartAt: "2024-03-10T00:00:00Z"},
		},
		{
			name:    "missing lodging",
			data:    roomPayload{Number: 101, Rate: decimal.NewFromInt(1)},
			wantErr: "lodging_id is required",
		},
		{
			name:    "zero rate",
			data:    roomPayload{LodgingID: "l1", Number: 101, Rate: decimal.Zero},
			wantErr: "rate must be greater than 0",
		},
		{
			name:    "negative rate",
			data:    roomPayload{LodgingID: "l1", Number: 101, Rate: decimal.RequireFromString("-0.01")},
			wantErr: "rate must be greater than 0",
		},
		{
			name:    "zero number",
			data:    roomPayload{LodgingID: "l1", Rate: decimal.NewFromInt(1)},
			wantErr: "number must be greater than 0",
		},
		{
			name:    "unknown status",
			data:    roomPayload{LodgingID: "l1", Number: 1, Rate: decimal.NewFromInt(1), Status: "Paga"},
			wantErr: "status must be one of Pendente Confirmada Cancelada",
		},
		{
			name:    "bad date",
			data:    roomPayload{LodgingID: "l1", Number: 1, Rate: decimal.NewFromInt(1), StartAt: "10/03/2024"},
			wantErr: "start_at must match the layout 2006-01-02T15:04:05Z07:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantErr)
			assert.Equal(t, 400, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar(3, "gte=1,lte=12"))
	assert.EqualError(t, validator.ValidateVar(13, "gte=1,lte=12"), "value must be less than or equal to 12")
	assert.NoError(t, validator.ValidateVar("", "empty"))
	assert.EqualError(t, validator.ValidateVar("x", "empty"), "value must be empty")
}

func TestValidateStruct_FieldComparison(t *testing.T) {
	type stay struct {
		StartAt int `json:"start_at" validate:"required"`
		EndAt   int `json:"end_at"   validate:"required,gtfield=StartAt"`
	}

	assert.NoError(t, validator.ValidateStruct(&stay{StartAt: 1, EndAt: 2}))
	assert.EqualError(t, validator.ValidateStruct(&stay{StartAt: 2, EndAt: 2}), "end_at must be after start_at")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name: "valid body",
			body: `{"lodging_id":"l1","number":2,"rate":"150.50"}`,
		},
		{
			name: "numeric rate",
			body: `{"lodging_id":"l1","number":2,"rate":150.5}`,
		},
		{
			name:    "invalid rate",
			body:    `{"lodging_id":"l1","number":2,"rate":"abc"}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			body:    `{"lodging_id":`,
			wantErr: true,
		},
		{
			name:    "empty object",
			body:    `{}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data roomPayload
			err := validator.Validate(strings.NewReader(tt.body), &data)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
