package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/todoclient/internal/model"
)

func strp(s string) *string { return &s }

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload model.Payload
		wantErr string
	}{
		{name: "minimal", payload: model.Payload{Title: "Buy milk", Status: model.StatusPending}},
		{name: "full", payload: model.Payload{Title: "Buy milk", Description: strp("2l"), DueDate: strp("2025-02-28"), Status: model.StatusDone}},
		{name: "empty title", payload: model.Payload{Title: "", Status: model.StatusPending}, wantErr: "title"},
		{name: "blank title", payload: model.Payload{Title: "   ", Status: model.StatusPending}, wantErr: "title"},
		{name: "bad date", payload: model.Payload{Title: "x", DueDate: strp("2025-13-01"), Status: model.StatusPending}, wantErr: "dueDate"},
		{name: "bad status", payload: model.Payload{Title: "x", Status: "LATER"}, wantErr: "status"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.payload)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestValidateShape(t *testing.T) {
	held := model.Payload{Title: "Imported", DueDate: strp("01/06/2025"), Status: model.StatusDone}
	assert.NoError(t, ValidateShape(held), "server-held values are sent back as they are")
	assert.Error(t, Validate(held))

	err := ValidateShape(model.Payload{Title: "x", Status: "LATER"})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "status")
	}
}
