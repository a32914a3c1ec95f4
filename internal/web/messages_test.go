package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/JonMunkholm/bizdash/internal/datatable"
	"github.com/JonMunkholm/bizdash/internal/session"
	"github.com/JonMunkholm/bizdash/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"unknown table", fmt.Errorf("%w: ventas", session.ErrUnknownTable), "TBL001", http.StatusNotFound},
		{"export disabled", datatable.ErrExportDisabled, "TBL002", http.StatusConflict},
		{"bad intent", fmt.Errorf("%w: page %q", errInvalidIntent, "x"), "INT001", http.StatusBadRequest},
		{"invalid business", fmt.Errorf("add: %w: identification is required", store.ErrInvalidBusiness), "VAL001", http.StatusUnprocessableEntity},
		{"search type", errors.New(`unknown search type "x"`), "VAL002", http.StatusBadRequest},
		{"duplicate key", errors.New("ERROR: duplicate key value violates unique constraint"), "DB001", http.StatusConflict},
		{"connection refused", errors.New("dial tcp: Connection Refused"), "DB004", http.StatusServiceUnavailable},
		{"deadline", fmt.Errorf("load: %w", context.DeadlineExceeded), "DB006", http.StatusGatewayTimeout},
		{"i/o timeout", errors.New("read tcp: i/o timeout"), "DB006", http.StatusGatewayTimeout},
		{"rate limited", errRateLimited, "RATE001", http.StatusTooManyRequests},
		{"unknown", errors.New("boom"), "ERR000", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := MapError(tt.err)
			assert.Equal(t, tt.code, msg.Code)
			assert.Equal(t, tt.status, msg.Status)
			assert.NotEmpty(t, msg.Message)
		})
	}
}

func TestMapError_Nil(t *testing.T) {
	assert.Equal(t, UserMessage{}, MapError(nil))
}
