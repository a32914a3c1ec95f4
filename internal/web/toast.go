package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/bizdash/internal/tables"
)

// toastEvent is the HX-Trigger event static/app.js turns into toasts.
const toastEvent = "showToast"

// setToasts attaches notices to a background response. Must be called
// before the header is written.
func setToasts(w http.ResponseWriter, notices []tables.Notice) {
	if len(notices) == 0 {
		return
	}
	payload, err := json.Marshal(map[string][]tables.Notice{toastEvent: notices})
	if err != nil {
		slog.Error("toast encode error", "error", err)
		return
	}
	w.Header().Set("HX-Trigger", string(payload))
}
