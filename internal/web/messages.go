package web

// messages.go maps errors to user-facing messages with a support code.
//
// Codes by category:
//
//	TBL001 - Unknown table         (session.ErrUnknownTable, 404)
//	TBL002 - Export disabled       (datatable.ErrExportDisabled, 409)
//	INT001 - Invalid intent        (errInvalidIntent, 400)
//	VAL001 - Invalid business      (store.ErrInvalidBusiness, 422)
//	VAL002 - Unknown search type   ("unknown search type", 400)
//	DB001  - Duplicate key         ("duplicate key", 409)
//	DB004  - Connection refused    ("connection refused", 503)
//	DB006  - Timeout               ("timeout", "context deadline exceeded", 504)
//	RATE001 - Rate limited         (errRateLimited, 429)
//	ERR000 - Anything else         (500)
//
// Sentinel errors are matched with errors.Is first; the remaining codes
// fall back to case-insensitive substring patterns on the error text.

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/bizdash/internal/datatable"
	"github.com/JonMunkholm/bizdash/internal/session"
	"github.com/JonMunkholm/bizdash/internal/store"
)

var (
	errInvalidIntent = errors.New("invalid intent")
	errRateLimited   = errors.New("rate limit exceeded")
)

// UserMessage is a user-facing error description.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Support reference
	Status  int    // HTTP status to answer with
}

type sentinelMessage struct {
	err error
	msg UserMessage
}

var sentinelMessages = []sentinelMessage{
	{session.ErrUnknownTable, UserMessage{
		Message: "Tabla no encontrada",
		Action:  "Verifique la dirección o vuelva al inicio",
		Code:    "TBL001",
		Status:  http.StatusNotFound,
	}},
	{datatable.ErrExportDisabled, UserMessage{
		Message: "La exportación no está habilitada para esta tabla",
		Code:    "TBL002",
		Status:  http.StatusConflict,
	}},
	{errInvalidIntent, UserMessage{
		Message: "Acción no válida",
		Action:  "Recargue la página e intente de nuevo",
		Code:    "INT001",
		Status:  http.StatusBadRequest,
	}},
	{store.ErrInvalidBusiness, UserMessage{
		Message: "Los datos del negocio no son válidos",
		Action:  "Complete la identificación, el agente y un valor no negativo",
		Code:    "VAL001",
		Status:  http.StatusUnprocessableEntity,
	}},
	{errRateLimited, UserMessage{
		Message: "Demasiadas solicitudes",
		Action:  "Espere un momento antes de intentar de nuevo",
		Code:    "RATE001",
		Status:  http.StatusTooManyRequests,
	}},
	{context.DeadlineExceeded, UserMessage{
		Message: "La operación tardó demasiado",
		Action:  "Intente de nuevo en unos momentos",
		Code:    "DB006",
		Status:  http.StatusGatewayTimeout,
	}},
}

type patternMessage struct {
	pattern string
	msg     UserMessage
}

// Order matters: the first matching pattern wins.
var patternMessages = []patternMessage{
	{"unknown search type", UserMessage{
		Message: "Tipo de búsqueda no válido",
		Action:  "Elija agente, cliente o cédula",
		Code:    "VAL002",
		Status:  http.StatusBadRequest,
	}},
	{"duplicate key", UserMessage{
		Message: "Ya existe un registro con este identificador",
		Code:    "DB001",
		Status:  http.StatusConflict,
	}},
	{"connection refused", UserMessage{
		Message: "No se pudo conectar con la base de datos",
		Action:  "Intente de nuevo en unos momentos",
		Code:    "DB004",
		Status:  http.StatusServiceUnavailable,
	}},
	{"timeout", UserMessage{
		Message: "La operación tardó demasiado",
		Action:  "Intente de nuevo en unos momentos",
		Code:    "DB006",
		Status:  http.StatusGatewayTimeout,
	}},
}

var defaultMessage = UserMessage{
	Message: "Ocurrió un error inesperado",
	Action:  "Intente de nuevo o contacte a soporte",
	Code:    "ERR000",
	Status:  http.StatusInternalServerError,
}

// MapError converts an error to a user-facing message. Unknown errors
// map to ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.err) {
			return sm.msg
		}
	}

	text := strings.ToLower(err.Error())
	for _, pm := range patternMessages {
		if strings.Contains(text, pm.pattern) {
			return pm.msg
		}
	}
	return defaultMessage
}
