package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Taxonomía cerrada de errores del transporte.
var (
	ErrInvalidURL      = errors.New("httpclient: invalid url")
	ErrInvalidResponse = errors.New("httpclient: invalid response")
	ErrUnauthorized    = errors.New("httpclient: unauthorized")
	ErrNotFound        = errors.New("httpclient: not found")
	ErrNoData          = errors.New("httpclient: no data")

	// ErrInvalidInput lo devuelven los servicios antes de llamar al server.
	ErrInvalidInput = errors.New("invalid input")
)

// StatusError representa una respuesta no-2xx.
// Message viene del envelope de error del server si lo trae.
type StatusError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http error: status=%d message=%s", e.StatusCode, e.Message)
	}
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// Is permite errors.Is(err, ErrUnauthorized) / errors.Is(err, ErrNotFound)
// sin perder el status exacto.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// DecodeError: hubo body pero no calza con la forma esperada.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "httpclient: decode: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// NetworkError: DNS, timeout, conexión rechazada, etc.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "httpclient: network: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// MessageError propaga un mensaje tal cual (envelope con data null + message,
// o una falla de más abajo que no encaja en otro caso).
type MessageError struct {
	Message string
	Err     error
}

func (e *MessageError) Error() string { return e.Message }
func (e *MessageError) Unwrap() error { return e.Err }

// StatusCode devuelve el status HTTP de un error del server, o 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// Describe traduce cualquier error a un mensaje mostrable al usuario.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var (
		se *StatusError
		de *DecodeError
		ne *NetworkError
		me *MessageError
	)
	switch {
	case errors.Is(err, context.Canceled):
		return "Operación cancelada"
	case errors.Is(err, context.DeadlineExceeded):
		return "El servidor tardó demasiado en responder"
	case errors.As(err, &me):
		return me.Message
	case errors.As(err, &se):
		if se.Message != "" {
			return se.Message
		}
		switch se.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return "No autorizado. Inicia sesión nuevamente"
		case http.StatusNotFound:
			return "Recurso no encontrado"
		}
		return fmt.Sprintf("Error del servidor (código %d)", se.StatusCode)
	case errors.As(err, &de):
		return "Error al procesar datos: " + de.Err.Error()
	case errors.As(err, &ne):
		return "Error de red: " + ne.Err.Error()
	case errors.Is(err, ErrInvalidURL):
		return "La URL es inválida"
	case errors.Is(err, ErrInvalidResponse):
		return "Respuesta del servidor inválida"
	case errors.Is(err, ErrUnauthorized):
		return "No autorizado. Inicia sesión nuevamente"
	case errors.Is(err, ErrNotFound):
		return "Recurso no encontrado"
	case errors.Is(err, ErrNoData):
		return "No se recibieron datos del servidor"
	case errors.Is(err, ErrInvalidInput):
		return "Faltan datos requeridos o son inválidos"
	}
	return err.Error()
}
