package collection

import (
	"errors"
	"net/http"
)

// DefaultFailure is shown when an operation has no message of its own.
const DefaultFailure = "Възникна грешка. Моля, опитайте отново."

// Message holds the user-facing texts for one operation.
type Message struct {
	// Forbidden is shown on 403. Failure is used when it is empty.
	Forbidden string
	// Failure is the generic text for everything not covered below.
	Failure string
	// NotFound, when set, is shown on 404.
	NotFound string
}

// Messages maps an operation name to its texts.
type Messages map[string]Message

type statusCarrier interface {
	HTTPStatus() int
}

type messageCarrier interface {
	ServerMessage() string
}

// Resolve maps err to the text a user sees. A 403 always maps to Forbidden
// and never to the server's own wording. Other 4xx responses prefer the
// server message when one was sent.
func (m Message) Resolve(err error) string {
	failure := m.Failure
	if failure == "" {
		failure = DefaultFailure
	}

	var sc statusCarrier
	if !errors.As(err, &sc) {
		return failure
	}

	status := sc.HTTPStatus()
	switch {
	case status == http.StatusForbidden:
		if m.Forbidden != "" {
			return m.Forbidden
		}
		return failure
	case status == http.StatusNotFound && m.NotFound != "":
		return m.NotFound
	case status >= 400 && status < 500:
		var mc messageCarrier
		if errors.As(err, &mc) && mc.ServerMessage() != "" {
			return mc.ServerMessage()
		}
	}
	return failure
}

func statusOf(err error) int {
	var sc statusCarrier
	if errors.As(err, &sc) {
		return sc.HTTPStatus()
	}
	return 0
}

// Resolve looks up op and maps err through it.
func (m Messages) Resolve(op string, err error) string {
	return m[op].Resolve(err)
}
