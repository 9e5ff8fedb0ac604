package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errMissingStore      = errors.New("catalog: store not configured")
	errMissingTileSource = errors.New("catalog: tile source not configured")
	errMissingRefresher  = errors.New("catalog: static api refresher not configured")
	errMissingLogoSource = errors.New("catalog: logo source not configured")
	errMissingView       = errors.New("catalog: view not configured")
	errMissingRenderer   = errors.New("catalog: renderer is required")
)

// LogoFetchError is returned when the custom logo cannot be retrieved.
type LogoFetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *LogoFetchError) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("error fetching image path: network response was not ok (status %d)", e.Status)
	case e.Err != nil:
		return "error fetching image path: " + e.Err.Error()
	default:
		return "error fetching image path"
	}
}

func (e *LogoFetchError) Unwrap() error { return e.Err }

func asLogoFetchError(err error) error {
	var logoErr *LogoFetchError
	if errors.As(err, &logoErr) {
		return err
	}
	return &LogoFetchError{Err: err}
}

// APIMessage is a single message from the catalog service error payload.
type APIMessage struct {
	MessageType    string `json:"messageType,omitempty"`
	MessageNumber  string `json:"messageNumber,omitempty"`
	MessageContent string `json:"messageContent,omitempty"`
	MessageKey     string `json:"messageKey,omitempty"`
}

// FetchDisplayError is a tile fetch failure surfaced by the store.
type FetchDisplayError struct {
	Status   int
	Messages []APIMessage
	Err      error
}

func (e *FetchDisplayError) Error() string {
	if len(e.Messages) > 0 {
		return "catalog: " + e.Messages[0].MessageContent
	}
	if e.Err != nil {
		return "catalog: " + e.Err.Error()
	}
	return fmt.Sprintf("catalog: request failed with status %d", e.Status)
}

func (e *FetchDisplayError) Unwrap() error { return e.Err }

// ErrorFormatter turns a fetch failure into a user facing message.
type ErrorFormatter func(err error) string

// FormatError renders catalog messages as "<number> <content>" lines, falling
// back to the status and the plain error text.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	var display *FetchDisplayError
	if !errors.As(err, &display) {
		return err.Error()
	}
	if len(display.Messages) > 0 {
		lines := make([]string, 0, len(display.Messages))
		for _, msg := range display.Messages {
			line := strings.TrimSpace(msg.MessageNumber + " " + msg.MessageContent)
			if line == "" {
				line = msg.MessageKey
			}
			if line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) > 0 {
			return strings.Join(lines, "\n")
		}
	}
	switch {
	case display.Status != 0 && display.Err != nil:
		return fmt.Sprintf("Status %d: %s", display.Status, display.Err.Error())
	case display.Status != 0:
		return fmt.Sprintf("Status %d", display.Status)
	case display.Err != nil:
		return display.Err.Error()
	default:
		return "Unknown error"
	}
}
