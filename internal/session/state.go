// Package session drives one dashboard session: startup place selection,
// searches, favorites and historical lookups.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/weather"
)

// Status is the outcome of the last operation, as shown to the user.
type Status string

const (
	StatusReady    Status = "ready"
	StatusNotFound Status = "not_found"
	StatusTimedOut Status = "timed_out"
	StatusError    Status = "error"
)

// Source says how the current place was chosen.
type Source string

const (
	SourceDevice   Source = "device"
	SourceLast     Source = "last"
	SourceDefault  Source = "default"
	SourceSearch   Source = "search"
	SourceFavorite Source = "favorite"
)

const (
	MsgNotFound    = "City not found"
	MsgLoadFailed  = "Error loading weather"
	MsgHistNoData  = "No historical data available for this date."
	MsgHistFailed  = "Error loading historical data."
	MsgPickDate    = "Please select a date."
	MsgPastDate    = "Please select a past date."
	MsgNeedPlace   = "Please search for a location first."
	MsgInvalidHour = "Please select a valid hour."
)

func timedOutMessage(def weather.Place) string {
	return fmt.Sprintf("Search timed out, showing %s...", def.Name)
}

// State is the session value object. Operations take the previous State
// and return the next one; nothing else holds the current place.
type State struct {
	Place    weather.Place           `json:"place"`
	Source   Source                  `json:"source"`
	Snapshot weather.CurrentSnapshot `json:"snapshot"`
	Forecast []weather.ForecastDay   `json:"forecast"`
	Status   Status                  `json:"status"`
	Message  string                  `json:"message,omitempty"`

	// Persisted is true when Place was written as the last place.
	Persisted bool `json:"persisted"`

	// DefaultPlace is resolved once at startup and is the fallback for
	// every later failure.
	DefaultPlace weather.Place `json:"defaultPlace"`
	UpdatedAt    time.Time     `json:"updatedAt"`

	// Err is the cause behind the last failed operation, if any.
	Err error `json:"-"`
}

// HasPlace reports whether any place has been rendered in this session.
func (s State) HasPlace() bool {
	return s.Place.Name != ""
}

// Ready reports whether the last render succeeded.
func (s State) Ready() bool {
	return s.Status == StatusReady
}

// Historical is the result of a historical lookup for the current place.
type Historical struct {
	Place weather.Place          `json:"place"`
	Date  string                 `json:"date"`
	Hour  weather.HistoricalHour `json:"hour"`
}

// UserError carries a message meant to be shown as is.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *UserError) Unwrap() error { return e.Err }

func userError(msg string, err error) error {
	return &UserError{Message: msg, Err: err}
}

var (
	ErrNoDate          = errors.New("no date given")
	ErrNotPast         = errors.New("date is not in the past")
	ErrNoPlace         = errors.New("no current place")
	ErrBadHour         = errors.New("invalid hour")
	ErrNothingToSave   = errors.New("current place cannot be saved")
	ErrUnknownFavorite = errors.New("no such favorite")
)

// Message returns the user-facing text for err, falling back to its
// Error string.
func Message(err error) string {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Message
	}
	return err.Error()
}
