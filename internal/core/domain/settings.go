package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// NotifierMode selects how alerts are delivered.
type NotifierMode string

// Available notifier modes.
const (
	// NotifierTwilio sends SMS through the Twilio REST API.
	NotifierTwilio NotifierMode = "twilio"

	// NotifierConsole prints alerts instead of sending them.
	NotifierConsole NotifierMode = "console"
)

// IsValid returns true if the notifier mode is recognised.
func (m NotifierMode) IsValid() bool {
	return m == NotifierTwilio || m == NotifierConsole
}

// String returns the string representation.
func (m NotifierMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m NotifierMode) Description() string {
	switch m {
	case NotifierTwilio:
		return "Twilio SMS"
	case NotifierConsole:
		return "Console (simulated SMS)"
	default:
		return unknownDescription
	}
}

// AppSettings is the full application configuration.
type AppSettings struct {
	Bin        BinSettings
	Monitor    MonitorSettings
	ThingSpeak ThingSpeakSettings
	Twilio     TwilioSettings
	Notifier   NotifierMode
}

// BinSettings identifies the monitored bin.
type BinSettings struct {
	ID          int
	Name        string
	LocationURL string
}

// Bin returns the bin described by the settings.
func (b BinSettings) Bin() Bin {
	return Bin{ID: b.ID, Name: b.Name, LocationURL: b.LocationURL}
}

// MonitorSettings controls threshold evaluation.
type MonitorSettings struct {
	// WarningLevel is the fill percentage for a single-compartment warning.
	WarningLevel float64

	// CriticalLevel is the fill percentage both compartments must reach.
	CriticalLevel float64

	// Interval is the time between scheduled checks.
	Interval time.Duration

	// Cooldown is the minimum time between two alerts of the same kind.
	Cooldown time.Duration
}

// ThingSpeakSettings configures the bin feed.
type ThingSpeakSettings struct {
	BaseURL   string
	ChannelID string
	APIKey    string
}

// TwilioSettings configures SMS delivery.
type TwilioSettings struct {
	BaseURL    string
	AccountSID string
	AuthToken  string
	From       string
	To         string
}

// IsConfigured reports whether all credentials required to send are present.
func (t TwilioSettings) IsConfigured() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.From != "" && t.To != ""
}

// Default values.
const (
	DefaultBinID            = 1
	DefaultBinName          = "CSE Block Downtown"
	DefaultWarningLevel     = 75.0
	DefaultCriticalLevel    = 90.0
	DefaultCheckInterval    = 5 * time.Minute
	DefaultAlertCooldown    = 30 * time.Minute
	DefaultThingSpeakURL    = "https://api.thingspeak.com"
	DefaultThingSpeakChanID = "2623279"
	DefaultTwilioURL        = "https://api.twilio.com"

	//nolint:lll // literal map URL
	DefaultBinLocationURL = "https://www.google.com/maps/place/Computer+science+engineering+block/@12.9078997,80.140074,18.68z"
)

// DefaultAppSettings returns sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Bin: BinSettings{
			ID:          DefaultBinID,
			Name:        DefaultBinName,
			LocationURL: DefaultBinLocationURL,
		},
		Monitor: MonitorSettings{
			WarningLevel:  DefaultWarningLevel,
			CriticalLevel: DefaultCriticalLevel,
			Interval:      DefaultCheckInterval,
			Cooldown:      DefaultAlertCooldown,
		},
		ThingSpeak: ThingSpeakSettings{
			BaseURL:   DefaultThingSpeakURL,
			ChannelID: DefaultThingSpeakChanID,
		},
		Twilio: TwilioSettings{
			BaseURL: DefaultTwilioURL,
		},
		Notifier: NotifierConsole,
	}
}

// Validate checks the settings for internal consistency.
func (s *AppSettings) Validate() error {
	m := s.Monitor
	switch {
	case m.WarningLevel <= 0 || m.WarningLevel > 100:
		return fmt.Errorf("%w: warning level must be in (0, 100]", ErrInvalidInput)
	case m.CriticalLevel <= 0 || m.CriticalLevel > 100:
		return fmt.Errorf("%w: critical level must be in (0, 100]", ErrInvalidInput)
	case m.CriticalLevel < m.WarningLevel:
		return fmt.Errorf("%w: critical level %.1f is below warning level %.1f",
			ErrInvalidInput, m.CriticalLevel, m.WarningLevel)
	case m.Interval <= 0:
		return fmt.Errorf("%w: check interval must be positive", ErrInvalidInput)
	case m.Cooldown < 0:
		return fmt.Errorf("%w: cooldown must not be negative", ErrInvalidInput)
	case !s.Notifier.IsValid():
		return fmt.Errorf("%w: unknown notifier mode %q", ErrInvalidInput, s.Notifier)
	}
	return nil
}
