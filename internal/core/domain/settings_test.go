package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, 1, s.Bin.ID)
	assert.Equal(t, "CSE Block Downtown", s.Bin.Name)
	assert.Equal(t, 75.0, s.Monitor.WarningLevel)
	assert.Equal(t, 90.0, s.Monitor.CriticalLevel)
	assert.Equal(t, 5*time.Minute, s.Monitor.Interval)
	assert.Equal(t, 30*time.Minute, s.Monitor.Cooldown)
	assert.Equal(t, "https://api.thingspeak.com", s.ThingSpeak.BaseURL)
	assert.Equal(t, NotifierConsole, s.Notifier)
	assert.NoError(t, s.Validate())
}

func TestAppSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppSettings)
	}{
		{"zero warning", func(s *AppSettings) { s.Monitor.WarningLevel = 0 }},
		{"critical above 100", func(s *AppSettings) { s.Monitor.CriticalLevel = 101 }},
		{"zero interval", func(s *AppSettings) { s.Monitor.Interval = 0 }},
		{"negative cooldown", func(s *AppSettings) { s.Monitor.Cooldown = -time.Second }},
		{"bad notifier", func(s *AppSettings) { s.Notifier = "pigeon" }},
		{"critical below warning", func(s *AppSettings) {
			s.Monitor.WarningLevel = 95
			s.Monitor.CriticalLevel = 80
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultAppSettings()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidInput)
		})
	}
}

func TestAppSettings_Validate_CriticalEqualsWarning(t *testing.T) {
	s := DefaultAppSettings()
	s.Monitor.WarningLevel = 90
	s.Monitor.CriticalLevel = 90
	assert.NoError(t, s.Validate())
}

func TestAppSettings_Validate_NamesField(t *testing.T) {
	s := DefaultAppSettings()
	s.Monitor.Interval = 0
	assert.ErrorContains(t, s.Validate(), "check interval must be positive")
}

func TestTwilioSettings_IsConfigured(t *testing.T) {
	tw := TwilioSettings{AccountSID: "AC1", AuthToken: "tok", From: "+1", To: "+2"}
	assert.True(t, tw.IsConfigured())

	tw.To = ""
	assert.False(t, tw.IsConfigured())
}

func TestNotifierMode_Description(t *testing.T) {
	assert.Equal(t, "Twilio SMS", NotifierTwilio.Description())
	assert.Equal(t, "Console (simulated SMS)", NotifierConsole.Description())
	assert.Equal(t, "Unknown", NotifierMode("x").Description())
}
