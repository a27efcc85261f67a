package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
	"github.com/custodia-labs/ecobin-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ecobin-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyBinID             = "bin.id"
	keyBinName           = "bin.name"
	keyBinLocationURL    = "bin.location_url"
	keyMonitorWarning    = "monitor.warning_level"
	keyMonitorCritical   = "monitor.critical_level"
	keyMonitorInterval   = "monitor.interval"
	keyMonitorCooldown   = "monitor.cooldown"
	keyThingSpeakBaseURL = "thingspeak.base_url"
	keyThingSpeakChannel = "thingspeak.channel_id"
	keyThingSpeakAPIKey  = "thingspeak.api_key"
	keyTwilioBaseURL     = "twilio.base_url"
	keyTwilioAccountSID  = "twilio.account_sid"
	keyTwilioAuthToken   = "twilio.auth_token"
	keyTwilioFrom        = "twilio.from"
	keyTwilioTo          = "twilio.to"
	keyNotifierMode      = "notifier.mode"
)

type settingKind int

const (
	kindString settingKind = iota
	kindInt
	kindFloat
	kindDuration
	kindNotifier
)

// settingKeys lists every recognised key in display order.
var settingKeys = []struct {
	key    string
	kind   settingKind
	secret bool
}{
	{keyBinID, kindInt, false},
	{keyBinName, kindString, false},
	{keyBinLocationURL, kindString, false},
	{keyMonitorWarning, kindFloat, false},
	{keyMonitorCritical, kindFloat, false},
	{keyMonitorInterval, kindDuration, false},
	{keyMonitorCooldown, kindDuration, false},
	{keyThingSpeakBaseURL, kindString, false},
	{keyThingSpeakChannel, kindString, false},
	{keyThingSpeakAPIKey, kindString, true},
	{keyTwilioBaseURL, kindString, false},
	{keyTwilioAccountSID, kindString, false},
	{keyTwilioAuthToken, kindString, true},
	{keyTwilioFrom, kindString, false},
	{keyTwilioTo, kindString, false},
	{keyNotifierMode, kindNotifier, false},
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := readSettings(s.configStore)
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

// configReader is the read side of driven.ConfigStore.
type configReader interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetFloat(key string) float64
}

// readSettings builds settings from r, applying defaults for missing keys.
// The result is not validated.
func readSettings(r configReader) *domain.AppSettings {
	d := domain.DefaultAppSettings()

	return &domain.AppSettings{
		Bin: domain.BinSettings{
			ID:          getInt(r, keyBinID, d.Bin.ID),
			Name:        getString(r, keyBinName, d.Bin.Name),
			LocationURL: getString(r, keyBinLocationURL, d.Bin.LocationURL),
		},
		Monitor: domain.MonitorSettings{
			WarningLevel:  getFloat(r, keyMonitorWarning, d.Monitor.WarningLevel),
			CriticalLevel: getFloat(r, keyMonitorCritical, d.Monitor.CriticalLevel),
			Interval:      getDuration(r, keyMonitorInterval, d.Monitor.Interval),
			Cooldown:      getDuration(r, keyMonitorCooldown, d.Monitor.Cooldown),
		},
		ThingSpeak: domain.ThingSpeakSettings{
			BaseURL:   getString(r, keyThingSpeakBaseURL, d.ThingSpeak.BaseURL),
			ChannelID: getString(r, keyThingSpeakChannel, d.ThingSpeak.ChannelID),
			APIKey:    r.GetString(keyThingSpeakAPIKey),
		},
		Twilio: domain.TwilioSettings{
			BaseURL:    getString(r, keyTwilioBaseURL, d.Twilio.BaseURL),
			AccountSID: r.GetString(keyTwilioAccountSID),
			AuthToken:  r.GetString(keyTwilioAuthToken),
			From:       r.GetString(keyTwilioFrom),
			To:         r.GetString(keyTwilioTo),
		},
		Notifier: domain.NotifierMode(getString(r, keyNotifierMode, d.Notifier.String())),
	}
}

// pendingValue overlays one unsaved key on a config reader.
type pendingValue struct {
	configReader
	key   string
	value any
}

func (p pendingValue) Get(key string) (any, bool) {
	if key == p.key {
		return p.value, true
	}
	return p.configReader.Get(key)
}

func (p pendingValue) GetString(key string) string {
	if key == p.key {
		v, _ := p.value.(string)
		return v
	}
	return p.configReader.GetString(key)
}

func (p pendingValue) GetInt(key string) int {
	if key == p.key {
		v, _ := p.value.(int64)
		return int(v)
	}
	return p.configReader.GetInt(key)
}

func (p pendingValue) GetFloat(key string) float64 {
	if key == p.key {
		v, _ := p.value.(float64)
		return v
	}
	return p.configReader.GetFloat(key)
}

// GetValue returns the effective value of key as a string.
// Invalid settings are still reported so they can be inspected and fixed.
func (s *SettingsService) GetValue(key string) (string, error) {
	settings := readSettings(s.configStore)

	switch key {
	case keyBinID:
		return strconv.Itoa(settings.Bin.ID), nil
	case keyBinName:
		return settings.Bin.Name, nil
	case keyBinLocationURL:
		return settings.Bin.LocationURL, nil
	case keyMonitorWarning:
		return formatFloat(settings.Monitor.WarningLevel), nil
	case keyMonitorCritical:
		return formatFloat(settings.Monitor.CriticalLevel), nil
	case keyMonitorInterval:
		return settings.Monitor.Interval.String(), nil
	case keyMonitorCooldown:
		return settings.Monitor.Cooldown.String(), nil
	case keyThingSpeakBaseURL:
		return settings.ThingSpeak.BaseURL, nil
	case keyThingSpeakChannel:
		return settings.ThingSpeak.ChannelID, nil
	case keyThingSpeakAPIKey:
		return settings.ThingSpeak.APIKey, nil
	case keyTwilioBaseURL:
		return settings.Twilio.BaseURL, nil
	case keyTwilioAccountSID:
		return settings.Twilio.AccountSID, nil
	case keyTwilioAuthToken:
		return settings.Twilio.AuthToken, nil
	case keyTwilioFrom:
		return settings.Twilio.From, nil
	case keyTwilioTo:
		return settings.Twilio.To, nil
	case keyNotifierMode:
		return settings.Notifier.String(), nil
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownSetting, key)
	}
}

// SetValue parses value according to key's type and persists it.
// A change that would turn valid settings invalid is rejected. Settings
// that are already invalid accept any well-formed value so they can be
// repaired one key at a time.
func (s *SettingsService) SetValue(key, value string) error {
	value = strings.TrimSpace(value)

	for _, k := range settingKeys {
		if k.key != key {
			continue
		}
		parsed, err := parseSetting(k.kind, value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}

		candidate := readSettings(pendingValue{configReader: s.configStore, key: key, value: parsed})
		if err := candidate.Validate(); err != nil {
			if readSettings(s.configStore).Validate() == nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
		return s.configStore.Set(key, parsed)
	}
	return fmt.Errorf("%w: %s", domain.ErrUnknownSetting, key)
}

// Keys returns every recognised setting key.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	for i, k := range settingKeys {
		keys[i] = k.key
	}
	return keys
}

// IsSecret reports whether key holds a credential.
func (s *SettingsService) IsSecret(key string) bool {
	for _, k := range settingKeys {
		if k.key == key {
			return k.secret
		}
	}
	return false
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func parseSetting(kind settingKind, value string) (any, error) {
	switch kind {
	case kindInt:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		return n, nil
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 || f > 100 {
			return nil, domain.ErrInvalidInput
		}
		return f, nil
	case kindDuration:
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return nil, domain.ErrInvalidInput
		}
		return d.String(), nil
	case kindNotifier:
		if !domain.NotifierMode(value).IsValid() {
			return nil, domain.ErrInvalidInput
		}
		return value, nil
	default:
		return value, nil
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Helpers for reading config with defaults.

func getString(r configReader, key, defaultVal string) string {
	if val := r.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func getInt(r configReader, key string, defaultVal int) int {
	if _, ok := r.Get(key); ok {
		return r.GetInt(key)
	}
	return defaultVal
}

func getFloat(r configReader, key string, defaultVal float64) float64 {
	if _, ok := r.Get(key); ok {
		return r.GetFloat(key)
	}
	return defaultVal
}

func getDuration(r configReader, key string, defaultVal time.Duration) time.Duration {
	val := r.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
