package domain

import "time"

// AlertKind classifies an alert for templating and cooldown tracking.
type AlertKind string

// Alert kinds.
const (
	AlertCritical    AlertKind = "critical"
	AlertWetWarning  AlertKind = "wet_warning"
	AlertDryWarning  AlertKind = "dry_warning"
	AlertMaintenance AlertKind = "maintenance"
	AlertCollection  AlertKind = "collection"
	AlertLocation    AlertKind = "location"
)

// IsValid returns true if the alert kind is recognised.
func (k AlertKind) IsValid() bool {
	switch k {
	case AlertCritical, AlertWetWarning, AlertDryWarning,
		AlertMaintenance, AlertCollection, AlertLocation:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k AlertKind) String() string {
	return string(k)
}

// Title returns the heading used when previewing the alert.
func (k AlertKind) Title() string {
	switch k {
	case AlertCritical:
		return "Critical Alert"
	case AlertWetWarning:
		return "Bin Full Warning (Wet)"
	case AlertDryWarning:
		return "Bin Full Warning (Dry)"
	case AlertMaintenance:
		return "Maintenance Alert"
	case AlertCollection:
		return "Collection Confirmation"
	case AlertLocation:
		return "Location Alert"
	default:
		return unknownDescription
	}
}

// Alert is a rendered notification ready to send.
type Alert struct {
	Kind    AlertKind
	BinID   int
	BinName string
	Body    string
}

// Receipt is what a notifier returns for a delivered message.
type Receipt struct {
	// MessageID is the provider's identifier for the message.
	MessageID string

	// SentAt is when the provider accepted the message.
	SentAt time.Time
}

// AlertRecord is the persisted outcome of one send attempt.
type AlertRecord struct {
	ID        string
	Kind      AlertKind
	BinID     int
	Body      string
	MessageID string
	Success   bool
	Error     string
	SentAt    time.Time
}

// CheckStatus summarises the outcome of one monitor check.
type CheckStatus string

// Check outcomes.
const (
	CheckNormal     CheckStatus = "normal"
	CheckAlerted    CheckStatus = "alerted"
	CheckCooldown   CheckStatus = "cooldown"
	CheckSendFailed CheckStatus = "send_failed"
	CheckNoData     CheckStatus = "no_data"
)

// CheckResult reports what a single monitor check observed and did.
type CheckResult struct {
	Reading *BinReading
	Kind    AlertKind
	Status  CheckStatus

	// CooldownRemaining is set when Status is CheckCooldown.
	CooldownRemaining time.Duration

	// Record is set when an alert was attempted.
	Record *AlertRecord
}
