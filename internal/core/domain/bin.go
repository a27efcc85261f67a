package domain

// WasteType identifies a compartment of a smart bin.
type WasteType string

// Bin compartments.
const (
	WasteWet   WasteType = "Wet Waste"
	WasteDry   WasteType = "Dry Waste"
	WasteMixed WasteType = "Mixed"
)

// BinReading is one fill-level sample reported by the bin feed.
type BinReading struct {
	// WetLevel is the wet compartment fill level in percent.
	WetLevel float64

	// DryLevel is the dry compartment fill level in percent.
	DryLevel float64

	// Timestamp is the feed's creation time for the sample, as reported.
	Timestamp string
}

// Bin describes the monitored bin.
type Bin struct {
	ID          int
	Name        string
	LocationURL string
}

// AlertKind returns the alert the reading calls for under m, if any.
// Both compartments at or above the critical level win over a
// single-compartment warning; wet is checked before dry.
func (r BinReading) AlertKind(m MonitorSettings) (AlertKind, bool) {
	switch {
	case r.WetLevel >= m.CriticalLevel && r.DryLevel >= m.CriticalLevel:
		return AlertCritical, true
	case r.WetLevel >= m.WarningLevel:
		return AlertWetWarning, true
	case r.DryLevel >= m.WarningLevel:
		return AlertDryWarning, true
	default:
		return "", false
	}
}
