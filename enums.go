package tado

import (
	"encoding/json"
	"fmt"
)

// DeviceType selects which kind of zone an overlay targets.
type DeviceType int

const (
	DeviceTypeUnknown DeviceType = iota
	DeviceTypeHeating
	DeviceTypeHotWater
)

// PowerState is the power setting of a zone.
type PowerState int

const (
	PowerUnknown PowerState = iota
	PowerOn
	PowerOff
)

// DurationMode decides when a manual overlay ends.
type DurationMode int

const (
	DurationModeUnknown DurationMode = iota
	// DurationModeUntilNextManualChange keeps the overlay until it is changed or removed.
	DurationModeUntilNextManualChange
	// DurationModeUntilNextTimedEvent keeps the overlay until the next schedule block starts.
	DurationModeUntilNextTimedEvent
	// DurationModeTimer keeps the overlay for a fixed duration.
	DurationModeTimer
)

// HomePresence is the presence state of a home.
type HomePresence int

const (
	HomePresenceUnknown HomePresence = iota
	HomePresenceHome
	HomePresenceAway
)

// vendorEnum is a bidirectional mapping between an enum and its wire strings.
// Aliases decode to a value but are never produced when encoding.
type vendorEnum[E ~int] struct {
	name       string
	toVendor   map[E]string
	fromVendor map[string]E
}

func newVendorEnum[E ~int](name string, values map[E]string, aliases map[string]E) vendorEnum[E] {
	from := make(map[string]E, len(values)+len(aliases))
	for v, s := range values {
		from[s] = v
	}
	for s, v := range aliases {
		from[s] = v
	}
	return vendorEnum[E]{name: name, toVendor: values, fromVendor: from}
}

func (m vendorEnum[E]) valid(v E) bool {
	_, ok := m.toVendor[v]
	return ok
}

func (m vendorEnum[E]) label(v E) string {
	if s, ok := m.toVendor[v]; ok {
		return s
	}
	return fmt.Sprintf("%s(%d)", m.name, int(v))
}

// marshal encodes unknown values as JSON null.
func (m vendorEnum[E]) marshal(v E) ([]byte, error) {
	s, ok := m.toVendor[v]
	if !ok {
		return []byte("null"), nil
	}
	return json.Marshal(s)
}

// unmarshal decodes unrecognized strings to the unknown value.
func (m vendorEnum[E]) unmarshal(data []byte, unknown E) (E, error) {
	if string(data) == "null" {
		return unknown, nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return unknown, fmt.Errorf("failed to parse %s: %w", m.name, err)
	}
	if v, ok := m.fromVendor[s]; ok {
		return v, nil
	}
	return unknown, nil
}

var (
	deviceTypes = newVendorEnum("DeviceType", map[DeviceType]string{
		DeviceTypeHeating:  "HEATING",
		DeviceTypeHotWater: "HOT_WATER",
	}, nil)

	powerStates = newVendorEnum("PowerState", map[PowerState]string{
		PowerOn:  "ON",
		PowerOff: "OFF",
	}, nil)

	durationModes = newVendorEnum("DurationMode", map[DurationMode]string{
		DurationModeUntilNextManualChange: "MANUAL",
		DurationModeUntilNextTimedEvent:   "TADO_MODE",
		DurationModeTimer:                 "TIMER",
	}, map[string]DurationMode{
		"NEXT_TIME_BLOCK": DurationModeUntilNextTimedEvent,
	})

	homePresences = newVendorEnum("HomePresence", map[HomePresence]string{
		HomePresenceHome: "HOME",
		HomePresenceAway: "AWAY",
	}, nil)
)

// IsValid reports whether d is a known device type.
func (d DeviceType) IsValid() bool { return deviceTypes.valid(d) }

// String returns the wire name of the device type.
func (d DeviceType) String() string { return deviceTypes.label(d) }

// MarshalJSON implements json.Marshaler.
func (d DeviceType) MarshalJSON() ([]byte, error) { return deviceTypes.marshal(d) }

// UnmarshalJSON implements json.Unmarshaler.
func (d *DeviceType) UnmarshalJSON(data []byte) error {
	v, err := deviceTypes.unmarshal(data, DeviceTypeUnknown)
	*d = v
	return err
}

// IsValid reports whether p is a known power state.
func (p PowerState) IsValid() bool { return powerStates.valid(p) }

// String returns the wire name of the power state.
func (p PowerState) String() string { return powerStates.label(p) }

// MarshalJSON implements json.Marshaler.
func (p PowerState) MarshalJSON() ([]byte, error) { return powerStates.marshal(p) }

// UnmarshalJSON implements json.Unmarshaler.
func (p *PowerState) UnmarshalJSON(data []byte) error {
	v, err := powerStates.unmarshal(data, PowerUnknown)
	*p = v
	return err
}

// IsValid reports whether m is a known duration mode.
func (m DurationMode) IsValid() bool { return durationModes.valid(m) }

// String returns the wire name of the duration mode.
func (m DurationMode) String() string { return durationModes.label(m) }

// MarshalJSON implements json.Marshaler.
func (m DurationMode) MarshalJSON() ([]byte, error) { return durationModes.marshal(m) }

// UnmarshalJSON implements json.Unmarshaler.
func (m *DurationMode) UnmarshalJSON(data []byte) error {
	v, err := durationModes.unmarshal(data, DurationModeUnknown)
	*m = v
	return err
}

// IsValid reports whether p is a known presence state.
func (p HomePresence) IsValid() bool { return homePresences.valid(p) }

// String returns the wire name of the presence state.
func (p HomePresence) String() string { return homePresences.label(p) }

// MarshalJSON implements json.Marshaler.
func (p HomePresence) MarshalJSON() ([]byte, error) { return homePresences.marshal(p) }

// UnmarshalJSON implements json.Unmarshaler.
func (p *HomePresence) UnmarshalJSON(data []byte) error {
	v, err := homePresences.unmarshal(data, HomePresenceUnknown)
	*p = v
	return err
}

// ParseHomePresence converts "HOME" or "AWAY" (case-sensitive wire names) to a HomePresence.
func ParseHomePresence(s string) (HomePresence, error) {
	if v, ok := homePresences.fromVendor[s]; ok {
		return v, nil
	}
	return HomePresenceUnknown, &ArgumentError{Name: "presence", Value: s, Reason: "must be HOME or AWAY"}
}
