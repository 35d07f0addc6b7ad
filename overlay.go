package tado

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// hotWaterZoneID is the zone id hot water commands target.
const hotWaterZoneID = 0

// SetTemperature places a manual overlay on a zone.
//
// When both celsius and fahrenheit are nil the zone is switched off.
// DurationModeTimer without a timer falls back to DurationModeUntilNextManualChange.
// It returns (nil, nil) when the API answers with anything but 200 OK.
func (c *Client) SetTemperature(ctx context.Context, homeID, zoneID int, celsius, fahrenheit *float64, deviceType DeviceType, durationMode DurationMode, timer *time.Duration) (*ZoneSummary, error) {
	overlay, err := buildOverlay(celsius, fahrenheit, deviceType, durationMode, timer)
	if err != nil {
		return nil, err
	}
	return sendData[ZoneSummary](ctx, c, http.MethodPut,
		fmt.Sprintf("homes/%d/zones/%d/overlay", homeID, zoneID),
		overlay, http.StatusOK)
}

// ResetOverlay removes the manual overlay of a zone so it follows its schedule again.
func (c *Client) ResetOverlay(ctx context.Context, homeID, zoneID int) (bool, error) {
	return c.sendCommand(ctx, http.MethodDelete,
		fmt.Sprintf("homes/%d/zones/%d/overlay", homeID, zoneID),
		nil, http.StatusNoContent)
}

// SetHeatingTemperatureCelsius heats a zone to celsius until the next manual change.
func (c *Client) SetHeatingTemperatureCelsius(ctx context.Context, homeID, zoneID int, celsius float64) (*ZoneSummary, error) {
	return c.SetTemperature(ctx, homeID, zoneID, &celsius, nil, DeviceTypeHeating, DurationModeUntilNextManualChange, nil)
}

// SetHeatingTemperatureCelsiusFor heats a zone to celsius for the given duration mode.
func (c *Client) SetHeatingTemperatureCelsiusFor(ctx context.Context, homeID, zoneID int, celsius float64, durationMode DurationMode, timer *time.Duration) (*ZoneSummary, error) {
	return c.SetTemperature(ctx, homeID, zoneID, &celsius, nil, DeviceTypeHeating, durationMode, timer)
}

// SetHeatingTemperatureFahrenheit heats a zone to fahrenheit until the next manual change.
func (c *Client) SetHeatingTemperatureFahrenheit(ctx context.Context, homeID, zoneID int, fahrenheit float64) (*ZoneSummary, error) {
	return c.SetTemperature(ctx, homeID, zoneID, nil, &fahrenheit, DeviceTypeHeating, DurationModeUntilNextManualChange, nil)
}

// SetHeatingTemperatureFahrenheitFor heats a zone to fahrenheit for the given duration mode.
func (c *Client) SetHeatingTemperatureFahrenheitFor(ctx context.Context, homeID, zoneID int, fahrenheit float64, durationMode DurationMode, timer *time.Duration) (*ZoneSummary, error) {
	return c.SetTemperature(ctx, homeID, zoneID, nil, &fahrenheit, DeviceTypeHeating, durationMode, timer)
}

// SetHotWaterTemperatureCelsius sets the hot water temperature.
func (c *Client) SetHotWaterTemperatureCelsius(ctx context.Context, homeID int, celsius float64, durationMode DurationMode, timer *time.Duration) (*ZoneSummary, error) {
	return c.SetTemperature(ctx, homeID, hotWaterZoneID, &celsius, nil, DeviceTypeHotWater, durationMode, timer)
}

// SetHotWaterTemperatureFahrenheit sets the hot water temperature.
func (c *Client) SetHotWaterTemperatureFahrenheit(ctx context.Context, homeID int, fahrenheit float64, durationMode DurationMode, timer *time.Duration) (*ZoneSummary, error) {
	return c.SetTemperature(ctx, homeID, hotWaterZoneID, nil, &fahrenheit, DeviceTypeHotWater, durationMode, timer)
}

// SwitchHeatingOff switches a zone off until the next manual change.
func (c *Client) SwitchHeatingOff(ctx context.Context, homeID, zoneID int) (*ZoneSummary, error) {
	return c.SetTemperature(ctx, homeID, zoneID, nil, nil, DeviceTypeHeating, DurationModeUntilNextManualChange, nil)
}

// SwitchHeatingOffFor switches a zone off for the given duration mode.
func (c *Client) SwitchHeatingOffFor(ctx context.Context, homeID, zoneID int, durationMode DurationMode, timer *time.Duration) (*ZoneSummary, error) {
	return c.SetTemperature(ctx, homeID, zoneID, nil, nil, DeviceTypeHeating, durationMode, timer)
}

// SwitchHotWaterOff switches hot water off for the given duration mode.
func (c *Client) SwitchHotWaterOff(ctx context.Context, homeID int, durationMode DurationMode, timer *time.Duration) (*ZoneSummary, error) {
	return c.SetTemperature(ctx, homeID, hotWaterZoneID, nil, nil, DeviceTypeHotWater, durationMode, timer)
}

// buildOverlay validates the arguments and builds the overlay request body.
func buildOverlay(celsius, fahrenheit *float64, deviceType DeviceType, durationMode DurationMode, timer *time.Duration) (*Overlay, error) {
	if !deviceType.IsValid() {
		return nil, &ArgumentError{Name: "deviceType", Value: deviceType, Reason: "must be HEATING or HOT_WATER"}
	}
	if !durationMode.IsValid() {
		return nil, &ArgumentError{Name: "durationMode", Value: durationMode, Reason: "must be MANUAL, TADO_MODE or TIMER"}
	}

	if durationMode == DurationModeTimer && timer == nil {
		durationMode = DurationModeUntilNextManualChange
	}

	overlay := &Overlay{
		Setting:     Setting{Type: deviceType, Power: PowerOff},
		Termination: Termination{Type: durationMode},
	}

	if celsius != nil || fahrenheit != nil {
		overlay.Setting.Power = PowerOn
		overlay.Setting.Temperature = &Temperature{Celsius: celsius, Fahrenheit: fahrenheit}
	}

	if durationMode == DurationModeTimer {
		seconds := int(timer.Seconds())
		overlay.Termination.DurationInSeconds = &seconds
	}

	return overlay, nil
}
