package tado

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// GetDevices returns every device of a home.
func (c *Client) GetDevices(ctx context.Context, homeID int) ([]Device, error) {
	return getList[Device](ctx, c, fmt.Sprintf("homes/%d/devices", homeID))
}

// SayHi makes a device flash its display so it can be found.
func (c *Client) SayHi(ctx context.Context, deviceID string) (bool, error) {
	if err := checkDeviceID(deviceID); err != nil {
		return false, err
	}
	return c.sendCommand(ctx, http.MethodPost, "devices/"+deviceID+"/identify", struct{}{}, http.StatusOK)
}

// SetDeviceChildLock enables or disables the child lock of a device.
func (c *Client) SetDeviceChildLock(ctx context.Context, deviceID string, enabled bool) (bool, error) {
	if err := checkDeviceID(deviceID); err != nil {
		return false, err
	}
	body := struct {
		ChildLockEnabled bool `json:"childLockEnabled"`
	}{enabled}
	return c.sendCommand(ctx, http.MethodPut, "devices/"+deviceID+"/childLock", body, http.StatusNoContent)
}

// GetZoneTemperatureOffset returns the temperature offset of a device.
func (c *Client) GetZoneTemperatureOffset(ctx context.Context, deviceID string) (*Temperature, error) {
	if err := checkDeviceID(deviceID); err != nil {
		return nil, err
	}
	return getData[Temperature](ctx, c, "devices/"+deviceID+"/temperatureOffset")
}

// GetZoneTemperatureOffsetByDevice returns the temperature offset of device.
func (c *Client) GetZoneTemperatureOffsetByDevice(ctx context.Context, device *Device) (*Temperature, error) {
	deviceID, err := deviceSerial(device)
	if err != nil {
		return nil, err
	}
	return c.GetZoneTemperatureOffset(ctx, deviceID)
}

// GetZoneTemperatureOffsetByZone returns the temperature offset of the first device in zone.
func (c *Client) GetZoneTemperatureOffsetByZone(ctx context.Context, zone *Zone) (*Temperature, error) {
	deviceID, err := zoneLeadDevice(zone)
	if err != nil {
		return nil, err
	}
	return c.GetZoneTemperatureOffset(ctx, deviceID)
}

// SetZoneTemperatureOffsetCelsius sets the temperature offset of a device in Celsius.
func (c *Client) SetZoneTemperatureOffsetCelsius(ctx context.Context, deviceID string, offset float64) (*Temperature, error) {
	return c.setTemperatureOffset(ctx, deviceID, Temperature{Celsius: &offset})
}

// SetZoneTemperatureOffsetFahrenheit sets the temperature offset of a device in Fahrenheit.
func (c *Client) SetZoneTemperatureOffsetFahrenheit(ctx context.Context, deviceID string, offset float64) (*Temperature, error) {
	return c.setTemperatureOffset(ctx, deviceID, Temperature{Fahrenheit: &offset})
}

// SetZoneTemperatureOffsetCelsiusByDevice sets the temperature offset of device in Celsius.
func (c *Client) SetZoneTemperatureOffsetCelsiusByDevice(ctx context.Context, device *Device, offset float64) (*Temperature, error) {
	deviceID, err := deviceSerial(device)
	if err != nil {
		return nil, err
	}
	return c.SetZoneTemperatureOffsetCelsius(ctx, deviceID, offset)
}

// SetZoneTemperatureOffsetFahrenheitByDevice sets the temperature offset of device in Fahrenheit.
func (c *Client) SetZoneTemperatureOffsetFahrenheitByDevice(ctx context.Context, device *Device, offset float64) (*Temperature, error) {
	deviceID, err := deviceSerial(device)
	if err != nil {
		return nil, err
	}
	return c.SetZoneTemperatureOffsetFahrenheit(ctx, deviceID, offset)
}

// SetZoneTemperatureOffsetCelsiusByZone sets the temperature offset of the first device in zone.
func (c *Client) SetZoneTemperatureOffsetCelsiusByZone(ctx context.Context, zone *Zone, offset float64) (*Temperature, error) {
	deviceID, err := zoneLeadDevice(zone)
	if err != nil {
		return nil, err
	}
	return c.SetZoneTemperatureOffsetCelsius(ctx, deviceID, offset)
}

// SetZoneTemperatureOffsetFahrenheitByZone sets the temperature offset of the first device in zone.
func (c *Client) SetZoneTemperatureOffsetFahrenheitByZone(ctx context.Context, zone *Zone, offset float64) (*Temperature, error) {
	deviceID, err := zoneLeadDevice(zone)
	if err != nil {
		return nil, err
	}
	return c.SetZoneTemperatureOffsetFahrenheit(ctx, deviceID, offset)
}

func (c *Client) setTemperatureOffset(ctx context.Context, deviceID string, offset Temperature) (*Temperature, error) {
	if err := checkDeviceID(deviceID); err != nil {
		return nil, err
	}
	return sendData[Temperature](ctx, c, http.MethodPut, "devices/"+deviceID+"/temperatureOffset", offset, http.StatusOK)
}

func checkDeviceID(deviceID string) error {
	if strings.TrimSpace(deviceID) == "" {
		return &ArgumentError{Name: "deviceID", Reason: "a device serial number is required"}
	}
	return nil
}

func deviceSerial(device *Device) (string, error) {
	if device == nil {
		return "", &ArgumentError{Name: "device", Reason: "a device is required"}
	}
	if err := checkDeviceID(device.ShortSerialNo); err != nil {
		return "", err
	}
	return device.ShortSerialNo, nil
}

// zoneLeadDevice returns the short serial of the first device in zone.
func zoneLeadDevice(zone *Zone) (string, error) {
	if zone == nil {
		return "", &ArgumentError{Name: "zone", Reason: "a zone is required"}
	}
	if len(zone.Devices) == 0 {
		return "", &ArgumentError{Name: "zone", Value: zone.ID, Reason: "the zone has no devices"}
	}
	return deviceSerial(&zone.Devices[0])
}
