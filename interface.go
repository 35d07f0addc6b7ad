package tado

import (
	"context"
	"time"
)

// TadoClient defines the interface for tado API operations.
// Client implements it; depend on the interface to mock the API in tests.
type TadoClient interface {
	// ============================================================================
	// Authentication
	// ============================================================================

	GetDeviceCodeAuthentication(ctx context.Context) (*DeviceAuthorization, error)
	WaitForDeviceCodeAuthenticationToComplete(ctx context.Context, auth *DeviceAuthorization) (*Token, error)
	GetAccessTokenWithRefreshToken(ctx context.Context, refreshToken string) (*Token, error)
	Authenticate(token *Token) bool
	IsAuthenticated() bool
	Token() *Token
	EnsureValidToken(ctx context.Context) (*Token, error)
	RestoreToken(ctx context.Context) (bool, error)
	Logout(ctx context.Context) error

	// ============================================================================
	// Account and Home Operations
	// ============================================================================

	GetMe(ctx context.Context) (*User, error)
	GetHome(ctx context.Context, homeID int) (*Home, error)
	GetHomeState(ctx context.Context, homeID int) (*HomeState, error)
	GetUsers(ctx context.Context, homeID int) ([]User, error)
	GetWeather(ctx context.Context, homeID int) (*Weather, error)
	GetInstallations(ctx context.Context, homeID int) ([]Installation, error)
	GetMobileDevices(ctx context.Context, homeID int) ([]MobileDevice, error)
	GetMobileDeviceSettings(ctx context.Context, homeID, mobileDeviceID int) (*MobileDeviceSettings, error)
	SetHomePresence(ctx context.Context, homeID int, presence HomePresence) (bool, error)

	// ============================================================================
	// Zone Operations
	// ============================================================================

	GetZones(ctx context.Context, homeID int) ([]Zone, error)
	GetZoneState(ctx context.Context, homeID, zoneID int) (*ZoneState, error)
	GetSummarizedZoneState(ctx context.Context, homeID, zoneID int) (*ZoneSummary, error)
	GetZoneCapabilities(ctx context.Context, homeID, zoneID int) (*Capability, error)
	GetEarlyStart(ctx context.Context, homeID, zoneID int) (*EarlyStart, error)
	SetEarlyStart(ctx context.Context, homeID, zoneID int, enabled bool) (*EarlyStart, error)
	SetOpenWindow(ctx context.Context, homeID, zoneID int) (bool, error)
	ResetOpenWindow(ctx context.Context, homeID, zoneID int) (bool, error)

	// ============================================================================
	// Overlay Operations
	// ============================================================================

	SetTemperature(ctx context.Context, homeID, zoneID int, celsius, fahrenheit *float64, deviceType DeviceType, durationMode DurationMode, timer *time.Duration) (*ZoneSummary, error)
	ResetOverlay(ctx context.Context, homeID, zoneID int) (bool, error)
	SetHeatingTemperatureCelsius(ctx context.Context, homeID, zoneID int, celsius float64) (*ZoneSummary, error)
	SetHeatingTemperatureCelsiusFor(ctx context.Context, homeID, zoneID int, celsius float64, durationMode DurationMode, timer *time.Duration) (*ZoneSummary, error)
	SetHeatingTemperatureFahrenheit(ctx context.Context, homeID, zoneID int, fahrenheit float64) (*ZoneSummary, error)
	SetHeatingTemperatureFahrenheitFor(ctx context.Context, homeID, zoneID int, fahrenheit float64, durationMode DurationMode, timer *time.Duration) (*ZoneSummary, error)
	SetHotWaterTemperatureCelsius(ctx context.Context, homeID int, celsius float64, durationMode DurationMode, timer *time.Duration) (*ZoneSummary, error)
	SetHotWaterTemperatureFahrenheit(ctx context.Context, homeID int, fahrenheit float64, durationMode DurationMode, timer *time.Duration) (*ZoneSummary, error)
	SwitchHeatingOff(ctx context.Context, homeID, zoneID int) (*ZoneSummary, error)
	SwitchHeatingOffFor(ctx context.Context, homeID, zoneID int, durationMode DurationMode, timer *time.Duration) (*ZoneSummary, error)
	SwitchHotWaterOff(ctx context.Context, homeID int, durationMode DurationMode, timer *time.Duration) (*ZoneSummary, error)

	// ============================================================================
	// Device Operations
	// ============================================================================

	GetDevices(ctx context.Context, homeID int) ([]Device, error)
	SayHi(ctx context.Context, deviceID string) (bool, error)
	SetDeviceChildLock(ctx context.Context, deviceID string, enabled bool) (bool, error)
	GetZoneTemperatureOffset(ctx context.Context, deviceID string) (*Temperature, error)
	GetZoneTemperatureOffsetByDevice(ctx context.Context, device *Device) (*Temperature, error)
	GetZoneTemperatureOffsetByZone(ctx context.Context, zone *Zone) (*Temperature, error)
	SetZoneTemperatureOffsetCelsius(ctx context.Context, deviceID string, offset float64) (*Temperature, error)
	SetZoneTemperatureOffsetFahrenheit(ctx context.Context, deviceID string, offset float64) (*Temperature, error)
	SetZoneTemperatureOffsetCelsiusByDevice(ctx context.Context, device *Device, offset float64) (*Temperature, error)
	SetZoneTemperatureOffsetFahrenheitByDevice(ctx context.Context, device *Device, offset float64) (*Temperature, error)
	SetZoneTemperatureOffsetCelsiusByZone(ctx context.Context, zone *Zone, offset float64) (*Temperature, error)
	SetZoneTemperatureOffsetFahrenheitByZone(ctx context.Context, zone *Zone, offset float64) (*Temperature, error)
}

// Ensure Client implements TadoClient.
var _ TadoClient = (*Client)(nil)
