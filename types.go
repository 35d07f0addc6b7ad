package tado

import "time"

// User is the account behind the current token, as returned by GET me.
type User struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Username      string         `json:"username"`
	Locale        string         `json:"locale,omitempty"`
	Homes         []HomeRef      `json:"homes"`
	MobileDevices []MobileDevice `json:"mobileDevices,omitempty"`
}

// HomeRef is the short form of a home listed on a user.
type HomeRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Home holds the details of a home.
type Home struct {
	ID                         int             `json:"id"`
	Name                       string          `json:"name"`
	DateTimeZone               string          `json:"dateTimeZone,omitempty"`
	DateCreated                *time.Time      `json:"dateCreated,omitempty"`
	TemperatureUnit            string          `json:"temperatureUnit,omitempty"`
	Partner                    *string         `json:"partner,omitempty"`
	InstallationCompleted      bool            `json:"installationCompleted"`
	SimpleSmartScheduleEnabled bool            `json:"simpleSmartScheduleEnabled"`
	AwayRadiusInMeters         *float64        `json:"awayRadiusInMeters,omitempty"`
	License                    string          `json:"license,omitempty"`
	ChristmasModeEnabled       bool            `json:"christmasModeEnabled"`
	ContactDetails             *ContactDetails `json:"contactDetails,omitempty"`
	Address                    *Address        `json:"address,omitempty"`
	Geolocation                *Geolocation    `json:"geolocation,omitempty"`
}

// ContactDetails of the home owner.
type ContactDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Address of a home.
type Address struct {
	AddressLine1 string  `json:"addressLine1"`
	AddressLine2 *string `json:"addressLine2,omitempty"`
	ZipCode      string  `json:"zipCode"`
	City         string  `json:"city"`
	State        *string `json:"state,omitempty"`
	Country      string  `json:"country"`
}

// Geolocation is a latitude/longitude pair.
type Geolocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// HomeState is the presence state of a home.
type HomeState struct {
	Presence HomePresence `json:"presence"`
	// PresenceLocked is true when presence was set manually instead of by geofencing.
	PresenceLocked *bool `json:"presenceLocked,omitempty"`
}

// Zone is a heating or hot water area of a home.
type Zone struct {
	ID                  int                  `json:"id"`
	Name                string               `json:"name"`
	Type                DeviceType           `json:"type"`
	DateCreated         *time.Time           `json:"dateCreated,omitempty"`
	DeviceTypes         []string             `json:"deviceTypes,omitempty"`
	Devices             []Device             `json:"devices,omitempty"`
	ReportAvailable     bool                 `json:"reportAvailable"`
	SupportsDazzle      bool                 `json:"supportsDazzle"`
	DazzleEnabled       bool                 `json:"dazzleEnabled"`
	DazzleMode          *DazzleMode          `json:"dazzleMode,omitempty"`
	OpenWindowDetection *OpenWindowDetection `json:"openWindowDetection,omitempty"`
}

// DazzleMode controls the display animation on a device after a change.
type DazzleMode struct {
	Supported bool `json:"supported"`
	Enabled   bool `json:"enabled"`
}

// OpenWindowDetection settings of a zone.
type OpenWindowDetection struct {
	Supported        bool `json:"supported"`
	Enabled          bool `json:"enabled"`
	TimeoutInSeconds *int `json:"timeoutInSeconds,omitempty"`
}

// Device is a physical tado device such as a thermostat or bridge.
type Device struct {
	DeviceType       string           `json:"deviceType"`
	SerialNo         string           `json:"serialNo"`
	ShortSerialNo    string           `json:"shortSerialNo"`
	CurrentFwVersion string           `json:"currentFwVersion,omitempty"`
	ConnectionState  *ConnectionState `json:"connectionState,omitempty"`
	Characteristics  *Characteristics `json:"characteristics,omitempty"`
	Duties           []string         `json:"duties,omitempty"`
	MountingState    *MountingState   `json:"mountingState,omitempty"`
	BatteryState     string           `json:"batteryState,omitempty"`
	ChildLockEnabled *bool            `json:"childLockEnabled,omitempty"`
}

// ConnectionState tells whether a device is reachable.
type ConnectionState struct {
	Value     bool       `json:"value"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Characteristics lists device capabilities.
type Characteristics struct {
	Capabilities []string `json:"capabilities"`
}

// MountingState of a radiator valve.
type MountingState struct {
	Value     string     `json:"value"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Installation is an installation process of a home.
type Installation struct {
	ID       int      `json:"id"`
	Type     string   `json:"type"`
	Revision int      `json:"revision"`
	State    string   `json:"state"`
	Devices  []Device `json:"devices,omitempty"`
}

// MobileDevice is a phone registered for geofencing.
type MobileDevice struct {
	ID       int                   `json:"id"`
	Name     string                `json:"name"`
	Settings *MobileDeviceSettings `json:"settings,omitempty"`
	Location *MobileDeviceLocation `json:"location,omitempty"`
	Metadata *MobileDeviceMetadata `json:"deviceMetadata,omitempty"`
}

// MobileDeviceSettings of a mobile device.
type MobileDeviceSettings struct {
	GeoTrackingEnabled bool `json:"geoTrackingEnabled"`
}

// MobileDeviceLocation is the last known location of a mobile device relative to its home.
type MobileDeviceLocation struct {
	Stale                         bool             `json:"stale"`
	AtHome                        bool             `json:"atHome"`
	BearingFromHome               *BearingFromHome `json:"bearingFromHome,omitempty"`
	RelativeDistanceFromHomeFence *float64         `json:"relativeDistanceFromHomeFence,omitempty"`
}

// BearingFromHome is a direction expressed both in degrees and radians.
type BearingFromHome struct {
	Degrees float64 `json:"degrees"`
	Radians float64 `json:"radians"`
}

// MobileDeviceMetadata describes the phone.
type MobileDeviceMetadata struct {
	Platform  string `json:"platform"`
	OSVersion string `json:"osVersion"`
	Model     string `json:"model"`
	Locale    string `json:"locale"`
}

// Temperature carries a value in one or both units.
type Temperature struct {
	Celsius    *float64 `json:"celsius,omitempty"`
	Fahrenheit *float64 `json:"fahrenheit,omitempty"`
}

// Setting is the desired state of a zone.
type Setting struct {
	Type        DeviceType   `json:"type"`
	Power       PowerState   `json:"power"`
	Temperature *Temperature `json:"temperature,omitempty"`
}

// Termination decides when an overlay ends.
type Termination struct {
	Type                   DurationMode `json:"type"`
	DurationInSeconds      *int         `json:"durationInSeconds,omitempty"`
	Expiry                 *time.Time   `json:"expiry,omitempty"`
	ProjectedExpiry        *time.Time   `json:"projectedExpiry,omitempty"`
	RemainingTimeInSeconds *int         `json:"remainingTimeInSeconds,omitempty"`
}

// Overlay is a manual setting placed over the schedule of a zone.
type Overlay struct {
	Setting     Setting     `json:"setting"`
	Termination Termination `json:"termination"`
}

// ZoneSummary is the overlay currently active on a zone.
type ZoneSummary struct {
	Setting     Setting      `json:"setting"`
	Termination *Termination `json:"termination,omitempty"`
}

// ZoneState is the full state of a zone, including sensor readings.
type ZoneState struct {
	TadoMode                       HomePresence        `json:"tadoMode"`
	GeolocationOverride            bool                `json:"geolocationOverride"`
	GeolocationOverrideDisableTime *time.Time          `json:"geolocationOverrideDisableTime,omitempty"`
	Preparation                    any                 `json:"preparation,omitempty"`
	Setting                        Setting             `json:"setting"`
	OverlayType                    *string             `json:"overlayType,omitempty"`
	Overlay                        *Overlay            `json:"overlay,omitempty"`
	OpenWindow                     any                 `json:"openWindow,omitempty"`
	OpenWindowDetected             *bool               `json:"openWindowDetected,omitempty"`
	Link                           *Link               `json:"link,omitempty"`
	ActivityDataPoints             *ActivityDataPoints `json:"activityDataPoints,omitempty"`
	SensorDataPoints               *SensorDataPoints   `json:"sensorDataPoints,omitempty"`
}

// Link tells whether the zone is connected.
type Link struct {
	State string `json:"state"`
}

// ActivityDataPoints are actuator readings of a zone.
type ActivityDataPoints struct {
	HeatingPower *Percentage `json:"heatingPower,omitempty"`
}

// SensorDataPoints are sensor readings of a zone.
type SensorDataPoints struct {
	InsideTemperature *TemperatureReading `json:"insideTemperature,omitempty"`
	Humidity          *Percentage         `json:"humidity,omitempty"`
}

// Percentage is a timestamped percentage reading.
type Percentage struct {
	Type       string     `json:"type"`
	Percentage float64    `json:"percentage"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
}

// TemperatureReading is a timestamped temperature reading.
type TemperatureReading struct {
	Celsius    float64      `json:"celsius"`
	Fahrenheit float64      `json:"fahrenheit"`
	Timestamp  *time.Time   `json:"timestamp,omitempty"`
	Type       string       `json:"type,omitempty"`
	Precision  *Temperature `json:"precision,omitempty"`
}

// Weather is the current weather at the home location.
type Weather struct {
	SolarIntensity     *Percentage         `json:"solarIntensity,omitempty"`
	OutsideTemperature *TemperatureReading `json:"outsideTemperature,omitempty"`
	WeatherState       *WeatherState       `json:"weatherState,omitempty"`
}

// WeatherState is a textual weather condition such as "CLOUDY".
type WeatherState struct {
	Type      string     `json:"type"`
	Value     string     `json:"value"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Capability describes what a zone supports.
type Capability struct {
	Type              DeviceType         `json:"type"`
	Temperatures      *TemperatureRanges `json:"temperatures,omitempty"`
	CanSetTemperature *bool              `json:"canSetTemperature,omitempty"`
}

// TemperatureRanges holds the allowed set points per unit.
type TemperatureRanges struct {
	Celsius    *TemperatureRange `json:"celsius,omitempty"`
	Fahrenheit *TemperatureRange `json:"fahrenheit,omitempty"`
}

// TemperatureRange is an allowed set point range.
type TemperatureRange struct {
	Min  float64  `json:"min"`
	Max  float64  `json:"max"`
	Step *float64 `json:"step,omitempty"`
}

// EarlyStart tells whether a zone pre-heats to reach the next set point on time.
type EarlyStart struct {
	Enabled bool `json:"enabled"`
}
