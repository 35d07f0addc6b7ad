package tado

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// GetMe returns the account of the current token, including its homes.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	return getData[User](ctx, c, "me")
}

// GetHome returns the details of a home.
// The result is cached when caching is enabled.
func (c *Client) GetHome(ctx context.Context, homeID int) (*Home, error) {
	return cachedGet(c, cacheKey("home", strconv.Itoa(homeID)), c.homeTTL(), func() (*Home, error) {
		return getData[Home](ctx, c, fmt.Sprintf("homes/%d", homeID))
	})
}

// GetHomeState returns whether the home is in HOME or AWAY mode.
func (c *Client) GetHomeState(ctx context.Context, homeID int) (*HomeState, error) {
	return getData[HomeState](ctx, c, fmt.Sprintf("homes/%d/state", homeID))
}

// GetUsers returns the users with access to a home.
func (c *Client) GetUsers(ctx context.Context, homeID int) ([]User, error) {
	return getList[User](ctx, c, fmt.Sprintf("homes/%d/users", homeID))
}

// GetWeather returns the current weather at the home location.
func (c *Client) GetWeather(ctx context.Context, homeID int) (*Weather, error) {
	return getData[Weather](ctx, c, fmt.Sprintf("homes/%d/weather", homeID))
}

// GetInstallations returns the installations of a home.
func (c *Client) GetInstallations(ctx context.Context, homeID int) ([]Installation, error) {
	return getList[Installation](ctx, c, fmt.Sprintf("homes/%d/installations", homeID))
}

// GetMobileDevices returns the phones registered for geofencing.
func (c *Client) GetMobileDevices(ctx context.Context, homeID int) ([]MobileDevice, error) {
	return getList[MobileDevice](ctx, c, fmt.Sprintf("homes/%d/mobileDevices", homeID))
}

// GetMobileDeviceSettings returns the settings of a single mobile device.
func (c *Client) GetMobileDeviceSettings(ctx context.Context, homeID, mobileDeviceID int) (*MobileDeviceSettings, error) {
	return getData[MobileDeviceSettings](ctx, c, fmt.Sprintf("homes/%d/mobileDevices/%d/settings", homeID, mobileDeviceID))
}

// SetHomePresence locks the home in HOME or AWAY mode.
// It reports whether the API accepted the change.
func (c *Client) SetHomePresence(ctx context.Context, homeID int, presence HomePresence) (bool, error) {
	if !presence.IsValid() {
		return false, &ArgumentError{Name: "presence", Value: presence, Reason: "must be HOME or AWAY"}
	}

	body := struct {
		HomePresence HomePresence `json:"homePresence"`
	}{presence}

	return c.sendCommand(ctx, http.MethodPut, fmt.Sprintf("homes/%d/presenceLock", homeID), body, anySuccess)
}
