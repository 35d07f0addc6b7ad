package tado

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// GetZones returns the zones of a home, including their devices.
func (c *Client) GetZones(ctx context.Context, homeID int) ([]Zone, error) {
	return getList[Zone](ctx, c, fmt.Sprintf("homes/%d/zones", homeID))
}

// GetZoneState returns the current setting and sensor readings of a zone.
func (c *Client) GetZoneState(ctx context.Context, homeID, zoneID int) (*ZoneState, error) {
	return getData[ZoneState](ctx, c, fmt.Sprintf("homes/%d/zones/%d/state", homeID, zoneID))
}

// GetSummarizedZoneState returns the overlay active on a zone.
// It returns (nil, nil) when the zone follows its schedule.
func (c *Client) GetSummarizedZoneState(ctx context.Context, homeID, zoneID int) (*ZoneSummary, error) {
	return getData[ZoneSummary](ctx, c, fmt.Sprintf("homes/%d/zones/%d/overlay", homeID, zoneID))
}

// GetZoneCapabilities returns the allowed settings of a zone.
// The result is cached when caching is enabled.
func (c *Client) GetZoneCapabilities(ctx context.Context, homeID, zoneID int) (*Capability, error) {
	key := cacheKey("capabilities", strconv.Itoa(homeID), strconv.Itoa(zoneID))
	return cachedGet(c, key, c.capabilityTTL(), func() (*Capability, error) {
		return getData[Capability](ctx, c, fmt.Sprintf("homes/%d/zones/%d/capabilities", homeID, zoneID))
	})
}

// GetEarlyStart returns the early start setting of a zone.
func (c *Client) GetEarlyStart(ctx context.Context, homeID, zoneID int) (*EarlyStart, error) {
	return getData[EarlyStart](ctx, c, fmt.Sprintf("homes/%d/zones/%d/earlyStart", homeID, zoneID))
}

// SetEarlyStart enables or disables early start for a zone.
func (c *Client) SetEarlyStart(ctx context.Context, homeID, zoneID int, enabled bool) (*EarlyStart, error) {
	return sendData[EarlyStart](ctx, c, http.MethodPut,
		fmt.Sprintf("homes/%d/zones/%d/earlyStart", homeID, zoneID),
		EarlyStart{Enabled: enabled}, http.StatusOK)
}

// SetOpenWindow marks a window in the zone as open, pausing heating.
func (c *Client) SetOpenWindow(ctx context.Context, homeID, zoneID int) (bool, error) {
	return c.sendCommand(ctx, http.MethodPost,
		fmt.Sprintf("homes/%d/zones/%d/state/openWindow/activate", homeID, zoneID),
		struct{}{}, anySuccess)
}

// ResetOpenWindow ends open window mode for the zone.
func (c *Client) ResetOpenWindow(ctx context.Context, homeID, zoneID int) (bool, error) {
	return c.sendCommand(ctx, http.MethodDelete,
		fmt.Sprintf("homes/%d/zones/%d/state/openWindow", homeID, zoneID),
		nil, anySuccess)
}
