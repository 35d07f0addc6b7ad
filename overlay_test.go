package tado

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// overlayServer records the overlay request body and answers with summary.
func overlayServer(t *testing.T, path string, body *string, summary string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, path, r.URL.Path)
		data, _ := io.ReadAll(r.Body)
		*body = string(data)
		w.Write([]byte(summary))
	}
}

func TestClient_SetHeatingTemperatureCelsius(t *testing.T) {
	var body string
	client := newTestClient(t, overlayServer(t, "/api/v2/homes/1/zones/3/overlay", &body,
		`{"setting":{"type":"HEATING","power":"ON","temperature":{"celsius":21.5,"fahrenheit":70.7}},"termination":{"type":"MANUAL"}}`))

	summary, err := client.SetHeatingTemperatureCelsius(context.Background(), 1, 3, 21.5)
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.JSONEq(t, `{"setting":{"type":"HEATING","power":"ON","temperature":{"celsius":21.5}},"termination":{"type":"MANUAL"}}`, body)
	assert.Equal(t, PowerOn, summary.Setting.Power)
	assert.Equal(t, 70.7, *summary.Setting.Temperature.Fahrenheit)
	require.NotNil(t, summary.Termination)
	assert.Equal(t, DurationModeUntilNextManualChange, summary.Termination.Type)
}

func TestClient_SetTemperature(t *testing.T) {
	tests := []struct {
		name     string
		call     func(c *Client) (*ZoneSummary, error)
		path     string
		wantBody string
	}{
		{
			name: "timer",
			call: func(c *Client) (*ZoneSummary, error) {
				return c.SetHeatingTemperatureCelsiusFor(context.Background(), 1, 3, 19, DurationModeTimer, Ptr(90*time.Second+500*time.Millisecond))
			},
			path:     "/api/v2/homes/1/zones/3/overlay",
			wantBody: `{"setting":{"type":"HEATING","power":"ON","temperature":{"celsius":19}},"termination":{"type":"TIMER","durationInSeconds":90}}`,
		},
		{
			name: "timer without duration falls back to manual",
			call: func(c *Client) (*ZoneSummary, error) {
				return c.SetHeatingTemperatureCelsiusFor(context.Background(), 1, 3, 19, DurationModeTimer, nil)
			},
			path:     "/api/v2/homes/1/zones/3/overlay",
			wantBody: `{"setting":{"type":"HEATING","power":"ON","temperature":{"celsius":19}},"termination":{"type":"MANUAL"}}`,
		},
		{
			name: "until next timed event",
			call: func(c *Client) (*ZoneSummary, error) {
				return c.SetHeatingTemperatureFahrenheitFor(context.Background(), 1, 3, 68, DurationModeUntilNextTimedEvent, nil)
			},
			path:     "/api/v2/homes/1/zones/3/overlay",
			wantBody: `{"setting":{"type":"HEATING","power":"ON","temperature":{"fahrenheit":68}},"termination":{"type":"TADO_MODE"}}`,
		},
		{
			name: "fahrenheit",
			call: func(c *Client) (*ZoneSummary, error) {
				return c.SetHeatingTemperatureFahrenheit(context.Background(), 1, 3, 70)
			},
			path:     "/api/v2/homes/1/zones/3/overlay",
			wantBody: `{"setting":{"type":"HEATING","power":"ON","temperature":{"fahrenheit":70}},"termination":{"type":"MANUAL"}}`,
		},
		{
			name: "heating off",
			call: func(c *Client) (*ZoneSummary, error) {
				return c.SwitchHeatingOff(context.Background(), 1, 3)
			},
			path:     "/api/v2/homes/1/zones/3/overlay",
			wantBody: `{"setting":{"type":"HEATING","power":"OFF"},"termination":{"type":"MANUAL"}}`,
		},
		{
			name: "heating off for a while",
			call: func(c *Client) (*ZoneSummary, error) {
				return c.SwitchHeatingOffFor(context.Background(), 1, 3, DurationModeTimer, Ptr(time.Hour))
			},
			path:     "/api/v2/homes/1/zones/3/overlay",
			wantBody: `{"setting":{"type":"HEATING","power":"OFF"},"termination":{"type":"TIMER","durationInSeconds":3600}}`,
		},
		{
			name: "hot water",
			call: func(c *Client) (*ZoneSummary, error) {
				return c.SetHotWaterTemperatureCelsius(context.Background(), 1, 55, DurationModeUntilNextManualChange, nil)
			},
			path:     "/api/v2/homes/1/zones/0/overlay",
			wantBody: `{"setting":{"type":"HOT_WATER","power":"ON","temperature":{"celsius":55}},"termination":{"type":"MANUAL"}}`,
		},
		{
			name: "hot water fahrenheit",
			call: func(c *Client) (*ZoneSummary, error) {
				return c.SetHotWaterTemperatureFahrenheit(context.Background(), 1, 130, DurationModeUntilNextManualChange, nil)
			},
			path:     "/api/v2/homes/1/zones/0/overlay",
			wantBody: `{"setting":{"type":"HOT_WATER","power":"ON","temperature":{"fahrenheit":130}},"termination":{"type":"MANUAL"}}`,
		},
		{
			name: "hot water off",
			call: func(c *Client) (*ZoneSummary, error) {
				return c.SwitchHotWaterOff(context.Background(), 1, DurationModeUntilNextTimedEvent, nil)
			},
			path:     "/api/v2/homes/1/zones/0/overlay",
			wantBody: `{"setting":{"type":"HOT_WATER","power":"OFF"},"termination":{"type":"TADO_MODE"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body string
			client := newTestClient(t, overlayServer(t, tt.path, &body, `{"setting":{"type":"HEATING","power":"ON"}}`))

			summary, err := tt.call(client)
			require.NoError(t, err)
			assert.NotNil(t, summary)
			assert.JSONEq(t, tt.wantBody, body)
		})
	}
}

func TestClient_SetTemperature_StatusMismatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors":[{"code":"temperature.outOfRange"}]}`))
	})

	summary, err := client.SetHeatingTemperatureCelsius(context.Background(), 1, 3, 99)
	assert.NoError(t, err)
	assert.Nil(t, summary)
}

func TestClient_SetTemperature_InvalidArguments(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	ctx := context.Background()

	_, err := client.SetTemperature(ctx, 1, 3, Ptr(20.0), nil, DeviceTypeUnknown, DurationModeUntilNextManualChange, nil)
	assert.ErrorIs(t, err, ErrArgumentRange)

	_, err = client.SetTemperature(ctx, 1, 3, Ptr(20.0), nil, DeviceType(42), DurationModeUntilNextManualChange, nil)
	assert.ErrorIs(t, err, ErrArgumentRange)

	_, err = client.SetTemperature(ctx, 1, 3, Ptr(20.0), nil, DeviceTypeHeating, DurationMode(-1), nil)
	assert.ErrorIs(t, err, ErrArgumentRange)

	assert.False(t, called, "invalid arguments must not reach the API")
}

func TestClient_ResetOverlay(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v2/homes/1/zones/3/overlay", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	ok, err := client.ResetOverlay(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBuildOverlay(t *testing.T) {
	t.Run("no temperature means power off", func(t *testing.T) {
		overlay, err := buildOverlay(nil, nil, DeviceTypeHeating, DurationModeUntilNextManualChange, nil)
		require.NoError(t, err)
		assert.Equal(t, PowerOff, overlay.Setting.Power)
		assert.Nil(t, overlay.Setting.Temperature)
	})

	t.Run("both units are sent", func(t *testing.T) {
		overlay, err := buildOverlay(Ptr(20.0), Ptr(68.0), DeviceTypeHeating, DurationModeUntilNextManualChange, nil)
		require.NoError(t, err)

		data, err := json.Marshal(overlay.Setting)
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"HEATING","power":"ON","temperature":{"celsius":20,"fahrenheit":68}}`, string(data))
	})

	t.Run("timer seconds truncate", func(t *testing.T) {
		overlay, err := buildOverlay(Ptr(20.0), nil, DeviceTypeHeating, DurationModeTimer, Ptr(1999*time.Millisecond))
		require.NoError(t, err)
		require.NotNil(t, overlay.Termination.DurationInSeconds)
		assert.Equal(t, 1, *overlay.Termination.DurationInSeconds)
	})

	t.Run("timer ignored outside timer mode", func(t *testing.T) {
		overlay, err := buildOverlay(Ptr(20.0), nil, DeviceTypeHeating, DurationModeUntilNextManualChange, Ptr(time.Minute))
		require.NoError(t, err)
		assert.Nil(t, overlay.Termination.DurationInSeconds)
	})
}
