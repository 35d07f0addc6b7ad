package tado

import (
	"context"
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetZones(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/homes/1/zones", r.URL.Path)
		w.Write([]byte(`[
			{"id":1,"name":"Living room","type":"HEATING","devices":[{"deviceType":"VA02","serialNo":"VA123456789","shortSerialNo":"VA123456789"}],
			 "openWindowDetection":{"supported":true,"enabled":true,"timeoutInSeconds":900}},
			{"id":0,"name":"Hot water","type":"HOT_WATER"},
			{"id":9,"name":"Garage","type":"AIR_CONDITIONING"}
		]`))
	})

	zones, err := client.GetZones(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, zones, 3)

	assert.Equal(t, DeviceTypeHeating, zones[0].Type)
	require.Len(t, zones[0].Devices, 1)
	assert.Equal(t, 900, *zones[0].OpenWindowDetection.TimeoutInSeconds)
	assert.Equal(t, DeviceTypeHotWater, zones[1].Type)
	assert.Equal(t, DeviceTypeUnknown, zones[2].Type)
}

func TestClient_GetZoneState(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/homes/1/zones/3/state", r.URL.Path)
		w.Write([]byte(`{
			"tadoMode":"HOME",
			"setting":{"type":"HEATING","power":"ON","temperature":{"celsius":20.5,"fahrenheit":68.9}},
			"overlayType":"MANUAL",
			"overlay":{"type":"MANUAL","setting":{"type":"HEATING","power":"ON","temperature":{"celsius":20.5}},"termination":{"type":"NEXT_TIME_BLOCK","projectedExpiry":"2026-01-01T18:00:00Z"}},
			"link":{"state":"ONLINE"},
			"activityDataPoints":{"heatingPower":{"type":"PERCENTAGE","percentage":35}},
			"sensorDataPoints":{"insideTemperature":{"celsius":19.8,"fahrenheit":67.6},"humidity":{"type":"PERCENTAGE","percentage":48.2}}
		}`))
	})

	state, err := client.GetZoneState(context.Background(), 1, 3)
	require.NoError(t, err)
	require.NotNil(t, state)

	assert.Equal(t, HomePresenceHome, state.TadoMode)
	assert.Equal(t, 20.5, *state.Setting.Temperature.Celsius)
	require.NotNil(t, state.Overlay)
	assert.Equal(t, DurationModeUntilNextTimedEvent, state.Overlay.Termination.Type)
	assert.NotNil(t, state.Overlay.Termination.ProjectedExpiry)
	assert.Equal(t, "ONLINE", state.Link.State)
	assert.Equal(t, 35.0, state.ActivityDataPoints.HeatingPower.Percentage)
	assert.Equal(t, 19.8, state.SensorDataPoints.InsideTemperature.Celsius)
	assert.Equal(t, 48.2, state.SensorDataPoints.Humidity.Percentage)
}

func TestClient_GetSummarizedZoneState(t *testing.T) {
	ctx := context.Background()

	t.Run("overlay active", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v2/homes/1/zones/3/overlay", r.URL.Path)
			w.Write([]byte(`{"setting":{"type":"HEATING","power":"OFF"},"termination":{"type":"TIMER","durationInSeconds":900,"remainingTimeInSeconds":600}}`))
		})

		summary, err := client.GetSummarizedZoneState(ctx, 1, 3)
		require.NoError(t, err)
		assert.Equal(t, PowerOff, summary.Setting.Power)
		assert.Equal(t, DurationModeTimer, summary.Termination.Type)
		assert.Equal(t, 600, *summary.Termination.RemainingTimeInSeconds)
	})

	t.Run("following schedule", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"errors":[{"code":"notFound","title":"No overlay"}]}`))
		})

		summary, err := client.GetSummarizedZoneState(ctx, 1, 3)
		assert.NoError(t, err)
		assert.Nil(t, summary)
	})
}

func TestClient_GetZoneCapabilities(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/api/v2/homes/1/zones/3/capabilities", r.URL.Path)
		w.Write([]byte(`{"type":"HEATING","temperatures":{"celsius":{"min":5,"max":25,"step":0.1},"fahrenheit":{"min":41,"max":77,"step":0.1}}}`))
	}, WithCache(&CacheConfig{}))
	ctx := context.Background()

	caps, err := client.GetZoneCapabilities(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, DeviceTypeHeating, caps.Type)
	assert.Equal(t, 25.0, caps.Temperatures.Celsius.Max)
	assert.Equal(t, 0.1, *caps.Temperatures.Fahrenheit.Step)

	_, err = client.GetZoneCapabilities(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	client.ClearCache()
	_, err = client.GetZoneCapabilities(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_EarlyStart(t *testing.T) {
	ctx := context.Background()

	t.Run("get", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/v2/homes/1/zones/3/earlyStart", r.URL.Path)
			w.Write([]byte(`{"enabled":true}`))
		})

		es, err := client.GetEarlyStart(ctx, 1, 3)
		require.NoError(t, err)
		assert.True(t, es.Enabled)
	})

	t.Run("set", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/api/v2/homes/1/zones/3/earlyStart", r.URL.Path)
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"enabled":false}`, string(body))
			w.Write([]byte(`{"enabled":false}`))
		})

		es, err := client.SetEarlyStart(ctx, 1, 3, false)
		require.NoError(t, err)
		require.NotNil(t, es)
		assert.False(t, es.Enabled)
	})
}

func TestClient_OpenWindow(t *testing.T) {
	ctx := context.Background()

	t.Run("activate", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/v2/homes/1/zones/3/state/openWindow/activate", r.URL.Path)
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{}`, string(body))
			w.WriteHeader(http.StatusNoContent)
		})

		ok, err := client.SetOpenWindow(ctx, 1, 3)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("activate answered with 200", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		ok, err := client.SetOpenWindow(ctx, 1, 3)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("reset", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/api/v2/homes/1/zones/3/state/openWindow", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		})

		ok, err := client.ResetOpenWindow(ctx, 1, 3)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("server error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		ok, err := client.ResetOpenWindow(ctx, 1, 3)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}
