package tado

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationMode_JSON(t *testing.T) {
	tests := []struct {
		wire string
		want DurationMode
	}{
		{`"MANUAL"`, DurationModeUntilNextManualChange},
		{`"TADO_MODE"`, DurationModeUntilNextTimedEvent},
		{`"NEXT_TIME_BLOCK"`, DurationModeUntilNextTimedEvent},
		{`"TIMER"`, DurationModeTimer},
		{`"SOMETHING_NEW"`, DurationModeUnknown},
		{`null`, DurationModeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.wire, func(t *testing.T) {
			var got DurationMode
			require.NoError(t, json.Unmarshal([]byte(tt.wire), &got))
			assert.Equal(t, tt.want, got)
		})
	}

	data, err := json.Marshal(DurationModeUntilNextTimedEvent)
	require.NoError(t, err)
	assert.Equal(t, `"TADO_MODE"`, string(data), "aliases are never encoded")
}

func TestEnums_RoundTrip(t *testing.T) {
	type wrapper struct {
		Type     DeviceType   `json:"type"`
		Power    PowerState   `json:"power"`
		Mode     DurationMode `json:"mode"`
		Presence HomePresence `json:"presence"`
	}

	in := wrapper{DeviceTypeHotWater, PowerOff, DurationModeTimer, HomePresenceAway}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"HOT_WATER","power":"OFF","mode":"TIMER","presence":"AWAY"}`, string(data))

	var out wrapper
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestEnums_Unknown(t *testing.T) {
	data, err := json.Marshal(struct {
		Type  DeviceType `json:"type"`
		Power PowerState `json:"power"`
	}{DeviceTypeUnknown, PowerState(99)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":null,"power":null}`, string(data))

	var p PowerState
	require.NoError(t, json.Unmarshal([]byte(`"STANDBY"`), &p))
	assert.Equal(t, PowerUnknown, p)

	assert.Error(t, json.Unmarshal([]byte(`42`), &p))

	assert.False(t, DeviceTypeUnknown.IsValid())
	assert.True(t, DeviceTypeHeating.IsValid())
	assert.Equal(t, "HEATING", DeviceTypeHeating.String())
	assert.Equal(t, "DeviceType(7)", DeviceType(7).String())
	assert.Equal(t, "HomePresence(0)", HomePresenceUnknown.String())
	assert.Equal(t, "DurationMode(-1)", DurationMode(-1).String())
}

func TestParseHomePresence(t *testing.T) {
	p, err := ParseHomePresence("HOME")
	require.NoError(t, err)
	assert.Equal(t, HomePresenceHome, p)

	p, err = ParseHomePresence("AWAY")
	require.NoError(t, err)
	assert.Equal(t, HomePresenceAway, p)

	_, err = ParseHomePresence("home")
	assert.ErrorIs(t, err, ErrArgumentRange)
}
