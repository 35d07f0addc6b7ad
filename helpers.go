package tado

// Ptr returns a pointer to v. It is handy for the optional arguments of
// SetTemperature:
//
//	client.SetTemperature(ctx, homeID, zoneID, tado.Ptr(21.5), nil,
//	    tado.DeviceTypeHeating, tado.DurationModeTimer, tado.Ptr(30*time.Minute))
func Ptr[T any](v T) *T {
	return &v
}

// CelsiusToFahrenheit converts a temperature.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// FahrenheitToCelsius converts a temperature.
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

// truncatePreview returns a truncated string for error messages.
func truncatePreview(data []byte) string {
	s := string(data)
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
