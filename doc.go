// Package tado provides a Go client library for the tado° smart heating REST API.
//
// The library covers account and home details, zone state, manual overlays
// (temperature set points and switching off), device settings and presence.
//
// # Authentication
//
// tado uses the OAuth2 device authorization flow. Start the flow, show the
// verification URL to the user, then wait for approval:
//
//	client, err := tado.NewClient(
//	    tado.WithTokenStore(tado.NewFileTokenStore("/path/to/token.json")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	auth, err := client.GetDeviceCodeAuthentication(ctx)
//	if err != nil || auth == nil {
//	    log.Fatal("device authorization failed")
//	}
//	fmt.Println("Open", auth.VerificationURIComplete)
//
//	token, err := client.WaitForDeviceCodeAuthenticationToComplete(ctx, auth)
//	if token == nil {
//	    log.Fatal("not approved in time")
//	}
//
// The access token is refreshed automatically before each call. Concurrent
// callers share a single refresh request. Every new token is saved through
// the TokenStore and can be loaded on the next start:
//
//	ok, err := client.RestoreToken(ctx)
//
// Ready-made stores backed by SQLite and Redis live in the store/sqlitestore
// and store/redisstore packages.
//
// # Basic Usage
//
// List the zones of a home:
//
//	me, err := client.GetMe(ctx)
//	zones, err := client.GetZones(ctx, me.Homes[0].ID)
//	for _, zone := range zones {
//	    fmt.Printf("Zone: %s (%d)\n", zone.Name, zone.ID)
//	}
//
// Set a temperature for 30 minutes:
//
//	summary, err := client.SetHeatingTemperatureCelsiusFor(ctx, homeID, zoneID, 21.5,
//	    tado.DurationModeTimer, tado.Ptr(30*time.Minute))
//
// Return a zone to its schedule:
//
//	ok, err := client.ResetOverlay(ctx, homeID, zoneID)
//
// Read methods return (nil, nil) and command methods return false when the API
// answers with a status other than the one the endpoint documents.
//
// # Error Handling
//
// Check for specific error types:
//
//	_, err := client.GetZoneState(ctx, homeID, zoneID)
//	switch {
//	case tado.IsNotAuthenticated(err):
//	    // No token installed yet
//	case tado.IsAuthenticationExpired(err):
//	    // Refresh failed, run the device flow again
//	case tado.IsThrottled(err):
//	    // Daily quota used up, see ThrottledError.RateLimit
//	    _ = tado.WaitForThrottle(ctx, err)
//	case tado.IsRequestFailed(err):
//	    // Network failure or unexpected response
//	}
//
// Invalid arguments such as an unknown DeviceType are rejected with an
// *ArgumentError before any request is sent.
//
// For more information about the API, see https://my.tado.com/
package tado
