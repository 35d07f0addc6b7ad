package tado_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	tado "github.com/tj-smith47/tado-go"
)

func ExampleNewClient() {
	client, err := tado.NewClient(
		tado.WithTimeout(10*time.Second),
		tado.WithTokenStore(tado.NewFileTokenStore(os.ExpandEnv("$HOME/.config/tado/token.json"))),
	)
	if err != nil {
		log.Fatal(err)
	}

	if ok, _ := client.RestoreToken(context.Background()); !ok {
		fmt.Println("login required")
	}
}

func ExampleClient_GetDeviceCodeAuthentication() {
	ctx := context.Background()
	client, _ := tado.NewClient()

	auth, err := client.GetDeviceCodeAuthentication(ctx)
	if err != nil || auth == nil {
		log.Fatal("could not start device authorization")
	}
	fmt.Println("Open", auth.VerificationURIComplete, "to approve this device")

	token, err := client.WaitForDeviceCodeAuthenticationToComplete(ctx, auth)
	if err != nil || token == nil {
		log.Fatal("device was not approved")
	}
	fmt.Println("Logged in, token expires at", token.ExpiresAt)
}

func ExampleClient_SetHeatingTemperatureCelsiusFor() {
	ctx := context.Background()
	client, _ := tado.NewClient()

	summary, err := client.SetHeatingTemperatureCelsiusFor(ctx, 123, 1, 21.5,
		tado.DurationModeTimer, tado.Ptr(45*time.Minute))
	switch {
	case tado.IsThrottled(err):
		var throttled *tado.ThrottledError
		errors.As(err, &throttled)
		fmt.Println("throttled, retry after", throttled.RetryAfter())
	case tado.IsAuthenticationExpired(err):
		fmt.Println("please log in again")
	case err != nil:
		log.Fatal(err)
	case summary == nil:
		fmt.Println("the overlay was not accepted")
	default:
		fmt.Println("heating set to", *summary.Setting.Temperature.Celsius)
	}
}

func ExampleWithTokenListener() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	client, _ := tado.NewClient(
		tado.WithLogger(logger),
		tado.WithTokenListener(func(ctx context.Context, token *tado.Token) {
			logger.InfoContext(ctx, "token refreshed", "expires_at", token.ExpiresAt)
		}),
	)
	_ = client
}
