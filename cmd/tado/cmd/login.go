package cmd

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	tado "github.com/tj-smith47/tado-go"
	"github.com/tj-smith47/tado-go/internal/config"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authorize this device with your tado° account",
		Long: `Start the device authorization flow.

Open the printed link, approve the request and the CLI stores the token.
If the account has several homes you are asked which one to control.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			auth, err := s.client.GetDeviceCodeAuthentication(ctx)
			if err != nil {
				return fmt.Errorf("failed to start login: %w", err)
			}
			if auth == nil {
				return fmt.Errorf("failed to start login, see the log for details")
			}

			link := auth.VerificationURIComplete
			if link == "" {
				link = auth.VerificationURI
			}
			fmt.Fprintf(out, "Open %s\n", link)
			fmt.Fprintf(out, "and confirm the code %s\n", auth.UserCode)
			fmt.Fprintln(out, "Waiting for approval...")

			token, err := s.client.WaitForDeviceCodeAuthenticationToComplete(ctx, auth)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			if token == nil {
				return fmt.Errorf("login was not approved in time")
			}

			me, err := s.client.GetMe(ctx)
			if err != nil {
				return fmt.Errorf("failed to get account: %w", err)
			}
			if me == nil {
				return fmt.Errorf("failed to get account")
			}

			home, err := chooseHome(me.Homes, s.cfg.HomeID)
			if err != nil {
				return err
			}
			if home != nil {
				s.cfg.HomeID = home.ID
				if err := config.SaveHomeID(s.configPath, home.ID); err != nil {
					return err
				}
			}

			fmt.Fprintln(out, "")
			fmt.Fprintf(out, "✓ Logged in as %s (%s)\n", me.Name, me.Email)
			if home != nil {
				fmt.Fprintf(out, "  Home: %s (%d)\n", home.Name, home.ID)
			}
			return nil
		},
	}
}

// isInteractive reports whether prompts can be shown.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// chooseHome keeps current if it is one of homes, asks when several homes
// exist and stdin is a terminal, and otherwise takes the first home.
func chooseHome(homes []tado.HomeRef, current int) (*tado.HomeRef, error) {
	if len(homes) == 0 {
		return nil, nil
	}
	for i := range homes {
		if homes[i].ID == current {
			return &homes[i], nil
		}
	}
	if len(homes) == 1 || !isInteractive() {
		return &homes[0], nil
	}

	options := make([]string, len(homes))
	for i, h := range homes {
		options[i] = fmt.Sprintf("%s (%d)", h.Name, h.ID)
	}

	var picked int
	prompt := &survey.Select{
		Message: "Which home should the CLI control?",
		Options: options,
	}
	if err := survey.AskOne(prompt, &picked); err != nil {
		return nil, err
	}
	return &homes[picked], nil
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.client.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("logout failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current account and its homes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			if !s.client.IsAuthenticated() {
				fmt.Fprintln(out, "Not logged in")
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, "Run 'tado login' to authenticate")
				return nil
			}

			me, err := s.client.GetMe(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get user: %w", err)
			}
			if me == nil {
				return fmt.Errorf("failed to get user")
			}

			fmt.Fprintf(out, "Logged in as %s (%s)\n", me.Name, me.Email)
			for _, h := range me.Homes {
				marker := " "
				if h.ID == s.cfg.HomeID {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %d  %s\n", marker, h.ID, h.Name)
			}
			return nil
		},
	}
}
