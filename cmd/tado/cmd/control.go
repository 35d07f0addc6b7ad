package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	tado "github.com/tj-smith47/tado-go"
)

// hotWaterZone is the zone id tado uses for domestic hot water.
const hotWaterZone = 0

func zoneDeviceType(zoneID int) tado.DeviceType {
	if zoneID == hotWaterZone {
		return tado.DeviceTypeHotWater
	}
	return tado.DeviceTypeHeating
}

// overlayDuration maps the --for and --until-schedule flags to a termination.
func overlayDuration(cmd *cobra.Command) (tado.DurationMode, *time.Duration, error) {
	forDuration, _ := cmd.Flags().GetDuration("for")
	untilSchedule, _ := cmd.Flags().GetBool("until-schedule")

	switch {
	case forDuration > 0 && untilSchedule:
		return tado.DurationModeUnknown, nil, fmt.Errorf("--for and --until-schedule are mutually exclusive")
	case forDuration < 0:
		return tado.DurationModeUnknown, nil, fmt.Errorf("--for must be positive")
	case forDuration > 0:
		return tado.DurationModeTimer, &forDuration, nil
	case untilSchedule:
		return tado.DurationModeUntilNextTimedEvent, nil, nil
	default:
		return tado.DurationModeUntilNextManualChange, nil, nil
	}
}

func addDurationFlags(cmd *cobra.Command) {
	cmd.Flags().Duration("for", 0, "keep the setting for this long (e.g. 30m)")
	cmd.Flags().Bool("until-schedule", false, "keep the setting until the next schedule block")
}

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <zone> <celsius>",
		Short: "Set a zone temperature",
		Long: `Set a manual temperature on a zone. Zone 0 is hot water.

Examples:
  tado set 1 21.5                    # until changed
  tado set 1 19 --for 45m            # for 45 minutes
  tado set 1 23 --until-schedule     # until the next schedule block`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			zoneID, err := parseZone(args[0])
			if err != nil {
				return err
			}
			celsius, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid temperature %q", args[1])
			}
			mode, timer, err := overlayDuration(cmd)
			if err != nil {
				return err
			}

			s, err := authedSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			homeID, err := s.homeID(ctx)
			if err != nil {
				return err
			}

			summary, err := s.client.SetTemperature(ctx, homeID, zoneID, &celsius, nil, zoneDeviceType(zoneID), mode, timer)
			if err != nil {
				return err
			}
			if summary == nil {
				return fmt.Errorf("the setting was rejected by tado")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Zone %d: %s (%s)\n", zoneID, formatSetting(summary.Setting), mode)
			return nil
		},
	}
	addDurationFlags(cmd)
	return cmd
}

func newOffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "off <zone>",
		Short: "Switch a zone off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			zoneID, err := parseZone(args[0])
			if err != nil {
				return err
			}
			mode, timer, err := overlayDuration(cmd)
			if err != nil {
				return err
			}

			s, err := authedSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			homeID, err := s.homeID(ctx)
			if err != nil {
				return err
			}

			var summary *tado.ZoneSummary
			if zoneID == hotWaterZone {
				summary, err = s.client.SwitchHotWaterOff(ctx, homeID, mode, timer)
			} else {
				summary, err = s.client.SwitchHeatingOffFor(ctx, homeID, zoneID, mode, timer)
			}
			if err != nil {
				return err
			}
			if summary == nil {
				return fmt.Errorf("the setting was rejected by tado")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Zone %d switched off (%s)\n", zoneID, mode)
			return nil
		},
	}
	addDurationFlags(cmd)
	return cmd
}

func newResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume <zone>",
		Short: "Remove the manual setting and follow the schedule again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			zoneID, err := parseZone(args[0])
			if err != nil {
				return err
			}

			s, err := authedSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			homeID, err := s.homeID(ctx)
			if err != nil {
				return err
			}

			ok, err := s.client.ResetOverlay(ctx, homeID, zoneID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("zone %d has no manual setting to remove", zoneID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Zone %d follows its schedule\n", zoneID)
			return nil
		},
	}
}

func newPresenceCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "presence home|away",
		Short:     "Lock the home in HOME or AWAY mode",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"home", "away"},
		RunE: func(cmd *cobra.Command, args []string) error {
			presence, err := tado.ParseHomePresence(strings.ToUpper(args[0]))
			if err != nil {
				return err
			}

			s, err := authedSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			homeID, err := s.homeID(ctx)
			if err != nil {
				return err
			}

			ok, err := s.client.SetHomePresence(ctx, homeID, presence)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("tado did not accept the presence change")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Home set to %s\n", presence)
			return nil
		},
	}
}

func newIdentifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "identify <serial>",
		Short: "Make a device flash its display",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := authedSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ok, err := s.client.SayHi(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("device %s did not respond", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s says hi\n", args[0])
			return nil
		},
	}
}
