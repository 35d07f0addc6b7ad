package cmd

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	tado "github.com/tj-smith47/tado-go"
)

func newZonesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zones",
		Short: "List the zones of the home",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			zones, err := s.client.GetZones(ctx, homeID)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tDEVICES")
			for _, z := range zones {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", z.ID, z.Name, z.Type, len(z.Devices))
			}
			return w.Flush()
		},
	}
}

func newStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state <zone>",
		Short: "Show the current state of a zone",
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

			state, err := s.client.GetZoneState(ctx, homeID, zoneID)
			if err != nil {
				return err
			}
			if state == nil {
				return fmt.Errorf("zone %d not found", zoneID)
			}

			printZoneState(cmd.OutOrStdout(), state)
			return nil
		},
	}
}

func printZoneState(out io.Writer, state *tado.ZoneState) {
	fmt.Fprintf(out, "Mode:     %s\n", state.TadoMode)
	fmt.Fprintf(out, "Setting:  %s\n", formatSetting(state.Setting))

	if sensors := state.SensorDataPoints; sensors != nil {
		if t := sensors.InsideTemperature; t != nil {
			fmt.Fprintf(out, "Inside:   %.1f°C\n", t.Celsius)
		}
		if h := sensors.Humidity; h != nil {
			fmt.Fprintf(out, "Humidity: %.1f%%\n", h.Percentage)
		}
	}
	if activity := state.ActivityDataPoints; activity != nil && activity.HeatingPower != nil {
		fmt.Fprintf(out, "Heating:  %.0f%%\n", activity.HeatingPower.Percentage)
	}

	if state.Overlay == nil {
		fmt.Fprintln(out, "Overlay:  none (following schedule)")
		return
	}
	term := state.Overlay.Termination
	switch {
	case term.RemainingTimeInSeconds != nil:
		fmt.Fprintf(out, "Overlay:  %s, %ds left\n", term.Type, *term.RemainingTimeInSeconds)
	case term.ProjectedExpiry != nil:
		fmt.Fprintf(out, "Overlay:  %s, until %s\n", term.Type, term.ProjectedExpiry.Local().Format("15:04"))
	default:
		fmt.Fprintf(out, "Overlay:  %s\n", term.Type)
	}
}

func formatSetting(setting tado.Setting) string {
	if setting.Power != tado.PowerOn {
		return fmt.Sprintf("%s %s", setting.Type, setting.Power)
	}
	if t := setting.Temperature; t != nil && t.Celsius != nil {
		return fmt.Sprintf("%s ON %.1f°C", setting.Type, *t.Celsius)
	}
	return fmt.Sprintf("%s ON", setting.Type)
}

func parseZone(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid zone %q, expected a zone id", arg)
	}
	return id, nil
}
