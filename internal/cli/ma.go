package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/rustyeddy/candles/indicators"
	"github.com/rustyeddy/candles/report"
	"github.com/spf13/cobra"
)

// newMACmd builds the sma and ema subcommands. Both read the daily series
// and take the default window from config.
func newMACmd(rc *RootConfig, kind, short string) *cobra.Command {
	var (
		window int
		format string
	)

	cmd := &cobra.Command{
		Use:   kind,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			s, err := rc.open(cmd)
			if err != nil {
				return err
			}
			defer s.log.Sync()

			if !cmd.Flags().Changed("window") {
				window = s.cfg.Indicators.SMAWindow
				if kind == "ema" {
					window = s.cfg.Indicators.EMAWindow
				}
			}

			var points []indicators.Point
			if kind == "ema" {
				points, err = s.snap.EMA(window)
			} else {
				points, err = s.snap.SMA(window)
			}
			if err != nil {
				return fmt.Errorf("%s(%d): %w", kind, window, err)
			}

			name := fmt.Sprintf("%s(%d)", strings.ToUpper(kind), window)
			out := cmd.OutOrStdout()
			if format == "org" {
				col := report.Column{Name: name, Points: points}
				_, err = io.WriteString(out, report.FormatCandlesOrg(s.snap.Daily(), col))
				return err
			}
			return report.WriteIndicatorCSV(out, name, points)
		},
	}

	cmd.Flags().IntVarP(&window, "window", "n", 0, "Window in daily candles (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Output format: csv|org")
	return cmd
}
