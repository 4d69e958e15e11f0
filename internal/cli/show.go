package cli

import (
	"fmt"
	"io"

	"github.com/rustyeddy/candles/market"
	"github.com/rustyeddy/candles/report"
	"github.com/spf13/cobra"
)

func newShowCmd(rc *RootConfig) *cobra.Command {
	var (
		granularity string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the candle series for one granularity",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := market.ParseGranularity(granularity)
			if err != nil {
				return err
			}
			if err := checkFormat(format); err != nil {
				return err
			}

			s, err := rc.open(cmd)
			if err != nil {
				return err
			}
			defer s.log.Sync()

			series, err := s.snap.Series(g)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == "org" {
				_, err = io.WriteString(out, report.FormatCandlesOrg(series))
				return err
			}
			return report.WriteCandlesCSV(out, series)
		},
	}

	cmd.Flags().StringVarP(&granularity, "granularity", "g", market.OneDay.String(), "1min|5min|1hour|1day")
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Output format: csv|org")
	return cmd
}

func checkFormat(format string) error {
	if format != "csv" && format != "org" {
		return fmt.Errorf("unknown format %q (want csv or org)", format)
	}
	return nil
}
