package cli

import (
	"fmt"

	"github.com/rustyeddy/candles/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newExportCmd(rc *RootConfig) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every candle series and the daily SMA/EMA as CSV files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir == "" {
				return fmt.Errorf("--out is required")
			}

			s, err := rc.open(cmd)
			if err != nil {
				return err
			}
			defer s.log.Sync()

			dir := report.Dir{
				Path:      outDir,
				SMAWindow: s.cfg.Indicators.SMAWindow,
				EMAWindow: s.cfg.Indicators.EMAWindow,
			}
			res, err := dir.WriteSnapshot(s.snap)
			if err != nil {
				return err
			}

			for _, name := range res.Skipped {
				s.log.Warn("not enough daily candles, skipped", zap.String("file", name))
			}
			s.log.Info("export complete",
				zap.String("dir", outDir),
				zap.String("snapshot", s.snap.ID()),
				zap.Strings("files", res.Files),
			)
			for _, name := range res.Files {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory")
	return cmd
}
