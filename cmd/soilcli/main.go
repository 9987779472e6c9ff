package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"soilai/config"
)

// app is the state shared by every subcommand once the root has loaded config.
type app struct {
	in      io.Reader
	out     io.Writer
	verbose bool
	cfg     config.AppConfig
	logger  *zap.Logger
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: in, out: out, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "soilcli",
		Short:         "Soil advisory from the command line",
		Long:          "soilcli analyzes a soil reading with the same pipeline as the HTTP service\nand manages the crop profile store.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			// Keep the terminal readable: only warnings unless asked.
			level := "warn"
			if a.verbose {
				level = "debug"
			}
			logger, err := config.NewLogger(level)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging on stderr")

	root.AddCommand(newAnalyzeCmd(a), newCropsCmd(a))
	return root
}

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
