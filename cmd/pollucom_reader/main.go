// Reads a Sensus PolluCom E heat meter through an IR head and prints the readings.
package main

import (
	"errors"
	"fmt"

	"github.com/NotCoffee418/pollucom_reader/pkg/config"
	"github.com/NotCoffee418/pollucom_reader/pkg/handshake"
	"github.com/NotCoffee418/pollucom_reader/pkg/pathing"
	"github.com/NotCoffee418/pollucom_reader/pkg/port_reader"
	"github.com/NotCoffee418/pollucom_reader/pkg/types"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type cliFlags struct {
	verbose    bool
	device     string
	configPath string
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if err := newRootCmd(logrus.StandardLogger()).Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func newRootCmd(log *logrus.Logger) *cobra.Command {
	flags := &cliFlags{}
	cmd := &cobra.Command{
		Use:           "pollucom_reader",
		Short:         "Sensus PolluCom E IR reader",
		Long:          "pollucom_reader wakes a Sensus PolluCom E heat meter through an optical IR head, requests its M-Bus data and prints the decoded readings.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, flags, log)
			if err != nil {
				return err
			}
			if cfg.Verbose {
				log.SetLevel(logrus.DebugLevel)
			}
			return run(cmd, cfg, log)
		},
	}

	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "trace every handshake step and dump the raw reply")
	cmd.Flags().StringVarP(&flags.device, "device", "d", "", "serial device of the IR head (default from config, /dev/ttyUSB0)")
	cmd.Flags().StringVar(&flags.configPath, "config", pathing.GetReaderConfigPath(), "path to reader.toml")
	return cmd
}

// Flags win over the config file.
func resolveConfig(cmd *cobra.Command, flags *cliFlags, log logrus.FieldLogger) (*config.ReaderConfig, error) {
	cfg, err := config.LoadReaderConfig(flags.configPath, log)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("device") {
		cfg.SerialDevice = flags.device
	}
	if flags.verbose {
		cfg.Verbose = true
	}
	return cfg, cfg.Validate()
}

func run(cmd *cobra.Command, cfg *config.ReaderConfig, log logrus.FieldLogger) error {
	out := cmd.OutOrStdout()
	reader := port_reader.NewMeterReader(cfg, log, out)

	reading, err := reader.ReadOnce()
	if errors.Is(err, handshake.ErrNoData) {
		log.WithError(err).Debug("Session ended without data")
		_, err = fmt.Fprintln(out, types.NoDataMessage)
		return err
	}
	if err != nil {
		return err
	}
	return reading.Format(out)
}
