package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/relabs-tech/lsm9ds1/internal/app"
	"github.com/relabs-tech/lsm9ds1/internal/config"
	"github.com/relabs-tech/lsm9ds1/internal/lsm9ds1"
	"github.com/relabs-tech/lsm9ds1/internal/sensors"
)

func loadConfig(cmd *cobra.Command, args []string) error {
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		log.SetLevel(log.DebugLevel)
	}
	path, _ := cmd.Flags().GetString("config")
	if err := config.InitGlobal(path); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if config.Get() == nil {
		return errors.New("configuration not loaded")
	}
	log.Debugf("loaded configuration from %s", path)
	return nil
}

// withMQTT runs fn once the configuration names a broker.
func withMQTT(fn func() error) error {
	if err := config.Get().RequireMQTT(); err != nil {
		return err
	}
	return fn()
}

func newProducerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "producer",
		Short: "sample the sensor and publish readings over MQTT",
		Long: `producer initializes the LSM9DS1 on the configured bus and publishes one
JSON sample on TOPIC_IMU every IMU_SAMPLE_INTERVAL milliseconds.
With --mock no hardware is touched and synthetic samples are published.`,
		Example: `  lsm9ds1 producer --config lsm9ds1_config.txt
  lsm9ds1 producer --mock`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mock, _ := cmd.Flags().GetBool("mock")
			return withMQTT(func() error { return app.RunIMUProducer(mock) })
		},
	}
	cmd.Flags().Bool("mock", false, "publish synthetic samples instead of reading the sensor")
	return cmd
}

func newConsoleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "console",
		Short: "print samples published by the producer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if mock, _ := cmd.Flags().GetBool("mock"); mock {
				return app.RunMockConsole()
			}
			return withMQTT(app.RunConsoleMQTT)
		},
	}
	cmd.Flags().Bool("mock", false, "print synthetic samples without a broker")
	return cmd
}

func newWebCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "web",
		Short: "serve the latest sample over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMQTT(app.RunWeb)
		},
	}
}

func newRegisterDebugCmd() *cobra.Command {
	return &cobra.Command{
		Use:        "register-debug",
		SuggestFor: []string{"regs", "debug"},
		Short:      "browser tool for raw register access",
		Long: `register-debug serves a WebSocket on REGISTER_DEBUG_PORT that reads and
writes LSM9DS1 registers, shows the init plan and applies live setting
changes. Raw writes require REGISTER_DEBUG_ALLOW_WRITES=true.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunRegisterDebug()
		},
	}
}

func newDisplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "display",
		Short: "show the latest sample on an SSD1306 OLED",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMQTT(app.RunDisplay)
		},
	}
}

func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "print the register writes performed at initialization",
		Long: `plan prints the ordered register writes that initialization performs
for the configured settings. No hardware is touched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dc := config.Get().DeviceConfig()
			plan := dc.AllRegisters()
			return writePlan(cmd.OutOrStdout(), plan[:])
		},
	}
}

// writePlan prints one register write per line.
func writePlan(w io.Writer, plan []lsm9ds1.RegisterValue) error {
	if _, err := fmt.Fprintf(w, "%-2s  %-12s  %-12s  %-4s  %-5s  %s\n", "#", "REGISTER", "COMPONENT", "ADDR", "VALUE", "BITS"); err != nil {
		return err
	}
	for i, rv := range plan {
		c, addr := rv.Register.Addr()
		_, err := fmt.Fprintf(w, "%2d  %-12s  %-12s  0x%02X  0x%02X   %08b\n", i+1, rv.Register, c, addr, rv.Value, rv.Value)
		if err != nil {
			return err
		}
	}
	return nil
}

func newReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read",
		Short: "initialize the sensor and print one sample as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := sensors.GetIMUManager()
			if err := mgr.Init(); err != nil {
				return err
			}
			defer mgr.Close()
			s, err := mgr.ReadIMU()
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "issue a software reset",
		Long: `reset programs the sensor and then sets SW_RESET in CTRL_REG8. The chip
must be initialized again before use, which any other command does.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := sensors.GetIMUManager()
			if err := mgr.Init(); err != nil {
				return err
			}
			defer mgr.Close()
			return mgr.Reset()
		},
	}
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "lsm9ds1",
		Short:             "LSM9DS1 9-axis IMU driver and tools",
		Long:              "Configure, sample and debug an LSM9DS1 over I2C or SPI.",
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
	}
	root.PersistentFlags().String("config", config.DefaultPath, "configuration file path")
	root.PersistentFlags().Bool("debug", false, "toggle debug logging")

	root.AddCommand(
		newProducerCmd(),
		newConsoleCmd(),
		newWebCmd(),
		newRegisterDebugCmd(),
		newDisplayCmd(),
		newPlanCmd(),
		newReadCmd(),
		newResetCmd(),
	)
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
