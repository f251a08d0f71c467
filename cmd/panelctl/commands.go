/*
Copyright 2024 Tim St. Pierre
panelctl subcommands, one per panel command
*/
package main

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/tstpierre-tc/panel"
	"github.com/tstpierre-tc/panel/encoder"
	"github.com/tstpierre-tc/panel/internal/config"
)

type app struct {
	configPath string
	bus        string
	address    string
	logLevel   string
	dryRun     bool

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "panelctl",
		Short: "Send commands to the I2C character-display panel",
		Long: `Encode and send command frames to the two line character-display panel.

Bus and address come from the config file (default $XDG_CONFIG_HOME/panelctl/config.yaml)
and can be overridden with flags. Use --dry-run to print frames without touching hardware.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.loadConfig,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file path")
	flags.StringVar(&a.bus, "bus", "", "I2C bus name or number (default: first bus)")
	flags.StringVar(&a.address, "addr", "", "Panel I2C address, e.g. 0x20")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.BoolVar(&a.dryRun, "dry-run", false, "Print the encoded frame instead of sending it")

	root.AddCommand(
		a.displayCmd(),
		a.buttonCmd(),
		a.scrollCmd(),
		a.simpleCmd("lamp-test", "Light every segment and LED", encoder.LampTest{}),
		a.simpleCmd("reset", "Soft reset the panel", encoder.SoftReset{}),
		a.simpleCmd("bootloader", "Jump to the firmware bootloader", encoder.JumpToBootloader{}),
		a.simpleCmd("fw-version", "Show the firmware version on the panel", encoder.DisplayVersion{}),
		versionCmd(),
	)
	return root
}

func (a *app) loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("bus") {
		cfg.Bus = a.bus
	}
	if flags.Changed("addr") {
		addr, err := encoder.ParseByte("address", a.address)
		if err != nil {
			return err
		}
		cfg.Address = uint16(addr)
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	lvl, _ := cfg.Level()
	log.SetLevel(lvl)
	a.cfg = cfg
	return nil
}

func (a *app) displayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "display <line1> [line2]",
		Short: "Write two lines of text",
		Long: `Write two lines of text. Each line is padded with spaces or cut to 80 bytes.`,
		Example: `  panelctl display "Hello" "World"
  panelctl display "Top line only" --dry-run`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := encoder.RawDisplay{Line1: args[0]}
			if len(args) > 1 {
				c.Line2 = args[1]
			}
			return a.send(cmd.OutOrStdout(), c)
		},
	}
}

func (a *app) buttonCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "button <id> <state>",
		Short:   "Set the state of a button LED",
		Example: `  panelctl button 2 1`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := encoder.ParseByte("button id", args[0])
			if err != nil {
				return err
			}
			state, err := encoder.ParseByte("button state", args[1])
			if err != nil {
				return err
			}
			return a.send(cmd.OutOrStdout(), encoder.ButtonControl{ButtonID: id, State: state})
		},
	}
}

func (a *app) scrollCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "scroll <mode>",
		Short:   "Select the scroll mode",
		Example: `  panelctl scroll 0x02`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := encoder.ParseByte("scroll mode", args[0])
			if err != nil {
				return err
			}
			return a.send(cmd.OutOrStdout(), encoder.Scroll{Mode: mode})
		},
	}
}

func (a *app) simpleCmd(use, short string, c encoder.Command) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.send(cmd.OutOrStdout(), c)
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// no config needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "panelctl %s\n", version)
		},
	}
}

func (a *app) send(out io.Writer, c encoder.Command) error {
	if a.dryRun {
		fmt.Fprintln(out, encoder.Encode(c))
		return nil
	}

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize host drivers: %w", err)
	}
	bus, err := i2creg.Open(a.cfg.Bus)
	if err != nil {
		return fmt.Errorf("failed to open I2C bus %q: %w", a.cfg.Bus, err)
	}
	defer bus.Close()

	dev, err := panel.NewI2C(bus, a.cfg.PanelOpts())
	if err != nil {
		return err
	}
	log.Infof("Sending %T to %s", c, dev)
	return dev.Send(c)
}
