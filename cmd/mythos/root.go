package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mythoslabs/mythos/internal/config"
	"github.com/mythoslabs/mythos/internal/deeplink"
	"github.com/mythoslabs/mythos/internal/defaults"
	"github.com/mythoslabs/mythos/internal/logging"
)

// SetupRootCmd configures the root command with all subcommands and flags
func SetupRootCmd(c *config.Config) *cobra.Command {
	AppConfig = c

	rootCmd := &cobra.Command{
		Use:   "mythos [url...]",
		Short: "Mythos - desktop editor shell",
		Long: `Mythos hosts the editor web app in a native window and relays
editor messages and mythos:// deep links (OAuth callbacks) to the frontend.

Use --headless to run the relay without a window: stdin lines are forwarded
as editor messages and every published event is printed to stdout.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(AppConfig)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if headless {
				return RunHeadless(args)
			}
			return RunDesktop(args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: platform data directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all logging")

	rootCmd.Flags().BoolVar(&headless, "headless", false, "run without a native window")

	rootCmd.AddCommand(SchemeCmd())
	rootCmd.AddCommand(OpenCmd())
	rootCmd.AddCommand(VersionCmd())

	return rootCmd
}

// loadConfig overlays the user config file and applies logging settings.
func loadConfig(c *config.Config) error {
	if cfgFile != "" {
		if err := c.MergeFile(cfgFile, false); err != nil {
			return err
		}
	} else if path, err := defaults.ConfigPath(); err == nil {
		if err := c.MergeFile(path, true); err != nil {
			return err
		}
	}

	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if verbose {
		c.Log.Level = "debug"
	}
	if quiet {
		logging.Disable()
	} else {
		logging.Enable()
	}
	return c.ApplyLogging()
}

// newRegistrar returns the OS registrar pointing at the running binary.
func newRegistrar(c *config.Config) *deeplink.OSRegistrar {
	exe, err := os.Executable()
	if err != nil {
		logging.Warn("cannot resolve executable path", "error", err)
		exe = os.Args[0]
	}
	return deeplink.NewRegistrar(c.App.Name, exe)
}

// signalContext is cancelled on Ctrl+C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
