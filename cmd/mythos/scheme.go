package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mythoslabs/mythos/internal/deeplink"
)

// SchemeCmd groups deep link scheme commands.
func SchemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scheme",
		Short: "Manage the deep link URL scheme",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "register",
		Short: "Register the URL scheme with the OS and report the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Always strict here: the point of the command is to see the error.
			listener, err := deeplink.NewListener(AppConfig.DeepLink.Scheme, deeplink.PolicyStrict)
			if err != nil {
				return err
			}
			if err := listener.Register(newRegistrar(AppConfig)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s:// for %s\n", listener.Scheme(), AppConfig.App.Name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "extract [args...]",
		Short: "Print the arguments that would be forwarded as deep links",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, u := range deeplink.URLsFromArgs(AppConfig.DeepLink.Scheme, args) {
				fmt.Fprintln(cmd.OutOrStdout(), u)
			}
			return nil
		},
	})

	return cmd
}
