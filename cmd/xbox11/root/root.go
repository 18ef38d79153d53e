package root

import (
	"github.com/spf13/cobra"

	"xbox11/cmd/xbox11/version"
	"xbox11/internal/app"
)

// NewRootCmd creates the root command. Without a subcommand it runs the shell.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xbox11",
		Short: "Console-style desktop shell with gamepad navigation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(version.NewCmd())

	return cmd
}

// Execute runs the root command with provided args.
func Execute(args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}
