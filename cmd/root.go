package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fp",
		Short:         "Family points ledger (fp): track, verify and transfer points",
		Long:          "fp keeps an integer point balance for each family member with an append-only history of every change. Adds and subtracts need a parent's verification; transfers between members are self-authorizing.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newPointsCmd(app),
		newChatCmd(app),
	)

	return rootCmd
}
