package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"monorel/internal/app"
)

type removeOptions struct {
	Root   string
	Branch string
}

func newRemoveCommand() *cobra.Command {
	opts := removeOptions{}
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Clear all pending changes for a branch (after a plan was applied)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRemove(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Root, "root", ".", "Workspace root")
	cmd.Flags().StringVar(&opts.Branch, "branch", "", "Branch (defaults to the checked-out branch)")

	_ = viper.BindPFlag("root", cmd.Flags().Lookup("root"))
	_ = viper.BindPFlag("branch", cmd.Flags().Lookup("branch"))

	return cmd
}

func runRemove(ctx context.Context, cmd *cobra.Command, opts removeOptions) error {
	service := newAppService()
	result, err := service.RemoveChange(ctx, app.RemoveChangeRequest{
		Root:   resolveString(cmd, opts.Root, "root", "root"),
		Branch: resolveString(cmd, opts.Branch, "branch", "branch"),
	})
	if err != nil {
		return err
	}
	if result.Removed {
		fmt.Printf("cleared changes for %s\n", result.Branch)
	} else {
		fmt.Printf("no changes recorded for %s\n", result.Branch)
	}
	return nil
}
