package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"monorel/internal/app"
)

type initOptions struct {
	Root    string
	Message string
}

func newInitCommand() *cobra.Command {
	opts := initOptions{}
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the change ledger (or load the existing one)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Root, "root", ".", "Workspace root")
	cmd.Flags().StringVar(&opts.Message, "message", "", "Release commit message stored in the ledger")

	_ = viper.BindPFlag("root", cmd.Flags().Lookup("root"))
	_ = viper.BindPFlag("message", cmd.Flags().Lookup("message"))

	return cmd
}

func runInit(ctx context.Context, cmd *cobra.Command, opts initOptions) error {
	service := newAppService()
	result, err := service.InitLedger(ctx, app.InitRequest{
		Root:    resolveString(cmd, opts.Root, "root", "root"),
		Message: resolveString(cmd, opts.Message, "message", "message"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("ledger ready: %d branch(es), message %q\n", result.Branches, result.Message)
	return nil
}
