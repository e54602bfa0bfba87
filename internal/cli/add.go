package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"monorel/internal/app"
)

type addOptions struct {
	Root      string
	Branch    string
	Package   string
	ReleaseAs string
	Deploy    []string
}

func newAddCommand() *cobra.Command {
	opts := addOptions{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a version intent for a package on the current branch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAdd(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Root, "root", ".", "Workspace root")
	cmd.Flags().StringVar(&opts.Branch, "branch", "", "Branch (defaults to the checked-out branch)")
	cmd.Flags().StringVar(&opts.Package, "package", "", "Package name")
	cmd.Flags().StringVar(&opts.ReleaseAs, "release-as", "patch", "Bump kind: major, minor, patch, snapshot, alpha, beta, rc")
	cmd.Flags().StringSliceVar(&opts.Deploy, "deploy", nil, "Deploy target label(s)")

	_ = viper.BindPFlag("root", cmd.Flags().Lookup("root"))
	_ = viper.BindPFlag("branch", cmd.Flags().Lookup("branch"))
	_ = viper.BindPFlag("deploy", cmd.Flags().Lookup("deploy"))

	return cmd
}

func runAdd(ctx context.Context, cmd *cobra.Command, opts addOptions) error {
	service := newAppService()
	result, err := service.AddChange(ctx, app.AddChangeRequest{
		Root:      resolveString(cmd, opts.Root, "root", "root"),
		Branch:    resolveString(cmd, opts.Branch, "branch", "branch"),
		Package:   opts.Package,
		ReleaseAs: opts.ReleaseAs,
		Deploy:    resolveStrings(cmd, opts.Deploy, "deploy", "deploy"),
	})
	if err != nil {
		return err
	}
	if result.Added {
		fmt.Printf("recorded %s (%s) on %s\n", opts.Package, opts.ReleaseAs, result.Branch)
	} else {
		fmt.Printf("already recorded on %s, ignored\n", result.Branch)
	}
	return nil
}
