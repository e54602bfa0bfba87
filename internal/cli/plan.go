package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"monorel/internal/app"
)

type planOptions struct {
	Root      string
	Branch    string
	OutputDir string
	SyncDeps  bool
}

func newPlanCommand() *cobra.Command {
	opts := planOptions{}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Resolve pending changes into a bump plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlan(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Root, "root", ".", "Workspace root")
	cmd.Flags().StringVar(&opts.Branch, "branch", "", "Branch (defaults to the checked-out branch)")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Plan output directory")
	cmd.Flags().BoolVar(&opts.SyncDeps, "sync-deps", true, "Cascade bumps to dependent packages")

	_ = viper.BindPFlag("root", cmd.Flags().Lookup("root"))
	_ = viper.BindPFlag("branch", cmd.Flags().Lookup("branch"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("sync_deps", cmd.Flags().Lookup("sync-deps"))

	return cmd
}

func runPlan(ctx context.Context, cmd *cobra.Command, opts planOptions) error {
	service := newAppService()
	result, err := service.Plan(ctx, app.PlanRequest{
		Root:      resolveString(cmd, opts.Root, "root", "root"),
		Branch:    resolveString(cmd, opts.Branch, "branch", "branch"),
		OutputDir: resolveString(cmd, opts.OutputDir, "output", "output"),
		SyncDeps:  resolveBool(cmd, opts.SyncDeps, "sync_deps", "sync-deps"),
	})
	if err != nil {
		return err
	}
	if len(result.Plan.Entries) == 0 {
		fmt.Printf("no pending changes for %s\n", result.Branch)
		return nil
	}
	fmt.Printf("planned %d package(s) for %s -> %s\n", len(result.Plan.Entries), result.Branch, result.OutputPath)
	return nil
}
