package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"monorel/internal/app"
)

type statusOptions struct {
	Root   string
	Branch string
}

func newStatusCommand() *cobra.Command {
	opts := statusOptions{}
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show pending changes in the ledger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Root, "root", ".", "Workspace root")
	cmd.Flags().StringVar(&opts.Branch, "branch", "", "Only show this branch")

	_ = viper.BindPFlag("root", cmd.Flags().Lookup("root"))

	return cmd
}

func runStatus(ctx context.Context, cmd *cobra.Command, opts statusOptions) error {
	service := newAppService()
	result, err := service.Status(ctx, app.StatusRequest{
		Root:   resolveString(cmd, opts.Root, "root", "root"),
		Branch: opts.Branch,
	})
	if err != nil {
		return err
	}
	if len(result.Changes) == 0 {
		fmt.Println("no pending changes")
		return nil
	}
	if result.Message != "" {
		fmt.Printf("release message: %s\n", result.Message)
	}
	branches := make([]string, 0, len(result.Changes))
	for branch := range result.Changes {
		branches = append(branches, branch)
	}
	sort.Strings(branches)
	for _, branch := range branches {
		set := result.Changes[branch]
		fmt.Printf("%s:\n", branch)
		for _, change := range set.Pkgs {
			fmt.Printf("  %s -> %s\n", change.Package, change.ReleaseAs)
		}
		if len(set.Deploy) > 0 {
			fmt.Printf("  deploy: %s\n", strings.Join(set.Deploy, ", "))
		}
	}
	return nil
}
