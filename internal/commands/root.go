package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bethropolis/dir-tree/internal/app"
	"github.com/bethropolis/dir-tree/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the dir-tree command with its flags bound to a fresh
// config.
func NewRootCmd() *cobra.Command {
	cfg := config.New()

	cmd := &cobra.Command{
		Use:   "dir-tree [directory]",
		Short: "dir-tree - print a directory as a tree",
		Long: `dir-tree renders a directory as a text tree. Entries matched by the
root's .gitignore are left out, as are node_modules, venv and .git.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if cmd.Flags().Changed("dir") {
					return errors.New("directory given both as argument and --dir")
				}
				cfg.RootDir = args[0]
			}
			return run(cmd.Context(), cfg)
		},
	}
	cfg.BindFlags(cmd.Flags())

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dir-tree v%s\n", cfg.Version)
		},
	})

	return cmd
}

// Execute runs the root command until completion or interrupt
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

func run(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.Finalize()

	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	return application.Run(ctx)
}
