package reset

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"remotcyberhelp/internal/infrastructure/migration"
	"remotcyberhelp/internal/interfaces/cli/bootstrap"
)

var (
	env   string
	force bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop all tables and re-run migrations",
		Long:  `Roll every migration back and apply them again. All data is lost.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&force, "force", false, "Allow reset in production")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	rt, err := bootstrap.Open(ctx, bootstrap.ResolveEnv(env))
	if err != nil {
		return err
	}
	defer rt.Close(context.Background())

	if rt.Config.Server.IsProduction() && !force {
		return fmt.Errorf("refusing to reset a production database without --force")
	}

	m, err := migration.NewManager(rt.DB, rt.Logger)
	if err != nil {
		return err
	}

	rt.Logger.Warnw("resetting database", "environment", rt.Config.Server.Environment)
	if err := m.Reset(ctx); err != nil {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	applied, err := m.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to re-apply migrations: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "database reset, %d migrations applied\n", applied)
	return nil
}
