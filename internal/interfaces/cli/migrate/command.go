package migrate

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	ticketUsecases "remotcyberhelp/internal/application/ticket/usecases"
	"remotcyberhelp/internal/domain/ticket"
	"remotcyberhelp/internal/infrastructure/migration"
	"remotcyberhelp/internal/infrastructure/mongodb"
	"remotcyberhelp/internal/infrastructure/repository"
	"remotcyberhelp/internal/interfaces/cli/bootstrap"
)

var (
	env    string
	dryRun bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Apply, roll back and inspect schema migrations, and rewrite legacy ticket data.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	normalize := &cobra.Command{
		Use:   "normalize-categories",
		Short: "Rewrite legacy ticket category spellings",
		Long:  `Map stored ticket categories such as "Technical Support" onto their canonical values.`,
		RunE:  runNormalize,
	}
	normalize.Flags().BoolVar(&dryRun, "dry-run", false, "Report the rewrites without applying them")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Run all pending migrations",
			RunE:  runUp,
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE:  runDown,
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show migration status",
			RunE:  runStatus,
		},
		normalize,
	)

	return cmd
}

func withManager(ctx context.Context, fn func(rt *bootstrap.Runtime, m *migration.Manager) error) error {
	rt, err := bootstrap.Open(ctx, bootstrap.ResolveEnv(env))
	if err != nil {
		return err
	}
	defer rt.Close(context.Background())

	m, err := migration.NewManager(rt.DB, rt.Logger)
	if err != nil {
		return err
	}
	return fn(rt, m)
}

func runUp(cmd *cobra.Command, args []string) error {
	return withManager(cmd.Context(), func(rt *bootstrap.Runtime, m *migration.Manager) error {
		rt.Logger.Infow("running up migrations", "environment", rt.Config.Server.Environment)
		applied, err := m.Up(cmd.Context())
		if err != nil {
			rt.Logger.Errorw("migration failed", "error", err)
			return err
		}
		rt.Logger.Infow("migrations completed successfully", "applied", applied)
		return nil
	})
}

func runDown(cmd *cobra.Command, args []string) error {
	return withManager(cmd.Context(), func(rt *bootstrap.Runtime, m *migration.Manager) error {
		if err := m.Down(cmd.Context()); err != nil {
			rt.Logger.Errorw("rollback failed", "error", err)
			return err
		}
		rt.Logger.Infow("rolled back one migration")
		return nil
	})
}

func runStatus(cmd *cobra.Command, args []string) error {
	return withManager(cmd.Context(), func(rt *bootstrap.Runtime, m *migration.Manager) error {
		statuses, err := m.Status(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "VERSION\tAPPLIED\tAPPLIED AT")
		for _, s := range statuses {
			at := "-"
			if s.Applied {
				at = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(w, "%d\t%t\t%s\n", s.Version, s.Applied, at)
		}
		return w.Flush()
	})
}

func runNormalize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	rt, err := bootstrap.Open(ctx, bootstrap.ResolveEnv(env))
	if err != nil {
		return err
	}
	defer rt.Close(context.Background())

	var repo ticket.Repository
	if rt.MongoDB != nil {
		repo = mongodb.NewTicketRepository(rt.MongoDB)
	} else {
		repo = repository.NewTicketRepository(rt.DB)
	}

	result, err := ticketUsecases.NewNormalizeCategoriesUseCase(repo, rt.Logger).Execute(ctx, dryRun)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, rw := range result.Rewritten {
		fmt.Fprintf(out, "%-30q -> %-25s %d rows\n", rw.From, rw.To, rw.Rows)
	}
	for _, unknown := range result.Unknown {
		fmt.Fprintf(out, "%-30q    no canonical mapping, left as is\n", unknown)
	}
	if dryRun {
		fmt.Fprintln(out, "dry run: nothing was written")
	}
	return nil
}
