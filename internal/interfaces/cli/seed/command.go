package seed

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"remotcyberhelp/internal/domain/user"
	"remotcyberhelp/internal/infrastructure/auth"
	"remotcyberhelp/internal/infrastructure/mongodb"
	"remotcyberhelp/internal/infrastructure/repository"
	"remotcyberhelp/internal/interfaces/cli/bootstrap"
	"remotcyberhelp/internal/shared/services/markdown"
)

// AdminPasswordEnv overrides the admin password from the seed file.
const AdminPasswordEnv = "RCH_SEED_ADMIN_PASSWORD"

var (
	env  string
	file string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the admin account, government catalogue and sample posts",
		Long: `Seed the database from a YAML file. Running it again is safe: existing
admins and posts are skipped and catalogue entries are upserted by code.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&file, "file", "f", "configs/seed.yaml", "Seed file")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	data, err := Parse(f)
	if err != nil {
		return err
	}
	if pw := strings.TrimSpace(os.Getenv(AdminPasswordEnv)); pw != "" && data.Admin != nil {
		data.Admin.Password = pw
	}

	ctx := cmd.Context()
	rt, err := bootstrap.Open(ctx, bootstrap.ResolveEnv(env))
	if err != nil {
		return err
	}
	defer rt.Close(ctx)

	var users user.Repository = repository.NewUserRepository(rt.DB, rt.Logger)
	if rt.MongoDB != nil {
		users = mongodb.NewAccountRepository(rt.MongoDB)
	}

	seeder := NewSeeder(
		users,
		auth.NewBcryptPasswordHasher(rt.Config.Auth.BcryptCost),
		repository.NewGovernmentServiceRepository(rt.DB),
		repository.NewBlogRepository(rt.DB),
		markdown.NewRenderer(),
		rt.Logger,
	)

	report, err := seeder.Run(ctx, data)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "admin created: %t\ngovernment services: %d\nposts created: %d (skipped %d)\n",
		report.AdminCreated, report.Services, report.Posts, report.SkippedPosts)
	return nil
}
