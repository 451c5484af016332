// @title						RemotCyberHelp API
// @version					1.0
// @description				Support tickets, consultations, government service requests and site content for RemotCyberHelp.
// @BasePath					/api
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
// @description				Type "Bearer" followed by a space and the JWT token.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"remotcyberhelp/internal/interfaces/cli/migrate"
	"remotcyberhelp/internal/interfaces/cli/reset"
	"remotcyberhelp/internal/interfaces/cli/seed"
	"remotcyberhelp/internal/interfaces/cli/server"
	"remotcyberhelp/internal/interfaces/cli/setupenv"
	"remotcyberhelp/internal/interfaces/cli/testconn"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "remotcyberhelp",
		Short: "RemotCyberHelp - website backend",
		Long:  `RemotCyberHelp serves the support, booking and content API and ships the migration, seed and setup tools that go with it.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
		reset.NewCommand(),
		testconn.NewCommand(),
		setupenv.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
