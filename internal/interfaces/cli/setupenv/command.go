// Package setupenv writes a starter .env file for local development.
package setupenv

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	path        string
	force       bool
	environment string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup-env",
		Short: "Write a .env template with a fresh JWT secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := Write(path, environment, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".env", "Destination file")
	cmd.Flags().StringVarP(&environment, "env", "e", "development", "Value for RCH_SERVER_ENVIRONMENT")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}

// Template returns the variables written to a new .env file.
func Template(environment, jwtSecret string) map[string]string {
	return map[string]string{
		"RCH_SERVER_ENVIRONMENT":     environment,
		"RCH_SERVER_PORT":            "5000",
		"RCH_SERVER_BASE_URL":        "http://localhost:3000",
		"RCH_DATABASE_DRIVER":        "postgres",
		"RCH_DATABASE_HOST":          "localhost",
		"RCH_DATABASE_PORT":          "5432",
		"RCH_DATABASE_USERNAME":      "postgres",
		"RCH_DATABASE_PASSWORD":      "postgres",
		"RCH_DATABASE_DATABASE":      "remotcyberhelp",
		"RCH_STORAGE_BACKEND":        "sql",
		"RCH_MONGO_URI":              "mongodb://localhost:27017",
		"RCH_REDIS_HOST":             "",
		"RCH_AUTH_JWT_SECRET":        jwtSecret,
		"RCH_EMAIL_PROVIDER":         "noop",
		"RCH_EMAIL_SENDGRID_API_KEY": "",
		"RCH_RECAPTCHA_ENABLED":      "false",
		"RCH_RECAPTCHA_SECRET_KEY":   "",
		"RCH_EVENTS_NATS_URL":        "",
		"RCH_SEED_ADMIN_PASSWORD":    "",
	}
}

// Write creates the .env file at path. An existing file is only replaced with force.
func Write(path, environment string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	secret, err := randomSecret(32)
	if err != nil {
		return err
	}
	if err := godotenv.Write(Template(environment, secret), path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return os.Chmod(path, 0o600)
}

func randomSecret(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
