// token emite un JWT para los endpoints protegidos del dashboard (POST /api/dashboard/refresh).
//
// Uso: go run ./cmd/token --sub ops@uzum --role operator --exp 60
// Lee JWT_SECRET, JWT_ISSUER y JWT_EXPIRATION_MINUTES de la misma configuración que la API.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/awb-weight-dashboard/pkg/config"
	"github.com/jhoicas/awb-weight-dashboard/pkg/jwt"
)

var (
	subject string
	role    string
	expMin  int
)

var rootCmd = &cobra.Command{
	Use:          "token",
	Short:        "Emite un JWT de operador para el dashboard AWB",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runToken,
}

func init() {
	rootCmd.Flags().StringVar(&subject, "sub", "operator", "subject del token")
	rootCmd.Flags().StringVar(&role, "role", "operator", "rol: operator | viewer")
	rootCmd.Flags().IntVar(&expMin, "exp", 0, "expiración en minutos (0 = JWT_EXPIRATION_MINUTES)")
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	if cfg.JWT.Secret == "" {
		return errors.New("JWT_SECRET no está definido: /refresh no requiere token")
	}

	minutes := cfg.JWT.Expiration
	if expMin > 0 {
		minutes = expMin
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, subject, role, cfg.JWT.Issuer, minutes)
	if err != nil {
		return fmt.Errorf("generar token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
