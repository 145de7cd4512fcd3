// create_admin registra el primer administrador del panel directamente contra la base.
//
// Uso: go run ./cmd/create_admin --email admin@ejemplo.com --password 'secreto123'
// Lee la conexión a PostgreSQL de las mismas variables de entorno que la API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Catalogo-api/internal/application/auth"
	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Catalogo-api/pkg/config"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var email, password string
	var migrate bool

	cmd := &cobra.Command{
		Use:           "create_admin",
		Short:         "Registra un administrador del catálogo",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(password) < 8 {
				return errors.New("password debe tener al menos 8 caracteres")
			}
			return createAdmin(cmd.Context(), email, password, migrate)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email del administrador")
	cmd.Flags().StringVar(&password, "password", "", "password (mínimo 8 caracteres)")
	cmd.Flags().BoolVar(&migrate, "migrate", true, "aplicar migraciones antes de crear el usuario")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func createAdmin(ctx context.Context, email, password string, migrate bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("create_admin")

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	if migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			return err
		}
	}

	uc := auth.NewAuthUseCase(postgres.NewAdminRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, 10*time.Second)

	if _, err := uc.Register(ctx, dto.RegisterRequest{Email: email, Password: password}); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			log.Warn().Str("email", email).Msg("el administrador ya existe")
			return nil
		}
		return err
	}
	log.Info().Str("email", email).Msg("administrador creado")
	return nil
}
