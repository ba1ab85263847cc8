package commands

import (
	"context"
	"fmt"

	"github.com/deppfellow/yamdb/internal/database"
	"github.com/deppfellow/yamdb/internal/model"
	"github.com/deppfellow/yamdb/internal/repository"
	"github.com/spf13/cobra"
)

var (
	adminUsername string
	adminEmail    string
)

var createAdminCmd = &cobra.Command{
	Use:   "createadmin",
	Short: "Create an admin account or promote an existing one",
	Long: `Create an admin account. If the username is taken the account is
promoted to admin and its email is left unchanged.

The admin receives an access token the usual way: POST /api/v1/auth/signup/
with the same username and email, then exchange the emailed code.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreateAdmin(cmd.Context())
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminUsername, "username", "", "Admin username")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Admin email")
	_ = createAdminCmd.MarkFlagRequired("username")
	_ = createAdminCmd.MarkFlagRequired("email")
}

func runCreateAdmin(ctx context.Context) error {
	payload := &model.SignUpPayload{Username: adminUsername, Email: adminEmail}
	if err := payload.Validate(); err != nil {
		return fmt.Errorf("invalid admin account: %w", err)
	}

	cfg, log, loggerService, err := bootstrap()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	db, err := database.New(cfg, log, loggerService)
	if err != nil {
		return err
	}
	defer db.Close()

	user, err := repository.NewUserRepository(db.Pool).UpsertAdmin(ctx, adminUsername, adminEmail)
	if err != nil {
		return err
	}

	log.Info().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Msg("admin account ready")
	return nil
}
