package main

import (
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/jhoicas/stockflow-api/internal/application/auth"
	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/postgres"
)

const (
	orgNameFlag  = "org-name"
	emailFlag    = "email"
	passwordFlag = "password"
	nameFlag     = "name"
)

var createAdminFlags = map[string]cobraflags.Flag{
	orgNameFlag: &cobraflags.StringFlag{
		Name:  orgNameFlag,
		Value: "",
		Usage: "Nombre de la organización (requerido)",
	},
	emailFlag: &cobraflags.StringFlag{
		Name:  emailFlag,
		Value: "",
		Usage: "Email del administrador (requerido)",
	},
	passwordFlag: &cobraflags.StringFlag{
		Name:  passwordFlag,
		Value: "",
		Usage: "Contraseña del administrador, mínimo 8 caracteres (requerido)",
	},
	nameFlag: &cobraflags.StringFlag{
		Name:  nameFlag,
		Value: "",
		Usage: "Nombre visible del administrador",
	},
}

func newCreateAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Crea una organización con su administrador y bodega por defecto",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			e, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			authUC := auth.NewAuthUseCase(
				postgres.NewUserRepository(e.pool),
				postgres.NewTxRunner(e.pool),
				auth.JWTConfig{Secret: e.cfg.JWT.Secret, ExpMinutes: e.cfg.JWT.Expiration, Issuer: e.cfg.JWT.Issuer},
				e.log.Component("auth"),
			)
			out, err := authUC.SignUp(ctx, dto.SignUpRequest{
				OrgName:  createAdminFlags[orgNameFlag].GetString(),
				Email:    createAdminFlags[emailFlag].GetString(),
				Password: createAdminFlags[passwordFlag].GetString(),
				Name:     createAdminFlags[nameFlag].GetString(),
			})
			if err != nil {
				return err
			}
			cmd.Printf("organización: %s\nadministrador: %s (%s)\nbodega por defecto: %s\n",
				out.OrgID, out.User.ID, out.User.Email, out.DefaultWarehouseID)
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, createAdminFlags)
	return cmd
}
