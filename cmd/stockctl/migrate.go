package main

import (
	"fmt"
	"strconv"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/jhoicas/stockflow-api/internal/infrastructure/postgres"
)

const stepsFlag = "steps"

var migrateDownFlags = map[string]cobraflags.Flag{
	stepsFlag: &cobraflags.StringFlag{
		Name:  stepsFlag,
		Value: "1",
		Usage: "Cantidad de migraciones a revertir (0 = todas)",
	},
}

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate [up|down|version]",
		Short: "Administra el esquema de la base de datos",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Aplica las migraciones pendientes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := postgres.MigrateUp(cfg.DB.ConnectionString()); err != nil {
				return err
			}
			return printVersion(cmd, cfg.DB.ConnectionString())
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Revierte migraciones",
		RunE: func(cmd *cobra.Command, _ []string) error {
			steps, err := strconv.Atoi(migrateDownFlags[stepsFlag].GetString())
			if err != nil || steps < 0 {
				return fmt.Errorf("--%s debe ser un entero >= 0", stepsFlag)
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := postgres.MigrateDown(cfg.DB.ConnectionString(), steps); err != nil {
				return err
			}
			return printVersion(cmd, cfg.DB.ConnectionString())
		},
	}
	cobraflags.RegisterMap(downCmd, migrateDownFlags)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Muestra la versión aplicada del esquema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return printVersion(cmd, cfg.DB.ConnectionString())
		},
	}

	migrateCmd.AddCommand(upCmd, downCmd, versionCmd)
	return migrateCmd
}

func printVersion(cmd *cobra.Command, databaseURL string) error {
	v, dirty, err := postgres.MigrationVersion(databaseURL)
	if err != nil {
		return err
	}
	suffix := ""
	if dirty {
		suffix = " (dirty)"
	}
	cmd.Printf("versión del esquema: %d%s\n", v, suffix)
	return nil
}
