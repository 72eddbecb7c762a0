package main

import (
	"fmt"
	"strings"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/postgres"
)

const orgIDFlag = "org-id"

var reconcileFlags = map[string]cobraflags.Flag{
	orgIDFlag: &cobraflags.StringFlag{
		Name:  orgIDFlag,
		Value: "",
		Usage: "Organización a conciliar (requerido)",
	},
}

// errMismatch hace que el proceso termine con código distinto de cero.
var errMismatch = fmt.Errorf("el stock no coincide con los movimientos")

func newReconcileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Compara cada registro de stock con la suma de sus movimientos",
		RunE: func(cmd *cobra.Command, _ []string) error {
			orgID := strings.TrimSpace(reconcileFlags[orgIDFlag].GetString())
			if orgID == "" {
				return fmt.Errorf("--%s es requerido", orgIDFlag)
			}
			ctx := cmd.Context()
			e, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			log := e.log.Component("reconcile")
			tx := postgres.NewTxRunner(e.pool)
			overview := inventory.NewStockOverviewUseCase(
				inventory.NewLedger(tx, log),
				postgres.NewProductRepository(e.pool),
				postgres.NewWarehouseRepository(e.pool),
				postgres.NewStockRepository(e.pool),
				postgres.NewStockMovementRepository(e.pool),
				nil,
				log,
			)
			mismatches, err := overview.Reconcile(ctx, orgID)
			if err != nil {
				return err
			}
			printMismatches(cmd, mismatches)
			if len(mismatches) > 0 {
				return errMismatch
			}
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, reconcileFlags)
	return cmd
}

func printMismatches(cmd *cobra.Command, mismatches []dto.ReconcileMismatchDTO) {
	if len(mismatches) == 0 {
		cmd.Println("sin diferencias")
		return
	}
	cmd.Printf("%-36s  %-36s  %12s  %12s  %12s\n", "PRODUCTO", "BODEGA", "STOCK", "MOVIMIENTOS", "DIFERENCIA")
	for _, m := range mismatches {
		cmd.Printf("%-36s  %-36s  %12s  %12s  %12s\n",
			m.ProductID, m.WarehouseID, m.Quantity.String(), m.MovementSum.String(), m.Difference.String())
	}
}
