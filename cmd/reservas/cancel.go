package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jjesus1982/condo-reservas/internal/service/reservations"
)

const (
	msgReservationNotFound = "reserva não encontrada"
	msgCancelFailed        = "não foi possível cancelar a reserva"
)

func init() {
	cancelCmd := &cobra.Command{
		Use:     "cancel <reservation-id>",
		Aliases: []string{"cancelar"},
		Short:   "Cancel a reservation",
		Args:    cobra.ExactArgs(1),
		RunE:    cancel,
	}

	RootCmd.AddCommand(cancelCmd)
}

func cancel(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid reservation ID %q", args[0])
	}

	if err := run.service.Cancel(cmd.Context(), run.rc, id); err != nil {
		switch {
		case errors.Is(err, reservations.ErrNotFound):
			return errors.New(msgReservationNotFound)
		case errors.Is(err, reservations.ErrTransport):
			return errors.New(msgBackendOffline)
		default:
			return fmt.Errorf("%s: %w", msgCancelFailed, err)
		}
	}

	fmt.Printf("reserva %d cancelada\n", id)
	return nil
}
