package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jjesus1982/condo-reservas/internal/domain"
)

func init() {
	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"minhas"},
		Short:   "List your reservations",
		RunE:    list,
	}

	RootCmd.AddCommand(listCmd)
}

func list(cmd *cobra.Command, args []string) error {
	items, err := run.service.MyReservations(cmd.Context(), run.rc)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Println("nenhuma reserva encontrada")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATA\tHORÁRIO\tEVENTO\tCONVIDADOS\tSTATUS")
	for _, r := range items {
		fmt.Fprintf(w, "%d\t%s\t%s-%s\t%s\t%d\t%s\n",
			r.ID, r.Date, r.StartTime, r.EndTime, r.EventName,
			r.ExpectedGuests, domain.StatusLabel(r.Status))
	}
	return w.Flush()
}
