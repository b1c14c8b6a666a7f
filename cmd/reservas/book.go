package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jjesus1982/condo-reservas/internal/calendar"
	"github.com/jjesus1982/condo-reservas/internal/domain"
	"github.com/jjesus1982/condo-reservas/internal/draft"
	"github.com/jjesus1982/condo-reservas/internal/service/reservations"
	"github.com/jjesus1982/condo-reservas/pkg/types"
)

const (
	msgDateOccupied    = "a data escolhida já possui uma reserva ativa"
	msgDateInPast      = "a data escolhida já passou"
	msgSlotConflict    = "o horário não está mais disponível, escolha outra data"
	msgSpaceNotFound   = "espaço não encontrado"
	msgBackendOffline  = "não foi possível contatar o servidor de reservas"
	msgBookingRejected = "reserva recusada pelo servidor"
)

var (
	bookSpace  int64
	bookDate   string
	bookStart  string
	bookEnd    string
	bookType   string
	bookName   string
	bookGuests int
	bookYes    bool
)

func init() {
	bookCmd := &cobra.Command{
		Use:     "book",
		Aliases: []string{"reservar"},
		Short:   "Book an amenity space",
		Long: `Book walks the reservation draft through its steps: the time
interval is validated first, then the event details (the event type is
required, guest count is checked against the space capacity as a
warning), and a final summary is shown before anything is sent.`,
		RunE: book,
	}

	bookCmd.Flags().Int64Var(&bookSpace, "space", 0, "space (area) ID")
	bookCmd.Flags().StringVar(&bookDate, "date", "", "reservation date YYYY-MM-DD")
	bookCmd.Flags().StringVar(&bookStart, "start", "", "start time HH:MM")
	bookCmd.Flags().StringVar(&bookEnd, "end", "", "end time HH:MM")
	bookCmd.Flags().StringVar(&bookType, "type", "", "event type (e.g. Aniversário)")
	bookCmd.Flags().StringVar(&bookName, "name", "", "event name (optional)")
	bookCmd.Flags().IntVar(&bookGuests, "guests", 0, "expected guest count (optional)")
	bookCmd.Flags().BoolVarP(&bookYes, "yes", "y", false, "confirm without prompting")
	bookCmd.MarkFlagRequired("space")
	bookCmd.MarkFlagRequired("date")
	bookCmd.MarkFlagRequired("start")
	bookCmd.MarkFlagRequired("end")
	bookCmd.MarkFlagRequired("type")

	RootCmd.AddCommand(bookCmd)
}

func book(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	space, err := findSpace(cmd, bookSpace)
	if err != nil {
		return err
	}

	month, err := calendar.OfDate(bookDate)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", bookDate)
	}

	// Surface existing intervals so an occupied day is never offered on
	// the happy path. The backend remains the authority on conflicts.
	idx, err := run.service.LoadAvailability(ctx, run.rc, space.ID, month)
	if err != nil {
		return err
	}
	if !idx.IsDateBookable(bookDate, time.Now()) {
		if bookDate < time.Now().Format(domain.DateFormat) {
			return errors.New(msgDateInPast)
		}
		fmt.Println(msgDateOccupied + ":")
		for _, r := range idx.ActiveOn(bookDate) {
			fmt.Printf("  %s-%s  %s\n", r.StartTime, r.EndTime, r.EventName)
		}
		return errors.New(msgDateOccupied)
	}

	start, err := types.NewTimeStringFromString(bookStart)
	if err != nil {
		return fmt.Errorf("invalid start time %q, expected HH:MM", bookStart)
	}
	end, err := types.NewTimeStringFromString(bookEnd)
	if err != nil {
		return fmt.Errorf("invalid end time %q, expected HH:MM", bookEnd)
	}

	machine := draft.NewMachine(space, bookDate)

	if err := machine.SelectTime(start, end); err != nil {
		return err
	}
	if err := machine.EnterDetails(bookType, bookName, bookGuests); err != nil {
		return err
	}
	for _, warning := range machine.Warnings() {
		fmt.Printf("aviso: %s\n", warning)
	}

	printSummary(space, machine.Draft())

	if !bookYes && !promptConfirm() {
		machine.Abort()
		fmt.Println("reserva descartada")
		return nil
	}

	created, err := machine.Confirm(ctx, run.rc, run.service)
	if err != nil {
		// The machine stays in Confirming and the draft is preserved;
		// the user can rerun with a corrected slot.
		switch {
		case errors.Is(err, reservations.ErrConflict):
			return errors.New(msgSlotConflict)
		case errors.Is(err, reservations.ErrTransport):
			return errors.New(msgBackendOffline)
		case errors.Is(err, reservations.ErrValidation):
			return fmt.Errorf("%s: %v", msgBookingRejected, err)
		default:
			return err
		}
	}

	fmt.Printf("reserva %d criada: %s %s-%s em %s\n",
		created.ID, created.Date, created.StartTime, created.EndTime, space.Name)
	return nil
}

func findSpace(cmd *cobra.Command, spaceID int64) (domain.Space, error) {
	spaces, err := run.service.Spaces(cmd.Context(), run.rc)
	if err != nil {
		return domain.Space{}, err
	}
	for _, s := range spaces {
		if s.ID == spaceID {
			return s, nil
		}
	}
	return domain.Space{}, errors.New(msgSpaceNotFound)
}

func printSummary(space domain.Space, d draft.Draft) {
	fmt.Println("--- resumo da reserva ---")
	fmt.Printf("espaço:     %s (capacidade %d)\n", space.Name, space.Capacity)
	fmt.Printf("data:       %s\n", d.Date)
	fmt.Printf("horário:    %s-%s\n", d.StartTime, d.EndTime)
	fmt.Printf("evento:     %s\n", d.EventLabel())
	if d.Guests > 0 {
		fmt.Printf("convidados: %d\n", d.Guests)
	}
}

func promptConfirm() bool {
	fmt.Print("confirmar reserva? [s/N] ")
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "s" || answer == "sim"
}
