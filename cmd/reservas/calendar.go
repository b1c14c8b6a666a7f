package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jjesus1982/condo-reservas/internal/calendar"
)

var (
	calSpace int64
	calMonth int
	calYear  int
)

func init() {
	calendarCmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal", "calendario"},
		Short:   "Show the month availability calendar for a space",
		RunE:    showCalendar,
	}

	calendarCmd.Flags().Int64Var(&calSpace, "space", 0, "space (area) ID")
	calendarCmd.Flags().IntVar(&calMonth, "month", 0, "month 1-12, default current")
	calendarCmd.Flags().IntVar(&calYear, "year", 0, "four-digit year, default current")
	calendarCmd.MarkFlagRequired("space")

	RootCmd.AddCommand(calendarCmd)
}

func showCalendar(cmd *cobra.Command, args []string) error {
	now := time.Now()
	m := calendar.CurrentMonth(now)
	if calMonth != 0 {
		if calMonth < 1 || calMonth > 12 {
			return fmt.Errorf("month must be between 1 and 12")
		}
		m.Month = time.Month(calMonth)
	}
	if calYear != 0 {
		m.Year = calYear
	}

	idx, err := run.service.LoadAvailability(cmd.Context(), run.rc, calSpace, m)
	if err != nil {
		return err
	}

	grid := calendar.BuildMonthGrid(m.Year, m.Month, idx, now)

	fmt.Printf("%s %d (espaço %d)\n", m.Month, m.Year, calSpace)
	fmt.Println("Dom Seg Ter Qua Qui Sex Sáb")
	col := 0
	for _, cell := range grid {
		switch {
		case cell.Empty:
			fmt.Print("    ")
		case len(cell.Reservations) > 0:
			fmt.Printf("%2dX ", cell.DayNumber)
		case cell.IsToday:
			fmt.Printf("%2d* ", cell.DayNumber)
		case cell.IsPast:
			fmt.Printf("%2d. ", cell.DayNumber)
		default:
			fmt.Printf("%2d  ", cell.DayNumber)
		}
		col++
		if col%7 == 0 {
			fmt.Println()
		}
	}
	if col%7 != 0 {
		fmt.Println()
	}

	fmt.Println("\nX ocupado  * hoje  . passado")
	for _, cell := range grid {
		for _, r := range cell.Reservations {
			fmt.Printf("  %s  %s-%s  %s (reserva %d)\n",
				cell.ISODate, r.StartTime, r.EndTime, r.EventName, r.ID)
		}
	}
	return nil
}
