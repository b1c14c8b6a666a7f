package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/jjesus1982/condo-reservas/internal/calendar"
	"github.com/jjesus1982/condo-reservas/internal/poller"
)

var (
	watchSpace int64
	watchMonth int
	watchYear  int
)

func init() {
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch availability for a space and serve metrics",
		Long: `Watch keeps the month availability for a space fresh with a
periodic background refresh and serves the current snapshot plus
Prometheus metrics over HTTP. Overlapping refreshes are skipped; a
failed refresh leaves the last snapshot in place until the next tick.`,
		RunE: watch,
	}

	watchCmd.Flags().Int64Var(&watchSpace, "space", 0, "space (area) ID")
	watchCmd.Flags().IntVar(&watchMonth, "month", 0, "month 1-12, default current")
	watchCmd.Flags().IntVar(&watchYear, "year", 0, "four-digit year, default current")
	watchCmd.MarkFlagRequired("space")

	RootCmd.AddCommand(watchCmd)
}

func watch(cmd *cobra.Command, args []string) error {
	log := run.log
	cfg := run.cfg

	m := calendar.CurrentMonth(time.Now())
	if watchMonth != 0 {
		if watchMonth < 1 || watchMonth > 12 {
			return fmt.Errorf("month must be between 1 and 12")
		}
		m.Month = time.Month(watchMonth)
	}
	if watchYear != 0 {
		m.Year = watchYear
	}

	ctx, stop := context.WithCancel(cmd.Context())
	defer stop()

	if _, err := run.service.LoadAvailability(ctx, run.rc, watchSpace, m); err != nil {
		return err
	}
	log.Info("watch: initial availability loaded for space=%d %04d-%02d", watchSpace, m.Year, int(m.Month))

	refresh := func(rctx context.Context) error {
		return run.service.Refresh(rctx, run.rc)
	}
	p := poller.New(
		time.Duration(cfg.Watch.PollInterval)*time.Second,
		refresh,
		log,
		pollerMetrics(),
	)
	go p.Run(ctx)

	r := mux.NewRouter()
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("watch: metrics exposed at %s", cfg.Metrics.Path)
	}
	r.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/availability", handleAvailability).Methods(http.MethodGet)

	srv := &http.Server{
		Addr:         cfg.Watch.ListenAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("watch: listening on %s", cfg.Watch.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("watch: server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("watch: shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("watch: forced shutdown: %v", err)
	}

	log.Info("watch: stopped")
	return nil
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleAvailability serves the current snapshot as read-only JSON
func handleAvailability(w http.ResponseWriter, r *http.Request) {
	view, ok := run.service.Snapshot()
	if !ok {
		http.Error(w, `{"detail":"no availability loaded"}`, http.StatusServiceUnavailable)
		return
	}

	type occupiedDay struct {
		Date         string `json:"date"`
		Reservations int    `json:"reservations"`
	}
	resp := struct {
		SpaceID  int64         `json:"area_id"`
		Year     int           `json:"year"`
		Month    int           `json:"month"`
		LoadedAt time.Time     `json:"loaded_at"`
		Occupied []occupiedDay `json:"dias_ocupados"`
	}{
		SpaceID:  view.SpaceID,
		Year:     view.Month.Year,
		Month:    int(view.Month.Month),
		LoadedAt: view.LoadedAt,
	}
	for date, day := range view.Index {
		resp.Occupied = append(resp.Occupied, occupiedDay{Date: date, Reservations: len(day)})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// pollerMetrics avoids a typed-nil interface when metrics are disabled
func pollerMetrics() poller.MetricsRecorder {
	if run.metrics == nil {
		return nil
	}
	return run.metrics
}
