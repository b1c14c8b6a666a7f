package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jjesus1982/condo-reservas/internal/config"
	"github.com/jjesus1982/condo-reservas/internal/domain"
	"github.com/jjesus1982/condo-reservas/internal/events"
	"github.com/jjesus1982/condo-reservas/internal/integrations/condoapi"
	"github.com/jjesus1982/condo-reservas/internal/service/reservations"
	"github.com/jjesus1982/condo-reservas/pkg/logger"
	"github.com/jjesus1982/condo-reservas/pkg/metrics"
)

// app holds the wired collaborators shared by all commands
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	metrics   *metrics.Metrics
	publisher events.Publisher
	service   *reservations.Service
	rc        domain.RequestContext
}

var run *app

var (
	flagConfig string
	flagTenant int64
	flagUser   int64
	flagUnit   int64
)

// RootCmd is the base command for the reservation client
var RootCmd = &cobra.Command{
	Use:   "reservas",
	Short: "Cliente de reservas de áreas comuns do condomínio",
	Long: `reservas drives the amenity reservation workflow of the condominium
backend: list spaces, inspect the month availability calendar, walk a
booking draft through time selection, details and confirmation, cancel
reservations and watch availability with Prometheus metrics.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.ServiceName)
	}

	client := condoapi.NewClient(
		cfg.API.BaseURL,
		time.Duration(cfg.API.Timeout)*time.Second,
		log,
		apiMetrics(m),
	)

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Events.Enabled {
		publisher, err = events.NewAMQPPublisher(cfg.Events.AmqpURL, cfg.Events.Queue)
		if err != nil {
			log.Close()
			return fmt.Errorf("failed to connect event publisher: %w", err)
		}
		log.Info("Event publisher connected (queue=%s)", cfg.Events.Queue)
	}

	rc := domain.RequestContext{
		TenantID: cfg.Context.TenantID,
		UserID:   cfg.Context.UserID,
		UnitID:   cfg.Context.UnitID,
	}
	if flagTenant > 0 {
		rc.TenantID = flagTenant
	}
	if flagUser > 0 {
		rc.UserID = flagUser
	}
	if flagUnit > 0 {
		rc.UnitID = flagUnit
	}

	run = &app{
		cfg:       cfg,
		log:       log,
		metrics:   m,
		publisher: publisher,
		service:   reservations.NewService(client, publisher, log),
		rc:        rc,
	}
	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	if run == nil {
		return
	}
	run.publisher.Close()
	run.log.Close()
}

// apiMetrics avoids handing the client a typed-nil interface value
func apiMetrics(m *metrics.Metrics) condoapi.MetricsRecorder {
	if m == nil {
		return nil
	}
	return m
}

func init() {
	RootCmd.PersistentFlags().StringVar(&flagConfig, "config", "config.toml", "configuration file")
	RootCmd.PersistentFlags().Int64Var(&flagTenant, "tenant", 0, "tenant (condominium) ID, overrides config")
	RootCmd.PersistentFlags().Int64Var(&flagUser, "user", 0, "user ID, overrides config")
	RootCmd.PersistentFlags().Int64Var(&flagUnit, "unit", 0, "unit ID, overrides config")
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "reservas: %v\n", err)
		os.Exit(1)
	}
}
