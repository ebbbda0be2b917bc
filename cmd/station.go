package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/chargeplan/infra/logger"
	"github.com/kilianp07/chargeplan/infra/station"
)

var stationCfg station.SimConfig

var stationCmd = &cobra.Command{
	Use:   "station",
	Short: "Run the simulated charging station",
	RunE:  runStation,
}

func init() {
	stationCmd.Flags().StringVar(&stationCfg.Addr, "addr", "127.0.0.1:5000", "listen address")
	stationCmd.Flags().Float64Var(&stationCfg.SecondsPerHour, "seconds-per-hour", 4, "wall seconds per simulated hour")
	stationCmd.Flags().Float64Var(&stationCfg.BatteryCapacityKWh, "capacity", 40, "battery capacity in kWh")
	stationCmd.Flags().Float64Var(&stationCfg.ChargePowerKW, "charge-power", 7.4, "charger power in kW")
	rootCmd.AddCommand(stationCmd)
}

func runStation(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.New("station")
	sim := station.NewSim(stationCfg)
	srv := &http.Server{Addr: stationCfg.Addr, Handler: sim.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	log.Infof("simulated station listening on %s", stationCfg.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
