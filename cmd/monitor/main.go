package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lumiere/pkg/client"
	"lumiere/pkg/config"
	"lumiere/pkg/logger"
	"lumiere/pkg/model"
	"lumiere/pkg/poller"
	"lumiere/pkg/quota"
)

// horizonDays is how far ahead the monitor reports occupancy.
const horizonDays = 14

func main() {
	log := logger.New(logger.Config{
		Level:   logger.INFO,
		Format:  logger.FormatJSON,
		Service: "monitor",
	})

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	interval := config.DefaultPollInterval
	if raw := os.Getenv(config.EnvPollInterval); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatal("Invalid poll interval", "value", raw, "error", err)
		}
		interval = parsed
	}

	clientsClient := client.NewClientsClient(baseURL)
	if err := clientsClient.WaitForHealthy(30 * time.Second); err != nil {
		log.Fatal("API did not become healthy", "base_url", baseURL, "error", err)
	}

	if password := os.Getenv(config.EnvAppPassword); password != "" {
		if err := clientsClient.Login(password); err != nil {
			log.Fatal("Failed to log in", "error", err)
		}
		log.Info("Logged in to API", "base_url", baseURL)
	}

	log.Info("Starting occupancy monitor", "base_url", baseURL, "interval", interval)

	snapshotPoller := poller.New(interval, func(ctx context.Context) ([]*model.Client, error) {
		return clientsClient.Snapshot()
	}, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	previous := map[string]int{}
	unsubscribe := snapshotPoller.Subscribe(ctx, func(clients []*model.Client) {
		current := occupancyHorizon(clients, time.Now())
		for day, count := range current {
			if count != previous[day] {
				log.Info("Occupancy changed",
					"day", day,
					"count", count,
					"previous", previous[day],
				)
			}
		}
		previous = current
	})

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	sig := <-shutdown
	log.Info("Shutdown signal received", "signal", sig)
	unsubscribe()
}

// occupancyHorizon counts occupants per day from today over the horizon.
func occupancyHorizon(clients []*model.Client, now time.Time) map[string]int {
	counts := make(map[string]int, horizonDays)
	for i := 0; i < horizonDays; i++ {
		day := now.AddDate(0, 0, i).Format(quota.DayLayout)
		counts[day] = len(quota.Occupancy(clients, day, ""))
	}
	return counts
}
