package main

import (
	stdContext "context"
	"flag"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/clearlend/loanclear/lcreg"
	"github.com/clearlend/loanclear/metrics/server"
	"github.com/clearlend/loanclear/models"
	"github.com/clearlend/loanclear/rest"
	"github.com/clearlend/loanclear/utils"
	"github.com/clearlend/loanclear/utils/clock"
	"github.com/clearlend/loanclear/utils/env"
	"github.com/clearlend/loanclear/utils/initializer"
	"github.com/clearlend/loanclear/utils/log"
	"github.com/clearlend/loanclear/utils/signalman"
	"github.com/shopspring/decimal"
)

func shutdown() error {
	timeout := time.Second
	ctx, cancel := stdContext.WithTimeout(stdContext.Background(), timeout)
	defer cancel()
	return rest.Shutdown(ctx)
}

func init() {
	// set the clock
	clock.Set()

	rand.Seed(clock.Now().UTC().UnixNano())

	// register env defaults
	initializer.Initialize()

	flag.Parse()

	signalman.RegisterFunc("rest_shutdown", shutdown)
}

func main() {

	go func() {
		if err := server.Serve(); err != nil && err != http.ErrServerClosed {
			log.Error("stopped metrics server", "error", err)
		}
	}()

	if utils.Dev() {
		seedFixtures()
	}

	log.Info("loanclear is live",
		"mode", env.GetVar("LOANCLEAR_MODE"),
		"clock", clock.Now(),
		"instance", models.InstanceID,
	)

	signalman.Start()

	if err := rest.Start(env.GetVar("LOANCLEAR_PORT"), lcreg.Services); err != nil {
		if !strings.Contains(err.Error(), "Server closed") {
			log.Fatal("rest server unexpectedly exited", "error", err)
		}
	}

	log.Info("waiting for graceful shutdown")
	signalman.Wait()
}

// seedFixtures installs the development ownership fixtures so trades
// can be exercised without an operator seeding first.
func seedFixtures() {
	srv := lcreg.Services.Ownership()

	fixtures := map[string][]models.OwnerShare{
		"loan-001": {
			{Name: "Bank A", Share: decimal.New(40, 0)},
			{Name: "Bank B", Share: decimal.New(60, 0)},
		},
		"LN-2024-8392": {
			{Name: "Pacific Rim Traders", Share: decimal.New(45, 0)},
			{Name: "Sovereign Wealth I", Share: decimal.New(30, 0)},
			{Name: "Maritime Ventures", Share: decimal.New(25, 0)},
		},
	}

	for facilityID, owners := range fixtures {
		if _, err := srv.Seed(facilityID, owners); err != nil {
			log.Fatal("failed to seed dev fixtures", "facility", facilityID, "error", err)
		}
	}
}
