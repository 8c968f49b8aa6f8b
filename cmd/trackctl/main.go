// trackctl is the scriptable command-line mode: single-shot tracking,
// watchlist membership changes and batch refresh, with JSON output.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"shipment-tracker/internal/core/config"
	"shipment-tracker/internal/core/httpclient"
	"shipment-tracker/internal/core/logger"
	tracking "shipment-tracker/internal/features/tracking/domain"

	trackingadapter "shipment-tracker/internal/features/tracking/adapters"
	"shipment-tracker/internal/features/tracking/ports"
	trackingservice "shipment-tracker/internal/features/tracking/service"
	watchlistadapters "shipment-tracker/internal/features/watchlist/adapters"
	watchlistservice "shipment-tracker/internal/features/watchlist/service"

	"github.com/spf13/pflag"
)

func main() {
	add := pflag.String("add", "", "Add a tracking number to the watchlist")
	del := pflag.String("delete", "", "Remove a tracking number from the watchlist")
	courierName := pflag.String("courier", string(tracking.CourierBlueDart), `Courier name: "Blue Dart", "DTDC" or "Delhivery"`)
	jsonOut := pflag.Bool("json", false, "Emit JSON")
	force := pflag.Bool("force", false, "Refresh delivered entries too")
	list := pflag.Bool("list", false, "Print the watchlist")
	pflag.Parse()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Keep stdout clean for JSON; only errors reach the terminal.
	if err := logger.Init(cfg.Environment, "error"); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	courier, err := tracking.ParseCourier(*courierName)
	if err != nil {
		fail(err)
	}

	client := httpclient.NewClient(time.Duration(cfg.HTTPTimeoutSeconds) * time.Second)
	providers := []ports.TrackingProvider{
		trackingadapter.NewBlueDartAdapter(cfg.Couriers.BlueDartURL, client),
		trackingadapter.NewDTDCAdapter(cfg.Couriers.DTDCURL, client),
		trackingadapter.NewDelhiveryAdapter(cfg.Couriers.DelhiveryURL, client),
	}
	trackingSvc := trackingservice.NewTrackingService(providers, nil)

	repo := watchlistadapters.NewFileRepository(cfg.Watchlist.Path)
	watchlistSvc := watchlistservice.NewWatchlistService(repo, trackingSvc)

	switch {
	case *add != "":
		if _, err := watchlistSvc.Add(*add, courier); err != nil {
			fail(err)
		}
		fmt.Printf("Added %s (%s)\n", *add, courier)

	case *del != "":
		if err := watchlistSvc.Remove(*del); err != nil {
			fail(err)
		}
		fmt.Printf("Deleted %s\n", *del)

	case *list:
		entries, err := watchlistSvc.List()
		if err != nil {
			fail(err)
		}
		printJSON(entries)

	case pflag.NArg() > 0:
		// Single tracking number: fetch and print the record. A failed
		// fetch is still a record; its error field says what went wrong.
		record, err := trackingSvc.Track(context.Background(), pflag.Arg(0), courier)
		if err != nil {
			fail(err)
		}
		printJSON(record)

	case *jsonOut || *force:
		results, err := watchlistSvc.Refresh(context.Background(), *force)
		if err != nil {
			fail(err)
		}
		if *jsonOut {
			printJSON(results)
		}

	default:
		pflag.Usage()
		os.Exit(1)
	}
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fail(err)
	}
	fmt.Println(string(data))
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
