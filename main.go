package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"github.com/mediakasir/apotekpos/lib/myevents"
	"github.com/mediakasir/apotekpos/lib/myhttpclient"
	"github.com/mediakasir/apotekpos/lib/mylog"
	"github.com/mediakasir/apotekpos/lib/mypublisher"
	"github.com/mediakasir/apotekpos/lib/mypubsub"
	"github.com/mediakasir/apotekpos/lib/myqueue"
	"github.com/mediakasir/apotekpos/lib/mystore"
	"github.com/mediakasir/apotekpos/lib/mytime"
	"github.com/mediakasir/apotekpos/lib/myuuid"
	"github.com/mediakasir/apotekpos/services/backend"
	"github.com/mediakasir/apotekpos/services/dashboard"
	"github.com/mediakasir/apotekpos/services/fakebackend"
	"github.com/mediakasir/apotekpos/services/history"
	"github.com/mediakasir/apotekpos/services/pos"
	"github.com/mediakasir/apotekpos/services/pos/posevents"
	"github.com/mediakasir/apotekpos/services/warmup"
)

func main() {
	c := context.Background()

	router := mux.NewRouter()

	cleanup := createServices(c, router)
	defer cleanup()

	startWebServerBlocking(router)
}

func createServices(c context.Context, router *mux.Router) func() {
	backendURL := getenvOrDefault("POS_API_BASE_URL", "http://localhost:8001/api")
	if os.Getenv("POS_FAKE_BACKEND") == "true" {
		backendURL = startFakeBackend(c, router)
	}
	httpTimeout := getDurationOrDefault("POS_HTTP_TIMEOUT", 15*time.Second)
	checkoutTimeout := getDurationOrDefault("POS_CHECKOUT_TIMEOUT", 30*time.Second)

	sender := myhttpclient.New(myhttpclient.Credentials{
		Token:    os.Getenv("POS_API_TOKEN"),
		DeviceID: os.Getenv("POS_DEVICE_ID"),
	}, httpTimeout)
	backendClient := backend.NewClient(backendURL, sender)

	outboxStore, outboxStoreCleanup, err := mystore.New[myevents.EventEnvelope](c)
	if err != nil {
		log.Fatalf("Error creating outbox store: %s", err)
	}

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating queue: %s", err)
	}

	publisher := mypublisher.New(outboxStore, pubsub, queue, mytime.RealNower{}, mylog.New("publisher"))
	publisher.RegisterEndpoints(c, router)

	warmupService := warmup.NewService(publisher, posevents.TopicName)
	warmupService.RegisterEndpoints(c, router)

	posService := pos.NewWebService(backendClient, backendClient, myuuid.RealUUIDer{}, publisher, checkoutTimeout)
	posService.RegisterEndpoints(c, router)

	historyService := history.NewWebService(backendClient)
	historyService.RegisterEndpoints(c, router)

	dashboardService := dashboard.NewWebService(backendClient)
	dashboardService.RegisterEndpoints(c, router)

	return func() {
		queueCleanup()
		pubsubCleanup()
		outboxStoreCleanup()
	}
}

// startFakeBackend serves a seeded in-memory pharmacy api next to the till api and returns its base url.
func startFakeBackend(c context.Context, router *mux.Router) string {
	branchID := getenvOrDefault("POS_FAKE_BRANCH_ID", "branch-1")

	fake := fakebackend.New(mytime.RealNower{}, myuuid.RealUUIDer{})
	err := fake.Seed(c, branchID)
	if err != nil {
		log.Fatalf("Error seeding fake backend: %s", err)
	}
	fakebackend.NewWebService(fake, os.Getenv("POS_API_TOKEN")).RegisterEndpoints(c, router, "/fakeapi")

	log.Printf("Using fake backend with seeded branch %s", branchID)

	return fmt.Sprintf("http://localhost:%s/fakeapi", getenvOrDefault("PORT", "8080"))
}

func getenvOrDefault(name string, defaultValue string) string {
	value := os.Getenv(name)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDurationOrDefault(name string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(name)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Invalid duration '%s' in %s: %s", value, name, err)
	}
	return d
}

func startWebServerBlocking(router *mux.Router) {
	port := getenvOrDefault("PORT", "8080")

	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
