package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/shopreconciler/lib/myevents"
	"github.com/MarcGrol/shopreconciler/lib/myhttpclient"
	"github.com/MarcGrol/shopreconciler/lib/mypublisher"
	"github.com/MarcGrol/shopreconciler/lib/mypubsub"
	"github.com/MarcGrol/shopreconciler/lib/myqueue"
	"github.com/MarcGrol/shopreconciler/lib/mystore"
	"github.com/MarcGrol/shopreconciler/lib/mytime"
	"github.com/MarcGrol/shopreconciler/lib/myuuid"
	"github.com/MarcGrol/shopreconciler/services/checkoutevents"
	"github.com/MarcGrol/shopreconciler/services/checkoutpaystack"
	"github.com/MarcGrol/shopreconciler/services/orders"
	"github.com/MarcGrol/shopreconciler/services/orders/orderevents"
	"github.com/MarcGrol/shopreconciler/services/paystack"
	"github.com/MarcGrol/shopreconciler/services/warmup"
)

func main() {
	c := context.Background()

	router := mux.NewRouter()

	// Refuse to start rather than silently charging in the wrong mode
	cfg, err := paystack.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Error loading paystack config: %s", err)
	}

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}

	publisher, publisherCleanup := createPublisher(c, router, nower)
	defer publisherCleanup()

	orderStore, orderStoreCleanup, err := mystore.New[orders.Order](c)
	if err != nil {
		log.Fatalf("Error creating order store: %s", err)
	}
	defer orderStoreCleanup()

	// Mock transactions only live as long as this process
	transactionStore, _, err := mystore.NewInMemoryStore[paystack.Transaction](c)
	if err != nil {
		log.Fatalf("Error creating mock transaction store: %s", err)
	}

	payer, confirmer := paystack.NewPayer(cfg, transactionStore, myhttpclient.New(), nower)

	orderWriter := orders.NewWriter(nower, uuider, orderStore, publisher)
	orders.NewWebService(orderStore).RegisterEndpoints(c, router)
	warmup.NewService(orderStore).RegisterEndpoints(c, router)

	err = checkoutpaystack.NewWebService(cfg, uuider, payer, confirmer, orderWriter, publisher).RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering paystack endpoints: %s", err)
	}

	startWebServerBlocking(router)
}

func createPublisher(c context.Context, router *mux.Router, nower mytime.Nower) (mypublisher.Publisher, func()) {
	outboxStore, outboxStoreCleanup, err := mystore.New[myevents.EventEnvelope](c)
	if err != nil {
		log.Fatalf("Error creating outbox store: %s", err)
	}

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating queue: %s", err)
	}

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}

	publisher := mypublisher.New(c, outboxStore, pubsub, queue, nower)
	publisher.RegisterEndpoints(c, router)

	createTopics(c, publisher, checkoutevents.TopicName, orderevents.TopicName)

	return publisher, func() {
		pubsubCleanup()
		queueCleanup()
		outboxStoreCleanup()
	}
}

func createTopics(c context.Context, creator mypublisher.TopicCreator, topics ...string) {
	for _, topic := range topics {
		err := creator.CreateTopic(c, topic)
		if err != nil {
			log.Fatalf("Error creating topic %s: %s", topic, err)
		}
	}
}

func startWebServerBlocking(router *mux.Router) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
