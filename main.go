package main

import (
	"log"
	"net/http"

	_ "github.com/joho/godotenv/autoload"

	"topup/config"
	"topup/handlers"
	"topup/services"
	"topup/utils"
)

// Initialize the application
func init() {
	utils.Setup()

	if err := config.Load(); err != nil {
		log.Fatal(err)
	}

	if config.GetWebhookSecret() == "" {
		log.Fatal("Missing wallet webhook secret. Set TOPUP_WEBHOOK_SECRET or webhookSecret in the config file.")
	}
}

func main() {
	client := services.NewWalletClient(config.Config.APIBaseURL, config.Config.APIKey)
	hub := services.NewHub()
	store := services.NewSessionStore()

	controller := services.NewController(services.ControllerOptions{
		Store:        store,
		API:          client,
		Push:         hub,
		Balance:      client,
		MinAmountINR: config.Config.MinTopupINR,
		SessionTTL:   config.SessionTTL(),
		PollInterval: config.PollInterval(),
		TickInterval: config.TickInterval,
	})

	topup := handlers.NewTopupHandlers(controller)
	webhook := handlers.NewWebhookHandlers(hub)

	mux := http.NewServeMux()

	// Wallet backend callback: public, verified by HMAC signature rather
	// than session auth
	mux.HandleFunc("/wallet-webhook", webhook.WalletWebhookHandler)

	// Top-up session surface
	mux.HandleFunc("/topup/start", topup.StartTopupHandler)
	mux.HandleFunc("/topup/qr", topup.QRImageHandler)
	mux.HandleFunc("/topup/utr", topup.SubmitUTRHandler)
	mux.HandleFunc("/topup/cancel", topup.CancelTopupHandler)
	mux.HandleFunc("/topup/dismiss", topup.DismissTopupHandler)
	mux.HandleFunc("/topup/status", topup.TopupStatusHandler)

	// Real-time session updates for the UI
	mux.HandleFunc("/topup/events", topup.TopupSSEHandler)

	port := config.Config.Port
	utils.Info("main", "Starting top-up client", "port", port, "api_base_url", config.Config.APIBaseURL)
	log.Fatal(http.ListenAndServe(":"+port, mux))
}
