package main

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/pay-managing/api-payments/internal/config"
	"github.com/pay-managing/api-payments/internal/evidence"
	"github.com/pay-managing/api-payments/internal/logger"
	"github.com/pay-managing/api-payments/internal/payment"
	"github.com/pay-managing/api-payments/internal/platform/db"
	"github.com/pay-managing/api-payments/internal/refdata"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration")
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.RequireS3(); err != nil {
		log.Fatal().Err(err).Msg("evidence store configuration")
	}

	database, err := db.Open(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSecretID)
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to database")
	}

	if err := database.AutoMigrate(&payment.PaymentRecord{}); err != nil {
		log.Fatal().Err(err).Msg("running AutoMigrate")
	}

	ctx := context.Background()

	// Reference data is fetched once and cached for the process lifetime.
	// An unreachable registry is fatal: there is no degraded mode.
	ref, err := refdata.Load(ctx, cfg.RefDataBaseURL, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("loading reference data")
	}
	log.Info().
		Int("countries", ref.Countries.Len()).
		Int("currencies", ref.Currencies.Len()).
		Msg("reference data cached")

	store, err := evidence.NewS3Store(ctx, cfg.S3Bucket, cfg.S3Region)
	if err != nil {
		log.Fatal().Err(err).Msg("initializing evidence store")
	}

	paymentHandler := payment.NewHandler(database, store)

	r := mux.NewRouter()
	r.HandleFunc("/payments", paymentHandler.ListPayments).Methods("GET")
	r.HandleFunc("/payments", paymentHandler.CreatePayment).Methods("POST")
	r.HandleFunc("/payments/{id}", paymentHandler.GetPayment).Methods("GET")
	r.HandleFunc("/payments/{id}", paymentHandler.UpdatePayment).Methods("PUT")
	r.HandleFunc("/payments/{id}", paymentHandler.DeletePayment).Methods("DELETE")
	r.HandleFunc("/upload_evidence/{id}", paymentHandler.UploadEvidence).Methods("POST")
	r.HandleFunc("/download_evidence/{id}", paymentHandler.DownloadEvidence).Methods("GET")

	handler := cors.New(cors.Options{
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(r)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("payments API listening")
	if err := http.ListenAndServe(cfg.HTTPAddr, handler); err != nil {
		log.Fatal().Err(err).Msg("http server stopped")
	}
}
