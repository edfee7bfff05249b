// Command export logs into the billing backend and downloads the registro
// export document, for scheduled report jobs.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"registros-gateway/internal/adapters/backend"
	"registros-gateway/internal/adapters/storage/memory"
	"registros-gateway/internal/config"
	"registros-gateway/internal/core/domain"
	"registros-gateway/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	var email, password, format, output string
	var fechaInicio, fechaFin string
	flag.StringVar(&email, "email", os.Getenv("EXPORT_EMAIL"), "Login email")
	flag.StringVar(&password, "password", os.Getenv("EXPORT_PASSWORD"), "Login password")
	flag.StringVar(&format, "format", "csv", "Export format (csv or excel)")
	flag.StringVar(&output, "out", "", "Output file (defaults to the dated export name)")
	flag.StringVar(&fechaInicio, "fecha-inicio", "", "Filter: start date")
	flag.StringVar(&fechaFin, "fecha-fin", "", "Filter: end date")
	flag.Parse()

	if email == "" || password == "" {
		log.Fatal("email and password are required")
	}
	if output == "" {
		output = services.ExportFilename(time.Now())
	}

	tokens := services.NewTokenService(memory.New(), cfg.TokenTTL)
	client := backend.New(cfg.BackendBaseURL, cfg.RequestTimeout, tokens)
	session := services.NewSessionService(services.NewAuthService(client), tokens)
	registros := services.NewRegistrosService(client)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if result := session.Login(ctx, email, password); !result.Success {
		log.Fatalf("login failed: %s", result.Error)
	}

	data, err := registros.Export(ctx, format, domain.ListParams{
		FechaInicio: fechaInicio,
		FechaFin:    fechaFin,
	})
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		log.Fatal(err)
	}

	session.Logout(ctx)
	log.Printf("export written to %s (%d bytes)", output, len(data))
}
