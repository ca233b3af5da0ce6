// Package main is the entry point for the netbattle client.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/samdwyer/netbattle/internal/game"
	"github.com/samdwyer/netbattle/internal/telemetry"
)

func main() {
	mode := flag.String("mode", "solo", "battle mode: solo, host or join")
	name := flag.String("name", "Mega", "player name announced to the opponent")
	relay := flag.String("relay", "http://localhost:8080", "relay server base URL")
	code := flag.String("code", "", "match code to join (join mode)")
	flag.Parse()

	// Load .env for local development; env vars may also be set directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}
	setupOTelEnv()

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Battle will run without observability")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	cfg := game.Config{
		PlayerName: *name,
		RelayURL:   *relay,
		MatchCode:  *code,
	}
	switch *mode {
	case "solo":
		cfg.Mode = game.ModeSolo
	case "host":
		cfg.Mode = game.ModeHost
		matchCode, err := createMatch(*relay)
		if err != nil {
			log.Fatalf("Failed to create match: %v", err)
		}
		cfg.MatchCode = matchCode
		log.Printf("Match code: %s", matchCode)
	case "join":
		cfg.Mode = game.ModeJoin
		if cfg.MatchCode == "" {
			log.Fatal("join mode requires -code")
		}
	default:
		log.Fatalf("Unknown mode %q", *mode)
	}

	g, err := game.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize battle: %v", err)
	}
	defer g.Close()

	if err := g.Run(ctx); err != nil {
		log.Fatalf("Battle error: %v", err)
	}
}

// createMatch asks the relay for a fresh match code.
func createMatch(relayURL string) (string, error) {
	resp, err := http.Post(relayURL+"/match", "application/json", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("relay returned %s", resp.Status)
	}
	var body struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return body.Code, nil
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	apiKey := os.Getenv("HONEYCOMB_NETBATTLE_API_KEY")
	dataset := os.Getenv("HONEYCOMB_NETBATTLE_DATASET")
	if dataset == "" {
		dataset = "netbattle"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
