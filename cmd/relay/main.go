// Package main is the relay server: it issues match codes and forwards
// opaque battle frames between two paired peers.
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/samdwyer/netbattle/internal/telemetry"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	ctx := context.Background()
	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	hub := NewHub()

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/match", func(w http.ResponseWriter, req *http.Request) {
		code := hub.CreateMatch()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"code": code})
	})

	r.Get("/ws", func(w http.ResponseWriter, req *http.Request) {
		code := req.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		conn, err := websocket.Accept(w, req, nil)
		if err != nil {
			log.Printf("relay: upgrade failed: %v", err)
			return
		}
		conn.SetReadLimit(1 << 16)

		if err := hub.Join(req.Context(), code, conn); err != nil {
			log.Printf("relay: match %s: %v", code, err)
			conn.Close(websocket.StatusPolicyViolation, err.Error())
		}
	})

	addr := os.Getenv("RELAY_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Printf("relay listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("relay: %v", err)
	}
}
