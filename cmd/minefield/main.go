// Package main is the entry point for Minefield.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/samdwyer/minefield/internal/game"
	"github.com/samdwyer/minefield/internal/gamedata"
	"github.com/samdwyer/minefield/internal/telemetry"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_MINEFIELD_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Debugf(".env file not loaded: %v", err)
	}

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	ctx := context.Background()

	// Initialize telemetry
	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Warnf("telemetry setup failed: %v", err)
		log.Warn("game will run without observability")
		// Continue without telemetry - game still works
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Errorf("error shutting down telemetry: %v", err)
			}
		}()
	}

	presets, err := gamedata.LoadPresetRegistry()
	if err != nil {
		log.Fatalf("failed to load presets: %v", err)
	}
	theme, err := gamedata.LoadTheme()
	if err != nil {
		log.Fatalf("failed to load theme: %v", err)
	}

	preset := presets.Default()
	if id := os.Getenv("MINEFIELD_PRESET"); id != "" {
		if p := presets.GetByID(id); p != nil {
			preset = p
		} else {
			log.Warnf("unknown preset %q, using %q", id, preset.ID)
		}
	}

	cfg := game.Config{
		Width:   preset.Width,
		Height:  preset.Height,
		Mines:   preset.Mines,
		Terrain: preset.Terrain,
	}

	g, err := game.New(cfg, presets, theme)
	if err != nil {
		log.Fatalf("failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		g.Close()
		log.Fatalf("game error: %v", err)
	}
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// Construct the headers here - the .env file may carry an unexpanded
	// variable reference that doesn't work
	apiKey := os.Getenv("HONEYCOMB_MINEFIELD_API_KEY")
	dataset := os.Getenv("HONEYCOMB_MINEFIELD_DATASET")
	if dataset == "" {
		dataset = "minefield" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
