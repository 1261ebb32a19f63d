package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ArowuTest/bridgetunes-bingo/internal/config"
	"github.com/ArowuTest/bridgetunes-bingo/internal/logging"
	"github.com/ArowuTest/bridgetunes-bingo/internal/models"
	"github.com/ArowuTest/bridgetunes-bingo/internal/services"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig(config.ConfigPath("."))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.Setup(cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	game, err := services.NewSimulationService(cfg, logger).Run(ctx)
	if err != nil {
		logger.Error("Simulation failed", "error", err)
		os.Exit(1)
	}

	if err := report(os.Stdout, cfg.Output, game); err != nil {
		logger.Error("Failed to write results", "error", err)
		os.Exit(1)
	}
}

func report(w io.Writer, out config.OutputConfig, game *services.BingoGame) error {
	if out.Format == config.FormatJSON {
		payload := struct {
			models.GameSummary
			Cards []models.Card `json:"cards,omitempty"`
		}{GameSummary: game.Summary()}
		if out.ShowCards {
			payload.Cards = game.GetCards()
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	if out.ShowCards {
		if err := game.PrintCards(w); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if err := game.PrintWinners(w); err != nil {
		return err
	}
	summary := game.Summary()
	_, err := fmt.Fprintf(w, "Steps: %d  Cards: %d  Winners: %d  Jackpot (<= %d balls): %t\n",
		summary.TotalSteps, summary.NumberOfCards, summary.NumberOfWinners(), summary.JackpotBall, summary.Jackpot)
	return err
}
