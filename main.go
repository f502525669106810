package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	logx "github.com/vupatil1992/Hospital-patient-booking-agent/pkg/logger"
	pkgredis "github.com/vupatil1992/Hospital-patient-booking-agent/pkg/redis"

	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/core"

	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/catalog"
	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/graph"
	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/model"
	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/registry"
	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/repo"
	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/tools"
)

// AppConfig defines all configurable parameters for the booking agent,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	// Core
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Agent configs
	Response     model.ResponseModelConfig
	Prompt       model.BookingPromptConfig
	Conversation model.ConversationConfig
}

func main() {
	ctx := context.Background()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(envCfg.Environment)})

	rdb, err := envCfg.Redis.New()
	if err != nil {
		log.Fatalf("Failed to initialise Redis client: %v", err)
	}
	defer rdb.Close()

	ttl, err := time.ParseDuration(envCfg.Conversation.TTL)
	if err != nil {
		log.Fatalf("Invalid CONVERSATION_TTL '%s': %v", envCfg.Conversation.TTL, err)
	}

	bookingCatalog := catalog.Default()
	bookingRegistry := registry.New()

	runner, err := graph.BuildBookingGraph(ctx, graph.Config{
		APIKey:           envCfg.APIKey,
		BaseURL:          envCfg.BaseURL,
		ResponseModel:    envCfg.Response,
		Prompt:           envCfg.Prompt,
		Conversation:     envCfg.Conversation,
		ConversationRepo: repo.NewRedisConversationRepository(rdb, ttl),
		Catalog:          bookingCatalog,
		Registry:         bookingRegistry,
	})
	if err != nil {
		log.Fatalf("Failed to build booking graph: %v", err)
	}

	testQueries := []struct {
		description string
		query       string
	}{
		{
			description: "Greeting without a name",
			query:       "Hi, I'd like to see a doctor",
		},
		{
			description: "Name, reason and time in one message",
			query:       "I'm Bob. I need a checkup at 9am",
		},
		{
			description: "Confirmation",
			query:       "Yes, please book that for me",
		},
	}

	conversationID := fmt.Sprintf("booking-demo-%d", time.Now().Unix())

	for i, test := range testQueries {
		fmt.Printf("\nTurn %d: %s\n", i+1, test.description)
		fmt.Printf("Patient: %q\n", test.query)

		response, err := runner.Invoke(ctx, model.QueryInput{
			ConversationID: conversationID,
			Query:          test.query,
		})
		if err != nil {
			log.Fatalf("Failed to invoke graph for turn %d: %v", i+1, err)
		}

		fmt.Printf("Assistant: %s\n", response)
	}

	// Administrative snapshot of everything that got booked.
	adminTools := tools.NewToolset(bookingCatalog, bookingRegistry)
	all, err := adminTools.ListAllBookings(ctx, &tools.ListAllBookingsInput{})
	if err != nil {
		log.Fatalf("Failed to list bookings: %v", err)
	}
	fmt.Printf("\nConfirmed bookings (%d):\n", all.Total)
	for _, b := range all.Bookings {
		fmt.Printf("  %s at %s -> %s\n", b.Doctor, b.Time, b.PatientName)
	}
}
