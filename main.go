package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"auto_hedge_go/config"
	"auto_hedge_go/logs"

	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to the config.yaml file")
	flag.Parse()

	// Load .env file
	err := godotenv.Load()
	if err != nil {
		fmt.Println("Note: .env file not found, will continue using system environment variables.")
	}

	// Load main configuration file
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("Fatal error: Unable to load config file '%s': %v\n", *configPath, err)
		return
	}

	// Load environment variables (data feed credentials, etc.)
	envCfg := config.LoadEnvConfig()

	nameUpper := strings.ToUpper(strings.ReplaceAll(cfg.Name, " ", "_"))
	logFilename := fmt.Sprintf("%s/%s_bot.log", cfg.Normal.LogDirectory, nameUpper)
	journalFilename := fmt.Sprintf("%s/%s_journal.json", cfg.Normal.JournalDirectory, nameUpper)

	// Initialize logging system
	if err := logs.Init(cfg.Logs, logFilename); err != nil {
		fmt.Printf("Fatal error: Failed to initialize logging system: %v\n", err)
		return
	}
	defer logs.Close()

	logs.Infof("Configuration loaded successfully, logs will be written to: %s", logFilename)

	// Create and start the main business orchestrator
	orchestrator, err := NewOrchestrator(cfg, envCfg, journalFilename)
	if err != nil {
		logs.Fatalf("Failed to initialize Orchestrator: %v", err)
	}
	orchestrator.Start()

	// Wait for and handle program termination signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Execute graceful shutdown
	orchestrator.Stop()
}
