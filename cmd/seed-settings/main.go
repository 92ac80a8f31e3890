package main

import (
	"context"
	"fmt"
	"log"

	"github.com/evyataryagoni/postcode-checker/internal/config"
	"github.com/evyataryagoni/postcode-checker/internal/settings"
)

// This tool loads admission settings from CSV into the configured store (redis or mysql)
// Usage: SETTINGS_STORE=redis go run cmd/seed-settings/main.go
func main() {
	fmt.Println("🔄 Loading admission settings...")

	// Load configuration
	appConfig := config.Load()

	// Read the seed file
	fmt.Printf("📁 Reading settings from %s...\n", appConfig.SettingsCSVPath)
	source, err := settings.NewCSVStore(appConfig.SettingsCSVPath)
	if err != nil {
		log.Fatalf("Failed to read settings CSV: %v", err)
	}

	// Connect to the target store
	var target settings.Store
	switch appConfig.SettingsStore {
	case "redis":
		fmt.Printf("📡 Connecting to Redis at %s...\n", appConfig.RedisAddr)
		target, err = settings.NewRedisStore(appConfig.RedisAddr, appConfig.RedisPassword, appConfig.RedisDB)
	case "mysql":
		fmt.Println("📡 Connecting to MySQL...")
		target, err = settings.NewMySQLStore(appConfig.MySQLDSN)
	default:
		log.Fatalf("SETTINGS_STORE=%q is not a persistent store, use redis or mysql", appConfig.SettingsStore)
	}
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", appConfig.SettingsStore, err)
	}
	defer target.Close()

	fmt.Printf("✅ Connected to %s\n", appConfig.SettingsStore)

	count, err := settings.Seed(context.Background(), target, source)
	if err != nil {
		log.Fatalf("Failed to seed settings: %v", err)
	}

	fmt.Printf("✅ %d settings loaded successfully!\n", count)
	fmt.Printf("\n💡 You can now start the server with SETTINGS_STORE=%s\n", appConfig.SettingsStore)
}
