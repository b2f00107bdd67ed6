package main

import (
	"fmt"
	"log"

	"proofsheet/config"
	"proofsheet/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	if cfg.DatabaseDriver == config.DriverPostgres {
		names, err := database.MigrationNames()
		if err != nil {
			log.Fatal("Failed to read migrations:", err)
		}
		for _, name := range names {
			log.Printf("Running migration: %s", name)
		}
	} else {
		log.Printf("Running migration: sqlite schema (%s)", cfg.SQLitePath)
	}

	store, err := database.Open(cfg)
	if err != nil {
		log.Fatal("Failed to migrate:", err)
	}
	store.Close()

	fmt.Println("\nAll migrations completed!")
}
