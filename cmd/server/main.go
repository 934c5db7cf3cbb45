package main

import (
	"fmt"
	"log"
	"os"

	"inkwell/internal/config"
	"inkwell/internal/db"
	"inkwell/internal/router"
	"inkwell/internal/services"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	rootCmd := &cobra.Command{
		Use:   "inkwell",
		Short: "Inkwell personal blog",
		Run:   runServe,
	}
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the blog web server",
	Run:   runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables and exit",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.Migrate(conn); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		fmt.Println("Database migration completed")
	},
}

func runServe(cmd *cobra.Command, args []string) {
	cfg := config.Load()

	db.Init(cfg.DatabaseURL)

	r := router.New(cfg, services.NewMailService(cfg))

	log.Printf("Inkwell server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
