package main

import (
	"log"

	"github.com/sandrello1971/newassessment/app/config"
	"github.com/sandrello1971/newassessment/app/database"
)

// Applies the schema migrations and exits. Useful for deployments that run
// migrations separately from the server process.
func main() {
	config.LoadEnv()
	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	log.Println("Running migrations...")
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migration failed:", err)
	}
	log.Println("Migrations completed successfully")
}
