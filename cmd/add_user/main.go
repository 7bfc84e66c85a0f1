package main

import (
	"database/sql"
	"flag"
	"log"

	"github.com/sandrello1971/newassessment/app/config"
	"github.com/sandrello1971/newassessment/app/database"
)

// Creates a local user from the command line, for bootstrapping installs that
// do not want to set ADMIN_PASSWORD in the environment.
func main() {
	email := flag.String("email", "", "email address of the new user")
	password := flag.String("password", "", "initial password (user should change it on first login)")
	role := flag.String("role", "user", "role: admin or user")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}
	if *role != "admin" && *role != "user" {
		log.Fatalf("invalid role %q, must be admin or user", *role)
	}

	config.LoadEnv()
	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	if _, err := database.GetUserByEmail(db, *email); err == nil {
		log.Fatalf("User %s already exists", *email)
	} else if err != sql.ErrNoRows {
		log.Fatal("Failed to check existing user:", err)
	}

	user, err := database.CreateUser(db, *email, *password, *role)
	if err != nil {
		log.Fatal("Failed to create user:", err)
	}
	log.Printf("Created %s user %s (id %s)", user.Role, user.Email, user.ID)
}
