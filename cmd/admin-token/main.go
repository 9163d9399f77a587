// Command admin-token mints a signed JWT for a moderator. There is no
// login flow; tokens are issued offline and handed to the admin frontend.
//
// Usage:
//
//	admin-token [--user-id=<uuid>] [--role=ADMIN] [--ttl=12h]
//
// Requires AUTH_JWT_SECRET to be set. AUTH_JWT_ISSUER defaults to quizmod.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/quizforge/quizmod-backend/internal/auth"
	"github.com/quizforge/quizmod-backend/internal/domain"
)

func main() {
	userIDFlag := flag.String("user-id", "", "subject UUID (random when omitted)")
	role := flag.String("role", domain.RoleAdmin.String(), "role claim: ADMIN or USER")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("AUTH_JWT_SECRET")
	if secret == "" {
		log.Fatal("AUTH_JWT_SECRET environment variable is required")
	}
	if len(secret) < 32 {
		log.Fatal("AUTH_JWT_SECRET must be at least 32 characters")
	}

	issuer := os.Getenv("AUTH_JWT_ISSUER")
	if issuer == "" {
		issuer = "quizmod"
	}

	if *role != domain.RoleAdmin.String() && *role != domain.RoleUser.String() {
		log.Fatalf("invalid role %q: must be %s or %s", *role, domain.RoleAdmin, domain.RoleUser)
	}

	userID := uuid.New()
	if *userIDFlag != "" {
		parsed, err := uuid.Parse(*userIDFlag)
		if err != nil {
			log.Fatalf("invalid --user-id: %v", err)
		}
		userID = parsed
	}

	manager := auth.NewJWTManager(secret, issuer, *ttl)
	token, err := manager.GenerateAccessToken(userID, *role)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}

	fmt.Fprintf(os.Stderr, "subject: %s\nrole: %s\nexpires: %s\n",
		userID, *role, time.Now().Add(*ttl).Format(time.RFC3339))
	fmt.Println(token)
}
