// Command admintoken mints a bearer token for the moderation endpoints,
// signed with the same ADMIN_JWT_SECRET the API verifies against.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/knowthatperson/knowthatperson/backend/api/internal/tokens"
)

func main() {
	subject := flag.String("subject", "moderator", "token subject")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load(".env")
	secret := os.Getenv("ADMIN_JWT_SECRET")
	if secret == "" {
		log.Fatal("environment variable ADMIN_JWT_SECRET is required")
	}

	tok, err := tokens.NewAdminToken(secret, *subject, *ttl)
	if err != nil {
		log.Fatalf("failed to sign token: %v", err)
	}
	fmt.Println(tok)
}
