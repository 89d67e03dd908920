// Command tokengen mints attendee JWTs and hashes admin API keys for
// local development and operations.
//
//	tokengen -user user-123 -email user@example.edu -ttl 24h
//	tokengen -hash-key "$ADMIN_KEY"
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"campuscert/config"
	authadapter "campuscert/internal/adapters/auth"
)

func main() {
	userID := flag.String("user", "", "user id to embed as the token subject")
	email := flag.String("email", "", "email claim for issuance notifications")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	hashKey := flag.String("hash-key", "", "print the bcrypt hash of this admin key and exit")
	flag.Parse()

	if *hashKey != "" {
		hash, err := authadapter.HashKey(*hashKey, bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hash admin key: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "usage: tokengen -user <id> [-email <addr>] [-ttl <dur>] | tokengen -hash-key <key>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	token, err := authadapter.NewJWTIssuer(cfg.JWTSecret).Issue(*userID, *email, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "issue token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
