// Command tokengen mints HS256 bearer tokens for local testing of the role
// service.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aussiebroadwan/rolesvc/pkg/jwtx"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	secret := flag.String("secret", os.Getenv("JWT_SECRET"), "HS256 secret, defaults to $JWT_SECRET")
	issuer := flag.String("issuer", os.Getenv("JWT_ISSUER"), "Issuer of the token, defaults to $JWT_ISSUER")
	subject := flag.String("subject", "dev-admin", "Subject of the token (usually user ID)")
	scopes := flag.String("scopes", "role:create,role:read,role:update,role:delete", "Comma separated capabilities")
	prefix := flag.String("prefix", os.Getenv("ACL_SCOPE_PREFIX"), "Prefix added to every capability")
	expiry := flag.Duration("expiry", jwtx.DefaultAccessTokenTTL, "Token expiry duration (e.g., 30m, 1h, 24h)")
	outputFormat := flag.String("format", "compact", "Output format: compact or debug")
	flag.Parse()

	signer, err := jwtx.NewSignerHS256([]byte(*secret))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var caps []string
	for _, s := range strings.Split(*scopes, ",") {
		if s = strings.TrimSpace(s); s != "" {
			caps = append(caps, *prefix+s)
		}
	}

	claims := jwtx.NewAccessClaims(*subject, *issuer, caps, *expiry, time.Now())
	tokenStr, err := signer.Sign(claims)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to generate token: %v\n", err)
		os.Exit(1)
	}

	switch *outputFormat {
	case "compact":
		fmt.Println(tokenStr)
	case "debug":
		claimsJSON, _ := json.MarshalIndent(claims, "", "  ")
		fmt.Printf("=== Token ===\n%s\n\n=== Claims ===\n%s\n\nExpires: %s\n",
			tokenStr, claimsJSON, claims.ExpiresAt.Format(time.RFC3339))
	default:
		fmt.Fprintf(os.Stderr, "Error: Unknown output format: %s\n", *outputFormat)
		os.Exit(1)
	}
}
