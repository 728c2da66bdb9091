// Command issue-token prints a bearer token signed with the configured
// auth.jwt_secret, for operators and scheduled jobs calling mutating routes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/phrazzld/roster-api/internal/config"
	"github.com/phrazzld/roster-api/internal/service/auth"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (defaults to ./config.yaml if present)")
	subject := flag.String("subject", "", "token subject, e.g. the calling job or operator")
	scopes := flag.String("scopes", auth.ScopeWrite, "comma separated scopes to grant")
	flag.Parse()

	token, err := issue(*configPath, *subject, splitScopes(*scopes))
	if err != nil {
		log.Fatalf("issue-token: %v", err)
	}
	fmt.Println(token)
}

func issue(configPath, subject string, scopes []string) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("-subject is required")
	}
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}
	if !cfg.Auth.Enabled {
		return "", fmt.Errorf("auth is disabled, tokens would not be checked")
	}
	svc, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return "", err
	}
	return svc.GenerateToken(context.Background(), subject, scopes)
}

func splitScopes(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
