// Command sahyogi is a terminal front end for the Sahyogi API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
)

const usage = `usage: sahyogi <command> [flags]

commands:
  login      -kind ngo -email rc@x.org -password secret
  logout
  whoami
  register   -kind ngo -name "Red Cross" -email rc@x.org -password secret
  follow     -kind ngo <id>
  unfollow   -kind ngo <id>
  followers  -kind ngo <id>
  posts      [-type story] [-author <id>] [-tag relief]
  post       <id>
  contact    -name Asha -email a@x.org -subject Hi -message "..."
  feedback   -name Asha -email a@x.org -rating 5 -comment "..."

environment:
  SAHYOGI_API_URL   API base URL (default http://localhost:8080)
  SAHYOGI_SESSION   session file (default <config dir>/sahyogi/session.json)
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(getEnv("SAHYOGI_API_URL", "http://localhost:8080"), sessionPath(), os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sahyogi:", err)
		os.Exit(1)
	}

	if err := a.run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "sahyogi:", err)
		os.Exit(1)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func sessionPath() string {
	if p := os.Getenv("SAHYOGI_SESSION"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "sahyogi", "session.json")
}
