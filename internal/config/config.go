package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config contains runtime configuration required by the service.
type Config struct {
	DBURL    string
	Bind     string
	APIKeys  map[string]string // apiKey -> username
	Location *time.Location    // reporting time zone
}

// Load reads required values from environment variables.
// API_KEYS format: "user1:key1,user2:key2"
// TIMEZONE is an IANA zone name ("America/New_York"); defaults to the
// server's local zone, matching how punch instants are bucketed into days.
func Load() (Config, error) {
	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return Config{}, errors.New("DB_URL required")
	}

	bind := strings.TrimSpace(os.Getenv("BIND"))
	if bind == "" {
		bind = ":8080"
	}

	loc := time.Local
	if tz := strings.TrimSpace(os.Getenv("TIMEZONE")); tz != "" {
		var err error
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return Config{}, fmt.Errorf("TIMEZONE: %w", err)
		}
	}

	apiKeysRaw := strings.TrimSpace(os.Getenv("API_KEYS"))
	apiKeys := map[string]string{}

	if apiKeysRaw != "" {
		pairs := strings.Split(apiKeysRaw, ",")
		for _, p := range pairs {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			parts := strings.SplitN(p, ":", 2)
			if len(parts) != 2 {
				return Config{}, errors.New(`API_KEYS must be "user:key,user:key"`)
			}
			user := strings.TrimSpace(parts[0])
			key := strings.TrimSpace(parts[1])
			if user == "" || key == "" {
				return Config{}, errors.New(`API_KEYS must be "user:key,user:key"`)
			}
			apiKeys[key] = user
		}
	}

	// Local dev fallback so the service runs out-of-the-box.
	if len(apiKeys) == 0 {
		apiKeys["punch-key-123"] = "admin"
	}

	return Config{
		DBURL:    dbURL,
		Bind:     bind,
		APIKeys:  apiKeys,
		Location: loc,
	}, nil
}
