package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ProjectID     string
	PrivateKeyID  string
	PrivateKey    string
	ClientEmail   string
	ClientID      string
	StorageBucket string
	GeminiAPIKey  string
	GeminiModel   string
	Port          string
	Environment   string
	CorsOrigins   []string
}

// LoadConfig loads the environment variables and returns the config.
func LoadConfig() *Config {

	_ = godotenv.Load()

	cfg := &Config{
		ProjectID:     getEnv("FIREBASE_PROJECT_ID", ""),
		PrivateKeyID:  getEnv("FIREBASE_PRIVATE_KEY_ID", ""),
		PrivateKey:    normalizePrivateKey(getEnv("FIREBASE_PRIVATE_KEY", "")),
		ClientEmail:   getEnv("FIREBASE_CLIENT_EMAIL", ""),
		ClientID:      getEnv("FIREBASE_CLIENT_ID", ""),
		StorageBucket: getEnv("FIREBASE_STORAGE_BUCKET", ""),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		Port:          getEnv("PORT", "8080"),
		Environment:   getEnv("GO_ENV", "development"),
		CorsOrigins:   splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
	}

	if cfg.ProjectID == "" || cfg.PrivateKey == "" || cfg.ClientEmail == "" {
		log.Fatal("FIREBASE_PROJECT_ID, FIREBASE_PRIVATE_KEY and FIREBASE_CLIENT_EMAIL must be set")
	}

	return cfg
}

// ServiceAccountJSON assembles the service-account key file the Firebase SDK
// expects from the individual env-var fields.
func (c *Config) ServiceAccountJSON() ([]byte, error) {
	sa := map[string]string{
		"type":                        "service_account",
		"project_id":                  c.ProjectID,
		"private_key_id":              c.PrivateKeyID,
		"private_key":                 c.PrivateKey,
		"client_email":                c.ClientEmail,
		"client_id":                   c.ClientID,
		"auth_uri":                    "https://accounts.google.com/o/oauth2/auth",
		"token_uri":                   "https://oauth2.googleapis.com/token",
		"auth_provider_x509_cert_url": "https://www.googleapis.com/oauth2/v1/certs",
		"client_x509_cert_url":        fmt.Sprintf("https://www.googleapis.com/robot/v1/metadata/x509/%s", c.ClientEmail),
	}
	return json.Marshal(sa)
}

// Deployment environments tend to store the key with literal "\n" sequences.
func normalizePrivateKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
