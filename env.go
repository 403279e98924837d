package pomomo

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv loads .env in production and .env.dev otherwise. Variables already
// set in the environment win.
func LoadEnv(isProd bool) {
	if isProd {
		_ = godotenv.Load(".env")
	} else {
		_ = godotenv.Load(".env.dev")
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
