package utils

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadConfig loads a .env file from path (when present) and enables viper's
// env lookup. Missing .env is not an error; real environments configure the
// process directly.
func LoadConfig(path string) {
	_ = godotenv.Load(filepath.Join(path, ".env"))
	viper.AutomaticEnv()
}
