package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings for both the command-line run and the
// HTTP serve mode.
//
// Fields:
// - Env: the current environment (local, development, production); drives logging.
// - Port: the port the serve mode listens on.
// - PlacesFile: path of the default places file; an .xlsx suffix selects the workbook loader.
// - UploadDir: directory where the serve mode stores uploaded files.
// - OutputDir: directory where results workbooks are written.
// - ExportPath: optional path for an xlsx export of command-line results.
type Config struct {
	Env        string
	Port       int
	PlacesFile string
	UploadDir  string
	OutputDir  string
	ExportPath string
}

// MustLoad reads the configuration from the environment, with .env support.
func MustLoad() *Config {
	_ = godotenv.Load()

	port, err := strconv.Atoi(defaultEnv("AIRDIST_PORT", "9595"))
	if err != nil {
		panic("failed to parse server port from configuration")
	}

	return &Config{
		Env:        defaultEnv("AIRDIST_ENV", "production"),
		Port:       port,
		PlacesFile: defaultEnv("AIRDIST_PLACES_FILE", "places.csv"),
		UploadDir:  defaultEnv("AIRDIST_UPLOAD_DIR", "uploads"),
		OutputDir:  defaultEnv("AIRDIST_OUTPUT_DIR", "output"),
		ExportPath: os.Getenv("AIRDIST_EXPORT"),
	}
}

func defaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
