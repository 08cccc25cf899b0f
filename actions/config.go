package actions

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sabordos/cli/database"
	"github.com/sabordos/cli/utils"
)

const (
	DefaultMongoURI   = "mongodb://localhost:27017"
	DefaultDBName     = "sabor_dos"
	DefaultUserColl   = "users"
	DefaultReviewColl = "reviews"

	ModeLive   = "live"
	ModeDryRun = "dry-run"

	EnvConnectionString = "CONNECTION_STRING"
	EnvDBName           = "DB_NAME"
)

var validate = validator.New()

// LoadEnv reads .env files from the working directory into the process
// environment. Variables that are already set win.
func LoadEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			fmt.Printf("[warn] could not load %s: %v\n", f, err)
		}
	}
}

// envDefault returns the environment value of key, or def when unset.
func envDefault(key string, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// flagOrEnv keeps value when the flag was given, otherwise the environment
// variable envKey overrides it when set.
func flagOrEnv(name string, value string, envKey string) string {
	if WasFlagPassed(name) {
		return value
	}
	return envDefault(envKey, value)
}

// validateConfig runs the struct tag rules and flattens the result into one
// readable error.
func validateConfig(cfg interface{}) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
		} else {
			parts = append(parts, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(parts, "; "))
}

// mongoTarget describes the connection for error output without secrets.
func mongoTarget(uri string, host database.HostOptions) string {
	if host.Host == "" {
		return utils.MaskURI(uri)
	}
	if host.Port != "" {
		return host.Host + ":" + host.Port
	}
	return host.Host
}
