package config // package config loads application configuration from environment variables

import (
	"log"      // log is used to report configuration errors and halt execution
	"os"       // os provides access to environment variables
	"strconv"  // strconv converts strings to other types
	"strings"  // strings splits comma-separated lists
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The struct is built once in main and passed to
// the components that need it; nothing reads configuration from globals.
type Config struct {
	Env            string   // application environment (e.g. "dev", "prod")
	Port           string   // HTTP port to listen on
	DBUser         string   // database username
	DBPass         string   // database password (optional)
	DBHost         string   // database host address
	DBPort         string   // database port number
	DBName         string   // database name
	JWTSecret      string   // secret used to sign JWTs (required, no fallback)
	TokenTTLDays   int      // bearer token time-to-live in days
	BcryptCost     int      // bcrypt cost for password hashing
	UploadDir      string   // directory where uploaded files are stored
	MaxUploadBytes int64    // upload size ceiling in bytes
	CORSOrigins    []string // allowed CORS origins for the frontend
	AMQPURL        string   // RabbitMQ URL for content-change events (optional)
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  The JWT secret is
// deliberately required: running with a baked-in default secret would let
// anyone mint admin tokens.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),      // environment (dev/test/prod)
		Port:           must("APP_PORT"),     // port to bind the HTTP server
		DBUser:         must("DB_USER"),      // database user
		DBPass:         os.Getenv("DB_PASS"), // database password (empty allowed)
		DBHost:         must("DB_HOST"),      // database host
		DBPort:         must("DB_PORT"),      // database port
		DBName:         must("DB_NAME"),      // database name
		JWTSecret:      must("JWT_SECRET"),   // secret used for signing JWTs
		TokenTTLDays:   intOr("TOKEN_TTL_DAYS", 7),
		BcryptCost:     intOr("BCRYPT_COST", 10),
		UploadDir:      envStr("UPLOAD_DIR", "./uploads"),
		MaxUploadBytes: int64(intOr("MAX_UPLOAD_MB", 15)) * 1024 * 1024,
		CORSOrigins:    corsOrigins(),
		AMQPURL:        os.Getenv("RABBITMQ_URL"), // empty disables event publishing
	}
}

// corsOrigins returns the allowed origins for the deployment mode.  When
// CORS_ORIGINS is unset everything is allowed so the local frontend can talk
// to the API without ceremony; deployed modes must list the real site origins.
func corsOrigins() []string {
	raw := os.Getenv("CORS_ORIGINS")
	out := []string{}
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// intOr retrieves an optional integer environment variable, returning the
// default when the variable is unset.  A malformed value is fatal rather
// than silently replaced.
func intOr(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
