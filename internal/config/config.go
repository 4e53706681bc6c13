package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
    "time"    // time parses durations for session lifetimes
)

// Session backing strategies.  Exactly one is active per deployment.
const (
    SessionBackendMemory = "memory" // in-process map, lost on restart
    SessionBackendMySQL  = "mysql"  // durable sessions table, auto-created
    SessionBackendRedis  = "redis"  // key-value store with native TTL
)

// Credential presentation strategies for the access gate.
const (
    AuthStrategyCookie = "cookie" // session token carried in an HttpOnly cookie
    AuthStrategyHeader = "header" // username/password re-verified on every request
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers, durations for lifetimes, ints
// for cost factors.
type Config struct {
    Env               string        // application environment (e.g. "dev", "prod")
    Port              string        // HTTP port to listen on
    DBUser            string        // database username
    DBPass            string        // database password (optional)
    DBHost            string        // database host address
    DBPort            string        // database port number
    DBName            string        // database name
    BcryptCost        int           // bcrypt cost for password hashing
    AuthStrategy      string        // "cookie" or "header"
    SessionBackend    string        // "memory", "mysql" or "redis"
    SessionCookieName string        // name of the session cookie
    SessionMaxAge     time.Duration // session lifetime
    SweepInterval     time.Duration // how often expired sessions are purged
    SessionOnRegister bool          // issue a session immediately on registration
    AMQPURL           string        // broker URL for auth events (empty disables publishing)
}

// Load reads configuration values from environment variables and returns a
// Config.  Database variables are required and enforced by must(); missing
// values cause the program to exit with a fatal log message.  Everything
// else carries a default so the service boots with only DB settings set.
func Load() Config {
    return Config{
        Env:               getenv("APP_ENV", "dev"),
        Port:              getenv("PORT", "5000"),
        DBUser:            must("DB_USER"),
        DBPass:            os.Getenv("DB_PASS"), // empty allowed
        DBHost:            must("DB_HOST"),
        DBPort:            must("DB_PORT"),
        DBName:            must("DB_NAME"),
        BcryptCost:        envInt("BCRYPT_COST", 10),
        AuthStrategy:      getenv("AUTH_STRATEGY", AuthStrategyCookie),
        SessionBackend:    getenv("SESSION_BACKEND", SessionBackendMemory),
        SessionCookieName: getenv("SESSION_COOKIE_NAME", "sid"),
        SessionMaxAge:     envDur("SESSION_MAX_AGE", 15*time.Minute),
        SweepInterval:     envDur("SESSION_SWEEP_INTERVAL", time.Hour),
        SessionOnRegister: envBool("SESSION_ON_REGISTER", false),
        AMQPURL:           os.Getenv("AMQP_URL"),
    }
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

func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

func envInt(key string, def int) int {
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

func envBool(key string, def bool) bool {
    s := os.Getenv(key)
    if s == "" {
        return def
    }
    b, err := strconv.ParseBool(s)
    if err != nil {
        log.Fatalf("invalid bool for %s: %q", key, s)
    }
    return b
}

func envDur(key string, def time.Duration) time.Duration {
    s := os.Getenv(key)
    if s == "" {
        return def
    }
    d, err := time.ParseDuration(s)
    if err != nil {
        log.Fatalf("invalid duration for %s: %q", key, s)
    }
    return d
}
