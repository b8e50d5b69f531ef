package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Strings hold identifiers and secrets,
// ints hold durations and costs.
type Config struct {
    Env            string // application environment (e.g. "dev", "prod")
    Port           string // HTTP port to listen on
    DBUser         string // database username
    DBPass         string // database password (optional)
    DBHost         string // database host address
    DBPort         string // database port number
    DBName         string // database name
    JWTSecret      string // secret used to sign JWTs
    AccessTTLMin   int    // access token time-to-live in minutes
    RefreshTTLDays int    // refresh token time-to-live in days
    BcryptCost     int    // bcrypt cost for password hashing

    // Google OAuth sign-in.  All three are optional; when empty the
    // /auth/google endpoints respond 503.
    GoogleClientID     string
    GoogleClientSecret string
    GoogleRedirectURL  string

    // Payment-link provider (Midtrans Snap).
    MidtransServerKey string // server key used to authenticate API calls
    MidtransProd      bool   // true to hit the production environment

    // Media object storage.  Endpoint and keys are optional; when the
    // keys are empty the SDK falls back to its default credential chain.
    S3Bucket    string // bucket receiving uploaded media
    S3Region    string // bucket region
    S3Endpoint  string // custom endpoint for S3-compatible stores (optional)
    S3AccessKey string // static access key id (optional)
    S3SecretKey string // static secret access key (optional)
    S3PublicURL string // base URL the bucket is served from (optional)
}

// Load reads configuration values from environment variables and returns
// a Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
    return Config{
        Env:            must("APP_ENV"),
        Port:           must("APP_PORT"),
        DBUser:         must("DB_USER"),
        DBPass:         os.Getenv("DB_PASS"), // empty allowed
        DBHost:         must("DB_HOST"),
        DBPort:         must("DB_PORT"),
        DBName:         must("DB_NAME"),
        JWTSecret:      must("JWT_SECRET"),
        AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
        RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
        BcryptCost:     mustInt("BCRYPT_COST"),

        GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
        GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
        GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),

        MidtransServerKey: os.Getenv("MIDTRANS_SERVER_KEY"),
        MidtransProd:      os.Getenv("MIDTRANS_ENV") == "production",

        S3Bucket:    os.Getenv("S3_BUCKET"),
        S3Region:    os.Getenv("S3_REGION"),
        S3Endpoint:  os.Getenv("S3_ENDPOINT"),
        S3AccessKey: os.Getenv("S3_ACCESS_KEY_ID"),
        S3SecretKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
        S3PublicURL: os.Getenv("S3_PUBLIC_URL"),
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

// mustInt is like must() but converts the retrieved string into an
// integer.  If conversion fails, the application logs a fatal error and
// exits.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}
