package config

// ServerConfig holds the environment-driven settings of the REST service.
type ServerConfig struct {
	Port           string // KARMA_PORT
	DatabaseURL    string // KARMA_DATABASE_URL ("sqlite:" prefix selects SQLite)
	JWTSecret      string // KARMA_JWT_SECRET
	FrontendOrigin string // KARMA_FRONTEND_ORIGIN, CORS allow-origin when set
	Env            string // KARMA_ENV: "development" or "production"
	StaticDir      string // KARMA_STATIC_DIR, built client bundle to serve in production
}

// devJWTSecret is only used outside production so a bare `karma-server`
// starts without setup.
const devJWTSecret = "karma-dev-secret"

// LoadServer reads the server configuration from the environment.
func LoadServer() ServerConfig {
	cfg := ServerConfig{
		Port:           getEnv("KARMA_PORT", "8080"),
		DatabaseURL:    getEnv("KARMA_DATABASE_URL", "postgres://localhost:5432/karma?sslmode=disable"),
		JWTSecret:      getEnv("KARMA_JWT_SECRET", ""),
		FrontendOrigin: getEnv("KARMA_FRONTEND_ORIGIN", ""),
		Env:            getEnv("KARMA_ENV", "development"),
		StaticDir:      getEnv("KARMA_STATIC_DIR", "client/dist"),
	}
	if cfg.JWTSecret == "" && !cfg.Production() {
		cfg.JWTSecret = devJWTSecret
	}
	return cfg
}

// Production reports whether the server runs in production mode.
func (c ServerConfig) Production() bool {
	return c.Env == "production"
}
