package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Debug            bool
		TestMode         bool
		Env              string
		Build            string
		AppName          string
		SecretKey        []byte
		WorkDir          string
		DefaultFromEmail mail.Address
		FrontendBaseURL  string

		SendgridAPIKey  string
		RollbarToken    string
		StripeSecretKey string

		// StrictDailySubmissions switches assignment submissions to the
		// guarded at-most-once-per-day semantics.
		StrictDailySubmissions bool

		Server   ServerConfig
		Database DatabaseConfig
	}

	ServerConfig struct {
		Host               string
		Addr               string
		JWTExpirationDelta time.Duration
	}

	DatabaseConfig struct {
		URI  string
		Name string
	}
)

// NewConfig loads the app configuration: code defaults, an optional
// config/.env.<env> file and finally ENV-prefixed environment variables.
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "EduManage")
	v.SetDefault("secretKey", "k2x$+9vfwq)e5m&ys8#u0d(h7!n^c4%rp1j*t6z3b@ag_l-o")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("frontendBaseURL", "http://localhost:5173")
	v.SetDefault("jwtExpirationDelta", time.Hour)
	v.SetDefault("strictDailySubmissions", false)
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("databaseURI", "mongodb://localhost:27017")
	v.SetDefault("databaseName", "EduManage")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err = godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		Env:              env,
		Build:            v.GetString("build"),
		AppName:          v.GetString("appName"),
		SecretKey:        []byte(v.GetString("secretKey")),
		WorkDir:          getwd(),
		DefaultFromEmail: mail.Address{Name: v.GetString("appName"), Address: v.GetString("defaultFromEmail")},
		FrontendBaseURL:  v.GetString("frontendBaseURL"),

		SendgridAPIKey:  v.GetString("sendgridApiKey"),
		RollbarToken:    v.GetString("rollbarToken"),
		StripeSecretKey: v.GetString("stripeSecretKey"),

		StrictDailySubmissions: v.GetBool("strictDailySubmissions"),

		Server: ServerConfig{
			Host:               v.GetString("serverHost"),
			Addr:               v.GetString("serverAddr"),
			JWTExpirationDelta: v.GetDuration("jwtExpirationDelta"),
		},
		Database: DatabaseConfig{
			URI:  v.GetString("databaseURI"),
			Name: v.GetString("databaseName"),
		},
	}
}

func getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	return wd
}
