package main

import (
	"flag"
	"log"
	"strings"

	"fintrack/config"
	"fintrack/database"
	"fintrack/identity"
	"fintrack/router"

	"github.com/joho/godotenv"
)

// @title fintrack API
// @version 1.0
// @description Personal finance tracker: signup/login plus income and expense records with an aggregated balance.
// @host localhost:5000
// @BasePath /

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "path to an external config file (optional)")
	flag.StringVar(&configFile, "c", "", "path to an external config file (shorthand)")
	flag.StringVar(&port, "port", "", "listen port, e.g. 5000 or :5000")
	flag.StringVar(&port, "p", "", "listen port (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&showVersion, "v", false, "print version (shorthand)")
}

func main() {
	flag.Parse()

	if showVersion {
		log.Println("fintrack v1.0.0")
		return
	}

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on config and environment")
	}

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Printf("port overridden from command line: %s", port)
	}

	config.PrintConfig()

	if err := database.Init(cfg); err != nil {
		log.Fatalf("database init: %v", err)
	}

	identity.InitJWT(cfg)

	provider := newProvider(cfg)

	r := router.SetupRouter(cfg, provider)

	log.Printf("==========================================")
	log.Printf("  fintrack is up")
	log.Printf("==========================================")
	log.Printf("  App:      http://localhost%s/", cfg.Server.Port)
	log.Printf("  Swagger:  http://localhost%s/swagger/index.html", cfg.Server.Port)
	log.Printf("  API:      http://localhost%s/api/", cfg.Server.Port)
	log.Printf("==========================================")

	if err := r.Run(cfg.Server.Port); err != nil {
		log.Fatalf("server start: %v", err)
	}
}

// newProvider picks the identity backend: a hosted GoTrue-compatible service
// when configured, otherwise the built-in database-backed provider.
func newProvider(cfg *config.Config) identity.Provider {
	if cfg.Auth.Provider == "gotrue" && cfg.Auth.GoTrue.URL != "" {
		log.Printf("using hosted identity provider at %s", cfg.Auth.GoTrue.URL)
		return identity.NewGoTrueClient(cfg.Auth.GoTrue.URL, cfg.Auth.GoTrue.APIKey)
	}
	log.Printf("using local identity provider")
	return identity.NewLocalProvider(database.DB, cfg)
}
