package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var Conf *viper.Viper

func init() {
	Conf = viper.New()

	// defaults
	Conf.SetTypeByDefaultValue(true)
	Conf.SetDefault("debug", true)
	Conf.SetDefault("appName", "FermiToday")
	Conf.SetDefault("serverAddr", ":8000")
	Conf.SetDefault("originURL", "http://localhost:3000") // static app shell host
	Conf.SetDefault("backendURL", "https://purring-celesta-fermitoday-f00679ea.koyeb.app")

	// worker
	Conf.SetDefault("cacheVersion", "fermitoday-v0.9.0")
	Conf.SetDefault("shellAssets", []string{"/", "/index.html", "/manifest.json", "/favicon.ico"})
	Conf.SetDefault("registrationScope", "/")

	// notification defaults
	Conf.SetDefault("notificationIcon", "/logo192.png")
	Conf.SetDefault("notificationBadge", "/logo192.png")
	Conf.SetDefault("digestTime", "06:00")

	// database
	Conf.SetDefault("database.engine", "postgres")
	Conf.SetDefault("database.name", "fermitoday")
	Conf.SetDefault("database.host", "localhost")
	Conf.SetDefault("database.port", "5432")
	Conf.SetDefault("database.disableTLS", true)

	Conf.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case strings.ToUpper("TEST"):
		Conf.SetDefault("testMode", true)
	}
	Conf.SetDefault("env", env)
	Conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	Conf.AutomaticEnv()
}
