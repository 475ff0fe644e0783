// cmd/catalog/main.go
package main

import (
	"flag"
	"locatecar/internal/catalogsim"
	"locatecar/internal/obs"
	"net/http"
	"os"

	"go.uber.org/zap"
)

func main() {
	seedPath := flag.String("seed", os.Getenv("CATALOG_SEED_FILE"), "YAML file with the cars to publish")
	flag.Parse()

	logger, err := obs.NewLogger(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cars := catalogsim.DefaultCars()
	if *seedPath != "" {
		cars, err = catalogsim.LoadSeed(*seedPath)
		if err != nil {
			logger.Fatal("Failed to load seed file", zap.String("path", *seedPath), zap.Error(err))
		}
	}

	srv := catalogsim.New(cars...)
	port := getEnv("PORT", "8081")

	logger.Info("Starting car catalog emulator", zap.String("port", port), zap.Int("cars", len(cars)))
	if err := http.ListenAndServe(":"+port, srv.Handler()); err != nil {
		logger.Fatal("Catalog emulator stopped", zap.Error(err))
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
