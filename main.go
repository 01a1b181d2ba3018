// @title Duothan Onboarding API
// @version 1.0
// @description Backend API for hackathon team registration, onboarding sessions and submissions

// @securityDefinitions.apikey AdminToken
// @in header
// @name x-admin-token
package main

import (
	_ "github.com/z3r0n3br4instorm/duothan-onboarding/docs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/z3r0n3br4instorm/duothan-onboarding/api"
	"github.com/z3r0n3br4instorm/duothan-onboarding/logging"
)

func main() {
	logging.BootstrapLogger()

	// Load env
	if err := godotenv.Load(); err != nil {
		logging.Log.Infof("No .env file loaded: %v", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logging.Log.Errorf("Failed to read config file: %v", err)
		panic("Failed to read config file: " + err.Error())
	}

	// Read config
	config := api.ReadConfig()

	// Start the service (inside the lambda)
	service := api.NewServer(config)
	service.Start()
}
