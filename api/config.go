package api

import (
	"sync"

	"github.com/spf13/viper"
	"github.com/z3r0n3br4instorm/duothan-onboarding/logging"
)

type Config struct {
	StorageConfig
	ServerConfig
}

type StorageConfig struct {
	TableNameTeamCodes   string
	TableNameTeams       string
	TableNameSessions    string
	TableNameSubmissions string
}

type ServerConfig struct {
	Port int
}

var settingsOnce sync.Once

func ReadConfig() *Config {

	var conf = &Config{
		StorageConfig: StorageConfig{
			TableNameTeamCodes:   getStringOrDefault("storage.TableNameTeamCodes", "TeamCodes"),
			TableNameTeams:       getStringOrDefault("storage.TableNameTeams", "Teams"),
			TableNameSessions:    getStringOrDefault("storage.TableNameSessions", "OnboardingSessions"),
			TableNameSubmissions: getStringOrDefault("storage.TableNameSubmissions", "Submissions"),
		},
		ServerConfig: ServerConfig{
			Port: getIntOrDefault("server.port", 8080),
		},
	}

	settingsOnce.Do(func() {
		logging.Log.Print("Reading settings!")
	})

	return conf
}

func getIntOrDefault(name string, def int) int {
	if viper.IsSet(name) {
		v := viper.GetInt(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getStringOrDefault(name string, def string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}
