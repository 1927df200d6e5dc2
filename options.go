package geodb

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

// WithConfigDir configures the service to use the specified configuration
// directory. It creates the directory if it doesn't exist and initializes the
// configuration file using Viper.
func WithConfigDir(appConfigDir string) func(*Service) error {
	return func(svc *Service) error {
		_, err := os.ReadDir(appConfigDir)
		if err != nil {
			if os.IsNotExist(err) {
				log.Println("[*] creating config dir")
				err := os.MkdirAll(appConfigDir, 0700)
				if err != nil {
					return fmt.Errorf("creating config dir %s: %w", appConfigDir, err)
				}
			} else {
				return fmt.Errorf("checking if directory exists %s: %w", appConfigDir, err)
			}
		}
		// At this point, the directory exists or was created successfully
		svc.ConfigDir = appConfigDir

		v := viper.New()
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(appConfigDir)
		v.SetDefault("db_file", "geocache.db")
		v.SetDefault("max_logs", 5)
		v.SetDefault("include_waypoints", false)
		v.SetDefault("strict_import", false)
		err = v.ReadInConfig()
		if err != nil {
			// need to check if the error is config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				// Config file is not found
				err = v.SafeWriteConfig()
				if err != nil {
					return fmt.Errorf("writing config file : %w", err)
				}
			} else {
				return fmt.Errorf("reading config file : %w", err)
			}
		}
		if err := v.Unmarshal(&svc.Config); err != nil {
			return fmt.Errorf("unmarshalling config to struct : %w", err)
		}

		svc.Config.viper = v
		svc.Config.ConfigDir = appConfigDir

		// Rewrite entire file from struct
		err = v.WriteConfig()
		if err != nil {
			return fmt.Errorf("writing config after unmarshalling : %w", err)
		}
		return nil
	}
}

// WithRepo sets the repository backing the service, closing any repository
// that was configured before.
func WithRepo(repo Repository) func(*Service) error {
	return func(svc *Service) error {
		if svc.Repo != nil {
			if err := svc.Repo.Close(); err != nil {
				return err
			}
			svc.Repo = nil
		}
		svc.Repo = repo
		return nil
	}
}

// WithStrictImport overrides the configured import mode for this service.
func WithStrictImport(strict bool) func(*Service) error {
	return func(svc *Service) error {
		svc.Config.StrictImport = strict
		return nil
	}
}
