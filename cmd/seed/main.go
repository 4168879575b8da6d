package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"servic/internal/config"
	"servic/internal/database"
	"servic/internal/pkg/logger"
	"servic/internal/repository"
	"servic/internal/seed"
)

var dsn string

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the servic database with sample data",
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Insert the sample provider directory when it is empty",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, log, err := open()
		if err != nil {
			return err
		}
		n, err := seed.Providers(cmd.Context(), repository.NewProviderRepository(db))
		if err != nil {
			return err
		}
		if n == 0 {
			log.Info("providers already present, nothing seeded")
			return nil
		}
		log.WithField("count", n).Info("sample providers seeded")
		return nil
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Create the demo client and demo provider accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, log, err := open()
		if err != nil {
			return err
		}
		acc, err := seed.Demo(cmd.Context(), repository.NewUserRepository(db), repository.NewProviderRepository(db))
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"client":      acc.Client.Email,
			"provider":    acc.Provider.Email,
			"provider_id": acc.Profile.ID,
			"password":    seed.DemoPassword,
		}).Info("demo accounts ready")
		return nil
	},
}

var adminCmd = &cobra.Command{
	Use:   "admin <email>",
	Short: "Grant the admin role to an existing account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, log, err := open()
		if err != nil {
			return err
		}
		u, err := seed.PromoteAdmin(cmd.Context(), repository.NewUserRepository(db), args[0])
		if err != nil {
			return err
		}
		log.WithField("user_id", u.ID).Info("admin role granted")
		return nil
	},
}

func open() (*gorm.DB, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New("servic-seed", cfg.AppEnv)

	url := cfg.DatabaseURL
	if dsn != "" {
		url = dsn
	}
	db, err := database.Connect(url, log)
	if err != nil {
		return nil, nil, err
	}
	if err := repository.Migrate(db); err != nil {
		return nil, nil, err
	}
	return db, log, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dsn, "database-url", "", "override DATABASE_URL")
	rootCmd.AddCommand(providersCmd, demoCmd, adminCmd)
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
