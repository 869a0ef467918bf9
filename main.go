package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"secondplan/config"
	"secondplan/database"
	"secondplan/logger"
	"secondplan/web"
	"secondplan/web/service"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func initLogger() {
	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Notice:
		logger.InitLogger(logging.NOTICE)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}
}

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())
	initLogger()

	if err := database.InitDB(config.GetDBPath()); err != nil {
		log.Fatal(err)
	}

	server := web.NewServer()
	if err := server.Start(); err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Info("received SIGHUP, restarting web server")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			if err := server.Start(); err != nil {
				log.Println(err)
				return
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			if err := database.CloseDB(); err != nil {
				logger.Warning("close db err:", err)
			}
			return
		}
	}
}

func resetAdminPassword(email string, password string) {
	if err := database.InitDB(config.GetDBPath()); err != nil {
		fmt.Println(err)
		return
	}
	userService := service.UserService{}
	if err := userService.ResetAdminPassword(email, password); err != nil {
		fmt.Println("reset password failed:", err)
		return
	}
	fmt.Println("password updated for", email)
}

func migrate() {
	if err := database.InitDB(config.GetDBPath()); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("database migrated and seeded at", config.GetDBPath())
}

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "secondplan",
		Short: "SecondPlan band management panel",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Start the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var email, password string
	resetCmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Reset a user's password by email",
		Run: func(cmd *cobra.Command, args []string) {
			if email == "" || password == "" {
				fmt.Println("both --email and --password are required")
				os.Exit(1)
			}
			resetAdminPassword(email, password)
		},
	}
	resetCmd.Flags().StringVar(&email, "email", "", "account email")
	resetCmd.Flags().StringVar(&password, "password", "", "new password")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and seeds, then exit",
		Run: func(cmd *cobra.Command, args []string) {
			migrate()
		},
	}

	rootCmd.AddCommand(runCmd, resetCmd, migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
