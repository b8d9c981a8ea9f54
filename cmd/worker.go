package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/petty-cash-management/internal/notification"
	"github.com/frahmantamala/petty-cash-management/internal/smtpsettings"
	smtpPostgres "github.com/frahmantamala/petty-cash-management/internal/smtpsettings/postgres"
	"github.com/frahmantamala/petty-cash-management/pkg/logger"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Notification worker commands",
	Long:  `Run the email notification worker pool or send a single test email.`,
}

var notifyWorkerCmd = &cobra.Command{
	Use:   "notify",
	Short: "Start the notification worker pool",
	Long:  `Start the email dispatcher worker pool and wait for shutdown`,
	Run: func(cmd *cobra.Command, args []string) {
		startNotifyWorker()
	},
}

var testMailCmd = &cobra.Command{
	Use:   "test-mail [recipient]",
	Short: "Send a test email",
	Long:  `Send a single test email through the configured backend to verify mail settings`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sendTestMail(args[0])
	},
}

var (
	maxWorkers   int
	jobQueueSize int
)

func startNotifyWorker() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.LoggerWrapper()

	_, gormDB, err := initDB(config.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init db: %v\n", err)
		os.Exit(1)
	}

	smtpService := smtpsettings.NewService(smtpPostgres.NewSettingsRepository(gormDB), log)
	mailer := buildMailer(config, smtpService, log)

	dispatcherConfig := notification.DispatcherConfig{
		MaxWorkers:   getIntFlag(maxWorkers, config.Notification.MaxWorkers),
		JobQueueSize: getIntFlag(jobQueueSize, config.Notification.JobQueueSize),
	}

	log.Info("starting notification worker",
		"max_workers", dispatcherConfig.MaxWorkers,
		"job_queue_size", dispatcherConfig.JobQueueSize,
		"backend", config.Notification.Backend)

	dispatcher := notification.NewDispatcher(mailer, dispatcherConfig, log)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Info("notification worker is running. Press Ctrl+C to stop.")

	sig := <-sigChan
	log.Info("received signal, shutting down notification worker", "signal", sig)

	dispatcher.Shutdown()
}

func sendTestMail(recipient string) {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.LoggerWrapper()

	_, gormDB, err := initDB(config.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init db: %v\n", err)
		os.Exit(1)
	}

	smtpService := smtpsettings.NewService(smtpPostgres.NewSettingsRepository(gormDB), log)
	mailer := buildMailer(config, smtpService, log)

	err = mailer.Send(notification.Message{
		To:      recipient,
		Subject: "Petty cash test email",
		Body:    "Mail delivery is configured correctly.",
	})
	if err != nil {
		log.Error("test email failed", "error", err, "to", recipient)
		os.Exit(1)
	}

	log.Info("test email sent", "to", recipient)
}

func getIntFlag(flagValue, configValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return configValue
}

func init() {
	notifyWorkerCmd.Flags().IntVar(&maxWorkers, "max-workers", 0, "Maximum number of workers (overrides config)")
	notifyWorkerCmd.Flags().IntVar(&jobQueueSize, "job-queue-size", 0, "Job queue buffer size (overrides config)")

	workerCmd.AddCommand(notifyWorkerCmd)
	workerCmd.AddCommand(testMailCmd)

	rootCmd.AddCommand(workerCmd)
}
