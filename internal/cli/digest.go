package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"finsight/internal/amqp"
	"finsight/internal/config"
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Request an asynchronous report digest via the worker",
	RunE:  runDigest,
}

func init() {
	rootCmd.AddCommand(digestCmd)
}

func runDigest(cmd *cobra.Command, _ []string) error {
	user, err := requireUser()
	if err != nil {
		return err
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.AMQPURL == "" {
		return fmt.Errorf("AMQP_URL is not configured")
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRequestQueue, cfg.AMQPReadyQueue)
	if err != nil {
		return fmt.Errorf("connect to broker: %w", err)
	}
	defer client.Close()

	msg, err := client.PublishDigestRequest(cmd.Context(), user)
	if err != nil {
		return fmt.Errorf("publish digest request: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Digest requested: %s\n", msg.ID)
	return nil
}
