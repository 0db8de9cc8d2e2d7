package main

import (
	"context"
	"os"

	"finsight/internal/amqp"
	"finsight/internal/cli"
	applog "finsight/internal/log"
	"finsight/internal/reports"
	"finsight/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(applog.ComponentWorker)
	logger.Info("Starting finsight-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitStorage(logger, cfg.DBPath, cfg.DefaultCurrency)
	defer repo.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRequestQueue, cfg.AMQPReadyQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	svc := reports.New(repo, repo, repo, repo, repo)
	digestWorker := worker.NewDigestWorker(svc, amqpClient)

	ctx, done := cli.GracefulShutdown(logger.Logger, cfg.DigestTimeout, nil)

	go func() {
		handler := func(ctx context.Context, msg *amqp.DigestRequestMessage) error {
			reqLog := logger.WithUser(msg.UserID)
			reqLog.InfoContext(ctx, "Digest request accepted", applog.FieldMessageID, msg.ID)

			handleCtx, cancel := context.WithTimeout(ctx, cfg.DigestTimeout)
			defer cancel()
			if err := digestWorker.HandleDigestRequest(handleCtx, msg); err != nil {
				reqLog.ErrorContext(ctx, "Digest request failed", applog.FieldMessageID, msg.ID, applog.FieldError, err)
				return err
			}
			return nil
		}
		if err := amqpClient.ConsumeDigestRequests(ctx, handler); err != nil && err != context.Canceled {
			logger.Error("Digest consumption failed", "error", err)
		}
	}()

	cli.WaitForShutdown(ctx, done)
}
