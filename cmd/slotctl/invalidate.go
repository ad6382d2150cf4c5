package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/clinic-slots/internal/worker"
	"github.com/jwalitptl/clinic-slots/pkg/logger"
	"github.com/jwalitptl/clinic-slots/pkg/messaging"
	"github.com/jwalitptl/clinic-slots/pkg/messaging/redis"
)

func invalidateCmd() *cobra.Command {
	var redisURL string

	cmd := &cobra.Command{
		Use:   "invalidate (schedule|service) <id>",
		Short: "Tell running servers to drop cached schedules or service durations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := redis.NewClient(cmd.Context(), redis.Config{URL: redisURL})
			if err != nil {
				return err
			}
			log := logger.New(logger.Config{Level: "warn", Pretty: true, Output: os.Stderr})
			broker := redis.NewRedisBroker(client, log)
			defer broker.Close()

			return runInvalidate(cmd.Context(), broker, cmd.OutOrStdout(), args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&redisURL, "redis-url", "redis://localhost:6379/0", "Redis the servers subscribe to")
	return cmd
}

func runInvalidate(ctx context.Context, broker messaging.Broker, out io.Writer, kind, rawID string) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", rawID, err)
	}

	var (
		channel string
		message interface{}
	)
	switch kind {
	case "schedule":
		channel, message = worker.ChannelSchedulesChanged, worker.ScheduleChanged{EmployeeID: id}
	case "service":
		channel, message = worker.ChannelServicesChanged, worker.ServiceChanged{ServiceID: id}
	default:
		return fmt.Errorf("unknown kind %q, want schedule or service", kind)
	}

	if err := broker.Publish(ctx, channel, message); err != nil {
		return err
	}
	fmt.Fprintf(out, "published %s %s\n", channel, id)
	return nil
}
