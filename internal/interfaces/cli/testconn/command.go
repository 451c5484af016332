// Package testconn checks that the configured backing services are reachable.
package testconn

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"remotcyberhelp/internal/domain/ticket"
	"remotcyberhelp/internal/infrastructure/cache"
	"remotcyberhelp/internal/infrastructure/mongodb"
	"remotcyberhelp/internal/infrastructure/repository"
	"remotcyberhelp/internal/interfaces/cli/bootstrap"
	"remotcyberhelp/internal/shared/biztime"
)

var (
	env     string
	timeout time.Duration
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "test-connection",
		Aliases: []string{"testconn"},
		Short:   "Ping the database, MongoDB and Redis and read the ticket counter",
		RunE:    run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Timeout for each check")

	return cmd
}

// check returns an optional detail shown next to a passing result.
type check struct {
	name string
	fn   func(ctx context.Context) (string, error)
}

func run(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap.Open(cmd.Context(), bootstrap.ResolveEnv(env))
	if err != nil {
		return err
	}
	defer rt.Close(context.Background())

	checks := []check{{
		name: "database (" + rt.Config.Database.Driver + ")",
		fn: func(ctx context.Context) (string, error) {
			sqlDB, err := rt.DB.DB()
			if err != nil {
				return "", err
			}
			return "", sqlDB.PingContext(ctx)
		},
	}}

	if rt.Mongo != nil {
		checks = append(checks, check{
			name: "mongodb",
			fn: func(ctx context.Context) (string, error) {
				return "", rt.Mongo.Ping(ctx, readpref.Primary())
			},
		})
	}

	if rt.Config.Redis.Enabled() {
		checks = append(checks, check{
			name: "redis",
			fn: func(ctx context.Context) (string, error) {
				client, err := cache.NewRedisClient(ctx, &rt.Config.Redis)
				if err != nil {
					return "", err
				}
				return "", client.Close()
			},
		})
	}

	checks = append(checks, check{
		name: "ticket counter (" + counterSource(rt) + ")",
		fn: func(ctx context.Context) (string, error) {
			reader, closeFn, err := openCounter(ctx, rt)
			if err != nil {
				return "", err
			}
			defer closeFn()
			return counterDetail(ctx, reader, biztime.ToBizTimezone(biztime.NowUTC()))
		},
	})

	if failed := runChecks(cmd.Context(), cmd.OutOrStdout(), checks, timeout); failed > 0 {
		return fmt.Errorf("%d connection check(s) failed", failed)
	}
	return nil
}

func counterSource(rt *bootstrap.Runtime) string {
	switch {
	case rt.Config.Storage.Counter == "redis":
		return "redis"
	case rt.Config.Storage.Backend == "mongo":
		return "mongodb"
	default:
		return "sql"
	}
}

// openCounter returns the counter store the allocator uses for this config.
func openCounter(ctx context.Context, rt *bootstrap.Runtime) (ticket.CounterReader, func(), error) {
	switch counterSource(rt) {
	case "redis":
		client, err := cache.NewRedisClient(ctx, &rt.Config.Redis)
		if err != nil {
			return nil, nil, err
		}
		return cache.NewRedisCounterStore(client), func() { _ = client.Close() }, nil
	case "mongodb":
		if rt.MongoDB == nil {
			return nil, nil, fmt.Errorf("mongodb is not connected")
		}
		return mongodb.NewCounterStore(rt.MongoDB), func() {}, nil
	default:
		return repository.NewCounterStore(rt.DB), func() {}, nil
	}
}

// counterDetail reports how many ticket numbers were issued in now's month.
func counterDetail(ctx context.Context, reader ticket.CounterReader, now time.Time) (string, error) {
	key := ticket.BucketKey(ticket.DefaultBucket, now)
	seq, err := reader.Current(ctx, key)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s=%d", key, seq), nil
}

func runChecks(ctx context.Context, w io.Writer, checks []check, timeout time.Duration) int {
	failed := 0
	for _, c := range checks {
		cctx, cancel := context.WithTimeout(ctx, timeout)
		start := time.Now()
		detail, err := c.fn(cctx)
		cancel()
		if err != nil {
			failed++
			fmt.Fprintf(w, "FAIL  %-20s %v\n", c.name, err)
			continue
		}
		fmt.Fprintf(w, "OK    %-20s %s", c.name, time.Since(start).Round(time.Millisecond))
		if detail != "" {
			fmt.Fprintf(w, "  %s", detail)
		}
		fmt.Fprintln(w)
	}
	return failed
}
