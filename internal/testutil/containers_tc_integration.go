//go:build integration

package testutil

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	tc "github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Gunvolt24/pos_print/internal/repo/postgres"
)

// StopFunc — остановка контейнера и связанных клиентов.
type StopFunc func(context.Context) error

var tcLogger = log.New(os.Stdout, "[tc] ", log.LstdFlags)

// lifecycleLog — строка в лог на каждом этапе жизни контейнера.
func lifecycleLog(l *log.Logger) tc.ContainerLifecycleHooks {
	stage := func(name string) []tc.ContainerHook {
		return []tc.ContainerHook{func(_ context.Context, c tc.Container) error {
			id := c.GetContainerID()
			if len(id) > 12 {
				id = id[:12]
			}
			l.Printf("%s id=%s", name, id)
			return nil
		}}
	}
	return tc.ContainerLifecycleHooks{
		PreCreates: []tc.ContainerRequestHook{func(_ context.Context, req tc.ContainerRequest) error {
			l.Printf("creating image=%s", req.Image)
			return nil
		}},
		PostStarts:     stage("started"),
		PostReadies:    stage("ready"),
		PreTerminates:  stage("terminating"),
		PostTerminates: stage("terminated"),
	}
}

// PGContainer — Postgres для хранилища конфигурации принтеров.
type PGContainer struct {
	Container *tcpostgres.PostgresContainer
	Pool      *pgxpool.Pool
	DSN       string
}

// StartPostgresTC — Postgres 16 и пул, собранный тем же postgres.NewPool, что и в сервисе.
// Схему накатывает ApplyMigrationsGoose.
func StartPostgresTC(ctx context.Context) (*PGContainer, StopFunc, error) {
	pg, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tc.WithLifecycleHooks(lifecycleLog(tcLogger)),
		tcpostgres.WithDatabase("pos_print"),
		tcpostgres.WithUsername("app"),
		tcpostgres.WithPassword("app"),
		tc.WithWaitStrategy(
			wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(60*time.Second),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run postgres: %w", err)
	}
	terminate := func() { _ = tc.TerminateContainer(pg) }

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		terminate()
		return nil, nil, fmt.Errorf("conn string: %w", err)
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolOptions{MaxConns: 5})
	if err != nil {
		terminate()
		return nil, nil, err
	}

	stop := func(context.Context) error {
		pool.Close()
		return tc.TerminateContainer(pg)
	}
	return &PGContainer{Container: pg, DSN: dsn, Pool: pool}, stop, nil
}

// KafkaEnv — Redpanda как брокер событий о продажах.
type KafkaEnv struct {
	Container *redpanda.Container
	Brokers   []string
	BaseTopic string
}

func StartKafkaTC(ctx context.Context, baseTopic string) (*KafkaEnv, StopFunc, error) {
	rp, err := redpanda.Run(ctx, "docker.redpanda.com/redpandadata/redpanda:v23.3.8",
		tc.WithLifecycleHooks(lifecycleLog(tcLogger)),
		redpanda.WithAutoCreateTopics(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run redpanda: %w", err)
	}

	seed, err := rp.KafkaSeedBroker(ctx)
	if err != nil {
		_ = tc.TerminateContainer(rp)
		return nil, nil, fmt.Errorf("seed broker: %w", err)
	}

	stop := func(context.Context) error { return tc.TerminateContainer(rp) }
	return &KafkaEnv{Container: rp, Brokers: []string{seed}, BaseTopic: baseTopic}, stop, nil
}

// NATSEnv — nats-server для событий о результатах печати.
type NATSEnv struct {
	Container tc.Container
	URL       string
}

// StartNATSTC — одиночный nats-server без JetStream; события печати публикуются в core NATS.
func StartNATSTC(ctx context.Context) (*NATSEnv, StopFunc, error) {
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:          "nats:2.10-alpine",
			ExposedPorts:   []string{"4222/tcp"},
			LifecycleHooks: []tc.ContainerLifecycleHooks{lifecycleLog(tcLogger)},
			WaitingFor:     wait.ForLog("Server is ready").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("run nats: %w", err)
	}

	endpoint, err := c.PortEndpoint(ctx, "4222/tcp", "nats")
	if err != nil {
		_ = tc.TerminateContainer(c)
		return nil, nil, fmt.Errorf("nats endpoint: %w", err)
	}

	stop := func(context.Context) error { return tc.TerminateContainer(c) }
	return &NATSEnv{Container: c, URL: endpoint}, stop, nil
}
