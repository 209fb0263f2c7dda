package main

import (
	"context"
	"fmt"
	"net/http"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appHandler "licensing/internal/application/handler"
	appService "licensing/internal/application/service"
	jwttoken "licensing/internal/jwt_token"
	"licensing/internal/ledger"
	"licensing/internal/ledger/evm"
	"licensing/internal/ledger/memory"
	licenseeHandler "licensing/internal/licensee/handler"
	licenseeService "licensing/internal/licensee/service"
	"licensing/internal/permit/fees"
	permitHandler "licensing/internal/permit/handler"
	"licensing/internal/permit/oracle"
	"licensing/internal/platform/config"
	"licensing/internal/platform/health"
	"licensing/internal/platform/metrics"
	platformmongo "licensing/internal/platform/mongo"
	platformredis "licensing/internal/platform/redis"
	"licensing/internal/platform/tracer"
	"licensing/internal/seeder"
	httptransport "licensing/internal/transport/http"
	userHandler "licensing/internal/user/handler"
	userService "licensing/internal/user/service"
	sessionStore "licensing/internal/user/store/session"
	userStore "licensing/internal/user/store/user"
	"licensing/pkg/platform/circuit"
)

// app owns the process-wide dependencies.
type app struct {
	handler http.Handler
	metrics *metrics.Metrics
	redis   *platformredis.Client
	closers []func(context.Context) error
}

// backends are the stores and ledger the services run on.
type backends struct {
	users    userService.UserStore
	sessions userService.SessionStore
	ledger   ledger.Client
	cache    goredis.Cmdable
}

// permitOracle answers both the fee resolver and the permit endpoint.
type permitOracle interface {
	oracle.TermsSource
	fees.PermitOracle
}

func newApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app, error) {
	a := &app{metrics: metrics.New()}
	hc := health.New(cfg.App.Environment)

	var b backends
	if err := a.connectStores(ctx, cfg, log, hc, &b); err != nil {
		a.Close(ctx)
		return nil, err
	}
	mem, err := a.connectLedger(ctx, cfg, log, hc, &b)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	rdb, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}
	if rdb != nil {
		log.Info("redis connected, permit cache enabled")
		a.redis = rdb
		b.cache = rdb
		hc.RegisterOptional("redis", rdb.Health)
		a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
	}

	if mem != nil {
		if err := seeder.New(mem, b.users, log).SeedAll(ctx); err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
	}

	a.handler = buildHandler(cfg, log, a.metrics, hc, b)
	return a, nil
}

func (a *app) connectStores(ctx context.Context, cfg *config.Config, log *zap.Logger, hc *health.Handler, b *backends) error {
	mc, err := platformmongo.New(ctx, cfg.MongoDB)
	if err != nil {
		return err
	}
	if mc == nil {
		log.Info("mongodb not configured, using in-memory user store")
		b.users = userStore.New()
		b.sessions = sessionStore.New()
		return nil
	}
	a.closers = append(a.closers, mc.Close)
	hc.RegisterCheck("mongodb", mc.Health)

	users := userStore.NewMongo(mc.Database())
	if err := users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	sessions := sessionStore.NewMongo(mc.Database())
	if err := sessions.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("session indexes: %w", err)
	}
	log.Info("mongodb connected", zap.String("database", cfg.MongoDB.Database))
	b.users, b.sessions = users, sessions
	return nil
}

// connectLedger dials the License contract. Without an RPC URL the in-memory
// ledger is used and returned so it can be seeded.
func (a *app) connectLedger(ctx context.Context, cfg *config.Config, log *zap.Logger, hc *health.Handler, b *backends) (*memory.Ledger, error) {
	if cfg.Ledger.RPCURL == "" {
		log.Warn("ledger rpc not configured, using in-memory ledger")
		mem := memory.New()
		b.ledger = mem
		return mem, nil
	}

	client, err := evm.Dial(ctx, cfg.Ledger.RPCURL, cfg.Ledger.LicenseAddress,
		evm.WithTimeout(cfg.Ledger.Timeout),
		evm.WithTracer(tracer.NewOTel(tracer.WithCommonAttributes(
			tracer.String(tracer.AttrContract, cfg.Ledger.LicenseAddress)))),
		evm.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func(context.Context) error { client.Close(); return nil })
	hc.RegisterCheck("ledger", func(ctx context.Context) error {
		_, err := client.GetLicense(ctx, ledger.PermitHash(fees.AssetCreation))
		return err
	})
	log.Info("ledger connected", zap.String("license_address", cfg.Ledger.LicenseAddress))
	b.ledger = ledger.NewResilient(client, circuit.New("ledger",
		circuit.WithFailureThreshold(cfg.Ledger.BreakerThreshold),
		circuit.WithCooldown(cfg.Ledger.BreakerCooldown),
	), log)
	return nil, nil
}

// Close releases connections in reverse order of acquisition.
func (a *app) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i](ctx)
	}
	a.closers = nil
}

func buildHandler(cfg *config.Config, log *zap.Logger, m *metrics.Metrics, hc *health.Handler, b backends) http.Handler {
	var permits permitOracle = oracle.NewLedger(b.ledger)
	if b.cache != nil {
		permits = oracle.NewCache(oracle.NewLedger(b.ledger), b.cache,
			oracle.WithTTL(cfg.Permit.CacheTTL),
			oracle.WithLogger(log),
			oracle.WithTracer(tracer.NewOTel()),
			oracle.WithMetrics(m),
		)
	}

	tokens := jwttoken.NewJWTService(cfg.Session.SigningKey, cfg.Session.Issuer, cfg.Session.TTL)
	users := userService.NewService(b.users, b.sessions, tokens,
		userService.WithLogger(log),
		userService.WithMetrics(m),
		userService.WithSessionTTL(tokens.TTL()),
	)
	applications := appService.New(fees.NewResolver(permits), b.ledger,
		appService.WithLogger(log),
		appService.WithMetrics(m),
	)
	licensees := licenseeService.New(b.ledger,
		licenseeService.WithLogger(log),
		licenseeService.WithMetrics(m),
	)

	userH := userHandler.New(users, log)
	licenseeH := licenseeHandler.New(licensees, log)

	return httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		Latency:        m,
		Metrics:        m.Handler(),
		Sessions:       jwttoken.NewJWTServiceAdapter(tokens),
		SessionChecker: users,
		Public: []httptransport.Routes{
			hc,
			userH,
			appHandler.New(applications, log),
			licenseeH,
			permitHandler.New(permits, log),
		},
		Authenticated: []httptransport.AuthenticatedRoutes{userH, licenseeH},
	})
}
