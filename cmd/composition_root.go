package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	httpadapter "github.com/Shmhzr/ai-voice/internal/adapters/in/http"
	"github.com/Shmhzr/ai-voice/internal/adapters/out/events"
	"github.com/Shmhzr/ai-voice/internal/adapters/out/menusource"
	"github.com/Shmhzr/ai-voice/internal/adapters/out/postgres"
	"github.com/Shmhzr/ai-voice/internal/adapters/out/sqlite"
	"github.com/Shmhzr/ai-voice/internal/core/application/catalog"
	"github.com/Shmhzr/ai-voice/internal/core/application/dispatcher"
	"github.com/Shmhzr/ai-voice/internal/core/application/session"
	"github.com/Shmhzr/ai-voice/internal/core/application/usecases/commands"
	"github.com/Shmhzr/ai-voice/internal/core/application/usecases/queries"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/kernel"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/menu"
	"github.com/Shmhzr/ai-voice/internal/core/domain/services"
	"github.com/Shmhzr/ai-voice/internal/core/ports"
	"github.com/Shmhzr/ai-voice/internal/jobs"
)

// CompositionRoot owns every long-lived component and hands out handlers
// wired to them.
type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	uowFactory commands.OrderUoWFactory
	orders     ports.OrderRepository
	ping       httpadapter.HealthCheck
	closeStore func() error

	bus      *events.Bus
	natsSink *events.NATSSink

	resolver *catalog.Resolver
	registry *session.Registry
	calls    *session.Directory
	rules    menusource.Rules
	pricing  services.PricingEngine
	clock    commands.Clock
}

func NewCompositionRoot(cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:      cfg,
		logger:   logger,
		calls:    session.NewDirectory(),
		clock:    commands.SystemClock{},
		registry: session.NewRegistry(session.WithIdleTTL(cfg.SessionIdleTTL), session.WithMaxSessions(cfg.SessionMax)),
	}

	rules, err := menusource.LoadRules(cfg.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	c.rules = rules
	c.pricing = services.NewPricingEngine(services.PricingPolicy{
		TaxRate:     cfg.TaxRate,
		DeliveryFee: cfg.DeliveryFee,
		Promos:      rules.Promos,
	})

	if err := c.openEvents(); err != nil {
		return nil, err
	}
	if err := c.openStore(); err != nil {
		c.closeEvents(context.Background())
		return nil, err
	}
	c.resolver = NewMenuResolver(cfg, logger, c.bus)

	return c, nil
}

func (c *CompositionRoot) openEvents() error {
	var sink events.Sink = events.NewLogSink(c.logger)
	if c.cfg.NATSURL != "" {
		natsSink, err := events.NewNATSSink(c.cfg.NATSURL, c.cfg.NATSSubjectPrefix)
		if err != nil {
			return err
		}
		c.natsSink = natsSink
		sink = events.MultiSink{sink, natsSink}
	}
	c.bus = events.NewBus(sink, c.logger, c.cfg.EventQueueSize)
	return nil
}

func (c *CompositionRoot) openStore() error {
	switch c.cfg.OrderStore {
	case StorePostgres:
		db, err := gorm.Open(postgresdriver.Open(c.cfg.PostgresDSN()), &gorm.Config{})
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		if err := postgres.Migrate(db); err != nil {
			return fmt.Errorf("migrate postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}

		factory := postgres.NewGormUnitOfWorkFactory(db)
		c.uowFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
			return factory.Create()
		})
		c.orders = factory.Create().OrderRepository()
		c.ping = sqlDB.PingContext
		c.closeStore = sqlDB.Close
	default:
		store, err := sqlite.Open(c.cfg.SQLitePath)
		if err != nil {
			return err
		}

		factory := store.UnitOfWorkFactory()
		c.uowFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
			return factory.Create()
		})
		c.orders = factory.Create().OrderRepository()
		c.ping = store.Ping
		c.closeStore = store.Close
	}
	return nil
}

// NewMenuResolver reads the menu from MENU_URL when set, otherwise from
// MENU_FILE. With both set, the file is the fallback for an unreachable URL.
func NewMenuResolver(cfg Config, logger *slog.Logger, publisher ports.EventPublisher) *catalog.Resolver {
	opts := []catalog.Option{
		catalog.WithTTL(cfg.MenuTTL),
		catalog.WithFetchTimeout(cfg.MenuFetchTimeout),
	}
	if publisher != nil {
		opts = append(opts, catalog.WithEvents(publisher))
	}

	var source ports.MenuSource
	switch {
	case cfg.MenuURL != "":
		source = menusource.NewHTTPSource(cfg.MenuURL, &http.Client{Timeout: cfg.MenuFetchTimeout})
		if cfg.MenuFile != "" {
			raw, err := menusource.NewFileSource(cfg.MenuFile).Fetch(context.Background())
			if err != nil {
				logger.Warn("fallback menu unavailable", "path", cfg.MenuFile, "error", err)
			} else {
				opts = append(opts, catalog.WithFallback(menu.Normalize(raw)))
			}
		}
	case cfg.MenuFile != "":
		source = menusource.NewFileSource(cfg.MenuFile)
	default:
		logger.Warn("no menu source configured; serving an empty menu")
	}

	return catalog.NewResolver(source, logger, opts...)
}

func (c *CompositionRoot) Resolver() *catalog.Resolver {
	return c.resolver
}

func (c *CompositionRoot) CreateFinalizeOrderCommandHandler() commands.FinalizeOrderCommandHandler {
	return commands.NewFinalizeOrderCommandHandler(
		c.resolver,
		c.registry,
		c.pricing,
		commands.NewPersistOrderCommandHandler(c.uowFactory),
		c.bus,
		c.clock,
		c.logger,
	)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.uowFactory, c.bus)
}

// CreateDispatcher wires every agent function to its use case.
func (c *CompositionRoot) CreateDispatcher() (*dispatcher.Dispatcher, error) {
	itemRules := commands.NewItemRules(c.rules.Toppings, c.rules.Addons)
	orderTypes := commands.NewSaveOrderTypeCommandHandler(c.registry, c.clock)
	finalize := c.CreateFinalizeOrderCommandHandler()

	h := dispatcher.Handlers{
		AddItem:         commands.NewAddItemCommandHandler(c.resolver, c.registry, itemRules),
		RemoveItem:      commands.NewRemoveItemCommandHandler(c.registry),
		ModifyItem:      commands.NewModifyItemCommandHandler(c.resolver, c.registry, itemRules),
		SetSizeQuantity: commands.NewSetSizeQuantityCommandHandler(c.resolver, c.registry, itemRules),
		SaveOrderType:   orderTypes,
		Contact:         commands.NewContactCommandHandler(c.registry),
		Checkout: commands.NewCheckoutOrderCommandHandler(
			c.resolver,
			c.registry,
			c.orders,
			kernel.RandomOrderNumbers{},
			c.pricing,
			orderTypes,
			finalize,
			c.bus,
			c.clock,
			c.logger,
		),
		Finalize:    finalize,
		Discard:     commands.NewDiscardOrderCommandHandler(c.registry, c.bus),
		Session:     queries.NewSessionQueryHandler(c.registry),
		OrderStatus: queries.NewOrderStatusQueryHandler(c.orders, c.bus),
		MenuSummary: queries.NewMenuSummaryQueryHandler(c.resolver),
	}

	return dispatcher.New(c.calls, c.bus, c.logger, dispatcher.Operations(h)...)
}

func (c *CompositionRoot) CreateHTTPServer() (*httpadapter.Server, error) {
	d, err := c.CreateDispatcher()
	if err != nil {
		return nil, err
	}
	return httpadapter.NewServer(
		d,
		c.calls,
		c.CreateUpdateOrderStatusCommandHandler(),
		queries.NewMenuSummaryQueryHandler(c.resolver),
		queries.NewOrderReadQueryHandler(c.orders),
	), nil
}

func (c *CompositionRoot) HealthChecks() []httpadapter.HealthCheck {
	return []httpadapter.HealthCheck{c.ping}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.resolver, c.registry, jobs.Schedules{
		MenuRefresh:      c.cfg.MenuRefreshSchedule,
		MenuFetchTimeout: c.cfg.MenuFetchTimeout,
		SessionReap:      c.cfg.SessionReapSchedule,
	}, c.logger)
}

// Close flushes queued events and releases the store.
func (c *CompositionRoot) Close(ctx context.Context) error {
	var errs []error
	errs = append(errs, c.closeEvents(ctx))
	if c.closeStore != nil {
		errs = append(errs, c.closeStore())
	}
	return errors.Join(errs...)
}

func (c *CompositionRoot) closeEvents(ctx context.Context) error {
	var errs []error
	if c.bus != nil {
		errs = append(errs, c.bus.Close(ctx))
		if dropped := c.bus.Dropped(); dropped > 0 {
			c.logger.Warn("events were dropped", "count", dropped)
		}
	}
	if c.natsSink != nil {
		errs = append(errs, c.natsSink.Close())
	}
	return errors.Join(errs...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func NewLogger(cfg Config, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
