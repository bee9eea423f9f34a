package apikit

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-apikit/core"
	"github.com/goliatone/go-apikit/logging"
	"github.com/goliatone/go-apikit/strategy"
)

type Config = core.Config

type Logger = core.Logger

type LoggerProvider = core.LoggerProvider

type ConfigProvider = core.ConfigProvider

type OptionsResolver = core.OptionsResolver

// ErrorMapper converts arbitrary errors into the categorized envelope the
// kit reports at its boundary.
type ErrorMapper func(error) *goerrors.Error

func DefaultConfig() Config {
	return core.DefaultConfig()
}

// Kit wires the resolved configuration, logger, scope strategies, and error
// mapping into a single entry point.
type Kit struct {
	config          Config
	logger          Logger
	loggerProvider  LoggerProvider
	configProvider  ConfigProvider
	optionsResolver OptionsResolver
	errorMapper     ErrorMapper
	strategies      *strategy.Registry
}

type kitBuilder struct {
	runtimeConfig   Config
	logger          Logger
	loggerProvider  LoggerProvider
	configProvider  ConfigProvider
	optionsResolver OptionsResolver
	errorMapper     ErrorMapper
	strategies      []strategy.Strategy
	masking         bool
}

type Option func(*kitBuilder)

func WithLogger(logger Logger) Option {
	return func(b *kitBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider LoggerProvider) Option {
	return func(b *kitBuilder) {
		b.loggerProvider = provider
	}
}

func WithConfigProvider(provider ConfigProvider) Option {
	return func(b *kitBuilder) {
		b.configProvider = provider
	}
}

func WithOptionsResolver(resolver OptionsResolver) Option {
	return func(b *kitBuilder) {
		b.optionsResolver = resolver
	}
}

func WithErrorMapper(mapper ErrorMapper) Option {
	return func(b *kitBuilder) {
		b.errorMapper = mapper
	}
}

// WithStrategy registers an additional strategy next to the scope strategy
// derived from the resolved configuration.
func WithStrategy(s strategy.Strategy) Option {
	return func(b *kitBuilder) {
		b.strategies = append(b.strategies, s)
	}
}

// WithSecretMasking masks registered secrets in every log record the kit
// logger emits.
func WithSecretMasking() Option {
	return func(b *kitBuilder) {
		b.masking = true
	}
}

// New builds a Kit with a background context. See Setup.
func New(cfg Config, options ...Option) (*Kit, error) {
	return Setup(context.Background(), cfg, options...)
}

// Setup resolves configuration through the defaults, loaded, and runtime
// layers, builds the leveled logger, and seeds the strategy registry with a
// scope strategy using the resolved delimiter.
func Setup(ctx context.Context, cfg Config, options ...Option) (*Kit, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	builder := kitBuilder{runtimeConfig: cfg}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	if builder.configProvider == nil {
		builder.configProvider = core.NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = core.GoOptionsResolver{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = core.MapError
	}

	defaults := core.DefaultConfig()
	loaded, err := builder.configProvider.Load(ctx, defaults)
	if err != nil {
		return nil, builder.errorMapper(err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, builder.errorMapper(err)
	}

	loggingOptions := []logging.Option{
		logging.WithName(finalConfig.ServiceName),
	}
	if builder.logger != nil {
		loggingOptions = append(loggingOptions, logging.WithBase(builder.logger))
	}
	if builder.loggerProvider != nil {
		loggingOptions = append(loggingOptions, logging.WithProvider(builder.loggerProvider))
	}
	if builder.masking {
		loggingOptions = append(loggingOptions, logging.WithMasking())
	}
	logger, err := logging.Setup(finalConfig.LogLevel, loggingOptions...)
	if err != nil {
		return nil, builder.errorMapper(err)
	}

	registry := strategy.NewRegistry()
	scopeStrategy, err := strategy.NewScopeStrategy(finalConfig.ScopeDelimiter)
	if err != nil {
		return nil, builder.errorMapper(err)
	}
	if err := registry.Register(scopeStrategy); err != nil {
		return nil, builder.errorMapper(err)
	}
	for _, s := range builder.strategies {
		if err := registry.Register(s); err != nil {
			return nil, builder.errorMapper(err)
		}
	}

	logger.Debug("kit initialized",
		"service_name", finalConfig.ServiceName,
		"log_level", finalConfig.LogLevel,
		"strategies", len(registry.List()),
	)

	return &Kit{
		config:          finalConfig,
		logger:          logger,
		loggerProvider:  builder.loggerProvider,
		configProvider:  builder.configProvider,
		optionsResolver: builder.optionsResolver,
		errorMapper:     builder.errorMapper,
		strategies:      registry,
	}, nil
}

func (k *Kit) Config() Config {
	return k.config
}

func (k *Kit) Logger() Logger {
	return glog.Ensure(k.logger)
}

// Strategies exposes the kit's strategy registry.
func (k *Kit) Strategies() *strategy.Registry {
	return k.strategies
}

// ScopeStrategy returns the scope strategy seeded from the resolved
// configuration delimiter.
func (k *Kit) ScopeStrategy() (*strategy.ScopeStrategy, error) {
	s, err := k.strategies.Get(strategy.ScopeStrategyName)
	if err != nil {
		return nil, err
	}
	scoped, ok := s.(*strategy.ScopeStrategy)
	if !ok {
		return nil, fmt.Errorf("apikit: registered scope strategy has unexpected type %T", s)
	}
	return scoped, nil
}

// MapError converts an error into the kit's categorized envelope.
func (k *Kit) MapError(err error) *goerrors.Error {
	if err == nil {
		return nil
	}
	mapper := k.errorMapper
	if mapper == nil {
		mapper = core.MapError
	}
	return mapper(err)
}
