// Package cmd is the webshield service entry point.  It contains the on-disk
// configuration file utilities, signal processing logic, and the small debug
// HTTP API.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/webshield/webshield"
	"github.com/webshield/webshield/internal/version"
	"github.com/webshield/webshield/metrics"
)

// Main is the entry point of the application.
func Main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	envs := errors.Must(parseEnvironment())
	errors.Check(envs.Validate())

	lvl := errors.Must(slogutil.VerbosityToLevel(envs.Verbosity))
	baseLogger := slogutil.New(&slogutil.Config{
		// Don't use [slogutil.NewFormat] here, because the value is
		// validated.
		Format:       slogutil.Format(envs.LogFormat),
		AddTimestamp: envs.LogTimestamp,
		Level:        lvl,
	})

	mainLogger := baseLogger.With(slogutil.KeyPrefix, "main")
	mainLogger.InfoContext(
		ctx,
		"webshield starting",
		"version", version.Version(),
		"revision", version.Revision(),
	)

	metrics.SetUpGauge(version.Version(), runtime.Version())

	c := errors.Must(parseConfig(envs.ConfPath))
	errors.Check(c.Validate())

	var urlCacheCount, domainCacheCount int
	if c.Cache != nil {
		urlCacheCount = c.Cache.URLSize
		domainCacheCount = c.Cache.DomainSize
	}

	engine := webshield.NewEngine(&webshield.Config{
		Logger:           baseLogger.With(slogutil.KeyPrefix, "engine"),
		Metrics:          metrics.Engine{},
		URLCacheCount:    urlCacheCount,
		DomainCacheCount: domainCacheCount,
	})

	if c.LoadDefaultLists {
		errors.Check(engine.LoadDefaultFilterLists(ctx))
	}

	for _, fl := range c.FilterLists {
		text := errors.Must(os.ReadFile(fl.Path))
		errors.Check(engine.LoadFilterList(ctx, fl.Name, string(text)))
	}

	web := newWebSvc(&webSvcConfig{
		logger: baseLogger.With(slogutil.KeyPrefix, "websvc"),
		engine: engine,
		addr:   envs.ListenAddr,
	})

	errors.Check(web.Start(ctx))

	<-ctx.Done()

	shutdownCtx := context.WithoutCancel(ctx)
	errors.Check(web.Shutdown(shutdownCtx))

	mainLogger.InfoContext(shutdownCtx, "webshield stopped")
}
