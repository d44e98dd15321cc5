package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/evkuzin/growstation/config"
	"github.com/evkuzin/growstation/weather_station/impl"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the yaml config")
	flag.Parse()

	logger := &logrus.Logger{
		Out:          os.Stdout,
		Formatter:    &logrus.TextFormatter{},
		Hooks:        make(logrus.LevelHooks),
		Level:        logrus.InfoLevel,
		ReportCaller: true,
	}

	conf, err := config.NewConfig(*configPath)
	if err != nil {
		logger.Errorf("cannot load config: %s", err.Error())
		os.Exit(1)
	}
	if level, err := logrus.ParseLevel(conf.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warnf("unknown log level %q, staying at %s", conf.LogLevel, logger.Level)
	}

	ws := impl.NewWeatherStation()
	if err = ws.Init(conf, logger); err != nil {
		logger.Errorf("cannot init grow station: %s", err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wg := &sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		ws.Start(ctx)
	}()

	srv := &http.Server{Addr: conf.HTTP.Addr, Handler: ws}
	shutdown := make(chan struct{})
	go func() {
		defer close(shutdown)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warnf("http shutdown: %v", err)
		}
	}()

	logger.Infof("listening on %s", conf.HTTP.Addr)
	if err = srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Warnf("Cannot start stats server. %v", err.Error())
		stop()
	}
	wg.Wait()
	<-shutdown
	if err = ws.Close(); err != nil {
		logger.Warnf("cannot close access log: %s", err.Error())
	}
	logger.Info("all threads killed, shutdown...")
}
