package main

import (
	"context"
	"flag"
	"hazard-server/internal/agent"
	"hazard-server/internal/config"
	"hazard-server/internal/engine"
	"hazard-server/internal/infrastructure/storage"
	"hazard-server/internal/registry"
	"hazard-server/internal/server"
	"hazard-server/internal/version"
	"hazard-server/pkg/logger"
	"hazard-server/pkg/scene"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var seed int64
	var replayPath string
	var botName string
	// Флаг -seed перекрывает HZ_SEED. 0 - брать из окружения.
	flag.Int64Var(&seed, "seed", 0, "Master seed for round scenes (0 = HZ_SEED or random)")
	flag.StringVar(&replayPath, "replay", "", "Path to .hzrp replay file to simulate")
	flag.StringVar(&botName, "bot", "", "Run an autoplay bot with this name alongside the server")
	flag.Parse()

	logger.Log.Info("Starting Hazard Hunt round server...")
	logger.Log.Info(version.String())

	cfg, err := config.Load()
	if err != nil {
		logger.Log.WithError(err).Fatal("Invalid configuration")
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	catalog := scene.Default()
	if cfg.SceneFile != "" {
		if catalog, err = scene.LoadFile(cfg.SceneFile); err != nil {
			logger.Log.WithError(err).Fatal("Failed to load scene catalog")
		}
	}

	// Реестр сессии: создается здесь и закрывается при выходе
	reg := registry.New(cfg.LeaderboardSize)
	defer reg.Close()
	if err := reg.SetDifficulty(cfg.DefaultDifficulty); err != nil {
		logger.Log.WithError(err).Warn("Default difficulty rejected, keeping easy")
	}

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		logger.Log.Info("Mode: Replay Simulation")
		runReplay(cfg.Engine(), reg, catalog, replayPath)
		return // Выходим после симуляции
	}

	var replays *storage.ReplayService
	if cfg.ReplayDir != "" {
		replays = storage.NewReplayService(cfg.ReplayDir)
	}

	if cfg.Seed != 0 {
		logger.Log.Infof("Using explicit Master Seed: %d", cfg.Seed)
	} else {
		logger.Log.Info("Using random seed per round")
	}

	// 2. Инициализация ядра с конфигом
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gameService := engine.NewService(cfg.Engine(), reg, catalog, replays)
	gameService.Start(ctx)

	if botName != "" {
		bot := agent.NewBot(botName, gameService, cfg.Seed)
		go bot.Run(ctx)
	}

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 3. Запуск сервера
	srv := server.New(gameService, cfg.Port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.WithError(err).Fatal("Server start error")
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	// Активный раунд завершается и сохраняет реплей
	active := gameService.ActiveInstance()
	cancel()
	if active != nil {
		select {
		case <-active.Done():
		case <-time.After(2 * time.Second):
			logger.Log.Warn("Round loop did not stop in time")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Warn("HTTP shutdown error")
	}

	logger.Log.Info("Done.")
}

func runReplay(cfg engine.Config, reg *registry.Registry, catalog *scene.Catalog, path string) {
	session, err := storage.NewReplayService(".").Load(path)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load replay")
	}

	svc := engine.NewService(cfg, reg, catalog, nil)
	res, err := svc.PlayReplay(session)
	if err != nil {
		logger.Log.WithError(err).Fatal("Replay failed")
	}

	entry := logger.Log.WithFields(logrus.Fields{
		"round_id": res.RoundID,
		"ticks":    res.Ticks,
		"score":    res.Score,
		"expected": res.Expected,
	})
	if !res.Match {
		entry.Warn("Replay diverged from the recorded score")
		return
	}
	entry.Info("Replay matches the recorded round")
}
