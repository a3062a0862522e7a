package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"courier-server/internal/agent"
	"courier-server/internal/engine"
	"courier-server/internal/infrastructure/storage"
	"courier-server/internal/search"
	"courier-server/internal/server"
	"courier-server/internal/version"
	"courier-server/pkg/gridmap"
	"courier-server/pkg/logger"
	"courier-server/pkg/utils"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var (
		mapPath     string
		algorithm   string
		experiments bool
		logDir      string
		seed        int64
		serve       bool
	)
	flag.StringVar(&mapPath, "map", "", "Path to the map file (e.g. maps/small.txt)")
	flag.StringVar(&algorithm, "algorithm", "", "Algorithm to run: 'ucs', 'a_star' or 'dynamic'")
	flag.BoolVar(&experiments, "experiments", false, "Run both static algorithms on the map and compare")
	flag.StringVar(&logDir, "logs", "logs", "Directory for simulation run logs")
	flag.Int64Var(&seed, "seed", 0, "Seed for generated maps (0 for random)")
	flag.BoolVar(&serve, "serve", false, "Start the websocket visualizer server")
	flag.Parse()

	logger.Log.Info("Starting Courier Server...")
	logger.Log.Info(version.String())

	cfg := engine.NewConfig()
	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("🎲 Using explicit seed: %d", seed)
	}

	// РЕЖИМ СЕРВЕРА-ВИЗУАЛИЗАТОРА
	if serve {
		runServer(cfg, logDir)
		return
	}

	// Headless-режимы требуют карту.
	if mapPath == "" {
		flag.Usage()
		logger.Log.Fatal("Please specify -map (and -algorithm or -experiments)")
	}

	if experiments {
		runExperiments(mapPath)
		return
	}

	switch algorithm {
	case "ucs", "a_star":
		runStatic(mapPath, algorithm)
	case "dynamic":
		runDynamic(mapPath, cfg, logDir)
	default:
		flag.Usage()
		logger.Log.Fatalf("Unknown algorithm %q. Choose 'ucs', 'a_star' or 'dynamic'", algorithm)
	}
}

// runServer поднимает websocket-сервер для фронтенда-визуализатора.
func runServer(cfg engine.Config, logDir string) {
	logger.Log.Info("📡 Mode: Visualizer Server")

	svc := engine.NewService(cfg)

	port := os.Getenv("COURIER_PORT")
	if port == "" {
		port = "8080"
	}

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	srv := server.New(svc, port)
	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	// Сохраняем run-логи всех активных сессий
	runLogs := storage.NewRunLogService(logDir)
	svc.ForEach(func(inst *engine.Instance) {
		if len(inst.Events) == 0 {
			return
		}
		if path, err := runLogs.Save(inst.ID, inst.Events); err != nil {
			logger.Log.WithError(err).Warnf("Failed to save run log for %s", inst.ID)
		} else {
			logger.Log.Infof("Run log saved to %s", path)
		}
	})

	logger.Log.Info("Done.")
}

// runStatic - один прогон статического алгоритма с выводом результатов.
func runStatic(mapPath, algorithm string) {
	grid, err := gridmap.Load(mapPath)
	if err != nil {
		logger.Log.Fatal("Error: ", err)
	}

	fmt.Printf("--- Running %s on %s ---\n", algorithm, mapPath)

	started := time.Now()
	var res search.Result
	if algorithm == "ucs" {
		res = search.UniformCost(grid, grid.Start, grid.Goal)
	} else {
		res = search.AStar(grid, grid.Start, grid.Goal)
	}
	elapsed := time.Since(started)

	printResult(res, elapsed)
}

// runExperiments гоняет оба статических алгоритма и печатает сравнение.
func runExperiments(mapPath string) {
	grid, err := gridmap.Load(mapPath)
	if err != nil {
		logger.Log.Fatal("Error: ", err)
	}

	for _, algorithm := range []string{"ucs", "a_star"} {
		fmt.Printf("--- Running %s on %s ---\n", algorithm, mapPath)

		started := time.Now()
		var res search.Result
		if algorithm == "ucs" {
			res = search.UniformCost(grid, grid.Start, grid.Goal)
		} else {
			res = search.AStar(grid, grid.Start, grid.Goal)
		}
		printResult(res, time.Since(started))
	}
}

// runDynamic - полная симуляция с репланированием и run-логом.
func runDynamic(mapPath string, cfg engine.Config, logDir string) {
	grid, err := gridmap.Load(mapPath)
	if err != nil {
		logger.Log.Fatal("Error: ", err)
	}

	inst := engine.NewInstance(utils.GenerateID(), grid, cfg)
	inst.Strategy = agent.StrategyAStar

	started := time.Now()
	if !inst.Plan() {
		logger.Log.Error("Initial plan failed. Exiting.")
		return
	}

	outcome := inst.Run()
	elapsed := time.Since(started)

	fmt.Printf("--- Simulation finished: %s (tick %d) ---\n", outcome, inst.Tick)
	printResult(search.Result{
		Path:          inst.Courier.Path,
		Cost:          inst.Courier.PathCost,
		NodesExpanded: inst.Courier.NodesExpanded,
	}, elapsed)

	runLogs := storage.NewRunLogService(logDir)
	if path, err := runLogs.Save(inst.ID, inst.Events); err != nil {
		logger.Log.WithError(err).Warn("Failed to save run log")
	} else {
		fmt.Printf("Simulation log saved to %s\n", path)
	}
}

// printResult печатает итоги прогона в формате, пригодном для сравнения.
func printResult(res search.Result, elapsed time.Duration) {
	fmt.Println("\n--- Results ---")
	if res.Found() {
		cells := make([]string, 0, len(res.Path))
		for _, p := range res.Path {
			cells = append(cells, p.String())
		}
		fmt.Printf("Path found: %s\n", strings.Join(cells, " -> "))
		fmt.Printf("Total Path Cost: %g\n", res.Cost)
	} else {
		fmt.Println("No path found.")
	}
	fmt.Printf("Nodes Expanded: %d\n", res.NodesExpanded)
	fmt.Printf("Execution Time: %.4f seconds\n", elapsed.Seconds())
	fmt.Println(strings.Repeat("-", 20))
}
