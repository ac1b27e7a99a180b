package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"chronopulse/artifact"
	qhttp "chronopulse/http"
	"chronopulse/logging"
	"chronopulse/monitoring"
	"chronopulse/predict"
)

type Config struct {
	Artifacts artifact.Paths `yaml:"artifacts"`
	Cache     struct {
		Size int `yaml:"size"`
	} `yaml:"cache"`
	HTTP struct {
		Port           int      `yaml:"port"`
		TimeoutSeconds int      `yaml:"timeout_seconds"`
		MaxRequestSize int64    `yaml:"max_request_size"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"http"`
	Log logging.Config `yaml:"log"`
}

func main() {
	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	config, err := loadConfig(configPath)
	if err != nil {
		println("failed to load config:", err.Error())
		os.Exit(1)
	}

	logger, err := logging.NewLogger(config.Log)
	if err != nil {
		println("failed to build logger:", err.Error())
		os.Exit(1)
	}
	defer logger.Sync()

	// the artifact bundle is the process-wide read-only state; a broken
	// bundle means the service must not start
	bundle, err := artifact.Load(config.Artifacts)
	if err != nil {
		logger.Fatal("failed to load artifact bundle", zap.Error(err))
	}
	meta := bundle.Metadata()
	logger.Info("artifact bundle loaded",
		zap.String("model", meta.ModelName),
		zap.Float64("accuracy", meta.Accuracy),
		zap.Int("features", len(bundle.FeatureNames())),
		zap.Strings("classes", meta.Classes))

	watcher, err := artifact.NewWatcher(config.Artifacts, logger)
	if err != nil {
		logger.Fatal("failed to watch artifacts", zap.Error(err))
	}
	defer watcher.Close()

	service, err := predict.NewService(bundle, config.Cache.Size, logger)
	if err != nil {
		logger.Fatal("failed to build prediction service", zap.Error(err))
	}

	metrics := monitoring.NewPredictionMetrics()
	hub := monitoring.NewHub(logger)
	go hub.Run()
	defer hub.Stop()

	api := qhttp.NewAPI(service, metrics, hub, watcher, logger)
	server := qhttp.NewServer(qhttp.ServerConfig{
		Port:           config.HTTP.Port,
		Timeout:        time.Duration(config.HTTP.TimeoutSeconds) * time.Second,
		MaxRequestSize: config.HTTP.MaxRequestSize,
		AllowedOrigins: config.HTTP.AllowedOrigins,
	}, api, logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()
	hub.PublishStatus(monitoring.SystemStatusMessage{Status: "running", Message: "service started"})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	hub.PublishStatus(monitoring.SystemStatusMessage{Status: "stopping", Message: "service stopping"})
	if err := server.Stop(); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	logger.Info("exiting")
}

func loadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
