package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"reelforge/api"
	"reelforge/assets"
	"reelforge/config"
	"reelforge/jobs"
	"reelforge/kafka"
	"reelforge/render"
	"reelforge/storage"
)

func main() {
	kafkaMode := flag.Bool("kafka", false, "consume render requests from Kafka instead of serving HTTP")
	flag.Parse()

	config.LoadEnv()

	manager, err := buildManager()
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	if *kafkaMode {
		runKafka(manager)
		return
	}
	runHTTP(manager)
}

// buildManager wires the store, renderer, asset library and optional
// artifact uploader from the environment.
func buildManager() (*jobs.Manager, error) {
	store, err := buildStore()
	if err != nil {
		return nil, err
	}

	library := assets.NewLibrary(config.GetEnvOrDefault("ASSET_DIR", "assets_data"))

	renderer := &render.Renderer{
		FFmpegPath: config.GetEnvOrDefault("FFMPEG_PATH", "ffmpeg"),
		Timeout:    renderTimeout(),
	}

	var uploader jobs.ArtifactUploader
	if bucket := os.Getenv("ARTIFACT_S3_BUCKET"); bucket != "" {
		s3, err := storage.NewS3(context.Background(), storage.Config{
			Region:       os.Getenv("ARTIFACT_S3_REGION"),
			Bucket:       bucket,
			Prefix:       os.Getenv("ARTIFACT_S3_PREFIX"),
			UsePathStyle: strings.EqualFold(os.Getenv("ARTIFACT_S3_USE_PATH_STYLE"), "true"),
		})
		if err != nil {
			log.Printf("warning: s3 artifact uploads disabled: %v", err)
		} else {
			log.Printf("artifact uploads enabled to bucket %s", bucket)
			uploader = s3
		}
	}

	maxConcurrent := config.MaxConcurrentRenders
	if v := os.Getenv("MAX_CONCURRENT_RENDERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxConcurrent = n
		}
	}

	return jobs.NewManager(jobs.ManagerConfig{
		Store:         store,
		Renderer:      renderer,
		Library:       library,
		Uploader:      uploader,
		BaseDir:       config.GetEnvOrDefault("WORK_DIR", config.WorkDirName),
		MaxConcurrent: maxConcurrent,
	}), nil
}

func buildStore() (jobs.Store, error) {
	if config.GetEnvOrDefault("JOB_STORE", "file") == "redis" {
		store, err := jobs.NewRedisStoreFromEnv()
		if err != nil {
			return nil, err
		}
		log.Println("using redis job store")
		return store, nil
	}
	return jobs.NewFileStore(config.GetEnvOrDefault("JOBS_DIR", config.JobsDirName))
}

func renderTimeout() time.Duration {
	if v := os.Getenv("RENDER_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return config.DefaultRenderTimeout
}

func runHTTP(manager *jobs.Manager) {
	addr := ":8000"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	r := api.NewRouter(manager)
	log.Printf("Starting render service on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  POST   /generate-video")
	log.Println("  GET    /job/:id")
	log.Println("  GET    /job/:id/download")
	log.Println("  DELETE /job/:id")

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runKafka(manager *jobs.Manager) {
	consumer, err := kafka.NewConsumer(kafka.ConsumerConfigFromEnv(kafka.NewIntakeHandler(manager)))
	if err != nil {
		log.Fatalf("kafka setup failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		log.Fatalf("kafka consumer failed: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("shutting down")
	cancel()
	if err := consumer.Close(); err != nil {
		log.Printf("consumer close error: %v", err)
	}
	manager.Wait()
}
