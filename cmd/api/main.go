package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/inte-real/inte-real-backend/config"
	"github.com/inte-real/inte-real-backend/internal/bootstrap"
	"github.com/inte-real/inte-real-backend/internal/genimage"
	"github.com/inte-real/inte-real-backend/internal/notify"
	"github.com/inte-real/inte-real-backend/internal/pipeline/service"
	"github.com/inte-real/inte-real-backend/internal/remote"
	"github.com/inte-real/inte-real-backend/internal/settings"
	"github.com/inte-real/inte-real-backend/internal/storage/localstore"
	"github.com/inte-real/inte-real-backend/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[error] config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var backend localstore.Backend
	if cfg.Storage.RedisAddr != "" {
		rdb, err := bootstrap.OpenRedis(ctx, cfg.Storage.RedisAddr)
		if err != nil {
			log.Fatalf("[error] redis: %v", err)
		}
		defer rdb.Close()
		backend = localstore.NewRedisBackend(rdb)
		log.Printf("[info] snapshot store: redis (%s)", cfg.Storage.RedisAddr)
	} else {
		fb, err := localstore.NewFileBackend(cfg.Storage.DataDir)
		if err != nil {
			log.Fatalf("[error] file backend: %v", err)
		}
		backend = fb
		log.Printf("[info] snapshot store: files (%s)", cfg.Storage.DataDir)
	}
	local := localstore.New(backend)

	var archiveDB *sql.DB
	var archive *postgres.PromptArchive
	if cfg.Storage.DBDSN != "" {
		archiveDB, err = postgres.Open(ctx, cfg.Storage.DBDSN)
		if err != nil {
			log.Fatalf("[error] postgres: %v", err)
		}
		defer archiveDB.Close()
		archive = postgres.NewPromptArchive(archiveDB)
		if err := archive.EnsureSchema(ctx); err != nil {
			log.Fatalf("[error] archive schema: %v", err)
		}
		log.Println("[info] prompt archive enabled")
	}

	var client *remote.Client
	var outbox *remote.Outbox
	if cfg.Firebase.CredentialsPath != "" {
		fs, err := remote.InitializeFirestore(ctx, cfg.Firebase.CredentialsPath)
		if err != nil {
			log.Fatalf("[error] firestore: %v", err)
		}
		defer fs.Close()
		client = remote.NewClient(fs)
		client.SetIdentity(remote.LoadOrCreateIdentity(ctx, local))
		outbox = remote.NewOutbox(client)
		log.Printf("[info] remote mirror enabled (uid=%s)", client.Identity())
	} else {
		outbox = remote.NewOutbox(nil)
		log.Println("[info] remote mirror disabled; running local-only")
	}

	notifier := notify.NewStore(ctx, local)
	settingsSvc := settings.NewService(ctx, local, client)
	svc := service.NewProjectService(ctx, local, outbox, archive, notifier)

	if client != nil {
		// Remote is the source of truth at session start: pull once before
		// the outbox begins pushing local writes.
		if projects, err := client.FetchAllProjects(ctx); err == nil {
			if len(projects) > 0 {
				svc.ReconcileFromRemote(ctx, projects)
			}
		} else {
			log.Printf("[warn] initial project sync: %v", err)
		}
		if prompts, err := client.FetchAllPrompts(ctx); err == nil {
			if len(prompts) > 0 {
				svc.ReconcilePrompts(ctx, prompts)
			}
		} else {
			log.Printf("[warn] initial prompt sync: %v", err)
		}
		settingsSvc.ReconcileFromRemote(ctx)
	}

	outbox.Start(ctx, 2*time.Second)
	defer outbox.Stop()

	sched, err := remote.NewScheduler(cfg.Sync.CronSpec, outbox, func(ctx context.Context) {
		if client == nil {
			return
		}
		if projects, err := client.FetchAllProjects(ctx); err == nil && len(projects) > 0 {
			svc.ReconcileFromRemote(ctx, projects)
		}
		if prompts, err := client.FetchAllPrompts(ctx); err == nil && len(prompts) > 0 {
			svc.ReconcilePrompts(ctx, prompts)
		}
	})
	if err != nil {
		log.Fatalf("[error] scheduler: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	gen := genimage.NewClient(genimage.Config{
		APIKey:        cfg.Gemini.APIKey,
		PrimaryModel:  cfg.Gemini.PrimaryModel,
		FallbackModel: cfg.Gemini.FallbackModel,
		RPM:           cfg.Gemini.RPM,
	})

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "inte-real-backend",
		Version:     cfg.App.Version,
		CORSOrigins: cfg.Server.CORSOrigins,
		Projects:    svc,
		Remote:      client,
		Outbox:      outbox,
		Genimage:    gen,
		Notify:      notifier,
		Settings:    settingsSvc,
		ArchiveDB:   archiveDB,
	})

	log.Printf("[info] listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("[error] server: %v", err)
	}
}
