package main

import (
	"flag"
	"os"

	"inkwell/internal/config"
	"inkwell/internal/model"
	"inkwell/internal/pkg"
	"inkwell/internal/repository/mysql"
	"inkwell/internal/repository/redis"
	"inkwell/internal/router"
	"inkwell/internal/service"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", os.Getenv("INKWELL_CONFIG"), "path to config file")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	db, err := mysql.Open(cfg.MySQLDSN)
	if err != nil {
		log.Fatal("connect mysql", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Post{},
		&model.Subscription{},
	); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatal("connect redis", zap.Error(err))
	}

	tokens := pkg.NewTokenManager(cfg.Auth.AccessSecret, cfg.Auth.RefreshSecret,
		cfg.Auth.AccessTTL.Std(), cfg.Auth.RefreshTTL.Std())
	sessions := &redis.SessionRepository{Client: rdb, TTL: tokens.AccessTTL()}
	codes := &redis.CodeRepository{Client: rdb}

	var events *pkg.EventProducer
	if len(cfg.Kafka.Brokers) > 0 {
		events = pkg.NewEventProducer(cfg.Kafka)
		defer events.Close()
	}

	userRepo := &mysql.UserRepository{DB: db}
	groupRepo := &mysql.GroupRepository{DB: db}
	postRepo := &mysql.PostRepository{DB: db}
	subRepo := &mysql.SubscriptionRepository{DB: db}

	emailSvc := service.NewEmailService(pkg.NewMailer(cfg.SMTP), codes, log)
	userSvc := service.NewUserService(userRepo, sessions, tokens, emailSvc)
	postSvc := service.NewPostService(postRepo, groupRepo, userRepo, subRepo,
		events, log, cfg.PostsPerPage, cfg.TitleChars)
	subSvc := service.NewSubscriptionService(subRepo, userRepo, events, log)

	r := router.New(router.Deps{
		Log:      log,
		Posts:    postSvc,
		Users:    userSvc,
		Subs:     subSvc,
		Email:    emailSvc,
		Tokens:   tokens,
		Sessions: sessions,
	})

	log.Info("listening", zap.String("addr", cfg.Addr))
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal("serve", zap.Error(err))
	}
}
