// Seed creates the topical groups (and a demo author) the API itself never
// creates: group management is an out-of-band administrative capability.
// Safe to rerun; existing rows are reported and skipped.
package main

import (
	"errors"
	"flag"
	"os"

	"inkwell/internal/config"
	"inkwell/internal/model"
	"inkwell/internal/pkg"
	"inkwell/internal/repository/mysql"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var groups = []model.Group{
	{Title: "Travel notes", Slug: "travel", Description: "Trips, routes and places worth the detour."},
	{Title: "Kitchen stories", Slug: "kitchen", Description: "Recipes and everything around them."},
	{Title: "Engineering", Slug: "engineering", Description: "Notes on building and running software."},
}

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

	groupRepo := &mysql.GroupRepository{DB: db}
	for i := range groups {
		err := groupRepo.Create(&groups[i])
		switch {
		case errors.Is(err, pkg.ErrConstraintViolation):
			log.Info("group exists, skipping", zap.String("slug", groups[i].Slug))
		case err != nil:
			log.Fatal("create group", zap.String("slug", groups[i].Slug), zap.Error(err))
		default:
			log.Info("group created", zap.String("slug", groups[i].Slug), zap.Uint64("id", groups[i].ID))
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("hash password", zap.Error(err))
	}
	demo := &model.User{Username: "demo", Email: "demo@example.com", Password: string(hash)}
	userRepo := &mysql.UserRepository{DB: db}
	switch err := userRepo.Create(demo); {
	case errors.Is(err, pkg.ErrConstraintViolation):
		log.Info("demo user exists, skipping")
	case err != nil:
		log.Fatal("create demo user", zap.Error(err))
	default:
		log.Info("demo user created", zap.Uint64("id", demo.ID))
	}
}
