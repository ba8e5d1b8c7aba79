// Package main is the entry point for the portfolio API server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/auth"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/config"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/database"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/oauth"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/router"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/services"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/version"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	showVersion := flag.Bool("version", false, "show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("Portfolio API %s\n", version.Version)
		fmt.Printf("Build Time: %s\n", version.BuildTime)
		fmt.Printf("Git Commit: %s\n", version.GitCommit)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Warning: Could not load config from %s: %v", *configPath, err)
		log.Println("Using default configuration...")
		cfg, _ = config.Load("")
	}

	if cfg.Auth.JWTSecret == "" {
		log.Fatalf("Application startup aborted: auth.jwt_secret is required (generate one with: openssl rand -hex 32)")
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TOTPIssuer, cfg.Auth.GetAccessTokenTTL(), cfg.Auth.GetRefreshTokenTTL())
	if err != nil {
		log.Fatalf("Failed to initialize token service: %v", err)
	}

	userService := services.NewUserService(db, cfg)
	if err := userService.EnsureSuperAdmin(); err != nil {
		log.Fatalf("Failed to ensure super admin account: %v", err)
	}

	mediaService, err := services.NewMediaService(db, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize media storage: %v", err)
	}

	oauthClient := oauth.NewClient(cfg.OAuth)
	authService := services.NewAuthService(cfg, userService, tokens, oauthClient)

	svc := router.Services{
		Tokens:       tokens,
		Auth:         authService,
		Users:        userService,
		Audit:        services.NewAuditService(db),
		Projects:     services.NewProjectService(db),
		Academics:    services.NewAcademicService(db),
		TechStacks:   services.NewTechStackService(db),
		Testimonials: services.NewTestimonialService(db),
		Media:        mediaService,
		Contact:      services.NewContactService(db, nil),
	}

	r := router.New(cfg, svc)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Portfolio API %s starting on %s", version.Version, addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
