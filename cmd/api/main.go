package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	"gym-class-booking/internal/core/auth"
	"gym-class-booking/internal/core/cache"
	"gym-class-booking/internal/core/config"
	"gym-class-booking/internal/core/database"
	"gym-class-booking/internal/core/logger"
	"gym-class-booking/internal/core/server"
	"gym-class-booking/internal/repo"
	"gym-class-booking/internal/service"
	"gym-class-booking/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load("")

	l, closeLog := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer closeLog()

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("open database", zap.String("dsn", database.MaskDSN(cfg.DB.DSN)), zap.Error(err))
	}

	store := repo.NewStore(db)
	if cfg.DB.AutoMigrate {
		if err := store.AutoMigrate(); err != nil {
			l.Fatal("auto migrate", zap.Error(err))
		}
	}

	ctx := context.Background()
	if err := service.EnsureAdmin(ctx, store, cfg.Seed.AdminName, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword, l); err != nil {
		l.Fatal("seed admin", zap.Error(err))
	}

	var c *cache.Cache
	if cfg.Redis.Addr != "" {
		c = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		l.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.TTLHours) * time.Hour,
	}

	engine := router.New(router.Options{
		Log:   l,
		Store: store,
		JWTer: jwter,
		Cache: c,
		Debug: cfg.App.Env == "dev",
	})

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(addr, engine,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	go func() {
		l.Info("server listening", zap.String("addr", addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("listen", zap.Error(err))
		}
	}()

	// 优雅退出：收到信号后给在途请求 10s 收尾
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	l.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error("shutdown", zap.Error(err))
	}
	if c != nil {
		_ = c.RDB.Close()
	}
	l.Info("bye")
}
