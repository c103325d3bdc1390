/*
main.go - Application entry point

PURPOSE:
  Starts the attendance sync service: loads configuration, builds the zap
  logger, opens the local SQLite cache, constructs the per-role gateway
  clients and orchestrators, and serves the HTTP API with graceful
  shutdown.

CONFIGURATION (viper; file attendance.yaml or env ATTENDANCE_*):
  server.addr                listen address        (default :8080)
  server.cors_origins        allowed CORS origins
  log.level / log.format     zap level and encoder (default info/json)
  db.path                    SQLite path           (default attendance.db)
  school.timezone            IANA timezone         (default America/Sao_Paulo)
  school.consolidation_hour  backend cutover hour  (default 22)
  backend.base_url           remote attendance API
  backend.auth_token         bearer token for the API
  backend.timeout_seconds    per-call timeout      (default 15)
  clock.base_url             trusted time API (empty -> system clock)
  clock.allow_local_fallback use device clock when the time API is down

ROLES:
  One orchestrator per role is registered under /api/{role}/...; scopes for
  auxiliary/tutor/guardian come from scope config lists. An empty list
  leaves the role registered but denying everything, which is the safe
  default until provisioning fills it in.

SHUTDOWN:
  SIGINT/SIGTERM stops accepting connections, drains for up to 30s, then
  closes the store.
*/
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/warp/attendance-engine/api"
	"github.com/warp/attendance-engine/engine"
	"github.com/warp/attendance-engine/gateway/httpapi"
	"github.com/warp/attendance-engine/logging"
	"github.com/warp/attendance-engine/roles"
	"github.com/warp/attendance-engine/store/sqlite"
)

func main() {
	cfg := loadConfig()

	log, err := logging.New(cfg.GetString("log.level"), cfg.GetString("log.format"), "attendance-engine")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	loc, err := time.LoadLocation(cfg.GetString("school.timezone"))
	if err != nil {
		log.Fatal("invalid school timezone", zap.Error(err))
	}

	st, err := sqlite.New(cfg.GetString("db.path"))
	if err != nil {
		log.Fatal("failed to open local store", zap.Error(err))
	}
	defer st.Close()

	week := engine.DefaultSchoolWeek()
	week.ConsolidationHour = cfg.GetInt("school.consolidation_hour")

	backendCfg := httpapi.Config{
		BaseURL:    cfg.GetString("backend.base_url"),
		Timeout:    time.Duration(cfg.GetInt("backend.timeout_seconds")) * time.Second,
		RetryCount: 2,
		AuthToken:  cfg.GetString("backend.auth_token"),
	}

	var clock engine.Clock
	if base := cfg.GetString("clock.base_url"); base != "" {
		nc := httpapi.NewNetworkClock(httpapi.Config{BaseURL: base, Timeout: 5 * time.Second}, loc, log)
		nc.AllowLocalFallback = cfg.GetBool("clock.allow_local_fallback")
		clock = nc
	} else {
		clock = engine.NewSystemClock(loc)
	}

	orchestrators := buildOrchestrators(cfg, backendCfg, week, st, clock, log)

	handler := api.NewHandler(orchestrators, log)
	handler.LateToleranceSeconds = cfg.GetInt("report.late_tolerance_seconds")
	router := api.NewRouter(handler, cfg.GetStringSlice("server.cors_origins"))

	srv := &http.Server{
		Addr:         cfg.GetString("server.addr"),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
}

func loadConfig() *viper.Viper {
	v := viper.New()
	v.SetConfigName("attendance")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/attendance-engine")
	v.SetEnvPrefix("ATTENDANCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cors_origins", []string{"http://localhost:5173"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("db.path", "attendance.db")
	v.SetDefault("school.timezone", "America/Sao_Paulo")
	v.SetDefault("school.consolidation_hour", 22)
	v.SetDefault("backend.timeout_seconds", 15)
	v.SetDefault("report.late_tolerance_seconds", 0)

	// Config file is optional; env vars and defaults cover containers.
	_ = v.ReadInConfig()
	return v
}

func buildOrchestrators(cfg *viper.Viper, backendCfg httpapi.Config, week engine.SchoolWeek, st engine.Store, clock engine.Clock, log *zap.Logger) map[string]*engine.Orchestrator {
	daily := httpapi.NewDailyClient(backendCfg, log)

	live := engine.LiveQuery{
		Level:   cfg.GetString("school.level"),
		Grade:   cfg.GetString("school.grade"),
		Section: cfg.GetString("school.section"),
	}
	hours := roles.PrimaryHours()

	scopeFrom := func(key string) roles.Scope {
		ids := cfg.GetStringSlice(key)
		entities := make([]engine.EntityID, len(ids))
		for i, id := range ids {
			entities[i] = engine.EntityID(id)
		}
		return roles.AllowEntities(entities...)
	}

	director := roles.DirectorPolicy(
		roles.Gateways{Monthly: httpapi.NewMonthlyClient(backendCfg, httpapi.ScopeSchool, "", log), Daily: daily},
		week, hours, live,
	)
	auxiliary := roles.AuxiliaryPolicy(
		roles.Gateways{Monthly: httpapi.NewMonthlyClient(backendCfg, httpapi.ScopeLevel, cfg.GetString("school.level"), log), Daily: daily},
		week, hours, live, scopeFrom("scopes.auxiliary"),
	)
	tutor := roles.TutorPolicy(
		roles.Gateways{Monthly: httpapi.NewMonthlyClient(backendCfg, httpapi.ScopeClassroom, cfg.GetString("school.classroom"), log), Daily: daily},
		week, hours, live, scopeFrom("scopes.tutor"),
	)
	guardian := roles.GuardianPolicy(
		roles.Gateways{Monthly: httpapi.NewMonthlyClient(backendCfg, httpapi.ScopeStudent, "", log), Daily: daily},
		week, hours, live, scopeFrom("scopes.guardian"),
	)

	return map[string]*engine.Orchestrator{
		"director":  engine.NewOrchestrator(director, st, clock, log),
		"auxiliary": engine.NewOrchestrator(auxiliary, st, clock, log),
		"tutor":     engine.NewOrchestrator(tutor, st, clock, log),
		"guardian":  engine.NewOrchestrator(guardian, st, clock, log),
	}
}
