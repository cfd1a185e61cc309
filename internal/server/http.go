package server

import (
	"context"
	"encoding/json"
	"errors"
	"hazard-server/internal/domain"
	"hazard-server/internal/engine"
	"hazard-server/internal/version"
	"hazard-server/pkg/api"
	"hazard-server/pkg/logger"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Engine *engine.GameService
	Port   string

	http *http.Server
}

func New(engine *engine.GameService, port string) *Server {
	return &Server{
		Engine: engine,
		Port:   port,
	}
}

// Routes собирает роутер. WebSocket живет вне группы с таймаутом.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/ws", s.handleWS)

	r.Group(func(r chi.Router) {
		r.Use(requestLogger)
		r.Use(middleware.Timeout(10 * time.Second))

		r.Get("/health", s.handleHealth)
		r.Get("/version", s.handleVersion)
		r.Get("/api/v1/leaderboards/{board}", s.handleLeaderboard)

		// Debug Routes
		debugHandler := NewDebugHandler(s.Engine)
		debugHandler.RegisterRoutes(r)
	})

	// Profiling
	r.Mount("/debug/profiler", middleware.Profiler())

	return r
}

// Run запускает HTTP сервер и блокируется до Shutdown
func (s *Server) Run() error {
	s.http = &http.Server{
		Addr:              ":" + s.Port,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Log.WithField("component", "server").Infof("Hazard Hunt server running on :%s", s.Port)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown мягко останавливает HTTP сервер.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		// Разрешаем заголовки, если фронт шлет что-то нестандартное
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger пишет запросы в общий logrus.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logger.Log.WithFields(logrus.Fields{
			"component":  "server",
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
		}).Debug("Request completed")
	})
}

// handleWS обрабатывает подключение по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithField("component", "server").WithError(err).Error("Upgrade error")
		return
	}

	client := NewClient(s.Engine, conn)

	// Запускаем пампы
	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(version.Info())
}

// /api/v1/leaderboards/{board} - таблица рекордов: easy, medium, hard или combined
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	kind, ok := domain.ParseBoardKind(chi.URLParam(r, "board"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown leaderboard")
		return
	}
	writeJSON(w, api.LeaderboardView{
		Board:   kind.String(),
		Entries: s.Engine.Registry.Leaderboard(kind),
	})
}
