package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/sngm3741/restaurant-recs/api/internal/config"
	"github.com/sngm3741/restaurant-recs/api/internal/infrastructure/storage"
	"github.com/sngm3741/restaurant-recs/api/internal/interfaces/http/common"
	restauranthttp "github.com/sngm3741/restaurant-recs/api/internal/interfaces/http/restaurants"
	submissionhttp "github.com/sngm3741/restaurant-recs/api/internal/interfaces/http/submissions"
	"github.com/sngm3741/restaurant-recs/api/internal/submission/application"
)

// Server は HTTP サーバーのライフサイクルを管理し、各ハンドラへ依存注入するコンポジションルート。
type Server struct {
	logger *httplog.Logger
	stores *storage.Stores
	addr   string
	router chi.Router
}

// NewLogger は設定に従って構造化ロガーを生成する。
func NewLogger(cfg config.Config) *httplog.Logger {
	return httplog.NewLogger("restaurant-recs", httplog.Options{
		LogLevel:         cfg.LogLevel,
		Concise:          cfg.LogConcise,
		RequestHeaders:   false,
		MessageFieldName: "message",
		Tags: map[string]string{
			"store": string(cfg.StoreDriver),
		},
	})
}

// New はストアとロガーを受け取り、アプリケーションサービスとハンドラを組み立てた Server を返す。
func New(cfg config.Config, stores *storage.Stores, logger *httplog.Logger) *Server {
	if logger == nil {
		logger = NewLogger(cfg)
	}
	srv := &Server{
		logger: logger,
		stores: stores,
		addr:   cfg.Addr,
	}

	submissionService := application.NewSubmissionService(application.SubmissionServiceConfig{
		Submissions:        stores.Submissions,
		Restaurants:        stores.Restaurants,
		Logger:             logger.Logger,
		PriceRangeFallback: cfg.PriceRangeFallback,
	})
	restaurantService := application.NewRestaurantService(stores.Restaurants)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(httplog.RequestLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}).Handler)

	router.Get("/healthz", srv.healthHandler())
	router.Route("/submissions", submissionhttp.NewHandler(submissionhttp.Config{
		Logger:         logger.Logger,
		Service:        submissionService,
		RequestTimeout: cfg.RequestTimeout,
	}).Register)
	router.Route("/restaurants", restauranthttp.NewHandler(restauranthttp.Config{
		Logger:         logger.Logger,
		Service:        restaurantService,
		RequestTimeout: cfg.RequestTimeout,
	}).Register)

	srv.router = router
	return srv
}

// Handler はミドルウェア込みのルーターを返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run は HTTP サーバーを起動し、シグナル受信まで待機する。
func (s *Server) Run() error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP サーバー起動", "addr", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	return waitForShutdown(httpServer, errChan, s)
}

// healthHandler はストアへの疎通確認を行い、監視系からのヘルスチェック要求に応える。
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		logger := common.RequestLogger(r, s.logger.Logger)
		if err := s.stores.Ping(ctx); err != nil {
			logger.Warn("store ping failed", "error", err)
			common.WriteJSON(logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		common.WriteJSON(logger, w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// shutdown はストアの接続をタイムアウト付きで閉じ、プロセス終了時のリソースリークを防ぐ。
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.stores.Close(shutdownCtx); err != nil {
		s.logger.Error("ストア切断時にエラー", "error", err)
	}
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown を実現する。
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var runErr error
	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Error("サーバーが異常終了", "error", err)
			runErr = err
		}
	case sig := <-sigChan:
		srv.logger.Info("シグナルを受信。サーバー停止処理を開始します。", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Error("サーバー停止時にエラー", "error", err)
			runErr = err
		}
	}

	srv.shutdown(context.Background())
	return runErr
}
