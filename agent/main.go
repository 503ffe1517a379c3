package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/imkonsowa/makansini/catalog"
	"github.com/imkonsowa/makansini/config"
	"github.com/imkonsowa/makansini/conversation"
	"github.com/imkonsowa/makansini/logger"
	"github.com/imkonsowa/makansini/recommender"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type Agent struct {
	config   *config.Config
	handler  *Handler
	log      *slog.Logger
	upgrader websocket.Upgrader
}

func main() {
	cfg := config.LoadConfig()

	l := logger.Setup(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Component: "agent"})

	loc, err := cfg.Recommend.Location()
	if err != nil {
		log.Fatal(err)
	}

	var source recommender.CatalogSource = catalog.Source{Path: cfg.Catalog.Path}
	if cfg.Catalog.Cache {
		source = catalog.NewCache(cfg.Catalog.Path)
	}

	// fail fast on a broken catalog instead of on the first request
	if _, err := source.Catalog(context.Background()); err != nil {
		log.Fatal(err)
	}

	svc := recommender.NewService(source, recommender.Options{
		MaxCount:      cfg.Recommend.MaxCount,
		Threshold:     cfg.Recommend.Threshold,
		OnlyOpenToday: cfg.Recommend.OnlyOpenToday,
		Weights:       cfg.Recommend.Weights,
	})

	today := func() string {
		return recommender.DayName(time.Now(), loc)
	}

	agent := NewAgent(cfg, NewHandler(svc, today), l)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := agent.Run(ctx); err != nil {
		log.Fatalf("failed to run the agent: %v", err)
	}
}

func NewAgent(cfg *config.Config, handler *Handler, l *slog.Logger) *Agent {
	origins := cfg.Server.AllowedOrigins

	return &Agent{
		config:  cfg,
		handler: handler,
		log:     l,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return originAllowed(origins, r.Header.Get("Origin"))
			},
		},
	}
}

func originAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return true
	}
	for _, o := range allowed {
		if o == "*" || o == origin {
			return true
		}
	}

	return false
}

// Run serves HTTP until ctx is cancelled, then shuts the server down.
func (a *Agent) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    a.config.Server.Address(),
		Handler: a.Router(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Starting agent", "address", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (a *Agent) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.Middleware(a.log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	if originAllowed(a.config.Server.AllowedOrigins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = a.config.Server.AllowedOrigins
	}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/search", func(ctx *gin.Context) {
		input, _ := ctx.GetQuery("input")

		c, err := a.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
		if err != nil {
			slog.Error("failed to upgrade connection", "error", err)
			return
		}
		defer c.Close()

		resultChan := a.handler.SearchByUserQuery(ctx.Request.Context(), input)
		for {
			select {
			case <-ctx.Request.Context().Done():
				return
			case result := <-resultChan:
				if result == nil {
					return
				}
				if result.Err != nil {
					if errors.Is(result.Err, io.EOF) {
						return
					}
					_ = c.WriteJSON(WebSocketsMessage{Type: "error", Data: result.Err.Error()})
					return
				}

				if err := c.WriteJSON(result.Msg); err != nil {
					slog.Error("failed to write to ws connection", "error", err)
					return
				}
			}
		}
	})

	r.POST("/recommend", func(ctx *gin.Context) {
		var req RecommendRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if debug, err := strconv.ParseBool(ctx.Query("debug")); err == nil && debug {
			req.Debug = true
		}

		if err := req.Validate(); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res, err := a.handler.Recommend(ctx.Request.Context(), req)
		if err != nil {
			ctx.JSON(errorStatus(err), gin.H{"error": err.Error()})
			return
		}

		ctx.JSON(http.StatusOK, res)
	})

	r.POST("/chat", func(ctx *gin.Context) {
		var req ChatRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res, err := a.handler.Chat(ctx.Request.Context(), req)
		if err != nil {
			ctx.JSON(errorStatus(err), gin.H{"error": err.Error()})
			return
		}

		ctx.JSON(http.StatusOK, res)
	})

	r.GET("/questions", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"questions": conversation.Questions()})
	})

	r.GET("/restaurants", func(ctx *gin.Context) {
		restaurants, err := a.handler.ListRestaurants(ctx.Request.Context())
		if err != nil {
			ctx.JSON(errorStatus(err), gin.H{"error": err.Error()})
			return
		}

		ctx.JSON(http.StatusOK, restaurants)
	})

	r.GET("/cuisines", func(ctx *gin.Context) {
		cuisines, err := a.handler.ListCuisines(ctx.Request.Context())
		if err != nil {
			ctx.JSON(errorStatus(err), gin.H{"error": err.Error()})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"cuisines": cuisines})
	})

	return r
}

func errorStatus(err error) int {
	switch {
	case isClientError(err):
		return http.StatusBadRequest
	case isSourceError(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
