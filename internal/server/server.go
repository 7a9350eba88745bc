// Package server exposes the analytics query façade over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	analyticsdomain "github.com/dantecodex/graph-mongo/internal/analytics/domain"
	"github.com/dantecodex/graph-mongo/internal/config"
	customerdomain "github.com/dantecodex/graph-mongo/internal/customer/domain"
	"github.com/dantecodex/graph-mongo/internal/observability/logger"
	orderdomain "github.com/dantecodex/graph-mongo/internal/order/domain"
	productdomain "github.com/dantecodex/graph-mongo/internal/product/domain"
)

type ServerParam struct {
	fx.In

	Config    config.Config
	Log       *zap.Logger
	Node      *snowflake.Node
	Analytics analyticsdomain.Service
	Customers customerdomain.Service
	Products  productdomain.Service
	Orders    orderdomain.Service
}

// Server routes named analytic requests onto the query façade and shapes
// responses. It owns no query logic of its own.
type Server struct {
	cfg          config.Config
	log          *zap.Logger
	node         *snowflake.Node
	analyticsSvc analyticsdomain.Service
	customerSvc  customerdomain.Service
	productSvc   productdomain.Service
	orderSvc     orderdomain.Service
}

func NewServer(p ServerParam) *Server {
	return &Server{
		cfg:          p.Config,
		log:          p.Log.Named("server"),
		node:         p.Node,
		analyticsSvc: p.Analytics,
		customerSvc:  p.Customers,
		productSvc:   p.Products,
		orderSvc:     p.Orders,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	if s.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(logger.MiddlewareConfig{Logger: s.log, Node: s.node}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/analytics/customers/:id/spending", s.GetCustomerSpending)
		api.GET("/analytics/products/top", s.GetTopSellingProducts)
		api.GET("/analytics/sales", s.GetSalesAnalytics)

		api.GET("/customers", s.ListCustomers)
		api.GET("/customers/:id", s.GetCustomerByID)
		api.GET("/customers/:id/orders", s.GetCustomerOrders)
		api.GET("/products", s.ListProducts)
		api.GET("/products/:id", s.GetProductByID)
		api.GET("/orders", s.ListOrders)
		api.GET("/orders/:id", s.GetOrderByID)
	}
	return r
}

// Run binds the HTTP listener to the fx lifecycle.
func Run(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.Router(),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.log.Error("http server stopped", zap.Error(err))
				}
			}()
			s.log.Info("http server listening", zap.String("addr", s.cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("server",
	fx.Provide(NewServer),
	fx.Invoke(Run),
)
