package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/nftrade/weave"
	"github.com/nftrade/weave/x"
)

// SignerHeader carries the condition of the caller in its "ext/type/HEX"
// form. Signatures are verified by the gateway in front of this server.
const SignerHeader = "X-Signer"

// RegisterRoutes configures all API routes, middleware and error handlers.
func RegisterRoutes(e *echo.Echo, h *Handlers, cfg ServerConfig) {
	e.HTTPErrorHandler = JSONErrorHandler()
	e.Use(SetNoCacheHeaders)

	e.GET("/health", h.Health)
	if h.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(h.Metrics.Handler()))
	}

	v1 := e.Group("/v1")
	if cfg.RateLimit > 0 {
		v1.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(cfg.RateLimit),
			Burst:     cfg.RateBurst,
			ExpiresIn: 3 * time.Minute,
		})))
	}
	v1.Use(Signer)

	v1.GET("/operator", h.Operator)

	contracts := v1.Group("/contracts")
	contracts.POST("", h.CreateContract, RequireSigner)
	contracts.GET("/:address", h.GetContract)
	contracts.POST("/:address/tokens", h.Mint, RequireSigner)
	contracts.GET("/:address/tokens/:id", h.GetToken)
	contracts.PUT("/:address/approvals", h.SetApprovalForAll, RequireSigner)
	contracts.POST("/:address/transfers", h.Transfer, RequireSigner)

	swaps := v1.Group("/swaps")
	swaps.GET("", h.ListSwaps)
	swaps.POST("", h.CreateSwap, RequireSigner)
	swaps.GET("/:id", h.GetSwap)
	swaps.POST("/:id/execute", h.ExecuteSwap, RequireSigner)
	swaps.POST("/:id/cancel", h.CancelSwap, RequireSigner)
	swaps.GET("/:id/participants/:index", h.Participant)

	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found", Code: http.StatusNotFound})
	})
}

// SetNoCacheHeaders middleware prevents caching of API responses
func SetNoCacheHeaders(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Cache-Control", "no-store")
		return next(c)
	}
}

// Signer authenticates the condition sent in the SignerHeader for the
// duration of the request.
func Signer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := c.Request().Header.Get(SignerHeader)
		if raw == "" {
			return next(c)
		}
		cond, err := weave.ParseCondition(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid signer", Code: http.StatusBadRequest})
		}
		req := c.Request()
		ctx := x.CtxAuth{}.SetConditions(req.Context(), cond)
		c.SetRequest(req.WithContext(ctx))
		return next(c)
	}
}

// RequireSigner rejects requests without a signer.
func RequireSigner(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if len(x.CtxAuth{}.GetConditions(c.Request().Context())) == 0 {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing signer", Code: http.StatusUnauthorized})
		}
		return next(c)
	}
}
