package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/fintrack/internal/core/domain"
	portssvc "github.com/SscSPs/fintrack/internal/core/ports/services"
	"github.com/SscSPs/fintrack/internal/dto"
	"github.com/SscSPs/fintrack/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = (streamPongWait * 9) / 10
)

type dashboardHandler struct {
	dashboardService portssvc.DashboardSvc
	snapshotService  portssvc.SnapshotSvcFacade
	currencySymbol   string
	upgrader         websocket.Upgrader
}

func newDashboardHandler(ds portssvc.DashboardSvc, ss portssvc.SnapshotSvcFacade, currencySymbol, allowedOrigin string) *dashboardHandler {
	return &dashboardHandler{
		dashboardService: ds,
		snapshotService:  ss,
		currencySymbol:   currencySymbol,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origin == allowedOrigin || origin == "http://"+r.Host || origin == "https://"+r.Host
			},
		},
	}
}

// registerDashboardRoutes mounts the dashboard. The stream route accepts the
// access token as a query parameter because browsers cannot set headers on
// websocket upgrades.
func registerDashboardRoutes(rg *gin.RouterGroup, streamGroup *gin.RouterGroup, services *portssvc.ServiceContainer, currencySymbol, allowedOrigin string) {
	h := newDashboardHandler(services.Dashboard, services.Snapshot, currencySymbol, allowedOrigin)
	rg.GET("/dashboard", h.getDashboard)
	streamGroup.GET("/dashboard/stream", h.streamDashboard)
}

// getDashboard godoc
// @Summary Dashboard view
// @Description Totals, category breakdown, monthly series, budget status and insights derived from a fresh snapshot.
// @Tags dashboard
// @Produce json
// @Param dateFilter query string false "all, YYYY, YYYY-MM or YYYY-MM-DD"
// @Param category query string false "Exact category of the transaction list"
// @Param search query string false "Case-insensitive description search"
// @Param targetMonth query string false "Budget month as YYYY-MM"
// @Param window query int false "Months in the trailing series"
// @Param offset query int false "Transaction list offset"
// @Param limit query int false "Transaction list size" default(20)
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (h *dashboardHandler) getDashboard(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	var params dto.DashboardParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}

	vm, err := h.dashboardService.GetDashboard(c.Request.Context(), userID, params.ToViewParams())
	if err != nil {
		respondError(c, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardResponse(vm, h.currencySymbol))
}

// streamDashboard godoc
// @Summary Live dashboard
// @Description Upgrades to a websocket and sends a dashboard view after every change to the caller's data.
// @Tags dashboard
// @Param access_token query string false "Access token when no Authorization header can be sent"
// @Success 101
// @Security BearerAuth
// @Router /dashboard/stream [get]
func (h *dashboardHandler) streamDashboard(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	var params dto.DashboardParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}
	viewParams := params.ToViewParams()
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the error response.
		logger.Warn("Websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.WithoutCancel(c.Request.Context()))
	defer cancel()

	// The client only sends control frames; a read error means it is gone.
	go func() {
		defer cancel()
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(streamPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	views := make(chan dto.DashboardResponse, 1)
	unsubscribe, err := h.snapshotService.Subscribe(ctx, userID, func(snapshot domain.Snapshot) {
		vm := h.dashboardService.BuildView(snapshot, viewParams)
		resp := dto.ToDashboardResponse(&vm, h.currencySymbol)
		select {
		case <-views:
		default:
		}
		select {
		case views <- resp:
		case <-ctx.Done():
		}
	})
	if err != nil {
		logger.Error("Failed to subscribe to snapshots", slog.String("error", err.Error()))
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "subscription failed"),
			time.Now().Add(streamWriteWait))
		return
	}
	defer unsubscribe()

	logger.Info("Dashboard stream opened")
	ticker := time.NewTicker(streamPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Dashboard stream closed")
			return
		case view := <-views:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteJSON(view); err != nil {
				logger.Warn("Failed to write dashboard view", slog.String("error", err.Error()))
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteWait)); err != nil {
				return
			}
		}
	}
}
