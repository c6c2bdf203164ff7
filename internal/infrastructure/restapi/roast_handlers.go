package restapi

import (
	_ "embed"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"roast_agent/internal/app/port"
	"roast_agent/internal/app/presenter"
	"roast_agent/internal/domain/entity"
)

//go:embed web/index.html
var indexHTML []byte

// RoastRequestBody is the JSON body of POST /api/roast.
type RoastRequestBody struct {
	Address string `json:"address" binding:"required"`
	Network string `json:"network"`
}

// RoastResponse is returned on success.
type RoastResponse struct {
	Roast    string `json:"roast"`
	ShareURL string `json:"share_url"`
}

// ErrorResponse carries a user-facing error message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RoastHandler handles roast HTTP requests.
type RoastHandler struct {
	roastService port.RoastService
	appURL       string
	logger       *zap.Logger
}

// NewRoastHandler creates a new RoastHandler.
func NewRoastHandler(rs port.RoastService, appURL string, logger *zap.Logger) *RoastHandler {
	return &RoastHandler{
		roastService: rs,
		appURL:       appURL,
		logger:       logger.Named("RoastHandler"),
	}
}

// PostRoastHandler runs the roast pipeline for the posted address.
//
//	@Summary	Roast a wallet
//	@Tags		roast
//	@Accept		json
//	@Produce	json
//	@Param		body	body		RoastRequestBody	true	"wallet address and optional network"
//	@Success	200		{object}	RoastResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	500		{object}	ErrorResponse
//	@Router		/api/roast [post]
func (h *RoastHandler) PostRoastHandler(c *gin.Context) {
	var body RoastRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.logger.Warn("Malformed roast request", zap.Error(err), zap.String(requestIDKey, c.GetString(requestIDKey)))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: entity.MsgInvalidAddress})
		return
	}

	res, err := h.roastService.Roast(c.Request.Context(), entity.RoastRequest{
		Address: body.Address,
		Network: body.Network,
	})
	if err != nil {
		var roastErr *entity.RoastError
		if !errors.As(err, &roastErr) {
			roastErr = entity.NewRoastError(body.Address, err)
		}
		_ = c.Error(err)
		c.JSON(StatusFor(roastErr.Kind), ErrorResponse{Error: roastErr.UserMessage()})
		return
	}

	c.JSON(http.StatusOK, RoastResponse{
		Roast:    res.Roast,
		ShareURL: presenter.ShareURL(h.appURL, res.Roast),
	})
}

// HealthHandler reports liveness.
//
//	@Summary	Liveness probe
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/healthz [get]
func (h *RoastHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// IndexHandler serves the roast web page.
func (h *RoastHandler) IndexHandler(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

// StatusFor maps an error kind to its HTTP status: 400 for validation, 500 otherwise.
func StatusFor(kind entity.ErrorKind) int {
	if kind == entity.KindValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
