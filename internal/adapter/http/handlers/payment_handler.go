package handlers

import (
	"net/http"

	request "payment_gateway/internal/adapter/http/dto/request"
	response "payment_gateway/internal/adapter/http/dto/response"
	"payment_gateway/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes the gateway operations: echo, balance and charge.
type PaymentHandler struct {
	usecase usecase.IChargeUseCase
	l       *zap.Logger
}

func NewPaymentHandler(uc usecase.IChargeUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc, l: zap.L().Named("payment.handler")}
}

// Echo godoc
// @Summary      Echo
// @Description  Liveness check of the payment adapter
// @Tags         payments
// @Produce      json
// @Success      200  {object}  response.EchoResponse
// @Router       /echo [get]
func (h *PaymentHandler) Echo(c *gin.Context) {
	c.JSON(http.StatusOK, response.FromEcho(h.usecase.Echo(c.Request.Context())))
}

// GetBalance godoc
// @Summary      Gateway balance
// @Description  Returns the first available balance of the gateway account
// @Tags         payments
// @Produce      json
// @Success      200  {object}  response.BalanceResponse
// @Failure      502  {object}  pkg.HTTPError
// @Failure      503  {object}  pkg.HTTPError
// @Router       /balance [get]
func (h *PaymentHandler) GetBalance(c *gin.Context) {
	balance, err := h.usecase.GetBalance(c.Request.Context())
	if err != nil {
		h.l.Warn("get balance failed", zap.Error(err))
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromBalance(balance))
}

// CreateCharge godoc
// @Summary      Charge a token
// @Description  Charges a gateway token once or links it to a pay account and charges it
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request  body      request.ChargeRequest  true  "Charge"
// @Success      200      {object}  response.ChargeResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      402      {object}  pkg.HTTPError
// @Failure      409      {object}  pkg.HTTPError
// @Failure      503      {object}  pkg.HTTPError
// @Router       /charges [post]
func (h *PaymentHandler) CreateCharge(c *gin.Context) {
	var payload request.ChargeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidChargePayload.HTTPStatus, errInvalidChargePayload.ToHTTPError())
		return
	}

	log := h.l.With(zap.String("transaction_id", payload.TransactionID))
	log.Info("charge start", zap.Bool("store_as_account", payload.StoreAsAccount))

	res, err := h.usecase.Charge(c.Request.Context(), payload.ToEntity())
	if err != nil {
		log.Warn("charge failed", zap.Error(err))
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Info("charge success", zap.String("path", string(res.Path)), zap.String("gateway_transaction_id", res.GatewayTransactionID))

	c.JSON(http.StatusOK, response.FromChargeResult(res))
}
