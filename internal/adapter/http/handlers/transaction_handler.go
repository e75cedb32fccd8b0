package handlers

import (
	"errors"
	"io"
	"net/http"

	request "payment_gateway/internal/adapter/http/dto/request"
	response "payment_gateway/internal/adapter/http/dto/response"
	"payment_gateway/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TransactionHandler handles the caller-side transaction lifecycle.
type TransactionHandler struct {
	usecase usecase.ITransactionUseCase
	l       *zap.Logger
}

func NewTransactionHandler(uc usecase.ITransactionUseCase) *TransactionHandler {
	return &TransactionHandler{usecase: uc, l: zap.L().Named("transaction.handler")}
}

// CreateTransaction godoc
// @Summary      Create transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateTransactionRequest  true  "Transaction"
// @Success      201      {object}  response.TransactionResponse
// @Failure      400      {object}  pkg.HTTPError
// @Router       /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var payload request.CreateTransactionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidTransactionPayload.HTTPStatus, errInvalidTransactionPayload.ToHTTPError())
		return
	}

	t, err := h.usecase.CreateTransaction(c.Request.Context(), payload.Amount, payload.Currency, payload.Description)
	if err != nil {
		h.l.Warn("create transaction failed", zap.Error(err))
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromTransaction(t))
}

// GetTransaction godoc
// @Summary      Get transaction
// @Tags         transactions
// @Produce      json
// @Param        id   path      string  true  "Transaction ID"
// @Success      200  {object}  response.TransactionResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	t, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromTransaction(t))
}

// ChargeTransaction godoc
// @Summary      Charge transaction
// @Description  Charges a stored transaction and records the outcome on it
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        id       path      string                            true  "Transaction ID"
// @Param        request  body      request.ChargeTransactionRequest  true  "Charge"
// @Success      200      {object}  response.TransactionResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      402      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Failure      409      {object}  pkg.HTTPError
// @Router       /transactions/{id}/charge [post]
func (h *TransactionHandler) ChargeTransaction(c *gin.Context) {
	id := c.Param("id")
	var payload request.ChargeTransactionRequest
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(errInvalidChargePayload.HTTPStatus, errInvalidChargePayload.ToHTTPError())
		return
	}

	log := h.l.With(zap.String("transaction_id", id))
	t, err := h.usecase.ChargeTransaction(c.Request.Context(), id, payload.ToInput())
	if err != nil {
		log.Warn("charge transaction failed", zap.Error(err))
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Info("charge transaction success", zap.String("gateway_transaction_id", t.GatewayTransactionID))

	c.JSON(http.StatusOK, response.FromTransaction(t))
}
