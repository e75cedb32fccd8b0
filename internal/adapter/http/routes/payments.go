package routes

import (
	"payment_gateway/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathTransactions = "/transactions"
)

func addPaymentRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler, transactionHandler *handlers.TransactionHandler) {
	rg.GET("/echo", paymentHandler.Echo)
	rg.GET("/balance", paymentHandler.GetBalance)
	rg.POST("/charges", paymentHandler.CreateCharge)

	transactions := rg.Group(PathTransactions)
	{
		transactions.POST("", transactionHandler.CreateTransaction)
		transactions.GET("/:id", transactionHandler.GetTransaction)
		transactions.POST("/:id/charge", transactionHandler.ChargeTransaction)
	}
}
