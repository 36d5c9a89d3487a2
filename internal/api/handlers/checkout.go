package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lassenware/storefront-api/internal/config"
	"github.com/lassenware/storefront-api/internal/repository"
	"github.com/lassenware/storefront-api/internal/service"
	"github.com/lassenware/storefront-api/internal/tiendanube"
	"github.com/lassenware/storefront-api/pkg/errors"
)

// CheckoutRequest carries buyer data for order creation. With Hosted set the
// cart is handed to the platform's hosted checkout instead and the buyer
// fields are ignored.
type CheckoutRequest struct {
	Hosted   bool             `json:"hosted"`
	Customer CheckoutCustomer `json:"customer"`
	Shipping CheckoutAddress  `json:"shipping"`
}

type CheckoutCustomer struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Document string `json:"document"`
}

type CheckoutAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	Number    string `json:"number"`
	Floor     string `json:"floor"`
	Locality  string `json:"locality"`
	City      string `json:"city"`
	Province  string `json:"province"`
	Zipcode   string `json:"zipcode"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}

// CheckoutResponse reports where to send the buyer to pay
type CheckoutResponse struct {
	OrderID    int64  `json:"order_id,omitempty"`
	Number     string `json:"number,omitempty"`
	Total      string `json:"total,omitempty"`
	PaymentURL string `json:"payment_url"`
}

// HandleCheckout handles POST /v1/carts/:id/checkout
func HandleCheckout(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	client := tiendanube.NewClient(cfg.Tiendanube, logger)
	checkout := service.NewCheckoutService(client, logger)

	return func(c *gin.Context) {
		store, ok := loadStore(c, repos, logger)
		if !ok {
			return
		}

		// Body is optional: an empty request checks out with store defaults
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if req.Hosted {
			result, err := checkout.HostedCheckout(c.Request.Context(), store)
			if err != nil {
				respondCheckoutError(c, logger, err)
				return
			}
			c.JSON(http.StatusOK, CheckoutResponse{PaymentURL: result.CheckoutURL})
			return
		}

		result, err := checkout.CheckoutCart(c.Request.Context(), store,
			service.CustomerInfo{
				Name:     req.Customer.Name,
				Email:    req.Customer.Email,
				Phone:    req.Customer.Phone,
				Document: req.Customer.Document,
			},
			service.AddressInfo{
				FirstName: req.Shipping.FirstName,
				LastName:  req.Shipping.LastName,
				Address:   req.Shipping.Address,
				Number:    req.Shipping.Number,
				Floor:     req.Shipping.Floor,
				Locality:  req.Shipping.Locality,
				City:      req.Shipping.City,
				Province:  req.Shipping.Province,
				Zipcode:   req.Shipping.Zipcode,
				Country:   req.Shipping.Country,
				Phone:     req.Shipping.Phone,
			},
		)
		if err != nil {
			respondCheckoutError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, CheckoutResponse{
			OrderID:    result.OrderID,
			Number:     result.Number,
			Total:      result.Total,
			PaymentURL: result.PaymentURL,
		})
	}
}

func respondCheckoutError(c *gin.Context, logger *zap.Logger, err error) {
	switch e := err.(type) {
	case *errors.ErrInvalidArgument:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": e.Error()})
	case *errors.ErrUpstream:
		logger.Error("Platform checkout failed", zap.Int("status", e.Status))
		c.JSON(http.StatusBadGateway, gin.H{"error": "checkout unavailable"})
	default:
		logger.Error("Checkout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
