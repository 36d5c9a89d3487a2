package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lassenware/storefront-api/internal/cart"
	"github.com/lassenware/storefront-api/internal/domain"
	"github.com/lassenware/storefront-api/internal/repository"
)

// AddItemRequest is the caller-supplied part of a line item. Quantity is
// never accepted: each add puts exactly one unit in the cart.
type AddItemRequest struct {
	ProductID int64           `json:"product_id" binding:"required"`
	VariantID int64           `json:"variant_id" binding:"required"`
	Name      string          `json:"name" binding:"required"`
	Price     decimal.Decimal `json:"price" binding:"required"`
	Image     string          `json:"image"`
	Options   string          `json:"options"`
}

// UpdateItemRequest sets an absolute quantity; zero or less removes the line
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse is the cart with its derived totals
type CartResponse struct {
	ID         string             `json:"id"`
	Items      []LineItemResponse `json:"items"`
	TotalItems int                `json:"total_items"`
	TotalPrice string             `json:"total_price"`
}

type LineItemResponse struct {
	ProductID int64  `json:"product_id"`
	VariantID int64  `json:"variant_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
	Image     string `json:"image,omitempty"`
	Options   string `json:"options,omitempty"`
}

// HandleCreateCart handles POST /v1/carts
func HandleCreateCart(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New()
		store := cart.NewStore(id, repos.Cart, logger)

		if err := repos.Cart.Save(c.Request.Context(), id, nil); err != nil {
			logger.Error("Failed to create cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusCreated, toCartResponse(store))
	}
}

// HandleGetCart handles GET /v1/carts/:id. An unknown ID is an empty cart:
// carts exist from first use, there is no separate creation state.
func HandleGetCart(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := loadStore(c, repos, logger)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, toCartResponse(store))
	}
}

// HandleAddItem handles POST /v1/carts/:id/items
func HandleAddItem(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := loadStore(c, repos, logger)
		if !ok {
			return
		}

		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		store.AddItem(c.Request.Context(), cart.NewItem{
			ProductID: req.ProductID,
			VariantID: req.VariantID,
			Name:      req.Name,
			UnitPrice: req.Price,
			Image:     req.Image,
			Options:   req.Options,
		})

		c.JSON(http.StatusOK, toCartResponse(store))
	}
}

// HandleUpdateItem handles PUT /v1/carts/:id/items/:variantID
func HandleUpdateItem(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := loadStore(c, repos, logger)
		if !ok {
			return
		}

		variantID, err := strconv.ParseInt(c.Param("variantID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid variant ID"})
			return
		}

		var req UpdateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		store.UpdateQuantity(c.Request.Context(), variantID, req.Quantity)
		c.JSON(http.StatusOK, toCartResponse(store))
	}
}

// HandleRemoveItem handles DELETE /v1/carts/:id/items/:variantID
func HandleRemoveItem(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := loadStore(c, repos, logger)
		if !ok {
			return
		}

		variantID, err := strconv.ParseInt(c.Param("variantID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid variant ID"})
			return
		}

		store.RemoveItem(c.Request.Context(), variantID)
		c.JSON(http.StatusOK, toCartResponse(store))
	}
}

// HandleClearCart handles DELETE /v1/carts/:id
func HandleClearCart(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := loadStore(c, repos, logger)
		if !ok {
			return
		}

		store.Clear(c.Request.Context())
		c.JSON(http.StatusOK, toCartResponse(store))
	}
}

func loadStore(c *gin.Context, repos *repository.Repositories, logger *zap.Logger) (*cart.Store, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart ID"})
		return nil, false
	}

	store, err := cart.Load(c.Request.Context(), id, repos.Cart, logger)
	if err != nil {
		logger.Error("Failed to load cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return nil, false
	}

	return store, true
}

func toCartResponse(store *cart.Store) CartResponse {
	items := store.Items()
	itemResponses := make([]LineItemResponse, 0, len(items))
	for _, item := range items {
		itemResponses = append(itemResponses, toLineItemResponse(item))
	}

	return CartResponse{
		ID:         store.ID().String(),
		Items:      itemResponses,
		TotalItems: store.TotalItems(),
		TotalPrice: store.TotalPrice().StringFixed(2),
	}
}

func toLineItemResponse(item domain.LineItem) LineItemResponse {
	return LineItemResponse{
		ProductID: item.ProductID,
		VariantID: item.VariantID,
		Name:      item.Name,
		UnitPrice: item.UnitPrice.StringFixed(2),
		Quantity:  item.Quantity,
		Subtotal:  item.Subtotal().StringFixed(2),
		Image:     item.Image,
		Options:   item.Options,
	}
}
