package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Dilshan221/bakery-management/domain"
)

// ProductHandlers handles product HTTP requests
type ProductHandlers struct {
	productRepo domain.ProductRepository
}

// NewProductHandlers creates new product handlers
func NewProductHandlers(productRepo domain.ProductRepository) *ProductHandlers {
	return &ProductHandlers{productRepo: productRepo}
}

// ProductRequest represents a product create/update payload
type ProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Image       string   `json:"image"`
	Quantity    *int     `json:"quantity"`
}

func productID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
		return 0, false
	}
	return uint(id), true
}

// List handles listing all products, newest first
func (h *ProductHandlers) List(c *gin.Context) {
	products, err := h.productRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// Create handles product creation
func (h *ProductHandlers) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Description) == "" ||
		req.Price == nil || strings.TrimSpace(req.Image) == "" || req.Quantity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	product := domain.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       *req.Price,
		Image:       strings.TrimSpace(req.Image),
		Quantity:    *req.Quantity,
	}
	if err := h.productRepo.Create(c.Request.Context(), &product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error while adding product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// GetByID handles fetching a single product
func (h *ProductHandlers) GetByID(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	product, err := h.productRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if err == domain.ErrProductNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// Update handles product updates
func (h *ProductHandlers) Update(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	product, err := h.productRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if err == domain.ErrProductNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Unable to update"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error while updating product"})
		return
	}

	if req.Name != "" {
		product.Name = strings.TrimSpace(req.Name)
	}
	if req.Description != "" {
		product.Description = strings.TrimSpace(req.Description)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Image != "" {
		product.Image = strings.TrimSpace(req.Image)
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}

	if err := h.productRepo.Update(c.Request.Context(), product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error while updating product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// Delete handles product deletion, returning the removed product
func (h *ProductHandlers) Delete(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	product, err := h.productRepo.Delete(c.Request.Context(), id)
	if err != nil {
		if err == domain.ErrProductNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Unable to delete product"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error while deleting product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}
