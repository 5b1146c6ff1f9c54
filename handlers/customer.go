package handlers

import (
	"net/http"
	"time"

	"storefront-backend/models"
	"storefront-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CustomerHandler struct {
	DB *gorm.DB
}

// GetMe returns the calling user's customer profile.
func (h *CustomerHandler) GetMe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var customer models.Customer
	if err := h.DB.Preload("User").Where("user_id = ?", userID).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer profile not found"})
		return
	}

	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) UpdateMe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var customer models.Customer
	if err := h.DB.Where("user_id = ?", userID).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer profile not found"})
		return
	}

	var req struct {
		Phone      string     `json:"phone"`
		BirthDate  *time.Time `json:"birth_date"`
		Membership string     `json:"membership"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Membership != "" {
		if !models.ValidMembership(req.Membership) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid membership tier"})
			return
		}
		customer.Membership = req.Membership
	}
	if req.Phone != "" {
		customer.Phone = req.Phone
	}
	if req.BirthDate != nil {
		customer.BirthDate = req.BirthDate
	}

	if err := h.DB.Save(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}

	h.DB.Preload("User").First(&customer, customer.ID)
	c.JSON(http.StatusOK, customer)
}

// ListCustomers is admin-only.
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := h.DB.Preload("User").Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}

	c.JSON(http.StatusOK, customers)
}
