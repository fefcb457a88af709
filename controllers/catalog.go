package controllers

import (
	"net/http"

	"travel-authorization-api/config"
	"travel-authorization-api/models"
	"travel-authorization-api/services"

	"github.com/gin-gonic/gin"
)

// GetStatuses returns the workflow status catalog.
func GetStatuses(c *gin.Context) {
	statuses, err := services.GetStatuses()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statuses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"statuses": statuses})
}

// GetExpenseTypes returns the expense checklist reference data.
func GetExpenseTypes(c *gin.Context) {
	var expenseTypes []models.ExpenseType
	if err := config.DB.Where("delete_at IS NULL").Find(&expenseTypes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expense types"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense_types": expenseTypes})
}

// GetFundTypes returns the fund allocation reference data.
func GetFundTypes(c *gin.Context) {
	var fundTypes []models.FundType
	if err := config.DB.Where("delete_at IS NULL").Find(&fundTypes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fund types"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"fund_types": fundTypes})
}

// GetOrganizations returns organizations.
func GetOrganizations(c *gin.Context) {
	var organizations []models.Organization
	if err := config.DB.Where("delete_at IS NULL").Find(&organizations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch organizations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"organizations": organizations})
}

// GetDivisions returns divisions, optionally narrowed to one organization.
func GetDivisions(c *gin.Context) {
	query := config.DB.Where("delete_at IS NULL")
	if orgID := c.Query("org_id"); orgID != "" {
		query = query.Where("org_id = ?", orgID)
	}

	var divisions []models.Division
	if err := query.Find(&divisions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch divisions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"divisions": divisions})
}
