// internal/interfaces/http/handlers/menu.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/coffee-miniapp/internal/domain/catalog"
)

// CatalogProvider serves the cached menu and add-on catalog.
type CatalogProvider interface {
	Menu() (*catalog.MenuGroup, error)
	AddOnCatalog() ([]catalog.AddOnCategory, error)
}

// MenuHandler handles catalog requests
type MenuHandler struct {
	catalog CatalogProvider
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(provider CatalogProvider) *MenuHandler {
	return &MenuHandler{
		catalog: provider,
	}
}

// GetMenu returns the online-orders menu group from the cache.
// GET /api/menu
func (h *MenuHandler) GetMenu(c *gin.Context) {
	menu, err := h.catalog.Menu()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Меню загружается, попробуйте через минуту.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    menu,
	})
}

// GetAddOns returns the add-on categories from the cache.
// GET /api/supplements
func (h *MenuHandler) GetAddOns(c *gin.Context) {
	addOns, err := h.catalog.AddOnCatalog()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Данные загружаются, попробуйте через минуту.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    addOns,
	})
}
