package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"

	"github.com/01moynul/restaurant-storefront/internal/locale"
	"github.com/01moynul/restaurant-storefront/internal/models"
)

// GetMenu is the handler for GET /v1/menu
// It lists the backend catalog with URL slugs and prices formatted for the
// visitor's language.
func (h *Handlers) GetMenu(c *gin.Context) {
	products, err := h.Backend.ListProducts(c.Request.Context())
	if err != nil {
		h.badGateway(c, err, "Could not load the menu, please try again")
		return
	}

	tag := h.language(c)
	menu := make([]models.MenuItem, 0, len(products))
	for _, p := range products {
		menu = append(menu, models.MenuItem{
			ID:         p.ID,
			Slug:       slug.Make(p.Name),
			Name:       p.Name,
			UnitAmount: p.UnitAmount,
			Currency:   p.Currency,
			Price:      locale.FormatAmount(tag, p.UnitAmount, p.Currency),
		})
	}

	c.JSON(http.StatusOK, gin.H{"products": menu})
}
