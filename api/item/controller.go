// Package item item HTTP controller
package item

import (
	"shop/api/response"
	itemapp "shop/application/item"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	itemService *itemapp.ApplicationService
}

func NewController(itemService *itemapp.ApplicationService) *Controller {
	return &Controller{itemService: itemService}
}

// RegisterRoutes router is the /api group
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/v1/items", c.Items)
}

// Items GET /api/v1/items
func (c *Controller) Items(ctx *gin.Context) {
	items, err := c.itemService.FindItems(ctx.Request.Context())
	if err != nil {
		response.HandleError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, items, "items retrieved")
}
