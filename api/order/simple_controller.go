package order

import (
	"shop/api/response"
	orderapp "shop/application/order"

	"github.com/gin-gonic/gin"
)

// SimpleController order summaries: member name, date, status and delivery address
type SimpleController struct {
	queryService *orderapp.QueryService
}

func NewSimpleController(queryService *orderapp.QueryService) *SimpleController {
	return &SimpleController{queryService: queryService}
}

func (c *SimpleController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/v2/simple-orders", c.SimpleOrdersV2)
	router.GET("/v3/simple-orders", c.SimpleOrdersV3)
	router.GET("/v4/simple-orders", c.SimpleOrdersV4)
}

func (c *SimpleController) SimpleOrdersV2(ctx *gin.Context) {
	orders, err := c.queryService.SimpleOrdersV2(ctx.Request.Context())
	if err != nil {
		response.HandleError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, orders, "orders retrieved")
}

func (c *SimpleController) SimpleOrdersV3(ctx *gin.Context) {
	orders, err := c.queryService.SimpleOrdersV3(ctx.Request.Context())
	if err != nil {
		response.HandleError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, orders, "orders retrieved")
}

// SimpleOrdersV4 projection rows, same JSON shape as v2 and v3
func (c *SimpleController) SimpleOrdersV4(ctx *gin.Context) {
	rows, err := c.queryService.SimpleOrdersV4(ctx.Request.Context())
	if err != nil {
		response.HandleError(ctx, err)
		return
	}
	orders := make([]orderapp.SimpleOrderDto, len(rows))
	for i, row := range rows {
		orders[i] = orderapp.FromQueryDto(row)
	}
	response.HandleSuccess(ctx, orders, "orders retrieved")
}
