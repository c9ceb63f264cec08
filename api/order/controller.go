/*
Package order order HTTP controllers

Binding failures answer 400 through response.HandleBindError; everything the services return
goes through response.HandleError, which maps domain errors to codes and statuses.
*/
package order

import (
	"strconv"

	"shop/api/response"
	orderapp "shop/application/order"
	"shop/domain/order"

	"github.com/gin-gonic/gin"
)

// Controller order commands, the v1 search and the full order read paths
type Controller struct {
	orderService *orderapp.ApplicationService
	queryService *orderapp.QueryService
}

func NewController(orderService *orderapp.ApplicationService, queryService *orderapp.QueryService) *Controller {
	return &Controller{
		orderService: orderService,
		queryService: queryService,
	}
}

// RegisterRoutes router is the /api group
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	v1 := router.Group("/v1/orders")
	{
		v1.POST("", c.PlaceOrder)
		v1.POST("/:id/cancel", c.CancelOrder)
		v1.GET("", c.SearchOrders)
	}

	router.GET("/v2/orders", c.OrdersV2)
	router.GET("/v3/orders", c.OrdersV3)
	router.GET("/v3.1/orders", c.OrdersV31)
}

// PlaceOrder POST /api/v1/orders
func (c *Controller) PlaceOrder(ctx *gin.Context) {
	var req orderapp.PlaceOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err, "invalid request parameters")
		return
	}

	orderID, err := c.orderService.Order(ctx.Request.Context(), req.MemberID, req.ItemID, req.Count)
	if err != nil {
		response.HandleError(ctx, err)
		return
	}

	response.HandleCreated(ctx, orderapp.PlaceOrderResponse{OrderID: orderID}, "order placed")
}

// CancelOrder POST /api/v1/orders/:id/cancel
func (c *Controller) CancelOrder(ctx *gin.Context) {
	orderID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		response.HandleBindError(ctx, err, "invalid order id")
		return
	}

	if err := c.orderService.CancelOrder(ctx.Request.Context(), orderID); err != nil {
		response.HandleError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "order cancelled")
}

// SearchOrders GET /api/v1/orders?memberName=&orderStatus=
func (c *Controller) SearchOrders(ctx *gin.Context) {
	var req orderapp.SearchRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleBindError(ctx, err, "invalid search parameters")
		return
	}

	search := order.OrderSearch{MemberName: req.MemberName, OrderStatus: order.Status(req.OrderStatus)}
	orders, err := c.queryService.SearchOrders(ctx.Request.Context(), search)
	if err != nil {
		response.HandleError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "orders retrieved")
}

// OrdersV2 GET /api/v2/orders, associations loaded one query at a time
func (c *Controller) OrdersV2(ctx *gin.Context) {
	orders, err := c.queryService.OrdersV2(ctx.Request.Context())
	if err != nil {
		response.HandleError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, orders, "orders retrieved")
}

// OrdersV3 GET /api/v3/orders, single join over the whole graph
func (c *Controller) OrdersV3(ctx *gin.Context) {
	orders, err := c.queryService.OrdersV3(ctx.Request.Context())
	if err != nil {
		response.HandleError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, orders, "orders retrieved")
}

// OrdersV31 GET /api/v3.1/orders?offset=&limit=
func (c *Controller) OrdersV31(ctx *gin.Context) {
	var req orderapp.PageRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleBindError(ctx, err, "invalid paging parameters")
		return
	}

	orders, err := c.queryService.OrdersV31(ctx.Request.Context(), order.Page{Offset: req.Offset, Limit: req.Limit})
	if err != nil {
		response.HandleError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, orders, response.Pagination{
		Offset: req.Offset,
		Limit:  req.Limit,
		Count:  len(orders),
	}, "orders retrieved")
}
