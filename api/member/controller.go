// Package member member HTTP controller
package member

import (
	"strconv"

	"shop/api/response"
	memberapp "shop/application/member"

	"github.com/gin-gonic/gin"
)

// Controller join, rename and the two member lists
type Controller struct {
	memberService *memberapp.ApplicationService
}

func NewController(memberService *memberapp.ApplicationService) *Controller {
	return &Controller{memberService: memberService}
}

// RegisterRoutes router is the /api group
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/v1/members", c.JoinV1)
	router.GET("/v1/members", c.MembersV1)

	v2 := router.Group("/v2/members")
	{
		v2.POST("", c.JoinV2)
		v2.PUT("/:id", c.UpdateV2)
		v2.GET("", c.MembersV2)
	}
}

// JoinV1 POST /api/v1/members, name plus address
func (c *Controller) JoinV1(ctx *gin.Context) {
	var req memberapp.JoinRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err, "invalid request parameters")
		return
	}
	c.join(ctx, req)
}

// JoinV2 POST /api/v2/members, name only
func (c *Controller) JoinV2(ctx *gin.Context) {
	var req memberapp.CreateMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err, "invalid request parameters")
		return
	}
	c.join(ctx, memberapp.JoinRequest{Name: req.Name})
}

func (c *Controller) join(ctx *gin.Context, req memberapp.JoinRequest) {
	id, err := c.memberService.Join(ctx.Request.Context(), req.Name, req.Address())
	if err != nil {
		response.HandleError(ctx, err)
		return
	}
	response.HandleCreated(ctx, memberapp.JoinResponse{ID: id}, "member joined")
}

// UpdateV2 PUT /api/v2/members/:id
func (c *Controller) UpdateV2(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.HandleBindError(ctx, err, "invalid member id")
		return
	}
	var req memberapp.UpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err, "invalid request parameters")
		return
	}

	m, err := c.memberService.Update(ctx.Request.Context(), id, req.Name)
	if err != nil {
		response.HandleError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, memberapp.UpdateResponse{ID: m.ID(), Name: m.Name()}, "member updated")
}

// MembersV1 GET /api/v1/members
func (c *Controller) MembersV1(ctx *gin.Context) {
	members, err := c.memberService.FindMembers(ctx.Request.Context())
	if err != nil {
		response.HandleError(ctx, err)
		return
	}
	dtos := make([]memberapp.MemberDto, len(members))
	for i, m := range members {
		dtos[i] = memberapp.ToMemberDto(m)
	}
	response.HandleSuccess(ctx, dtos, "members retrieved")
}

// MembersV2 GET /api/v2/members, names only
func (c *Controller) MembersV2(ctx *gin.Context) {
	members, err := c.memberService.FindMembers(ctx.Request.Context())
	if err != nil {
		response.HandleError(ctx, err)
		return
	}
	dtos := make([]memberapp.MemberNameDto, len(members))
	for i, m := range members {
		dtos[i] = memberapp.ToMemberNameDto(m)
	}
	response.HandleSuccess(ctx, dtos, "members retrieved")
}
