package handler

import (
	"net/http"
	"strconv"

	"github.com/TogetherPinz/TogetherPinz-BE/internal/model"
	"github.com/TogetherPinz/TogetherPinz-BE/internal/service"
	"github.com/gin-gonic/gin"
)

type PinHandler struct {
	pins    *service.PinService
	members *service.MemberService
}

func NewPinHandler(pins *service.PinService, members *service.MemberService) *PinHandler {
	return &PinHandler{pins: pins, members: members}
}

// Create godoc
// @Summary Create a pin (creator becomes owner)
// @Tags pins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} model.PinInfo
// @Router /api/pins [post]
func (h *PinHandler) Create(c *gin.Context) {
	var req model.CreatePinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user := GetAuthUser(c)
	info, err := h.pins.CreatePin(c.Request.Context(), user.ID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, info)
}

// List godoc
// @Summary List my pins
// @Tags pins
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.PinInfo
// @Router /api/pins [get]
func (h *PinHandler) List(c *gin.Context) {
	user := GetAuthUser(c)
	infos, err := h.pins.GetUserPins(c.Request.Context(), user.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, infos)
}

// Get godoc
// @Summary Get a pin
// @Tags pins
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.PinInfo
// @Router /api/pins/{pinId} [get]
func (h *PinHandler) Get(c *gin.Context) {
	pinID, ok := pathID(c, "pinId")
	if !ok {
		return
	}

	info, err := h.pins.GetPin(c.Request.Context(), pinID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// Update godoc
// @Summary Update a pin (owner only)
// @Tags pins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.PinInfo
// @Router /api/pins/{pinId} [put]
func (h *PinHandler) Update(c *gin.Context) {
	pinID, ok := pathID(c, "pinId")
	if !ok {
		return
	}

	var req model.UpdatePinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user := GetAuthUser(c)
	info, err := h.pins.UpdatePin(c.Request.Context(), user.ID, pinID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// Delete godoc
// @Summary Delete a pin (owner only)
// @Tags pins
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H
// @Router /api/pins/{pinId} [delete]
func (h *PinHandler) Delete(c *gin.Context) {
	pinID, ok := pathID(c, "pinId")
	if !ok {
		return
	}

	user := GetAuthUser(c)
	if err := h.pins.DeletePin(c.Request.Context(), user.ID, pinID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "핀이 삭제되었습니다."})
}

// AddMember godoc
// @Summary Invite a user to a pin (owner only, capacity 8)
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} gin.H
// @Router /api/pins/{pinId}/members [post]
func (h *PinHandler) AddMember(c *gin.Context) {
	pinID, ok := pathID(c, "pinId")
	if !ok {
		return
	}

	var req model.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user := GetAuthUser(c)
	member, err := h.members.AddMember(c.Request.Context(), user.ID, pinID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"memberId": member.ID})
}

// ListMembers godoc
// @Summary List pin members (members only)
// @Tags members
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.MemberInfo
// @Router /api/pins/{pinId}/members [get]
func (h *PinHandler) ListMembers(c *gin.Context) {
	pinID, ok := pathID(c, "pinId")
	if !ok {
		return
	}

	user := GetAuthUser(c)
	members, err := h.members.ListMembers(c.Request.Context(), user.ID, pinID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// Leave godoc
// @Summary Leave a pin
// @Tags members
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H
// @Router /api/pins/{pinId}/members/me [delete]
func (h *PinHandler) Leave(c *gin.Context) {
	pinID, ok := pathID(c, "pinId")
	if !ok {
		return
	}

	user := GetAuthUser(c)
	if err := h.members.Leave(c.Request.Context(), user.ID, pinID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "핀에서 탈퇴했습니다."})
}

// RemoveMember godoc
// @Summary Remove a member from a pin (owner only)
// @Tags members
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H
// @Router /api/pins/{pinId}/members/{userId} [delete]
func (h *PinHandler) RemoveMember(c *gin.Context) {
	pinID, ok := pathID(c, "pinId")
	if !ok {
		return
	}
	targetUserID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	user := GetAuthUser(c)
	if err := h.members.RemoveMember(c.Request.Context(), user.ID, pinID, targetUserID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "멤버가 제외되었습니다."})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
