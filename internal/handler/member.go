package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/validation"
)

const memberUserTakenMessage = "member with this user already exists."

type MemberHandler struct {
	repo  repository.MemberRepository
	users existence
}

func NewMemberHandler(repo repository.MemberRepository, users existence) *MemberHandler {
	return &MemberHandler{repo: repo, users: users}
}

func (h *MemberHandler) RegisterRoutes(r *gin.RouterGroup) {
	members := r.Group("/members")
	{
		members.POST("", h.CreateMember)
		members.GET("", h.ListMembers)
		members.GET("/:id", h.GetMemberByID)
		members.PUT("/:id", h.ReplaceMember)
		members.PATCH("/:id", h.UpdateMember)
		members.DELETE("/:id", h.DeleteMember)
	}
}

// check resolves the user reference and rejects a user that another member
// already holds.
func (h *MemberHandler) check(c *gin.Context, m *model.Member) bool {
	if !resolveReferences(c, memberEntity,
		reference{field: "user", target: "User", id: m.UserID, repo: h.users},
	) {
		return false
	}

	holder, err := h.repo.FindByUserID(c.Request.Context(), m.UserID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return true
	case err != nil:
		writeError(c, http.StatusInternalServerError,
			"MEMBER_REFERENCE_CHECK_FAILED",
			"failed to resolve user",
		)
		return false
	case holder.ID != m.ID:
		validation.Respond(c, validation.NewError("user", "unique", memberUserTakenMessage))
		return false
	}
	return true
}

func (h *MemberHandler) writeFailed(c *gin.Context, err error, action string) {
	if errors.Is(err, repository.ErrDuplicate) {
		validation.Respond(c, validation.NewError("user", "unique", memberUserTakenMessage))
		return
	}
	memberEntity.writeFailed(c, err, action)
}

// CreateMember godoc
// @Summary      Create a member
// @Description  Register a member for an identity record that has none yet
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateMemberRequest        true  "Member to create"
// @Success      201      {object}  MemberResponse
// @Failure      400      {object}  validation.ErrorResponse   "Validation error"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /members [post]
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req CreateMemberRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	member := model.Member{
		UserID:  req.User,
		Address: req.Address,
	}

	if !h.check(c, &member) {
		return
	}

	if err := h.repo.Create(c.Request.Context(), &member); err != nil {
		h.writeFailed(c, err, "create")
		return
	}

	c.JSON(http.StatusCreated, MemberResponse{Data: toMember(member)})
}

// ListMembers godoc
// @Summary      List members
// @Tags         members
// @Produce      json
// @Success      200  {object}  ListMembersResponse
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /members [get]
func (h *MemberHandler) ListMembers(c *gin.Context) {
	members, err := h.repo.List(c.Request.Context())
	if err != nil {
		memberEntity.fail(c, "list")
		return
	}

	resp := ListMembersResponse{Data: make([]Member, 0, len(members))}
	for _, m := range members {
		resp.Data = append(resp.Data, toMember(m))
	}

	c.JSON(http.StatusOK, resp)
}

// GetMemberByID godoc
// @Summary      Get a member
// @Tags         members
// @Produce      json
// @Param        id   path      int  true  "Member ID"
// @Success      200  {object}  MemberResponse
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse   "Member not found"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /members/{id} [get]
func (h *MemberHandler) GetMemberByID(c *gin.Context) {
	id, ok := memberEntity.parseID(c)
	if !ok {
		return
	}

	member, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		memberEntity.fetchFailed(c, err, "failed to fetch member")
		return
	}

	c.JSON(http.StatusOK, MemberResponse{Data: toMember(*member)})
}

// ReplaceMember godoc
// @Summary      Replace a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        id       path      int                   true  "Member ID"
// @Param        payload  body      ReplaceMemberRequest  true  "Member fields"
// @Success      200      {object}  MemberResponse
// @Failure      400      {object}  validation.ErrorResponse   "Invalid ID or payload"
// @Failure      404      {object}  validation.ErrorResponse   "Member not found"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /members/{id} [put]
func (h *MemberHandler) ReplaceMember(c *gin.Context) {
	id, ok := memberEntity.parseID(c)
	if !ok {
		return
	}

	member, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		memberEntity.fetchFailed(c, err, "failed to fetch member")
		return
	}

	var req ReplaceMemberRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	member.UserID = req.User
	member.Address = req.Address

	h.save(c, member)
}

// UpdateMember godoc
// @Summary      Update a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "Member ID"
// @Param        payload  body      UpdateMemberRequest  true  "Fields to update"
// @Success      200      {object}  MemberResponse
// @Failure      400      {object}  validation.ErrorResponse   "Invalid ID or payload"
// @Failure      404      {object}  validation.ErrorResponse   "Member not found"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /members/{id} [patch]
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	id, ok := memberEntity.parseID(c)
	if !ok {
		return
	}

	member, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		memberEntity.fetchFailed(c, err, "failed to fetch member")
		return
	}

	var req UpdateMemberRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if req.User == nil && req.Address == nil {
		noFieldsToUpdate(c)
		return
	}

	if req.User != nil {
		member.UserID = *req.User
	}
	if req.Address != nil {
		member.Address = *req.Address
	}

	h.save(c, member)
}

func (h *MemberHandler) save(c *gin.Context, member *model.Member) {
	if !h.check(c, member) {
		return
	}

	ctx := c.Request.Context()

	if err := h.repo.Update(ctx, member); err != nil {
		h.writeFailed(c, err, "update")
		return
	}

	updated, err := h.repo.FindByID(ctx, member.ID)
	if err != nil {
		memberEntity.fetchFailed(c, err, "failed to fetch updated member")
		return
	}

	c.JSON(http.StatusOK, MemberResponse{Data: toMember(*updated)})
}

// DeleteMember godoc
// @Summary      Delete a member
// @Description  Delete a member that no loan references
// @Tags         members
// @Produce      json
// @Param        id   path      int     true  "Member ID"
// @Success      204  {string}  string  "No content"
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse   "Member not found"
// @Failure      409  {object}  validation.ErrorResponse   "Member still referenced"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /members/{id} [delete]
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	id, ok := memberEntity.parseID(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		memberEntity.deleteFailed(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
