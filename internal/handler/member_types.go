package handler

import (
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
)

type CreateMemberRequest struct {
	User    uint   `json:"user" binding:"required"`
	Address string `json:"address" binding:"required"`
}

type ReplaceMemberRequest CreateMemberRequest

type UpdateMemberRequest struct {
	User    *uint   `json:"user" binding:"omitempty,min=1"`
	Address *string `json:"address" binding:"omitempty,min=1"`
}

type Member struct {
	ID        uint       `json:"id"`
	User      uint       `json:"user"`
	Address   string     `json:"address"`
	CreatedAt model.Date `json:"created_at" swaggertype:"string" example:"2025-11-24"`
	UpdatedAt model.Date `json:"updated_at" swaggertype:"string" example:"2025-11-24"`
}

type MemberResponse struct {
	Data Member `json:"data"`
}

type ListMembersResponse struct {
	Data []Member `json:"data"`
}

func toMember(m model.Member) Member {
	return Member{
		ID:        m.ID,
		User:      m.UserID,
		Address:   m.Address,
		CreatedAt: model.Date{Time: m.CreatedAt},
		UpdatedAt: model.Date{Time: m.UpdatedAt},
	}
}
