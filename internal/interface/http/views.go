package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/taskcamp/taskcamp/internal/domain/entity"
)

// View builders keep wire shapes decoupled from domain structs. The account
// view lives in auth_handler.go next to its handlers.

func projectView(p *entity.Project) gin.H {
	return gin.H{
		"id":           p.ID,
		"name":         p.Name,
		"description":  p.Description,
		"created_by":   p.CreatedBy,
		"status":       p.Status,
		"priority":     p.Priority,
		"due_date":     p.DueDate,
		"member_count": p.MemberCount,
		"created_at":   p.CreatedAt,
		"updated_at":   p.UpdatedAt,
	}
}

func projectViews(list []*entity.Project) []gin.H {
	out := make([]gin.H, 0, len(list))
	for _, p := range list {
		out = append(out, projectView(p))
	}
	return out
}

func membershipView(m *entity.Membership) gin.H {
	return gin.H{
		"project_id": m.ProjectID,
		"account_id": m.AccountID,
		"role":       m.Role,
		"created_at": m.CreatedAt,
		"updated_at": m.UpdatedAt,
	}
}

func memberViews(list []*entity.MemberInfo) []gin.H {
	out := make([]gin.H, 0, len(list))
	for _, m := range list {
		out = append(out, gin.H{
			"account_id": m.AccountID,
			"email":      m.Email,
			"handle":     m.Handle,
			"name":       m.Name,
			"role":       m.Role,
			"joined_at":  m.CreatedAt,
		})
	}
	return out
}

func noteView(n *entity.Note) gin.H {
	return gin.H{
		"id":         n.ID,
		"project_id": n.ProjectID,
		"created_by": n.CreatedBy,
		"title":      n.Title,
		"content":    n.Content,
		"created_at": n.CreatedAt,
		"updated_at": n.UpdatedAt,
	}
}

func noteViews(list []*entity.Note) []gin.H {
	out := make([]gin.H, 0, len(list))
	for _, n := range list {
		out = append(out, noteView(n))
	}
	return out
}

func taskView(t *entity.Task) gin.H {
	return gin.H{
		"id":          t.ID,
		"project_id":  t.ProjectID,
		"title":       t.Title,
		"description": t.Description,
		"status":      t.Status,
		"assigned_to": t.AssignedTo,
		"created_by":  t.CreatedBy,
		"created_at":  t.CreatedAt,
		"updated_at":  t.UpdatedAt,
	}
}

func taskViews(list []*entity.Task) []gin.H {
	out := make([]gin.H, 0, len(list))
	for _, t := range list {
		out = append(out, taskView(t))
	}
	return out
}
