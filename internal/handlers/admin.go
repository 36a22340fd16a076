package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) ListUsers(c *gin.Context) {
	users, svcErr := h.users.List(c.Request.Context())
	if svcErr != nil {
		render(c, http.StatusInternalServerError, "admin_users.html", gin.H{"error": svcErr.Message})
		return
	}
	teams, svcErr := h.users.DistinctTeams(c.Request.Context())
	if svcErr != nil {
		render(c, http.StatusInternalServerError, "admin_users.html", gin.H{"error": svcErr.Message})
		return
	}

	render(c, http.StatusOK, "admin_users.html", gin.H{
		"users": users,
		"teams": teams,
	})
}

func (h *Handlers) ChangeRole(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil || targetID <= 0 {
		flash(c, "invalid user id")
		c.Redirect(http.StatusFound, "/admin/users")
		return
	}

	user, svcErr := h.users.ChangeRole(c.Request.Context(), currentActor(c), uint(targetID), c.PostForm("role"))
	if svcErr != nil {
		flash(c, svcErr.Message)
		c.Redirect(http.StatusFound, "/admin/users")
		return
	}

	flash(c, "role of "+user.Name+" updated to "+string(user.Role))
	c.Redirect(http.StatusFound, "/admin/users")
}

func (h *Handlers) ChangeTeam(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil || targetID <= 0 {
		flash(c, "invalid user id")
		c.Redirect(http.StatusFound, "/admin/users")
		return
	}

	user, svcErr := h.users.ChangeTeam(c.Request.Context(), currentActor(c), uint(targetID), c.PostForm("team"))
	if svcErr != nil {
		flash(c, svcErr.Message)
		c.Redirect(http.StatusFound, "/admin/users")
		return
	}

	flash(c, "team of "+user.Name+" updated to "+user.TeamName())
	c.Redirect(http.StatusFound, "/admin/users")
}
