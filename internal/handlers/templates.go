package handlers

import (
	"net/http"
	"strconv"

	"em-check/internal/authz"
	"em-check/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) ListTemplates(c *gin.Context) {
	rows, svcErr := h.templates.List(c.Request.Context(), currentActor(c))
	if svcErr != nil {
		render(c, http.StatusInternalServerError, "check_templates.html", gin.H{"error": svcErr.Message})
		return
	}
	render(c, http.StatusOK, "check_templates.html", gin.H{"templates": rows})
}

func (h *Handlers) ShowCreateTemplate(c *gin.Context) {
	teams, svcErr := h.users.DistinctTeams(c.Request.Context())
	if svcErr != nil {
		render(c, http.StatusInternalServerError, "create_check_template.html", gin.H{"error": svcErr.Message})
		return
	}
	render(c, http.StatusOK, "create_check_template.html", gin.H{
		"teams": teams,
		"error": "",
	})
}

type templateForm struct {
	Name      string `form:"template_name"`
	Team      string `form:"team"`
	Structure string `form:"structure"`
}

func (h *Handlers) CreateTemplate(c *gin.Context) {
	var form templateForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderTemplateFormError(c, "create_check_template.html", "invalid form data")
		return
	}

	_, svcErr := h.templates.Create(c.Request.Context(), currentActor(c), form.Name, form.Team, form.Structure)
	if svcErr != nil {
		if svcErr.Code == service.ErrorCodeForbidden {
			flash(c, svcErr.Message)
			c.Redirect(http.StatusFound, "/check/templates")
			return
		}
		h.renderTemplateFormError(c, "create_check_template.html", svcErr.Message)
		return
	}

	flash(c, "template created")
	c.Redirect(http.StatusFound, "/check/templates")
}

func (h *Handlers) ShowEditTemplate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		flash(c, "invalid template id")
		c.Redirect(http.StatusFound, "/check/templates")
		return
	}

	tpl, svcErr := h.templates.Get(c.Request.Context(), uint(id))
	if svcErr != nil {
		flash(c, svcErr.Message)
		c.Redirect(http.StatusFound, "/check/templates")
		return
	}

	if d := authz.Authorize(currentActor(c), authz.ActionEditTemplate, tpl.Team); !d.Allowed {
		flash(c, "you do not have permission to edit this template")
		c.Redirect(http.StatusFound, "/check/templates")
		return
	}

	teams, svcErr := h.users.DistinctTeams(c.Request.Context())
	if svcErr != nil {
		flash(c, svcErr.Message)
		c.Redirect(http.StatusFound, "/check/templates")
		return
	}

	render(c, http.StatusOK, "edit_check_template.html", gin.H{
		"template": tpl,
		"teams":    teams,
		"error":    "",
	})
}

func (h *Handlers) UpdateTemplate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		flash(c, "invalid template id")
		c.Redirect(http.StatusFound, "/check/templates")
		return
	}

	var form templateForm
	if err := c.ShouldBind(&form); err != nil {
		flash(c, "invalid form data")
		c.Redirect(http.StatusFound, "/check/templates")
		return
	}

	_, svcErr := h.templates.Update(c.Request.Context(), currentActor(c), uint(id), form.Name, form.Team, form.Structure)
	if svcErr != nil {
		flash(c, svcErr.Message)
		c.Redirect(http.StatusFound, "/check/templates")
		return
	}

	flash(c, "template updated")
	c.Redirect(http.StatusFound, "/check/templates")
}

func (h *Handlers) renderTemplateFormError(c *gin.Context, tmpl, msg string) {
	teams, _ := h.users.DistinctTeams(c.Request.Context())
	render(c, http.StatusBadRequest, tmpl, gin.H{
		"teams": teams,
		"error": msg,
	})
}
