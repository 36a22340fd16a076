package handlers

import (
	"net/http"
	"strconv"

	"em-check/internal/authz"
	"em-check/internal/schema"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) ListRecords(c *gin.Context) {
	rows, svcErr := h.records.List(c.Request.Context(), currentActor(c))
	if svcErr != nil {
		render(c, http.StatusInternalServerError, "check_records.html", gin.H{"error": svcErr.Message})
		return
	}
	render(c, http.StatusOK, "check_records.html", gin.H{"records": rows})
}

func (h *Handlers) ShowCreateRecord(c *gin.Context) {
	templateID, err := strconv.Atoi(c.Param("template_id"))
	if err != nil || templateID <= 0 {
		flash(c, "invalid template id")
		c.Redirect(http.StatusFound, "/check/templates")
		return
	}

	tpl, svcErr := h.templates.Get(c.Request.Context(), uint(templateID))
	if svcErr != nil {
		flash(c, svcErr.Message)
		c.Redirect(http.StatusFound, "/check/templates")
		return
	}

	if d := authz.Authorize(currentActor(c), authz.ActionCreateRecord, tpl.Team); !d.Allowed {
		flash(c, "you do not have permission to fill in this template")
		c.Redirect(http.StatusFound, "/check/templates")
		return
	}

	structure, err := schema.ParseStructure(tpl.Structure)
	if err != nil {
		flash(c, "this template's structure is malformed")
		c.Redirect(http.StatusFound, "/check/templates")
		return
	}

	render(c, http.StatusOK, "create_check_record.html", gin.H{
		"template":  tpl,
		"structure": structure,
		"error":     "",
	})
}

func (h *Handlers) CreateRecord(c *gin.Context) {
	templateID, err := strconv.Atoi(c.Param("template_id"))
	if err != nil || templateID <= 0 {
		flash(c, "invalid template id")
		c.Redirect(http.StatusFound, "/check/templates")
		return
	}

	_, svcErr := h.records.Create(c.Request.Context(), currentActor(c), uint(templateID), c.PostForm("data"))
	if svcErr != nil {
		flash(c, svcErr.Message)
		c.Redirect(http.StatusFound, "/check/templates")
		return
	}

	flash(c, "record created")
	c.Redirect(http.StatusFound, "/check/records")
}

func (h *Handlers) ViewRecord(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		flash(c, "invalid record id")
		c.Redirect(http.StatusFound, "/check/records")
		return
	}

	detail, svcErr := h.records.Get(c.Request.Context(), uint(id))
	if svcErr != nil {
		flash(c, svcErr.Message)
		c.Redirect(http.StatusFound, "/check/records")
		return
	}

	render(c, http.StatusOK, "view_check_record.html", gin.H{
		"record": detail.Row,
		"fields": detail.Fields,
	})
}

func (h *Handlers) ShowEditRecord(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		flash(c, "invalid record id")
		c.Redirect(http.StatusFound, "/check/records")
		return
	}

	detail, svcErr := h.records.Get(c.Request.Context(), uint(id))
	if svcErr != nil {
		flash(c, svcErr.Message)
		c.Redirect(http.StatusFound, "/check/records")
		return
	}

	render(c, http.StatusOK, "edit_check_record.html", gin.H{
		"record": detail.Row,
		"fields": detail.Fields,
		"error":  "",
	})
}

func (h *Handlers) UpdateRecord(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		flash(c, "invalid record id")
		c.Redirect(http.StatusFound, "/check/records")
		return
	}

	if svcErr := h.records.Update(c.Request.Context(), currentActor(c), uint(id), c.PostForm("data")); svcErr != nil {
		flash(c, svcErr.Message)
		c.Redirect(http.StatusFound, "/check/records")
		return
	}

	flash(c, "record updated")
	c.Redirect(http.StatusFound, "/check/records")
}
