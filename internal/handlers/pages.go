package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func (h *Handlers) Home(c *gin.Context) {
	sess := sessions.Default(c)
	render(c, http.StatusOK, "home.html", gin.H{
		"name": sess.Get("name"),
		"role": sess.Get("role"),
		"team": sess.Get("team"),
	})
}
