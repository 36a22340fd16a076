package handlers

import (
	"em-check/internal/authz"
	"em-check/internal/models"
	"em-check/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Handlers bundles the services the routes need.
type Handlers struct {
	auth      *service.AuthService
	users     *service.UserService
	templates *service.TemplateService
	records   *service.RecordService
}

func New(auth *service.AuthService, users *service.UserService, templates *service.TemplateService, records *service.RecordService) *Handlers {
	return &Handlers{auth: auth, users: users, templates: templates, records: records}
}

// render wraps c.HTML: it hands every template the current user and any
// pending flash messages.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if uVal, ok := c.Get("CurrentUser"); ok {
		if u, ok := uVal.(models.User); ok {
			data["CurrentUser"] = u
			data["CurrentUserRole"] = u.Role
			data["CurrentUserTeam"] = u.TeamName()
		}
	}

	sess := sessions.Default(c)
	if flashes := sess.Flashes(); len(flashes) > 0 {
		_ = sess.Save()
		data["flashes"] = flashes
	}

	c.HTML(status, tmpl, data)
}

func flash(c *gin.Context, msg string) {
	sess := sessions.Default(c)
	sess.AddFlash(msg)
	_ = sess.Save()
}

// currentActor rebuilds the authorization actor from the session.
func currentActor(c *gin.Context) authz.Actor {
	sess := sessions.Default(c)
	actor := authz.Actor{}
	if uid, ok := sess.Get("user_id").(uint); ok {
		actor.ID = uid
	}
	if role, ok := sess.Get("role").(string); ok {
		actor.Role = models.UserRole(role)
	}
	if team, ok := sess.Get("team").(string); ok {
		actor.Team = team
	}
	return actor
}
