package handlers

import (
	"net/http"

	"em-check/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
)

func (h *Handlers) ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"error": ""})
}

type loginForm struct {
	EmployeeID string `form:"employee_id"`
	Password   string `form:"password"`
}

func (h *Handlers) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{"error": "invalid form data"})
		return
	}

	user, svcErr := h.auth.Login(c.Request.Context(), form.EmployeeID, form.Password)
	if svcErr != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{"error": svcErr.Message})
		return
	}

	sess := sessions.Default(c)
	sess.Set("user_id", user.ID)
	sess.Set("employee_id", user.EmployeeID)
	sess.Set("name", user.Name)
	sess.Set("role", string(user.Role))
	sess.Set("team", user.TeamName())
	if err := sess.Save(); err != nil {
		logrus.Errorf("failed to save session: %v", err)
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *Handlers) ShowRegister(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{"error": ""})
}

type registerForm struct {
	Name            string `form:"name"`
	EmployeeID      string `form:"employee_id"`
	Phone           string `form:"phone"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
	Team            string `form:"team"`
}

func (h *Handlers) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "register.html", gin.H{"error": "invalid form data"})
		return
	}

	_, svcErr := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Name:            form.Name,
		EmployeeID:      form.EmployeeID,
		Phone:           form.Phone,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
		Team:            form.Team,
	})
	if svcErr != nil {
		render(c, http.StatusBadRequest, "register.html", gin.H{"error": svcErr.Message})
		return
	}

	// no session yet: the new user logs in on their own
	flash(c, "registration successful, please log in")
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handlers) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.Redirect(http.StatusFound, "/login")
}
