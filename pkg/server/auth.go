package server

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/launchpod/launchpod/pkg/model"
)

const (
	sessionName    = "launchpod"
	sessionUserKey = "email"
)

// currentUserEmail is the identity capability: it resolves the current
// user's email from the cookie session or fails with ErrNotLoggedIn.
func currentUserEmail(c *gin.Context) (string, error) {
	session := sessions.Default(c)

	email, ok := session.Get(sessionUserKey).(string)
	if !ok || email == "" {
		return "", model.ErrNotLoggedIn
	}

	return email, nil
}

func (s *handlers) login(c *gin.Context) {
	req := struct {
		Email string `json:"email"`
	}{}

	if err := c.BindJSON(&req); err != nil {
		return
	}

	if req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": (&model.InvalidFieldError{Field: model.FieldEmail}).Error()})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserKey, req.Email)
	if err := session.Save(); err != nil {
		c.JSON(errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"logged_in": true, "email": req.Email})
}

func (s *handlers) logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(sessionUserKey)
	if err := session.Save(); err != nil {
		c.JSON(errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"logged_in": false})
}

func (s *handlers) loginStatus(c *gin.Context) {
	email, err := currentUserEmail(c)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"logged_in": false,
			"message":   "/login",
			"feeds":     []interface{}{},
		})
		return
	}

	infos, err := s.feeds.ListFeeds(c.Request.Context(), email)
	if err != nil {
		c.JSON(errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logged_in": true,
		"message":   fmt.Sprintf("Logged in as %s.", email),
		"feeds":     infos,
	})
}
