package server

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/launchpod/launchpod/pkg/feeds"
	"github.com/launchpod/launchpod/pkg/model"
	"github.com/launchpod/launchpod/pkg/upload"
)

type feedService interface {
	CreateFeed(ctx context.Context, req *feeds.CreateFeedRequest) (string, error)
	GetFeedXML(ctx context.Context, id string) (string, error)
	ListFeeds(ctx context.Context, ownerEmail string) ([]*feeds.FeedInfo, error)
	DeleteFeed(ctx context.Context, id string) error
	RSSLink(id string) string
}

type uploader interface {
	NewBlobID() (string, error)
	BlobURL(blobID string) string
	IssueTarget(blobID, redirectURL string) (*upload.Target, error)
}

type handlers struct {
	feeds   feedService
	uploads uploader
}

// MakeHandlers wires the HTTP routes. uploads may be nil, in which case
// submissions must carry an audio link themselves.
func MakeHandlers(svc feedService, uploads uploader, sessionSecret string) http.Handler {
	s := &handlers{feeds: svc, uploads: uploads}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sessions.Sessions(sessionName, cookie.NewStore([]byte(sessionSecret))))

	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.POST("/create", s.createFeed)
	r.GET("/rss/:id", s.getFeedXML)
	r.GET("/feeds", s.listFeeds)
	r.DELETE("/feeds/:id", s.deleteFeed)

	r.POST("/login", s.login)
	r.POST("/logout", s.logout)
	r.GET("/login-status", s.loginStatus)

	return r
}

func (s *handlers) createFeed(c *gin.Context) {
	req := &feeds.CreateFeedRequest{}

	if err := c.BindJSON(req); err != nil {
		return
	}

	// A logged in user always owns the feeds they create
	if email, err := currentUserEmail(c); err == nil {
		req.Email = email
	}

	// No audio link means the blob will be uploaded after creation,
	// reserve a name for it up front so the feed can reference it.
	blobID := ""
	if req.AudioLink == "" && s.uploads != nil {
		id, err := s.uploads.NewBlobID()
		if err != nil {
			c.JSON(errorResponse(err))
			return
		}

		blobID = id
		req.AudioLink = s.uploads.BlobURL(blobID)
	}

	id, err := s.feeds.CreateFeed(c.Request.Context(), req)
	if err != nil {
		c.JSON(errorResponse(err))
		return
	}

	resp := gin.H{
		"id":      id,
		"rss_url": s.feeds.RSSLink(id),
	}

	if blobID != "" {
		target, err := s.uploads.IssueTarget(blobID, s.feeds.RSSLink(id))
		if err != nil {
			c.JSON(errorResponse(err))
			return
		}

		resp["upload"] = target
	}

	c.JSON(http.StatusOK, resp)
}

func (s *handlers) getFeedXML(c *gin.Context) {
	xml, err := s.feeds.GetFeedXML(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(errorResponse(err))
		return
	}

	c.Data(http.StatusOK, "text/xml", []byte(xml))
}

func (s *handlers) listFeeds(c *gin.Context) {
	email, err := currentUserEmail(c)
	if err != nil {
		c.JSON(errorResponse(err))
		return
	}

	infos, err := s.feeds.ListFeeds(c.Request.Context(), email)
	if err != nil {
		c.JSON(errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, infos)
}

func (s *handlers) deleteFeed(c *gin.Context) {
	if err := s.feeds.DeleteFeed(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(errorResponse(err))
		return
	}

	c.Status(http.StatusNoContent)
}

// errorResponse maps service errors to a status and a fixed user facing
// message. Invalid id and not found are deliberately distinct.
func errorResponse(err error) (int, interface{}) {
	if model.IsInvalidField(err) {
		return http.StatusBadRequest, gin.H{"error": err.Error()}
	}

	switch errors.Cause(err) {
	case model.ErrInvalidID:
		return http.StatusBadRequest, gin.H{"error": "Sorry, this is not a valid id."}
	case model.ErrNotFound:
		return http.StatusNotFound, gin.H{"error": "Your entity could not be found."}
	case model.ErrNotLoggedIn:
		return http.StatusUnauthorized, gin.H{"error": "You are not logged in. Please try again."}
	default:
		return http.StatusInternalServerError, gin.H{"error": "internal error"}
	}
}
