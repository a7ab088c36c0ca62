package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
	"github.com/dmitrijs2005/inkwell/internal/server/services"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	Token string             `json:"token"`
	User  *models.PublicUser `json:"user"`
}

func (s *HTTPServer) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "INVALID_INPUT",
			"message": "username, email and password are required",
		})
		return
	}

	s.logger.Info(c.Request.Context(), "Registration request", "username", req.Username)

	user, token, err := s.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "CONFLICT",
				"message": "user already exists",
			})
			return
		}
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse{Token: token, User: user.Public()})
}

func (s *HTTPServer) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "INVALID_INPUT",
			"message": "email and password are required",
		})
		return
	}

	user, token, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "INVALID_CREDENTIALS",
				"message": "invalid credentials",
			})
			return
		}
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse{Token: token, User: user.Public()})
}

func (s *HTTPServer) handleGetUser(c *gin.Context) {
	profile, err := s.users.GetProfile(c.Request.Context(), subjectID(c))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "please log in again",
			})
			return
		}
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

type createPostRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category"`
	Tags     string `json:"tags"`
	ImageURL string `json:"imageUrl"`
}

type updatePostRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
	Tags     *string `json:"tags"`
	ImageURL *string `json:"imageUrl"`
}

// parseTags splits a comma-separated tag string submitted by the post form.
func parseTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

func (s *HTTPServer) handleCreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "INVALID_INPUT",
			"message": "title and content are required",
		})
		return
	}

	post, err := s.posts.Create(c.Request.Context(), subjectID(c), services.PostInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     parseTags(req.Tags),
		ImageURL: req.ImageURL,
	})
	if err != nil {
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (s *HTTPServer) handleListPosts(c *gin.Context) {
	posts, err := s.posts.List(c.Request.Context())
	if err != nil {
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (s *HTTPServer) handleGetPost(c *gin.Context) {
	post, err := s.posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.postNotFound(c)
			return
		}
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (s *HTTPServer) handleUpdatePost(c *gin.Context) {
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "INVALID_INPUT",
			"message": "invalid post fields",
		})
		return
	}

	patch := models.PostPatch{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		ImageURL: req.ImageURL,
	}
	if req.Tags != nil {
		patch.Tags = parseTags(*req.Tags)
	}

	post, err := s.posts.Update(c.Request.Context(), subjectID(c), c.Param("id"), patch)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			s.postNotFound(c)
		case errors.Is(err, common.ErrorForbidden):
			s.forbidden(c)
		default:
			s.serverError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, post)
}

func (s *HTTPServer) handleDeletePost(c *gin.Context) {
	err := s.posts.Delete(c.Request.Context(), subjectID(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			s.postNotFound(c)
		case errors.Is(err, common.ErrorForbidden):
			s.forbidden(c)
		default:
			s.serverError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "blog post removed"})
}

func (s *HTTPServer) postNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"code":    "NOT_FOUND",
		"message": "blog post not found",
	})
}

func (s *HTTPServer) forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{
		"code":    "FORBIDDEN",
		"message": "you do not own this post",
	})
}

// serverError logs the cause and returns an opaque 500: store and crypto
// failures must not leak internals to the client.
func (s *HTTPServer) serverError(c *gin.Context, err error) {
	s.logger.Error(c.Request.Context(), err.Error())
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":    "SERVER_ERROR",
		"message": "server error",
	})
}
