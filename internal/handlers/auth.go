package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"storeadmin/internal/apperror"
	"storeadmin/internal/database"
	"storeadmin/internal/middleware"
	"storeadmin/internal/models"
	"storeadmin/internal/response"
)

// UserFinder resolves an account by its login email.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

const invalidCredentials = "Invalid email or password"

// POST /auth/login
func Login(users UserFinder, jwtSecret string, accessTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, apperror.Wrap(apperror.KindValidation, err, "Invalid request body"))
			return
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if err := validateRequest(req); err != nil {
			response.Error(c, err)
			return
		}

		user, err := users.FindByEmail(c.Request.Context(), req.Email)
		if errors.Is(err, database.ErrNotFound) {
			response.Error(c, apperror.New(apperror.KindUnauthorized, invalidCredentials))
			return
		}
		if err != nil {
			response.Error(c, apperror.Wrap(apperror.KindInternal, err, "login failed"))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			response.Error(c, apperror.New(apperror.KindUnauthorized, invalidCredentials))
			return
		}

		token, err := middleware.IssueToken(jwtSecret, user.ID, user.IsAdmin, accessTTL)
		if err != nil {
			response.Error(c, apperror.Wrap(apperror.KindInternal, err, "token generation failed"))
			return
		}

		logrus.WithFields(logrus.Fields{
			"route":   "POST /auth/login",
			"userId":  user.ID.Hex(),
			"isAdmin": user.IsAdmin,
		}).Info("user logged in")

		c.JSON(http.StatusOK, gin.H{"ok": true, "token": token})
	}
}
