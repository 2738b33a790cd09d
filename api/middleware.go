package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Domenick1991/sporthub/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const userIDKey = "userID"

func Logger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  time.Since(start),
			"client_ip": c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		if c.Writer.Status() >= http.StatusBadRequest {
			entry.Error("request failed")
		} else {
			entry.Info("request processed")
		}
	}
}

func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Recovery turns panics into the standard 500 error body.
func Recovery(log logrus.FieldLogger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.WithField("panic", recovered).Error("handler panicked")
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	})
}

// Identity reads an optional bearer token signed with secret and stores its
// subject as the caller's user id. Requests without a token pass as guests.
// With an empty secret tokens are ignored.
func Identity(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}
		sub, err := parseSubject(strings.TrimPrefix(header, "Bearer "), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "Invalid token", Details: err.Error()})
			return
		}
		c.Set(userIDKey, sub)
		c.Next()
	}
}

func parseSubject(token, secret string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

// ownerFrom prefers an explicit userId from the request body and falls back
// to the authenticated caller.
func ownerFrom(c *gin.Context, bodyUserID *string) domain.Owner {
	if bodyUserID != nil && strings.TrimSpace(*bodyUserID) != "" {
		return domain.RegisteredUser(*bodyUserID)
	}
	return domain.RegisteredUser(c.GetString(userIDKey))
}
