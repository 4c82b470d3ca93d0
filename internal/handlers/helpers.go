package handlers

import (
	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/models"
	"github.com/labstack/echo/v4"
)

// currentClaims extracts the authenticated caller's claims set by the JWT
// middleware, or nil when the request is unauthenticated.
func currentClaims(c echo.Context) *models.JwtCustomClaims {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return nil
	}
	return claims
}
