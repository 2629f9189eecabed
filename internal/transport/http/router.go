package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Nevskiy911/contacts-api/internal/handlers"
	authmw "github.com/Nevskiy911/contacts-api/internal/middleware/auth"
	"github.com/Nevskiy911/contacts-api/internal/models"
)

type Deps struct {
	AuthHandler    *handlers.AuthHandler
	ContactHandler *handlers.ContactHandler
	AuthMW         *authmw.Middleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	auth := e.Group("/auth")
	auth.POST("/signup", d.AuthHandler.Signup)
	auth.POST("/login", d.AuthHandler.Login)
	auth.GET("/refresh_token", d.AuthHandler.Refresh)
	auth.GET("/confirmed_email/:token", d.AuthHandler.ConfirmEmail)

	contacts := e.Group("/contacts", d.AuthMW.RequireAuth)
	contacts.GET("", d.ContactHandler.List)
	contacts.GET("/all", d.ContactHandler.ListAll, authmw.RequireRoles(models.RoleAdmin, models.RoleModerator))
	contacts.GET("/birthdays", d.ContactHandler.Birthdays)
	contacts.GET("/search", d.ContactHandler.Search)
	contacts.GET("/:id", d.ContactHandler.Get)
	contacts.POST("", d.ContactHandler.Create)
	contacts.PUT("/:id", d.ContactHandler.Update)
	contacts.DELETE("/:id", d.ContactHandler.Delete)
}
