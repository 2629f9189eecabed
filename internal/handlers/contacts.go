package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Nevskiy911/contacts-api/internal/logging"
	authmw "github.com/Nevskiy911/contacts-api/internal/middleware/auth"
	"github.com/Nevskiy911/contacts-api/internal/service"
	"github.com/Nevskiy911/contacts-api/internal/util"
)

type ContactHandler struct {
	Svc *service.ContactService
}

func (h *ContactHandler) List(c echo.Context) error {
	acc := authmw.CurrentAccount(c)
	limit, offset := util.Calculate(
		parseIntDefault(c.QueryParam("limit"), util.DefaultPageSize),
		parseIntDefault(c.QueryParam("offset"), 0),
	)

	contacts, err := h.Svc.List(c.Request().Context(), acc, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, contacts)
}

func (h *ContactHandler) ListAll(c echo.Context) error {
	limit, offset := util.Calculate(
		parseIntDefault(c.QueryParam("limit"), util.DefaultPageSize),
		parseIntDefault(c.QueryParam("offset"), 0),
	)

	contacts, err := h.Svc.ListAll(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, contacts)
}

func (h *ContactHandler) Birthdays(c echo.Context) error {
	acc := authmw.CurrentAccount(c)
	days := parseIntDefault(c.QueryParam("days"), 7)
	if days < 1 || days > 365 {
		days = 7
	}

	contacts, err := h.Svc.UpcomingBirthdays(c.Request().Context(), acc, days)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, contacts)
}

func (h *ContactHandler) Search(c echo.Context) error {
	acc := authmw.CurrentAccount(c)

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	limit, offset := util.Calculate(
		parseIntDefault(c.QueryParam("limit"), util.DefaultPageSize),
		parseIntDefault(c.QueryParam("offset"), 0),
	)

	total, contacts, err := h.Svc.Search(c.Request().Context(), acc, q, offset, limit)
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("contact_search_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "contacts": contacts})
}

func (h *ContactHandler) Get(c echo.Context) error {
	acc := authmw.CurrentAccount(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid contact id")
	}

	contact, err := h.Svc.Get(c.Request().Context(), acc, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Contact not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) Create(c echo.Context) error {
	acc := authmw.CurrentAccount(c)

	var req service.ContactInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.FirstName == "" || req.LastName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "first_name and last_name are required")
	}

	contact, err := h.Svc.Create(c.Request().Context(), acc, req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusCreated, contact)
}

func (h *ContactHandler) Update(c echo.Context) error {
	acc := authmw.CurrentAccount(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid contact id")
	}

	var req service.ContactInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	contact, err := h.Svc.Update(c.Request().Context(), acc, uint(id), req)
	if err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Contact not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) Delete(c echo.Context) error {
	acc := authmw.CurrentAccount(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid contact id")
	}

	contact, err := h.Svc.Delete(c.Request().Context(), acc, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Contact not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, contact)
}
