package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/stargazers/stargazing-api/internal/core/domain"
	"github.com/stargazers/stargazing-api/internal/core/ports"
)

// EventHandler serves the event catalogue.
type EventHandler struct {
	events ports.EventService
}

// NewEventHandler creates an EventHandler backed by the given service.
func NewEventHandler(events ports.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// List handles GET /events.
//
// @Summary      List events
// @Tags         events
// @Produce      json
// @Success      200  {array}  domain.Event
// @Router       /events [get]
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.events.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// GetByID handles GET /events/:id.
//
// @Summary      Get an event by id
// @Tags         events
// @Produce      json
// @Param        id   path      int  true  "Event id"
// @Success      200  {object}  domain.Event
// @Failure      404  {object}  errorResponse
// @Router       /events/{id} [get]
func (h *EventHandler) GetByID(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return domain.ErrEventNotFound
	}
	event, err := h.events.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// GetByName handles GET /events/name/:name.
//
// @Summary      Get an event by name
// @Tags         events
// @Produce      json
// @Param        name  path      string  true  "Event name"
// @Success      200   {object}  domain.Event
// @Failure      404   {object}  errorResponse
// @Router       /events/name/{name} [get]
func (h *EventHandler) GetByName(c echo.Context) error {
	event, err := h.events.GetByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// Create handles POST /events.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      createEventRequest  true  "Event"
// @Success      201   {object}  domain.Event
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	event, err := h.events.Create(c.Request().Context(), ports.CreateEventInput{
		EventName:         req.EventName,
		EventDate:         req.EventDate,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		Location:          req.Location,
		Description:       req.Description,
		ParticipantsLimit: req.ParticipantsLimit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, event)
}

// Update handles PUT /events/:name.
//
// @Summary      Update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        name  path      string              true  "Event name"
// @Param        body  body      updateEventRequest  true  "Fields to change"
// @Success      200   {object}  domain.Event
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /events/{name} [put]
func (h *EventHandler) Update(c echo.Context) error {
	var req updateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event, err := h.events.Update(c.Request().Context(), c.Param("name"), domain.EventPatch{
		EventName:         req.EventName,
		EventDate:         req.EventDate,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		Location:          req.Location,
		Description:       req.Description,
		ParticipantsLimit: req.ParticipantsLimit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// Delete handles DELETE /events/:name.
//
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Security     CookieAuth
// @Param        name  path      string  true  "Event name"
// @Success      200   {object}  deletedEventResponse
// @Failure      404   {object}  errorResponse
// @Router       /events/{name} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	event, err := h.events.Delete(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deletedEventResponse{Message: "Event deleted successfully", Event: event})
}
