package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Domenick1991/flighttracker/internal/repository"
	"github.com/Domenick1991/flighttracker/internal/service/tracker"
	"github.com/gin-gonic/gin"
)

type TrackerHandler struct {
	service tracker.TrackerUseCase
	logger  *slog.Logger
}

func NewTrackerHandler(service tracker.TrackerUseCase, logger *slog.Logger) *TrackerHandler {
	return &TrackerHandler{service: service, logger: logger}
}

func (h *TrackerHandler) Register(router *gin.RouterGroup) {
	router.GET("/cities", h.listCities)
	router.GET("/airports", h.listAirports)
	router.GET("/passengers", h.listPassengers)
	router.GET("/aircrafts", h.listAircraft)

	router.GET("/cities/:id/airports", h.airportsInCity)
	router.GET("/passengers/:id/aircrafts", h.aircraftFlownByPassenger)
	router.GET("/aircrafts/:id/airports", h.airportsByAircraft)
	router.GET("/passengers/:id/airportsUsed", h.airportsUsedByPassenger)
}

func (h *TrackerHandler) listCities(c *gin.Context) {
	respond(c, h, "", h.service.ListCities)
}

func (h *TrackerHandler) listAirports(c *gin.Context) {
	respond(c, h, "", h.service.ListAirports)
}

func (h *TrackerHandler) listPassengers(c *gin.Context) {
	respond(c, h, "", h.service.ListPassengers)
}

func (h *TrackerHandler) listAircraft(c *gin.Context) {
	respond(c, h, "", h.service.ListAircraft)
}

func (h *TrackerHandler) airportsInCity(c *gin.Context) {
	respondByID(c, h, "City not found", h.service.AirportsInCity)
}

func (h *TrackerHandler) aircraftFlownByPassenger(c *gin.Context) {
	respondByID(c, h, "Passenger not found", h.service.AircraftFlownByPassenger)
}

func (h *TrackerHandler) airportsByAircraft(c *gin.Context) {
	respondByID(c, h, "Aircraft not found", h.service.AirportsByAircraft)
}

func (h *TrackerHandler) airportsUsedByPassenger(c *gin.Context) {
	respondByID(c, h, "Passenger not found", h.service.AirportsUsedByPassenger)
}

func respondByID[T any](c *gin.Context, h *TrackerHandler, notFound string, query func(context.Context, int64) ([]T, error)) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	respond(c, h, notFound, func(ctx context.Context) ([]T, error) {
		return query(ctx, id)
	})
}

// respond writes items as a JSON array. A missing parent entity becomes a 404
// whose body is the bare notFound string.
func respond[T any](c *gin.Context, h *TrackerHandler, notFound string, query func(context.Context) ([]T, error)) {
	items, err := query(c.Request.Context())
	switch {
	case err == nil:
		c.JSON(http.StatusOK, items)
	case errors.Is(err, repository.ErrNotFound) && notFound != "":
		c.JSON(http.StatusNotFound, notFound)
	default:
		h.logger.ErrorContext(c.Request.Context(), "query failed",
			slog.String("path", c.Request.URL.Path),
			slog.String("request_id", RequestIDFrom(c)),
			slog.Any("error", err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
