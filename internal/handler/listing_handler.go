package handler

import (
	"errors"
	"net/http"

	"travel_booking/internal/model"
	"travel_booking/internal/service"

	"github.com/gin-gonic/gin"
)

// ListingHandler handles listing catalog requests
type ListingHandler struct {
	service service.ListingService
}

// NewListingHandler creates a new ListingHandler
func NewListingHandler(s service.ListingService) *ListingHandler {
	return &ListingHandler{service: s}
}

func (h *ListingHandler) AddListing(c *gin.Context) {
	var req model.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "All fields are required")
		return
	}

	listing, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondInternal(c, err, "Error adding listing")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Listing added successfully", "listing": listing})
}

func (h *ListingHandler) GetListings(c *gin.Context) {
	listings, err := h.service.List(c.Request.Context())
	if err != nil {
		respondInternal(c, err, "Error fetching listings")
		return
	}
	c.JSON(http.StatusOK, listings)
}

func (h *ListingHandler) GetListing(c *gin.Context) {
	listing, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLookupError(c, err, "Error fetching listing")
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (h *ListingHandler) DeleteListing(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondLookupError(c, err, "Error deleting listing")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Listing deleted successfully!"})
}

func (h *ListingHandler) respondLookupError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidID):
		respondError(c, http.StatusBadRequest, "Invalid listing ID format.")
	case errors.Is(err, service.ErrListingNotFound):
		respondError(c, http.StatusNotFound, "Listing not found.")
	default:
		respondInternal(c, err, fallback)
	}
}
