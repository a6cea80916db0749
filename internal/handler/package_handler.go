package handler

import (
	"errors"
	"net/http"

	"travel_booking/internal/model"
	"travel_booking/internal/service"

	"github.com/gin-gonic/gin"
)

// PackageHandler handles tour package requests
type PackageHandler struct {
	service service.PackageService
}

// NewPackageHandler creates a new PackageHandler
func NewPackageHandler(s service.PackageService) *PackageHandler {
	return &PackageHandler{service: s}
}

func (h *PackageHandler) AddPackage(c *gin.Context) {
	var req model.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Please fill in all required fields.")
		return
	}

	pkg, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		var vErr *model.ValidationError
		if errors.As(err, &vErr) {
			respondError(c, http.StatusBadRequest, vErr.Message)
			return
		}
		respondInternal(c, err, "Error adding package")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Package added successfully!", "package": pkg})
}

func (h *PackageHandler) GetPackages(c *gin.Context) {
	packages, err := h.service.List(c.Request.Context())
	if err != nil {
		respondInternal(c, err, "Error fetching packages")
		return
	}
	c.JSON(http.StatusOK, packages)
}

func (h *PackageHandler) GetPackage(c *gin.Context) {
	pkg, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLookupError(c, err, "Error fetching package")
		return
	}
	c.JSON(http.StatusOK, pkg)
}

func (h *PackageHandler) DeletePackage(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondLookupError(c, err, "Error deleting package")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Package deleted successfully!"})
}

func (h *PackageHandler) respondLookupError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidID):
		respondError(c, http.StatusBadRequest, "Invalid package ID format.")
	case errors.Is(err, service.ErrPackageNotFound):
		respondError(c, http.StatusNotFound, "Package not found.")
	default:
		respondInternal(c, err, fallback)
	}
}
