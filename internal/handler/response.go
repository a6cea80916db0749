package handler

import (
	"errors"
	"net/http"

	"travel_booking/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// respondBindError answers a body that failed to bind. A ValidationError raised
// while decoding keeps its own message; anything else gets fallback. The decoder
// detail names Go types, so it is only logged.
func respondBindError(c *gin.Context, err error, fallback string) {
	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		respondError(c, http.StatusBadRequest, vErr.Message)
		return
	}
	zerolog.Ctx(c.Request.Context()).Debug().Err(err).Msg("request body rejected")
	respondError(c, http.StatusBadRequest, fallback)
}

// respondInternal logs err with the request logger and hides it from the client.
func respondInternal(c *gin.Context, err error, message string) {
	zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg(message)
	respondError(c, http.StatusInternalServerError, message)
}
