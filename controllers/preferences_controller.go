package controllers

import (
	"net/http"

	"github.com/a7med3yad/Cartify-Frontend/preferences"
	"github.com/gin-gonic/gin"
)

type PreferencesController struct {
	prefs *preferences.Preferences
}

func NewPreferencesController(prefs *preferences.Preferences) *PreferencesController {
	return &PreferencesController{prefs: prefs}
}

// Get handles GET /preferences.
func (pc *PreferencesController) Get(c *gin.Context) {
	c.JSON(http.StatusOK, pc.prefs.Get(c.Request.Context()))
}

// Update handles PUT /preferences. The body is merged into what is stored.
func (pc *PreferencesController) Update(c *gin.Context) {
	var update map[string]any
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, err)
		return
	}
	merged, err := pc.prefs.Merge(c.Request.Context(), update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, merged)
}
