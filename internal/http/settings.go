package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/smartrate/internal/converter"
	"github.com/mrlokans/smartrate/internal/entities"
)

// SettingRequest is the body of PUT /api/settings/:key.
type SettingRequest struct {
	Value string `json:"value"`
}

type SettingsController struct {
	store   SettingsStore
	session SessionRenewer
}

func NewSettingsController(store SettingsStore, session SessionRenewer) *SettingsController {
	return &SettingsController{store: store, session: session}
}

// ListSettings handles GET /api/settings
func (sc *SettingsController) ListSettings(c *gin.Context) {
	values := make(map[string]string, len(entities.KnownSettingKeys))
	for _, key := range entities.KnownSettingKeys {
		values[key] = sc.store.LoadSetting(c.Request.Context(), key, converter.SettingDefault(key))
	}
	c.JSON(http.StatusOK, gin.H{"settings": values})
}

// GetSetting handles GET /api/settings/:key
func (sc *SettingsController) GetSetting(c *gin.Context) {
	key := c.Param("key")
	if !entities.IsKnownSettingKey(key) {
		respondNotFound(c, "setting "+key)
		return
	}
	value := sc.store.LoadSetting(c.Request.Context(), key, converter.SettingDefault(key))
	c.JSON(http.StatusOK, gin.H{"key": key, "value": value})
}

// UpdateSetting handles PUT /api/settings/:key
// Saving userApiKey starts a new session so the next fetch uses the new key.
func (sc *SettingsController) UpdateSetting(c *gin.Context) {
	key := c.Param("key")
	if !entities.IsKnownSettingKey(key) {
		respondNotFound(c, "setting "+key)
		return
	}

	var req SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	value, err := converter.NormaliseSetting(key, req.Value)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := sc.store.SaveSetting(c.Request.Context(), key, value); err != nil {
		respondStoreError(c, err, "save setting "+key)
		return
	}

	if key == entities.SettingKeyUserAPIKey && sc.session != nil {
		session := sc.session.Renew()
		log.Printf("API key updated, new session %s", session.ID)
	}

	c.JSON(http.StatusOK, gin.H{"key": key, "value": value})
}
