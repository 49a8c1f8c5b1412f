package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/zulandar/minivault/internal/models"
)

// registerRoutes sets up all API routes on the Gin router.
func registerRoutes(router *gin.Engine, deps Deps) {
	router.POST("/generate", handleGenerate(deps))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": "Method Not Allowed"})
	})
}

// handleGenerate answers a prompt with the stubbed response and records the
// pair in the interaction log before replying.
func handleGenerate(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := requestLogger(c, deps.Logger)

		raw, err := c.GetRawData()
		if err != nil || !json.Valid(raw) {
			log.WithError(err).Warn("rejected generate request: body is not a single JSON value")
			c.JSON(http.StatusUnprocessableEntity, validationErrorBody{Detail: []errorDetail{invalidJSONDetail()}})
			return
		}

		var req models.PromptRequest
		if err := binding.JSON.BindBody(raw, &req); err != nil {
			log.WithError(err).Warn("rejected generate request")
			c.JSON(http.StatusUnprocessableEntity, validationErrorBody{Detail: validationDetails(err)})
			return
		}
		prompt := *req.Prompt
		log.WithField("prompt", prompt).Info("received prompt")

		out := models.GenerateResponse{Response: deps.Responder.Respond(prompt)}
		if _, err := deps.Log.Append(models.PromptInput{Prompt: prompt}, out); err != nil {
			log.WithError(err).Error("write interaction log")
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
			return
		}

		c.PureJSON(http.StatusOK, out)
	}
}
