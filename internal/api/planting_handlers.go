package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/waxads/easy-grown/internal/response"
	"github.com/waxads/easy-grown/internal/service"
)

func GetPlantingLogs(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q service.PlantingLogQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, MsgEmailRequired)
			return
		}
		if err := service.Validate(&q); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, MsgEmailRequired)
			return
		}

		logs, err := app.PlantingRepo().ListPlantingLogs(c.Request.Context(), q.Email)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, MsgDatabaseError)
			return
		}
		HandleSuccess(c, app.Logger(), logs)
	}
}

func PostPlantingLog(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body service.PlantingLogRequest
		if err := bindJSON(c, &body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, MsgInvalidRequest)
			return
		}

		id, err := service.CreatePlantingLog(c.Request.Context(), app.PlantingRepo(), &body)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, MsgDatabaseError)
			return
		}
		HandleSuccess(c, app.Logger(), response.Created("Log added", id))
	}
}

// PutPlantingStatus succeeds for unknown ids too; nothing is changed then.
func PutPlantingStatus(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, MsgInvalidID)
			return
		}
		var body service.StatusRequest
		if err := bindJSON(c, &body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, MsgInvalidRequest)
			return
		}

		if err := app.PlantingRepo().UpdatePlantingStatus(c.Request.Context(), id, body.Status); err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, MsgDatabaseError)
			return
		}
		HandleSuccess(c, app.Logger(), response.Message("Status updated"))
	}
}

func PutPlantingWater(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, MsgInvalidID)
			return
		}
		var body service.WaterRequest
		if err := bindJSON(c, &body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, MsgInvalidRequest)
			return
		}

		if err := app.PlantingRepo().UpdateLastWatered(c.Request.Context(), id, body.LastWateredDate); err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, MsgDatabaseError)
			return
		}
		HandleSuccess(c, app.Logger(), response.Message("Watered successfully"))
	}
}
