package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/waxads/easy-grown/internal"
	"github.com/waxads/easy-grown/internal/response"
	"github.com/waxads/easy-grown/internal/service"
)

const imageField = "imageFile"

func GetVegetables(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		vegs, err := service.ListVegetables(c.Request.Context(), app.VegetableRepo())
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, MsgDatabaseError)
			return
		}
		HandleSuccess(c, app.Logger(), response.Vegetables(vegs))
	}
}

// PostVegetable accepts a multipart body of text fields plus an optional
// image. Bodies above maxBytes are refused with 413.
func PostVegetable(app App, maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

		var form service.VegetableForm
		if err := c.ShouldBind(&form); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				HandleError(c, app.Logger(), err, http.StatusRequestEntityTooLarge, MsgUploadTooLarge)
				return
			}
			HandleError(c, app.Logger(), err, http.StatusBadRequest, MsgInvalidRequest)
			return
		}

		imageURL, err := saveImage(c, app)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, MsgUploadFailed)
			return
		}

		id, err := service.CreateVegetable(c.Request.Context(), app.VegetableRepo(), &form, imageURL)
		switch {
		case errors.Is(err, internal.ErrInvalidInput):
			HandleError(c, app.Logger(), err, http.StatusBadRequest, MsgInvalidRequest)
			return
		case err != nil:
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, MsgDatabaseError)
			return
		}
		HandleSuccess(c, app.Logger(), response.Created("Success", id))
	}
}

// saveImage stores the optional image part. No part means no image.
func saveImage(c *gin.Context, app App) (string, error) {
	fh, err := c.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return app.Uploads().Save(fh.Filename, f)
}

func DeleteVegetable(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, MsgInvalidID)
			return
		}
		if err := app.VegetableRepo().DeleteVegetable(c.Request.Context(), id); err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, MsgDatabaseError)
			return
		}
		HandleSuccess(c, app.Logger(), response.Message("Deleted successfully"))
	}
}
