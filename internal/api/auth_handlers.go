package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/waxads/easy-grown/internal"
	"github.com/waxads/easy-grown/internal/response"
	"github.com/waxads/easy-grown/internal/service"
)

func PostLogin(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body service.LoginRequest
		if err := bindJSON(c, &body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, MsgInvalidRequest)
			return
		}

		user, err := service.Login(c.Request.Context(), app.UserRepo(), app.Passwords(), &body)
		switch {
		case errors.Is(err, internal.ErrNotFound):
			HandleError(c, app.Logger(), err, http.StatusNotFound, MsgUserNotFound)
			return
		case errors.Is(err, internal.ErrInvalidCredentials):
			HandleError(c, app.Logger(), err, http.StatusUnauthorized, MsgWrongPassword)
			return
		case err != nil:
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, MsgDatabaseError)
			return
		}
		HandleSuccess(c, app.Logger(), response.LoggedIn(user))
	}
}

func PostRegister(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body service.RegisterRequest
		if err := bindJSON(c, &body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, MsgInvalidRequest)
			return
		}

		id, err := service.Register(c.Request.Context(), app.UserRepo(), app.Passwords(), &body)
		switch {
		case errors.Is(err, internal.ErrDuplicateEmail):
			HandleError(c, app.Logger(), err, http.StatusBadRequest, MsgDuplicateEmail)
			return
		case errors.Is(err, internal.ErrInvalidInput):
			HandleError(c, app.Logger(), err, http.StatusBadRequest, MsgPasswordTooLong)
			return
		case err != nil:
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, MsgRegisterFailed)
			return
		}
		HandleSuccess(c, app.Logger(), response.Created("User registered", id))
	}
}
