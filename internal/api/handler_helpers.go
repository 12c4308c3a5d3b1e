package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/waxads/easy-grown/internal"
	"github.com/waxads/easy-grown/internal/response"
	"github.com/waxads/easy-grown/internal/service"
)

// User-facing messages. The Thai ones are what the web client shows verbatim.
const (
	MsgDatabaseError    = "Database Error"
	MsgInvalidRequest   = "Invalid request"
	MsgInvalidID        = "Invalid id"
	MsgEmailRequired    = "Email required"
	MsgUploadFailed     = "Upload failed"
	MsgUploadTooLarge   = "Upload too large"
	MsgWrongPassword    = "รหัสผ่านไม่ถูกต้อง"
	MsgUserNotFound     = "ไม่พบผู้ใช้งานนี้"
	MsgDuplicateEmail   = "อีเมลนี้ถูกใช้งานแล้ว"
	MsgRegisterFailed   = "สมัครสมาชิกไม่สำเร็จ"
	MsgStoreUnavailable = "Store unavailable"
	MsgPasswordTooLong  = "Password too long"
)

// HandleError logs err with the request id and writes msg with status. The
// error itself never reaches the client.
func HandleError(c *gin.Context, logger internal.Logger, err error, status int, msg string) {
	requestID := c.GetString("request_id")
	if status >= http.StatusInternalServerError {
		logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)
	} else {
		logger.Warnf("[request_id=%s] %s: %v", requestID, msg, err)
	}
	c.AbortWithStatusJSON(status, response.Failure(status, msg))
}

func HandleSuccess(c *gin.Context, logger internal.Logger, body interface{}) {
	requestID := c.GetString("request_id")
	logger.Debugf("[request_id=%s] Success", requestID)
	c.JSON(http.StatusOK, body)
}

// bindJSON decodes the body into req and checks its validate tags.
func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return err
	}
	return service.Validate(req)
}

func paramID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
