package controller

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"secondplan/config"
	"secondplan/logger"
	"secondplan/web/entity"
	"secondplan/web/service"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real IP address from the request headers or remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

func paramId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		pureJsonMsg(c, http.StatusBadRequest, false, "Invalid id.")
		return 0, false
	}
	return id, true
}

// jsonMsg sends a success envelope with a message.
func jsonMsg(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, entity.Msg{Success: true, Message: msg})
}

// jsonObj sends a success envelope carrying a payload.
func jsonObj(c *gin.Context, obj any) {
	c.JSON(http.StatusOK, entity.Msg{Success: true, Data: obj})
}

// jsonCreated sends a success envelope for a newly created row.
func jsonCreated(c *gin.Context, id int) {
	c.JSON(http.StatusCreated, entity.Msg{Success: true, Message: "Created.", Id: id})
}

// jsonFail maps a service error onto the envelope and status code taxonomy.
// Validation problems carry their field list; storage and IO failures are
// logged in full server-side and surfaced as a generic message.
func jsonFail(c *gin.Context, err error) {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, entity.Msg{
			Success: false,
			Message: vErr.Message,
			Data:    vErr.Fields,
		})
		return
	}

	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, entity.Msg{Success: false, Message: "Not found."})
		return
	}

	var upErr *service.UploadError
	if errors.As(err, &upErr) {
		status := http.StatusBadRequest
		msg := upErr.Message
		if upErr.Kind == service.UploadIO {
			status = http.StatusInternalServerError
			logger.Error("upload failed:", upErr.Err)
			msg = "Could not store the uploaded file."
		}
		c.JSON(status, entity.Msg{Success: false, Message: msg})
		return
	}

	logger.Error("request failed:", err)
	c.JSON(http.StatusInternalServerError, entity.Msg{
		Success: false,
		Message: "Something went wrong. Please try again later.",
	})
}

// pureJsonMsg sends an envelope with an explicit status code.
func pureJsonMsg(c *gin.Context, statusCode int, success bool, msg string) {
	c.JSON(statusCode, entity.Msg{Success: success, Message: msg})
}

// isAjax checks if the request is an AJAX request.
func isAjax(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

// html renders a template with the shared context data.
func html(c *gin.Context, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["title"] = title
	data["app_name"] = config.GetName()
	data["cur_ver"] = config.GetVersion()
	data["base_path"] = c.GetString("base_path")
	c.HTML(http.StatusOK, name, data)
}
