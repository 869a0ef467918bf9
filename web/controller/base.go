// Package controller provides the HTTP handlers for the SecondPlan panel:
// public marketing pages, authentication, and the role-scoped resource APIs.
package controller

import (
	"net/http"
	"net/url"

	"secondplan/config"
	"secondplan/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides common functionality shared by the page
// controllers, including the login check for HTML routes.
type BaseController struct{}

// checkLogin verifies authentication, redirecting browsers to the login page
// (remembering the requested URL) and answering AJAX calls with 401.
func (a *BaseController) checkLogin(c *gin.Context) {
	if session.IsLogin(c) {
		c.Next()
		return
	}
	if isAjax(c) {
		pureJsonMsg(c, http.StatusUnauthorized, false, "Please log in to continue.")
	} else {
		next := url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusTemporaryRedirect, config.GetBasePath()+"login?next="+next)
	}
	c.Abort()
}
