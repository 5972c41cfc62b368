package router

import "github.com/gin-gonic/gin"

// Module mounts the routes of one resource (users, appointments, ...) on the /api group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
