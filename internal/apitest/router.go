// File: internal/apitest/router.go
package apitest

import "github.com/labstack/echo/v4"

// Setup 註冊與真實後端相同的路由
func Setup(e *echo.Echo, b *Backend) {
	e.Use(b.record)

	e.GET("/users", b.listUsers)
	e.POST("/user", b.createUser)
	e.PUT("/user/:id", b.updateUser)
	e.DELETE("/user/:id", b.deleteUser)
}
