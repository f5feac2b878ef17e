package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const welcomeMessage = "Welcome to the Library Management System!"

// Home godoc
// @Summary      Welcome message
// @Tags         home
// @Produce      plain
// @Success      200  {string}  string  "Welcome to the Library Management System!"
// @Router       / [get]
func Home(c *gin.Context) {
	c.String(http.StatusOK, welcomeMessage)
}
