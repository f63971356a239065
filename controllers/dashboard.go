package controllers

import (
	"cadastro/services"

	"github.com/gin-gonic/gin"
)

func GetDashboard(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	d, err := services.GetDashboard(c.Request.Context(), db)
	if err != nil {
		fail(c, err)
		return
	}
	RespondSuccess(c, d)
}
