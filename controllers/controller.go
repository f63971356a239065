package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RespondError(c *gin.Context, msg string, code int) {
	c.AbortWithStatusJSON(code, gin.H{"message": msg})
}

func RespondSuccess(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// fail entrega o erro para o middleware.ErrorHandler e interrompe a cadeia.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
