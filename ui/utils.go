package ui

import (
	"embed"
	stderrors "errors"
	"io/fs"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tradenet/domain/core"
	"tradenet/internal/errors"
)

func mustSub(fsys embed.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// writeError maps domain errors onto HTTP responses with the app error
// envelope.
func writeError(c *gin.Context, err error) {
	switch {
	case core.IsUnknownCommodityError(err):
		c.JSON(http.StatusBadRequest, gin.H{
			"code":  errors.CodeUnknownCommodity,
			"error": err.Error(),
		})
	case core.IsDataLoadError(err):
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":  errors.CodeDataLoad,
			"error": err.Error(),
		})
	case stderrors.Is(err, core.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"code":  errors.CodeNotFound,
			"error": err.Error(),
		})
	default:
		log.Printf("[Server] internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":  errors.GetCode(err),
			"error": "internal error",
		})
	}
}

func badRequest(c *gin.Context, message string) {
	appErr := errors.InvalidInput(message)
	c.JSON(http.StatusBadRequest, gin.H{
		"code":  appErr.Code,
		"error": appErr.Message,
	})
}
