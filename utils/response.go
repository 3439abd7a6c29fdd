package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONData sends a success response with the payload under the given key,
// e.g. {"collection": {...}} or {"bids": [...]}
func JSONData(c *gin.Context, status int, key string, data any) {
	c.JSON(status, gin.H{key: data})
}

// JSONError sends an error response of the form {"error": message}
func JSONError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
