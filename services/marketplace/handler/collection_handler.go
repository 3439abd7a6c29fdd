package handler

import (
	"net/http"

	"bid-marketplace/services/marketplace/helpers"
	"bid-marketplace/utils"

	"github.com/gin-gonic/gin"
)

// ListCollectionsHandler handles GET /api/collections
func (h *MarketplaceHandler) ListCollectionsHandler(c *gin.Context) {
	collections, err := h.service.ListCollections(c.Request.Context())
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		utils.Error("ListCollectionsHandler: error retrieving collections", map[string]any{
			"error": err.Error(),
		})
		return
	}

	out := make([]helpers.CollectionResponse, 0, len(collections))
	for _, collection := range collections {
		out = append(out, helpers.NewCollectionResponse(collection))
	}

	utils.JSONData(c, http.StatusOK, "collections", out)
	helpers.LogSuccess("ListCollectionsHandler", "collections retrieved successfully", map[string]any{
		"count": len(out),
	})
}

// CreateCollectionHandler handles POST /api/collections
func (h *MarketplaceHandler) CreateCollectionHandler(c *gin.Context) {
	var req helpers.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateCollectionHandler", err)
		return
	}

	collection, err := h.service.CreateCollection(c.Request.Context(), req.Name, req.Description, req.Stock, req.Price, req.UserID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		utils.Error("CreateCollectionHandler: failed to create collection", map[string]any{
			"user_id": req.UserID,
			"error":   err.Error(),
		})
		return
	}

	utils.JSONData(c, http.StatusCreated, "collection", helpers.NewCollectionResponse(collection))
	helpers.LogSuccess("CreateCollectionHandler", "collection created successfully", map[string]any{
		"collection_id": collection.ID,
		"user_id":       collection.UserID,
	})
}

// GetCollectionHandler handles GET /api/collections/:id
func (h *MarketplaceHandler) GetCollectionHandler(c *gin.Context) {
	collectionID := c.Param("id")

	collection, err := h.service.GetCollection(c.Request.Context(), collectionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		utils.Warn("GetCollectionHandler: error retrieving collection", map[string]any{
			"collection_id": collectionID,
			"error":         err.Error(),
		})
		return
	}

	utils.JSONData(c, http.StatusOK, "collection", helpers.NewCollectionResponse(collection))
}

// UpdateCollectionHandler handles PUT /api/collections/:id
func (h *MarketplaceHandler) UpdateCollectionHandler(c *gin.Context) {
	collectionID := c.Param("id")

	var req helpers.UpdateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateCollectionHandler", err)
		return
	}

	collection, err := h.service.UpdateCollection(c.Request.Context(), collectionID, req.Name, req.Description, req.Stock, req.Price)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		utils.Warn("UpdateCollectionHandler: error updating collection", map[string]any{
			"collection_id": collectionID,
			"error":         err.Error(),
		})
		return
	}

	utils.JSONData(c, http.StatusOK, "collection", helpers.NewCollectionResponse(collection))
	helpers.LogSuccess("UpdateCollectionHandler", "collection updated successfully", map[string]any{
		"collection_id": collection.ID,
	})
}

// DeleteCollectionHandler handles DELETE /api/collections/:id
func (h *MarketplaceHandler) DeleteCollectionHandler(c *gin.Context) {
	collectionID := c.Param("id")

	collection, err := h.service.DeleteCollection(c.Request.Context(), collectionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		utils.Warn("DeleteCollectionHandler: error deleting collection", map[string]any{
			"collection_id": collectionID,
			"error":         err.Error(),
		})
		return
	}

	utils.JSONData(c, http.StatusOK, "collection", helpers.NewCollectionResponse(collection))
	helpers.LogSuccess("DeleteCollectionHandler", "collection deleted successfully", map[string]any{
		"collection_id": collection.ID,
	})
}
