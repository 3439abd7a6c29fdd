package handler

import (
	"net/http"

	"bid-marketplace/services/marketplace/helpers"
	"bid-marketplace/utils"

	"github.com/gin-gonic/gin"
)

// PlaceBidHandler handles POST /api/bids
func (h *MarketplaceHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.service.PlaceBid(c.Request.Context(), req.CollectionID, req.UserID, req.Price)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		utils.Error("PlaceBidHandler: failed to place bid", map[string]any{
			"collection_id": req.CollectionID,
			"user_id":       req.UserID,
			"error":         err.Error(),
		})
		return
	}

	utils.JSONData(c, http.StatusCreated, "bid", helpers.NewBidResponse(bid))
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"bid_id":        bid.ID,
		"collection_id": bid.CollectionID,
		"user_id":       bid.UserID,
		"price":         bid.Price,
	})
}

// ListBidsHandler handles GET /api/bids?collectionId=
func (h *MarketplaceHandler) ListBidsHandler(c *gin.Context) {
	collectionID := c.Query("collectionId")
	if collectionID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Collection ID is required")
		utils.Warn("ListBidsHandler: missing collectionId query param", nil)
		return
	}

	bids, err := h.service.GetBidsForCollection(c.Request.Context(), collectionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		utils.Warn("ListBidsHandler: error retrieving bids", map[string]any{
			"collection_id": collectionID,
			"error":         err.Error(),
		})
		return
	}

	utils.JSONData(c, http.StatusOK, "bids", helpers.NewBidResponses(bids))
	helpers.LogSuccess("ListBidsHandler", "bids retrieved successfully", map[string]any{
		"collection_id": collectionID,
		"count":         len(bids),
	})
}

// GetBidHandler handles GET /api/bids/:id
func (h *MarketplaceHandler) GetBidHandler(c *gin.Context) {
	bidID := c.Param("id")

	bid, err := h.service.GetBid(c.Request.Context(), bidID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		utils.Warn("GetBidHandler: error retrieving bid", map[string]any{
			"bid_id": bidID,
			"error":  err.Error(),
		})
		return
	}

	utils.JSONData(c, http.StatusOK, "bid", helpers.NewBidResponse(bid))
}

// UpdateBidHandler handles PUT /api/bids/:id
func (h *MarketplaceHandler) UpdateBidHandler(c *gin.Context) {
	bidID := c.Param("id")

	var req helpers.UpdateBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateBidHandler", err)
		return
	}

	bid, err := h.service.UpdateBidPrice(c.Request.Context(), bidID, req.Price)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		utils.Warn("UpdateBidHandler: error updating bid", map[string]any{
			"bid_id": bidID,
			"error":  err.Error(),
		})
		return
	}

	utils.JSONData(c, http.StatusOK, "bid", helpers.NewBidResponse(bid))
	helpers.LogSuccess("UpdateBidHandler", "bid updated successfully", map[string]any{
		"bid_id": bid.ID,
		"price":  bid.Price,
	})
}

// DeleteBidHandler handles DELETE /api/bids/:id
func (h *MarketplaceHandler) DeleteBidHandler(c *gin.Context) {
	bidID := c.Param("id")

	bid, err := h.service.DeleteBid(c.Request.Context(), bidID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		utils.Warn("DeleteBidHandler: error deleting bid", map[string]any{
			"bid_id": bidID,
			"error":  err.Error(),
		})
		return
	}

	utils.JSONData(c, http.StatusOK, "bid", helpers.NewBidResponse(bid))
	helpers.LogSuccess("DeleteBidHandler", "bid deleted successfully", map[string]any{
		"bid_id": bid.ID,
	})
}

// AcceptBidHandler handles POST /api/bids/accept
func (h *MarketplaceHandler) AcceptBidHandler(c *gin.Context) {
	var req helpers.AcceptBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AcceptBidHandler", err)
		return
	}

	bid, err := h.service.AcceptBid(c.Request.Context(), req.BidID, req.CollectionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		utils.Error("AcceptBidHandler: failed to accept bid", map[string]any{
			"bid_id":        req.BidID,
			"collection_id": req.CollectionID,
			"error":         err.Error(),
		})
		return
	}

	utils.JSONData(c, http.StatusOK, "bid", helpers.NewBidResponse(bid))
	helpers.LogSuccess("AcceptBidHandler", "bid accepted successfully", map[string]any{
		"bid_id":        bid.ID,
		"collection_id": bid.CollectionID,
		"user_id":       bid.UserID,
	})
}
