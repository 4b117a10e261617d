package handlers

import (
	"net/http"

	"github.com/eventgobj/eventgo/internal/helpers"
	"github.com/eventgobj/eventgo/internal/middleware"
	"github.com/eventgobj/eventgo/internal/purchases"
	"github.com/gin-gonic/gin"
)

type ValidateCredentialRequest struct {
	Credential string `json:"credential" binding:"required"`
	Location   string `json:"location"`
}

// ValidateCredential checks a scanned credential against the purchase
// ledger and records the entry.
func ValidateCredential(c *gin.Context) {
	userID, role, ok := middleware.CallerIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	var req ValidateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	gormDB, ok := middleware.GetDB(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	svc := purchases.NewService(gormDB, middleware.GetLogger(c))
	validation, err := svc.Validate(userID, role, req.Credential, req.Location)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ticket validated successfully.",
		"validation": gin.H{
			"id":           validation.ID,
			"validated_at": validation.CreatedAt,
			"location":     validation.Location,
		},
		"ticket": gin.H{
			"event_title": validation.Purchase.Ticket.Event.Title,
			"ticket_name": validation.Purchase.Ticket.Name,
			"quantity":    validation.Purchase.Quantity,
			"reference":   validation.Purchase.Reference,
		},
	})
}
