package handlers

import (
	"net/http"

	"github.com/eventgobj/eventgo/internal/helpers"
	"github.com/eventgobj/eventgo/internal/middleware"
	"github.com/eventgobj/eventgo/internal/models"
	"github.com/eventgobj/eventgo/internal/payments"
	"github.com/eventgobj/eventgo/internal/purchases"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

type PurchaseTicketRequest struct {
	Quantity       int    `json:"quantity"`
	PaymentMethod  string `json:"payment_method" binding:"required"`
	Phone          string `json:"phone"`
	CardNumber     string `json:"card_number"`
	CardExpiry     string `json:"card_expiry"`
	CardCVV        string `json:"card_cvv"`
	CardHolderName string `json:"card_holder_name"`
}

// PurchaseTicket is the purchase endpoint: it hands the attempt to the
// ledger service and maps the error taxonomy onto HTTP statuses.
func PurchaseTicket(c *gin.Context) {
	userID, _, ok := middleware.CallerIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ticket ID.")
		return
	}

	var req PurchaseTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB, ok := middleware.GetDB(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	svc := purchases.NewService(gormDB, middleware.GetLogger(c))
	purchase, err := svc.Purchase(userID, ticketID, purchases.Request{
		Quantity:      req.Quantity,
		PaymentMethod: req.PaymentMethod,
		Details: payments.Details{
			Phone:          req.Phone,
			CardNumber:     req.CardNumber,
			CardExpiry:     req.CardExpiry,
			CardCVV:        req.CardCVV,
			CardHolderName: req.CardHolderName,
		},
	})
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, purchase)
}

func ListPurchases(c *gin.Context) {
	userID, role, ok := middleware.CallerIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	gormDB, ok := middleware.GetDB(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	svc := purchases.NewService(gormDB, middleware.GetLogger(c))
	results, err := svc.List(userID, role)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"purchases": results})
}

func GetPurchase(c *gin.Context) {
	userID, role, ok := middleware.CallerIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid purchase ID.")
		return
	}

	gormDB, ok := middleware.GetDB(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	svc := purchases.NewService(gormDB, middleware.GetLogger(c))
	purchase, err := svc.Get(userID, role, purchaseID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, purchase)
}

// PurchaseQR renders the stored credential as a scannable PNG. The
// image is a presentation of the token, not a source of authority;
// validation always goes back to the ledger.
func PurchaseQR(c *gin.Context) {
	userID, role, ok := middleware.CallerIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid purchase ID.")
		return
	}

	gormDB, ok := middleware.GetDB(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	svc := purchases.NewService(gormDB, middleware.GetLogger(c))
	purchase, err := svc.Get(userID, role, purchaseID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	if purchase.Status != models.PurchasePaid || purchase.Credential == nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Ticket not available for download.")
		return
	}

	qrImage, err := qrcode.Encode(*purchase.Credential, qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}
