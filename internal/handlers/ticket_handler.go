package handlers

import (
	"fmt"
	"net/http"

	"github.com/eventgobj/eventgo/internal/helpers"
	"github.com/eventgobj/eventgo/internal/middleware"
	"github.com/eventgobj/eventgo/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TicketRequest struct {
	Name              string          `json:"name" binding:"required"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	QuantityAvailable int             `json:"quantity_available" binding:"required,min=1"`
}

type ticketResponse struct {
	models.Ticket
	QuantityRemaining int  `json:"quantity_remaining"`
	IsSoldOut         bool `json:"is_sold_out"`
}

func newTicketResponse(ticket models.Ticket) ticketResponse {
	return ticketResponse{
		Ticket:            ticket,
		QuantityRemaining: ticket.QuantityRemaining(),
		IsSoldOut:         ticket.IsSoldOut(),
	}
}

// ownedEvent loads an event and checks the caller may manage its tickets.
func ownedEvent(gormDB *gorm.DB, eventID string, userID uuid.UUID, role string) (*models.Event, int, string) {
	var event models.Event
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		return nil, http.StatusNotFound, "Event not found."
	}
	if event.OrganizerID != userID && role != models.RoleAdmin {
		return nil, http.StatusForbidden, "You don't have permission to manage tickets for this event."
	}
	return &event, 0, ""
}

func CreateTicket(c *gin.Context) {
	var req TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}
	if req.Price.IsNegative() {
		helpers.RespondWithError(c, http.StatusBadRequest, "Price cannot be negative.")
		return
	}

	userID, role, ok := middleware.CallerIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	gormDB, ok := middleware.GetDB(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	event, code, msg := ownedEvent(gormDB, c.Param("id"), userID, role)
	if event == nil {
		helpers.RespondWithError(c, code, msg)
		return
	}

	ticket := models.Ticket{
		ID:                uuid.New(),
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		QuantityAvailable: req.QuantityAvailable,
		IsActive:          true,
		EventID:           event.ID,
	}

	if err := gormDB.Create(&ticket).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create ticket.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Ticket created successfully.",
		"ticket_id": ticket.ID,
	})
}

func ListEventTickets(c *gin.Context) {
	gormDB, ok := middleware.GetDB(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var tickets []models.Ticket
	err := gormDB.Where("event_id = ? AND is_active = ?", c.Param("id"), true).
		Order("price ASC").Find(&tickets).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving tickets.")
		return
	}

	responses := make([]ticketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		responses = append(responses, newTicketResponse(ticket))
	}
	c.JSON(http.StatusOK, gin.H{"tickets": responses})
}

// GetTicket returns the ticket type with remaining inventory computed
// from the same quantity_sold counter reservations update; there is no
// separate availability cache to go stale.
func GetTicket(c *gin.Context) {
	gormDB, ok := middleware.GetDB(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var ticket models.Ticket
	if err := gormDB.Preload("Event").Where("id = ?", c.Param("id")).First(&ticket).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Ticket not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving ticket.")
		return
	}

	c.JSON(http.StatusOK, newTicketResponse(ticket))
}

func UpdateTicket(c *gin.Context) {
	var req TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}
	if req.Price.IsNegative() {
		helpers.RespondWithError(c, http.StatusBadRequest, "Price cannot be negative.")
		return
	}

	userID, role, ok := middleware.CallerIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	gormDB, ok := middleware.GetDB(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var ticket models.Ticket
	if err := gormDB.Where("id = ?", c.Param("id")).First(&ticket).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Ticket not found.")
		return
	}

	event, code, msg := ownedEvent(gormDB, ticket.EventID.String(), userID, role)
	if event == nil {
		helpers.RespondWithError(c, code, msg)
		return
	}

	// The ceiling can move, but never below what is already sold.
	if req.QuantityAvailable < ticket.QuantitySold {
		helpers.RespondWithError(c, http.StatusBadRequest,
			fmt.Sprintf("Cannot reduce quantity below already sold tickets (%d).", ticket.QuantitySold))
		return
	}

	ticket.Name = req.Name
	ticket.Description = req.Description
	ticket.Price = req.Price
	ticket.QuantityAvailable = req.QuantityAvailable

	if err := gormDB.Save(&ticket).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update ticket.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ticket updated successfully.",
		"ticket":  newTicketResponse(ticket),
	})
}

func DeleteTicket(c *gin.Context) {
	userID, role, ok := middleware.CallerIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	gormDB, ok := middleware.GetDB(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var ticket models.Ticket
	if err := gormDB.Where("id = ?", c.Param("id")).First(&ticket).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Ticket not found.")
		return
	}

	event, code, msg := ownedEvent(gormDB, ticket.EventID.String(), userID, role)
	if event == nil {
		helpers.RespondWithError(c, code, msg)
		return
	}

	if err := gormDB.Delete(&ticket).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete ticket.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ticket deleted successfully.",
	})
}
