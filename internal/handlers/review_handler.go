package handlers

import (
	"net/http"

	"github.com/eventgobj/eventgo/internal/helpers"
	"github.com/eventgobj/eventgo/internal/middleware"
	"github.com/eventgobj/eventgo/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func CreateReview(c *gin.Context) {
	userID, _, ok := middleware.CallerIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Rating must be between 1 and 5.")
		return
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	gormDB, ok := middleware.GetDB(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var event models.Event
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	var existing models.Review
	if result := gormDB.Where("event_id = ? AND user_id = ?", eventID, userID).First(&existing); result.Error == nil {
		helpers.RespondWithError(c, http.StatusConflict, "You have already reviewed this event.")
		return
	}

	review := models.Review{
		Rating:  req.Rating,
		Comment: req.Comment,
		EventID: eventID,
		UserID:  userID,
	}
	if err := gormDB.Create(&review).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create review.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review created successfully.",
		"review":  review,
	})
}

func ListEventReviews(c *gin.Context) {
	gormDB, ok := middleware.GetDB(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var reviews []models.Review
	err := gormDB.Preload("User").Where("event_id = ?", c.Param("id")).
		Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving reviews.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
