package catalog_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/eventgobj/eventgo/config"
	"github.com/eventgobj/eventgo/internal/catalog"
	"github.com/eventgobj/eventgo/internal/models"
	"github.com/eventgobj/eventgo/internal/status"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

func seedTicket(t *testing.T, db *gorm.DB, available int, price decimal.Decimal, start, end time.Time) models.Ticket {
	t.Helper()

	role := models.Role{Name: models.RoleOrganizer}
	require.NoError(t, db.Create(&role).Error)

	organizer := models.User{
		Email:     uuid.New().String() + "@example.com",
		Password:  "hashed",
		FirstName: "Awa",
		LastName:  "Dossou",
		RoleID:    role.ID,
	}
	require.NoError(t, db.Create(&organizer).Error)

	event := models.Event{
		Title:       "Cotonou Jazz Night",
		StartTime:   start,
		EndTime:     end,
		Location:    "Cotonou",
		Category:    models.CategoryMusic,
		IsActive:    true,
		OrganizerID: organizer.ID,
	}
	require.NoError(t, db.Create(&event).Error)

	ticket := models.Ticket{
		Name:              "Standard",
		Price:             price,
		QuantityAvailable: available,
		IsActive:          true,
		EventID:           event.ID,
	}
	require.NoError(t, db.Create(&ticket).Error)
	return ticket
}

func reserve(db *gorm.DB, ticketID uuid.UUID, quantity int) (decimal.Decimal, error) {
	var price decimal.Decimal
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		price, txErr = catalog.Reserve(tx, ticketID, quantity)
		return txErr
	})
	return price, err
}

func soldCount(t *testing.T, db *gorm.DB, ticketID uuid.UUID) int {
	t.Helper()
	var ticket models.Ticket
	require.NoError(t, db.First(&ticket, "id = ?", ticketID).Error)
	return ticket.QuantitySold
}

func TestReserveIncrementsSoldAndReturnsPrice(t *testing.T) {
	db := newTestDB(t)
	price := decimal.NewFromInt(1000)
	ticket := seedTicket(t, db, 10, price, time.Now().Add(time.Hour), time.Now().Add(3*time.Hour))

	got, err := reserve(db, ticket.ID, 3)
	require.NoError(t, err)
	assert.True(t, got.Equal(price), "expected unit price %s, got %s", price, got)
	assert.Equal(t, 3, soldCount(t, db, ticket.ID))
}

func TestReserveFailsWhenOutOfStock(t *testing.T) {
	db := newTestDB(t)
	ticket := seedTicket(t, db, 2, decimal.NewFromInt(500), time.Now().Add(time.Hour), time.Now().Add(3*time.Hour))

	_, err := reserve(db, ticket.ID, 3)
	assert.ErrorIs(t, err, status.ErrOutOfStock)
	assert.Equal(t, 0, soldCount(t, db, ticket.ID))
}

func TestReserveExactRemainingSucceeds(t *testing.T) {
	db := newTestDB(t)
	ticket := seedTicket(t, db, 2, decimal.NewFromInt(500), time.Now().Add(time.Hour), time.Now().Add(3*time.Hour))

	_, err := reserve(db, ticket.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, soldCount(t, db, ticket.ID))

	_, err = reserve(db, ticket.ID, 1)
	assert.ErrorIs(t, err, status.ErrOutOfStock)
	assert.Equal(t, 2, soldCount(t, db, ticket.ID))
}

func TestReserveUnknownTicket(t *testing.T) {
	db := newTestDB(t)

	_, err := reserve(db, uuid.New(), 1)
	assert.ErrorIs(t, err, status.ErrNotFound)
}

func TestReserveRejectsEndedEvent(t *testing.T) {
	db := newTestDB(t)
	ticket := seedTicket(t, db, 10, decimal.NewFromInt(1000), time.Now().Add(-3*time.Hour), time.Now().Add(-time.Hour))

	_, err := reserve(db, ticket.ID, 1)
	assert.ErrorIs(t, err, status.ErrNotFound)
	assert.Equal(t, 0, soldCount(t, db, ticket.ID))
}

func TestReserveRejectsNonPositiveQuantity(t *testing.T) {
	db := newTestDB(t)
	ticket := seedTicket(t, db, 10, decimal.NewFromInt(1000), time.Now().Add(time.Hour), time.Now().Add(3*time.Hour))

	for _, quantity := range []int{0, -1} {
		_, err := reserve(db, ticket.ID, quantity)
		assert.ErrorIs(t, err, status.ErrValidation)
	}
	assert.Equal(t, 0, soldCount(t, db, ticket.ID))
}

func TestConcurrentReservationsNeverOversell(t *testing.T) {
	db := newTestDB(t)
	ticket := seedTicket(t, db, 5, decimal.NewFromInt(1000), time.Now().Add(time.Hour), time.Now().Add(3*time.Hour))

	const attempts = 10
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := reserve(db, ticket.ID, 1)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, status.ErrOutOfStock)
		}
	}

	assert.Equal(t, 5, succeeded)
	assert.Equal(t, 5, soldCount(t, db, ticket.ID))
}
