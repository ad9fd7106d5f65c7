package service

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/erestaurant/internal/errs"
	"github.com/deppfellow/erestaurant/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func booking(id int, name string, at time.Time, status model.ReservationStatus) model.Reservation {
	return model.Reservation{
		ID:              id,
		CustomerName:    name,
		ReservationDate: at,
		NumberInParty:   2,
		ContactPhone:    "780.555.0100",
		Status:          status,
	}
}

func newReservations(reservations ...model.Reservation) (*ReservationService, *fakeConnector) {
	logger := zerolog.Nop()
	db := &fakeConnector{}
	repo := &fakeReservationRepo{reservations: reservations}
	return NewReservationService(db, repo, &logger), db
}

func TestReservationsByTime(t *testing.T) {
	wedding := booking(4, "Lee", serviceDay.Add(clock(19, 45)), model.ReservationBooked)
	wedding.SpecialEvent = &model.SpecialEvent{Code: "W", Description: "Wedding", Active: true}

	svc, db := newReservations(
		booking(1, "Dana", serviceDay.Add(clock(19, 0)), model.ReservationBooked),
		booking(2, "Sam", serviceDay.Add(clock(18, 30)), model.ReservationBooked),
		booking(3, "Kim", serviceDay.Add(clock(19, 15)), model.ReservationCancelled),
		wedding,
		booking(5, "Ari", serviceDay.AddDate(0, 0, 1).Add(clock(18, 0)), model.ReservationBooked),
		booking(6, "Bo", serviceDay.Add(clock(12, 0)), model.ReservationArrived),
	)

	collections, err := svc.ReservationsByTime(context.Background(), serviceDay)
	require.NoError(t, err)
	require.Len(t, collections, 2)

	assert.Equal(t, 18, collections[0].Hour)
	require.Len(t, collections[0].Reservations, 1)
	assert.Equal(t, "Sam", collections[0].Reservations[0].Name)

	assert.Equal(t, 19, collections[1].Hour)
	require.Len(t, collections[1].Reservations, 2)
	assert.Equal(t, "Dana", collections[1].Reservations[0].Name)
	assert.Nil(t, collections[1].Reservations[0].Event)
	assert.Equal(t, "Lee", collections[1].Reservations[1].Name)
	require.NotNil(t, collections[1].Reservations[1].Event)
	assert.Equal(t, "Wedding", *collections[1].Reservations[1].Event)

	assert.Equal(t, 1, db.released)
}

func TestReservationsByTimeGroupingIsExact(t *testing.T) {
	var reservations []model.Reservation
	for i := 0; i < 24; i++ {
		at := serviceDay.Add(time.Duration(23-i) * time.Hour).Add(time.Duration(i) * time.Minute)
		reservations = append(reservations, booking(i+1, "guest", at, model.ReservationBooked))
	}
	svc, _ := newReservations(reservations...)

	collections, err := svc.ReservationsByTime(context.Background(), serviceDay.Add(clock(9, 0)))
	require.NoError(t, err)
	require.Len(t, collections, 24)

	seen := make(map[int]bool)
	for i, c := range collections {
		assert.Equal(t, i, c.Hour)
		for _, r := range c.Reservations {
			assert.Equal(t, c.Hour, r.Date.Hour())
			assert.False(t, seen[r.ID], "reservation %d listed twice", r.ID)
			seen[r.ID] = true
		}
	}
	assert.Len(t, seen, 24)
}

func TestReservationsByTimeEmptyDay(t *testing.T) {
	svc, _ := newReservations()

	collections, err := svc.ReservationsByTime(context.Background(), serviceDay)
	require.NoError(t, err)
	assert.NotNil(t, collections)
	assert.Empty(t, collections)
}

func TestReservationsByTimeRejectsZeroDate(t *testing.T) {
	svc, db := newReservations()

	_, err := svc.ReservationsByTime(context.Background(), time.Time{})
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindValidation))
	assert.Zero(t, db.acquired)
}
