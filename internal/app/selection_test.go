package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/cinetick/cinetick/api"
	"github.com/cinetick/cinetick/internal/domain"
	"github.com/cinetick/cinetick/internal/mocks"
	"github.com/cinetick/cinetick/internal/validator"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testShowtimeID = 1

var testShowtime = &domain.Showtime{
	ID:          testShowtimeID,
	MovieID:     3,
	MovieTitle:  "Arrival",
	TheaterName: "Downtown",
	HallID:      2,
	HallName:    "Hall 2",
	StartTime:   time.Now().Add(48 * time.Hour),
	BasePrice:   decimal.NewFromInt(10),
}

type SelectionTestSuite struct {
	suite.Suite
	app          *Application
	redisClient  *mocks.MockRedisClient
	seatRepo     *mocks.MockSeatRepository
	showtimeRepo *mocks.MockShowtimeRepository
	inventory    *mocks.MockSeatInventory
}

func (s *SelectionTestSuite) SetupTest() {
	s.redisClient = new(mocks.MockRedisClient)
	s.seatRepo = new(mocks.MockSeatRepository)
	s.showtimeRepo = new(mocks.MockShowtimeRepository)
	s.inventory = new(mocks.MockSeatInventory)

	s.app = newTestApplication(func(a *Application) {
		a.redis = s.redisClient
		a.seatRepo = s.seatRepo
		a.showtimeRepo = s.showtimeRepo
		a.inventory = s.inventory
		a.pricing = domain.DefaultPricingPolicy()
	})
}

func TestSelectionSuite(t *testing.T) {
	suite.Run(t, new(SelectionTestSuite))
}

func selectionJSON(t mock.TestingT, selection domain.Selection) string {
	data, err := json.Marshal(selection)
	if err != nil {
		t.Errorf("marshalling selection fixture: %v", err)
	}

	return string(data)
}

func (s *SelectionTestSuite) TestStartSelection() {
	tests := []struct {
		name           string
		showtimeID     string
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:           "should fail when showtime ID is not a positive integer",
			showtimeID:     "abc",
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "invalid showtimeId parameter",
		},
		{
			name:       "should fail when showtime does not exist",
			showtimeID: "1",
			setupMocks: func() {
				s.showtimeRepo.On("GetById", mock.Anything, testShowtimeID).
					Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
		{
			name:       "should create an empty selection",
			showtimeID: "1",
			setupMocks: func() {
				s.showtimeRepo.On("GetById", mock.Anything, testShowtimeID).Return(testShowtime, nil)
				s.redisClient.On("Get", mock.Anything, mock.Anything).
					Return(redis.NewStringResult("", redis.Nil))
				s.redisClient.On("Set", mock.Anything, mock.Anything, mock.Anything, s.app.config.Booking.HoldTTL).
					Return(redis.NewStatusResult("OK", nil))
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "should release holds of a prior selection before starting over",
			showtimeID: "1",
			setupMocks: func() {
				prior := domain.NewSelection(testShowtimeID, 10*time.Minute)
				prior.Add(domain.SelectionSeat{SeatID: 4, Row: "A", Number: 4, Type: domain.SeatTypeStandard, Price: decimal.NewFromInt(10)})

				s.showtimeRepo.On("GetById", mock.Anything, testShowtimeID).Return(testShowtime, nil)
				s.redisClient.On("Get", mock.Anything, mock.Anything).
					Return(redis.NewStringResult(selectionJSON(s.T(), prior), nil))
				s.inventory.On("Release", mock.Anything, testShowtimeID, mock.Anything, []int{4}).Return(nil)
				s.redisClient.On("Set", mock.Anything, mock.Anything, mock.Anything, s.app.config.Booking.HoldTTL).
					Return(redis.NewStatusResult("OK", nil))
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.redisClient.AssertExpectations(s.T())
			defer s.showtimeRepo.AssertExpectations(s.T())
			defer s.inventory.AssertExpectations(s.T())

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodPost, fmt.Sprintf("/showtimes/%s/selection", tt.showtimeID), nil)
			r = withUrlParams(r, map[string]string{"showtimeId": tt.showtimeID})

			serveWithSession(s.app, s.app.StartSelection, w, r)

			s.Equal(tt.wantStatus, w.Code)
			checkErrorResponse(s.T(), w, tt.wantStatus, tt.wantErrMessage)

			if tt.wantStatus == http.StatusCreated {
				var resp api.SelectionResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
				s.Equal(testShowtimeID, resp.ShowtimeId)
				s.Empty(resp.Seats)
				s.True(resp.TotalPrice.IsZero())
				s.Equal(s.app.config.Booking.MaxSeatsPerBooking, resp.MaxSeats)
			}
		})
	}
}

func (s *SelectionTestSuite) TestToggleSeat() {
	freshSelection := func() domain.Selection {
		return domain.NewSelection(testShowtimeID, 10*time.Minute)
	}

	tests := []struct {
		name           string
		input          api.ToggleSeatRequest
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
		wantSeatIDs    []int
		wantTotal      decimal.Decimal
	}{
		{
			name:           "should fail when seat ID is missing",
			input:          api.ToggleSeatRequest{},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: validator.ErrRequired,
		},
		{
			name:  "should fail when no selection exists",
			input: api.ToggleSeatRequest{SeatId: 5},
			setupMocks: func() {
				s.redisClient.On("Get", mock.Anything, mock.Anything).
					Return(redis.NewStringResult("", redis.Nil))
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: domain.ErrSelectionNotFound.Error(),
		},
		{
			name:  "should add a seat and fix its price at hold time",
			input: api.ToggleSeatRequest{SeatId: 5},
			setupMocks: func() {
				s.redisClient.On("Get", mock.Anything, mock.Anything).
					Return(redis.NewStringResult(selectionJSON(s.T(), freshSelection()), nil))
				s.seatRepo.On("GetByShowtimeAndIds", mock.Anything, testShowtimeID, []int{5}).
					Return([]domain.Seat{{ID: 5, Row: "B", Number: 5, Type: domain.SeatTypeVIP}}, nil)
				s.showtimeRepo.On("GetById", mock.Anything, testShowtimeID).Return(testShowtime, nil)
				s.inventory.On("TryHold", mock.Anything, testShowtimeID, []int{5}, mock.Anything, mock.Anything).
					Return(nil)
				s.redisClient.On("Set", mock.Anything, mock.Anything, mock.Anything, time.Duration(redis.KeepTTL)).
					Return(redis.NewStatusResult("OK", nil))
			},
			wantStatus:  http.StatusOK,
			wantSeatIDs: []int{5},
			wantTotal:   decimal.NewFromInt(15),
		},
		{
			name:  "should report the losing seat on a hold conflict",
			input: api.ToggleSeatRequest{SeatId: 5},
			setupMocks: func() {
				s.redisClient.On("Get", mock.Anything, mock.Anything).
					Return(redis.NewStringResult(selectionJSON(s.T(), freshSelection()), nil))
				s.seatRepo.On("GetByShowtimeAndIds", mock.Anything, testShowtimeID, []int{5}).
					Return([]domain.Seat{{ID: 5, Row: "B", Number: 5, Type: domain.SeatTypeStandard}}, nil)
				s.showtimeRepo.On("GetById", mock.Anything, testShowtimeID).Return(testShowtime, nil)
				s.inventory.On("TryHold", mock.Anything, testShowtimeID, []int{5}, mock.Anything, mock.Anything).
					Return(domain.SeatsUnavailableError{SeatIDs: []int{5}})
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: domain.SeatsUnavailableError{SeatIDs: []int{5}}.Error(),
		},
		{
			name:  "should fail when the selection is already at the seat limit",
			input: api.ToggleSeatRequest{SeatId: 99},
			setupMocks: func() {
				full := freshSelection()
				for i := 1; i <= s.app.config.Booking.MaxSeatsPerBooking; i++ {
					full.Add(domain.SelectionSeat{SeatID: i, Price: decimal.NewFromInt(10)})
				}

				s.redisClient.On("Get", mock.Anything, mock.Anything).
					Return(redis.NewStringResult(selectionJSON(s.T(), full), nil))
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: domain.ErrSeatLimitExceeded.Error(),
		},
		{
			name:  "should remove an already selected seat and release its hold",
			input: api.ToggleSeatRequest{SeatId: 5},
			setupMocks: func() {
				withSeat := freshSelection()
				withSeat.Add(domain.SelectionSeat{SeatID: 5, Row: "B", Number: 5, Type: domain.SeatTypeVIP, Price: decimal.NewFromInt(15)})

				s.redisClient.On("Get", mock.Anything, mock.Anything).
					Return(redis.NewStringResult(selectionJSON(s.T(), withSeat), nil))
				s.inventory.On("Release", mock.Anything, testShowtimeID, mock.Anything, []int{5}).Return(nil)
				s.redisClient.On("Set", mock.Anything, mock.Anything, mock.Anything, time.Duration(redis.KeepTTL)).
					Return(redis.NewStatusResult("OK", nil))
			},
			wantStatus:  http.StatusOK,
			wantSeatIDs: []int{},
			wantTotal:   decimal.Zero,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.redisClient.AssertExpectations(s.T())
			defer s.seatRepo.AssertExpectations(s.T())
			defer s.inventory.AssertExpectations(s.T())

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodPost, "/showtimes/1/selection/seats", tt.input)
			r = withUrlParams(r, map[string]string{"showtimeId": "1"})

			serveWithSession(s.app, s.app.ToggleSeat, w, r)

			s.Equal(tt.wantStatus, w.Code)
			checkErrorResponse(s.T(), w, tt.wantStatus, tt.wantErrMessage)

			if tt.wantStatus == http.StatusOK {
				var resp api.SelectionResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))

				gotIDs := make([]int, 0, len(resp.Seats))
				for _, seat := range resp.Seats {
					gotIDs = append(gotIDs, seat.Id)
				}

				s.Equal(tt.wantSeatIDs, gotIDs)
				s.True(tt.wantTotal.Equal(resp.TotalPrice), "total = %s, want %s", resp.TotalPrice, tt.wantTotal)
			}
		})
	}
}

func (s *SelectionTestSuite) TestGetSelection() {
	s.Run("should return 404 when no selection exists", func() {
		s.SetupTest()

		s.redisClient.On("Get", mock.Anything, mock.Anything).
			Return(redis.NewStringResult("", redis.Nil))

		w, r := executeRequest(s.T(), http.MethodGet, "/showtimes/1/selection", nil)
		r = withUrlParams(r, map[string]string{"showtimeId": "1"})

		serveWithSession(s.app, s.app.GetSelection, w, r)

		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("should return 410 when the selection has expired", func() {
		s.SetupTest()

		expired := domain.Selection{ShowtimeID: testShowtimeID, Seats: []domain.SelectionSeat{}, ExpiresAt: time.Now().Add(-time.Minute)}

		s.redisClient.On("Get", mock.Anything, mock.Anything).
			Return(redis.NewStringResult(selectionJSON(s.T(), expired), nil))

		w, r := executeRequest(s.T(), http.MethodGet, "/showtimes/1/selection", nil)
		r = withUrlParams(r, map[string]string{"showtimeId": "1"})

		serveWithSession(s.app, s.app.GetSelection, w, r)

		s.Equal(http.StatusGone, w.Code)
	})

	s.Run("should return the selection with prices and total", func() {
		s.SetupTest()

		selection := domain.NewSelection(testShowtimeID, 10*time.Minute)
		selection.Add(domain.SelectionSeat{SeatID: 1, Row: "A", Number: 1, Type: domain.SeatTypeStandard, Price: decimal.NewFromInt(10)})
		selection.Add(domain.SelectionSeat{SeatID: 2, Row: "A", Number: 2, Type: domain.SeatTypeVIP, Price: decimal.NewFromInt(15)})

		s.redisClient.On("Get", mock.Anything, mock.Anything).
			Return(redis.NewStringResult(selectionJSON(s.T(), selection), nil))

		w, r := executeRequest(s.T(), http.MethodGet, "/showtimes/1/selection", nil)
		r = withUrlParams(r, map[string]string{"showtimeId": "1"})

		serveWithSession(s.app, s.app.GetSelection, w, r)

		s.Equal(http.StatusOK, w.Code)

		var resp api.SelectionResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Len(resp.Seats, 2)
		s.True(resp.TotalPrice.Equal(decimal.NewFromInt(25)), "total = %s, want 25", resp.TotalPrice)
	})
}

func (s *SelectionTestSuite) TestCancelSelection() {
	s.Run("should be a no-op when no selection exists", func() {
		s.SetupTest()

		s.redisClient.On("Get", mock.Anything, mock.Anything).
			Return(redis.NewStringResult("", redis.Nil))

		w, r := executeRequest(s.T(), http.MethodDelete, "/showtimes/1/selection", nil)
		r = withUrlParams(r, map[string]string{"showtimeId": "1"})

		serveWithSession(s.app, s.app.CancelSelection, w, r)

		s.Equal(http.StatusNoContent, w.Code)
		s.inventory.AssertNotCalled(s.T(), "Release")
	})

	s.Run("should release all holds and delete the selection", func() {
		s.SetupTest()

		selection := domain.NewSelection(testShowtimeID, 10*time.Minute)
		selection.Add(domain.SelectionSeat{SeatID: 1, Price: decimal.NewFromInt(10)})
		selection.Add(domain.SelectionSeat{SeatID: 2, Price: decimal.NewFromInt(15)})

		s.redisClient.On("Get", mock.Anything, mock.Anything).
			Return(redis.NewStringResult(selectionJSON(s.T(), selection), nil))
		s.inventory.On("Release", mock.Anything, testShowtimeID, mock.Anything, []int{1, 2}).Return(nil)
		s.redisClient.On("Del", mock.Anything, mock.Anything).
			Return(redis.NewIntResult(1, nil))

		w, r := executeRequest(s.T(), http.MethodDelete, "/showtimes/1/selection", nil)
		r = withUrlParams(r, map[string]string{"showtimeId": "1"})

		serveWithSession(s.app, s.app.CancelSelection, w, r)

		s.Equal(http.StatusNoContent, w.Code)
		s.inventory.AssertExpectations(s.T())
		s.redisClient.AssertExpectations(s.T())
	})
}
