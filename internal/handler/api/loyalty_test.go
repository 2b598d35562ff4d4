//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"petshop-loyalty/internal/handler/api"
	"petshop-loyalty/internal/pkg/clock"
	"petshop-loyalty/internal/pkg/config"
	"petshop-loyalty/internal/usecase/commands"
	"petshop-loyalty/internal/usecase/queries"
	"petshop-loyalty/tests/common/fakes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

// accountStore adapts the fake unit of work to the read side.
type accountStore struct {
	uow *fakes.UoW
}

func (s *accountStore) FindBalance(_ context.Context, customerID int64) (int, bool, error) {
	balance, ok := s.uow.Accounts[customerID]
	return balance, ok, nil
}

func (s *accountStore) FindAllAccounts(_ context.Context) ([]*queries.LoyaltyAccountView, error) {
	var views []*queries.LoyaltyAccountView
	for id, balance := range s.uow.Accounts {
		views = append(views, &queries.LoyaltyAccountView{CustomerID: id, Points: balance})
	}
	return views, nil
}

type LoyaltyHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	uow    *fakes.UoW
}

func (s *LoyaltyHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.uow = fakes.NewUoW()

	clk := clock.NewMockClock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	policy := config.NewTestConfig().Loyalty
	handler := api.NewLoyaltyHandler(
		commands.NewLoyaltyCommands(s.uow, s.uow.AccountRepo(), clk, policy),
		queries.NewLoyaltyQueries(&accountStore{uow: s.uow}),
	)

	s.router.POST("/loyalty/credits", handler.CreditPoints)
	s.router.POST("/loyalty/redemptions", handler.RedeemPoints)
	s.router.GET("/loyalty/accounts", handler.ListAccounts)
	s.router.GET("/loyalty/accounts/:customerId/balance", handler.GetBalance)
}

func TestLoyaltyHandlerSuite(t *testing.T) {
	suite.Run(t, new(LoyaltyHandlerTestSuite))
}

func (s *LoyaltyHandlerTestSuite) postJSON(url string, body map[string]any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *LoyaltyHandlerTestSuite) TestCreditPoints() {
	s.Run("credits points", func() {
		rec := s.postJSON("/loyalty/credits", map[string]any{
			"customer_id": 1,
			"points":      100,
		})
		s.Equal(http.StatusOK, rec.Code)

		var resp map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal(float64(100), resp["credited_points"])
		s.Equal(float64(100), resp["balance"])
	})

	s.Run("negative points rejected", func() {
		rec := s.postJSON("/loyalty/credits", map[string]any{
			"customer_id": 1,
			"points":      -10,
		})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("malformed body rejected", func() {
		req := httptest.NewRequest(http.MethodPost, "/loyalty/credits", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *LoyaltyHandlerTestSuite) TestRedeemPoints() {
	s.Run("redeems within balance", func() {
		s.uow.Accounts[1] = 500
		rec := s.postJSON("/loyalty/redemptions", map[string]any{
			"customer_id": 1,
			"points":      200,
		})
		s.Equal(http.StatusOK, rec.Code)

		var resp map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal(float64(300), resp["balance"])
	})

	s.Run("insufficient balance conflicts", func() {
		s.uow.Accounts[2] = 100
		rec := s.postJSON("/loyalty/redemptions", map[string]any{
			"customer_id": 2,
			"points":      200,
		})
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("amount out of bounds", func() {
		s.uow.Accounts[3] = 5000
		rec := s.postJSON("/loyalty/redemptions", map[string]any{
			"customer_id": 3,
			"points":      2000,
		})
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *LoyaltyHandlerTestSuite) TestGetBalance() {
	s.Run("existing account", func() {
		s.uow.Accounts[7] = 120
		req := httptest.NewRequest(http.MethodGet, "/loyalty/accounts/7/balance", nil)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		s.Equal(http.StatusOK, rec.Code)
		var resp map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal(float64(120), resp["balance"])
	})

	s.Run("absent account reads as zero", func() {
		req := httptest.NewRequest(http.MethodGet, "/loyalty/accounts/999/balance", nil)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		s.Equal(http.StatusOK, rec.Code)
		var resp map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal(float64(0), resp["balance"])
	})

	s.Run("non-numeric id", func() {
		req := httptest.NewRequest(http.MethodGet, "/loyalty/accounts/abc/balance", nil)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
