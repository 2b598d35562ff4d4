//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"petshop-loyalty/internal/handler/api"
	"petshop-loyalty/internal/infra"
	"petshop-loyalty/internal/pkg/clock"
	"petshop-loyalty/internal/pkg/config"
	"petshop-loyalty/internal/usecase/commands"
	"petshop-loyalty/internal/usecase/queries"
	"petshop-loyalty/tests/common/fakes"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// subscriptionStore adapts the fake unit of work to the read side.
type subscriptionStore struct {
	uow *fakes.UoW
}

func (s *subscriptionStore) FindByID(_ context.Context, id uuid.UUID) (*queries.SubscriptionView, error) {
	sub, ok := s.uow.Subscriptions[id]
	if !ok {
		return nil, infra.WrapRepoErr("subscription not found", nil, infra.KindNotFound)
	}
	return &queries.SubscriptionView{
		ID:               sub.ID(),
		CustomerID:       sub.CustomerID(),
		ProductID:        sub.ProductID(),
		Frequency:        sub.Frequency().String(),
		NextDeliveryDate: sub.NextDeliveryDate(),
		Status:           sub.Status().String(),
		CreatedAt:        sub.CreatedAt(),
		UpdatedAt:        sub.UpdatedAt(),
	}, nil
}

func (s *subscriptionStore) FindByCustomerID(ctx context.Context, customerID int64) ([]*queries.SubscriptionView, error) {
	var views []*queries.SubscriptionView
	for id, sub := range s.uow.Subscriptions {
		if sub.CustomerID() == customerID {
			view, err := s.FindByID(ctx, id)
			if err != nil {
				return nil, err
			}
			views = append(views, view)
		}
	}
	return views, nil
}

type SubscriptionHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	uow    *fakes.UoW
	cmd    commands.SubscriptionCommands
}

func (s *SubscriptionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.uow = fakes.NewUoW()

	clk := clock.NewMockClock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	policy := config.NewTestConfig().Loyalty
	loyaltyCmd := commands.NewLoyaltyCommands(s.uow, s.uow.AccountRepo(), clk, policy)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.cmd = commands.NewSubscriptionCommands(s.uow, loyaltyCmd, clk, policy, logger)

	handler := api.NewSubscriptionHandler(s.cmd, queries.NewSubscriptionQueries(&subscriptionStore{uow: s.uow}))

	s.router.POST("/subscriptions", handler.CreateSubscription)
	s.router.GET("/subscriptions/:id", handler.GetSubscription)
	s.router.POST("/subscriptions/:id/cancel", handler.CancelSubscription)
	s.router.POST("/subscriptions/:id/renewals", handler.RenewSubscription)
}

func TestSubscriptionHandlerSuite(t *testing.T) {
	suite.Run(t, new(SubscriptionHandlerTestSuite))
}

func (s *SubscriptionHandlerTestSuite) post(url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(http.MethodPost, url, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *SubscriptionHandlerTestSuite) createSubscription() uuid.UUID {
	id, err := s.cmd.Create(context.Background(), 42, uuid.New(), "weekly", time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	return id
}

func (s *SubscriptionHandlerTestSuite) TestCreateSubscription() {
	s.Run("creates subscription", func() {
		rec := s.post("/subscriptions", map[string]any{
			"customer_id":         42,
			"product_id":          uuid.New().String(),
			"frequency":           "monthly",
			"first_delivery_date": "2026-03-15T00:00:00Z",
		})
		s.Equal(http.StatusCreated, rec.Code)

		var resp map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.NotEmpty(resp["id"])
	})

	s.Run("invalid frequency", func() {
		rec := s.post("/subscriptions", map[string]any{
			"customer_id":         42,
			"product_id":          uuid.New().String(),
			"frequency":           "daily",
			"first_delivery_date": "2026-03-15T00:00:00Z",
		})
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *SubscriptionHandlerTestSuite) TestGetSubscription() {
	s.Run("found", func() {
		id := s.createSubscription()
		req := httptest.NewRequest(http.MethodGet, "/subscriptions/"+id.String(), nil)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		s.Equal(http.StatusOK, rec.Code)
		var resp map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal("active", resp["status"])
	})

	s.Run("not found", func() {
		req := httptest.NewRequest(http.MethodGet, "/subscriptions/"+uuid.New().String(), nil)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("malformed id", func() {
		req := httptest.NewRequest(http.MethodGet, "/subscriptions/not-a-uuid", nil)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *SubscriptionHandlerTestSuite) TestCancelSubscription() {
	s.Run("cancel succeeds once", func() {
		id := s.createSubscription()

		rec := s.post("/subscriptions/"+id.String()+"/cancel", nil)
		s.Equal(http.StatusNoContent, rec.Code)

		rec = s.post("/subscriptions/"+id.String()+"/cancel", nil)
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("unknown subscription", func() {
		rec := s.post("/subscriptions/"+uuid.New().String()+"/cancel", nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *SubscriptionHandlerTestSuite) TestRenewSubscription() {
	s.Run("plain renewal", func() {
		id := s.createSubscription()
		rec := s.post("/subscriptions/"+id.String()+"/renewals", nil)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("renewal with point grant", func() {
		id := s.createSubscription()
		before := s.uow.Balance(42)

		rec := s.post("/subscriptions/"+id.String()+"/renewals", map[string]any{
			"credit_points": 25,
		})
		s.Equal(http.StatusNoContent, rec.Code)
		s.Equal(before+25, s.uow.Balance(42))
	})

	s.Run("discounted renewal with short balance", func() {
		id := s.createSubscription()
		s.uow.Accounts[42] = 10

		rec := s.post("/subscriptions/"+id.String()+"/renewals", map[string]any{
			"redeem_points": 200,
		})
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("discounted renewal", func() {
		id := s.createSubscription()
		s.uow.Accounts[42] = 500

		rec := s.post("/subscriptions/"+id.String()+"/renewals", map[string]any{
			"redeem_points": 200,
		})
		s.Equal(http.StatusNoContent, rec.Code)
		s.Equal(300, s.uow.Balance(42))
	})

	s.Run("cancelled subscription conflicts", func() {
		id := s.createSubscription()
		rec := s.post("/subscriptions/"+id.String()+"/cancel", nil)
		s.Require().Equal(http.StatusNoContent, rec.Code)

		rec = s.post("/subscriptions/"+id.String()+"/renewals", nil)
		s.Equal(http.StatusConflict, rec.Code)
	})
}
