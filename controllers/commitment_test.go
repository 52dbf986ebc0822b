package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"venture-marketplace-api/models"
	"venture-marketplace-api/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockCommitmentService struct {
	mock.Mock
}

func (m *mockCommitmentService) Propose(documentID int, investor *models.User, amount float64, message string) (*models.Commitment, error) {
	args := m.Called(documentID, investor, amount, message)
	if r := args.Get(0); r != nil {
		return r.(*models.Commitment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCommitmentService) Accept(commitmentID int, actor *models.User, message string) (*models.Commitment, error) {
	args := m.Called(commitmentID, actor, message)
	if r := args.Get(0); r != nil {
		return r.(*models.Commitment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCommitmentService) Renegotiate(commitmentID int, actor *models.User, message string) (*models.Commitment, error) {
	args := m.Called(commitmentID, actor, message)
	if r := args.Get(0); r != nil {
		return r.(*models.Commitment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCommitmentService) Withdraw(commitmentID int, investor *models.User) (*models.Commitment, error) {
	args := m.Called(commitmentID, investor)
	if r := args.Get(0); r != nil {
		return r.(*models.Commitment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCommitmentService) MarkCompleted(commitmentID int, actor *models.User) (*models.Commitment, error) {
	args := m.Called(commitmentID, actor)
	if r := args.Get(0); r != nil {
		return r.(*models.Commitment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCommitmentService) Get(commitmentID int, actor *models.User) (*models.Commitment, error) {
	args := m.Called(commitmentID, actor)
	if r := args.Get(0); r != nil {
		return r.(*models.Commitment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCommitmentService) ListForInvestor(investorID int) ([]models.Commitment, error) {
	args := m.Called(investorID)
	if r := args.Get(0); r != nil {
		return r.([]models.Commitment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCommitmentService) ListForVenture(ventureID int) ([]models.Commitment, error) {
	args := m.Called(ventureID)
	if r := args.Get(0); r != nil {
		return r.([]models.Commitment), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestListMyCommitmentsInvestor(t *testing.T) {
	mockSvc := &mockCommitmentService{}
	commitmentSvc = mockSvc
	mockSvc.On("ListForInvestor", 8).Return([]models.Commitment{
		{CommitmentID: 2, InvestorID: 8, Amount: 50000, VentureResponse: models.CommitmentPending},
	}, nil)

	router := newTestRouter(8, models.RoleInvestor)
	router.GET("/commitments", ListMyCommitments)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/commitments", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Commitments []models.Commitment `json:"commitments"`
		Total       int                 `json:"total"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, float64(50000), body.Commitments[0].Amount)
	mockSvc.AssertExpectations(t)
}

func TestListMyCommitmentsMentorForbidden(t *testing.T) {
	mockSvc := &mockCommitmentService{}
	commitmentSvc = mockSvc

	router := newTestRouter(9, models.RoleMentor)
	router.GET("/commitments", ListMyCommitments)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/commitments", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockSvc.AssertNotCalled(t, "ListForInvestor", mock.Anything)
	mockSvc.AssertNotCalled(t, "ListForVenture", mock.Anything)
}

func TestRespondServiceErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		code int
	}{
		{services.ErrValidation, http.StatusBadRequest},
		{services.ErrNotFound, http.StatusNotFound},
		{services.ErrAccessDenied, http.StatusForbidden},
		{services.ErrInvalidTransition, http.StatusConflict},
		{services.ErrDuplicateActiveRequest, http.StatusConflict},
		{services.ErrAlreadyDecided, http.StatusConflict},
		{services.ErrMissingRequiredArtifact, http.StatusUnprocessableEntity},
		{fmt.Errorf("wrapped: %w", services.ErrInvalidTransition), http.StatusConflict},
		{fmt.Errorf("database exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		respondServiceError(c, tc.err)
		assert.Equalf(t, tc.code, w.Code, "error %v", tc.err)
	}
}
