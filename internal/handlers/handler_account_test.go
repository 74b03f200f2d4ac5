package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/handlers"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) account(args mock.Arguments) (*domain.Account, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) accounts(args mock.Arguments) ([]domain.Account, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, accountID))
}
func (m *MockAccountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	return m.account(m.Called(ctx, code))
}
func (m *MockAccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return m.accounts(m.Called(ctx))
}
func (m *MockAccountService) ListAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error) {
	return m.accounts(m.Called(ctx, accountType))
}
func (m *MockAccountService) ListActiveAccounts(ctx context.Context) ([]domain.Account, error) {
	return m.accounts(m.Called(ctx))
}
func (m *MockAccountService) GetChildAccounts(ctx context.Context, parentID string) ([]domain.Account, error) {
	return m.accounts(m.Called(ctx, parentID))
}
func (m *MockAccountService) GetAccountTree(ctx context.Context) ([]*domain.AccountNode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AccountNode), args.Error(1)
}
func (m *MockAccountService) SearchAccounts(ctx context.Context, query string) ([]domain.Account, error) {
	return m.accounts(m.Called(ctx, query))
}
func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, req, userID))
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, accountID, req, userID))
}
func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	return m.Called(ctx, accountID, userID).Error(0)
}
func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID string) error {
	return m.Called(ctx, accountID).Error(0)
}
func (m *MockAccountService) Debit(ctx context.Context, accountID string, amount decimal.Decimal, userID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, accountID, amount, userID))
}
func (m *MockAccountService) Credit(ctx context.Context, accountID string, amount decimal.Decimal, userID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, accountID, amount, userID))
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	jwtSecret          string
	userID             string
}

// generateTestToken creates a signed JWT for userID.
func generateTestToken(secret, userID string, expiresIn time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    "ledger-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())

	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()
	suite.mockAccountService = new(MockAccountService)

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	handlers.RegisterAccountRoutes(v1, suite.mockAccountService)
}

func (suite *AccountHandlerTestSuite) request(method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	token, err := generateTestToken(suite.jwtSecret, suite.userID, time.Hour)
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{Code: "1.1.01", Name: "Cash", AccountType: domain.Asset}
	created := &domain.Account{AccountID: uuid.NewString(), Code: "1.1.01", Name: "Cash", AccountType: domain.Asset, Depth: 1, IsActive: true, Version: 1}

	suite.mockAccountService.On("CreateAccount", mock.Anything, req, suite.userID).Return(created, nil).Once()

	w := suite.request(http.MethodPost, "/api/v1/accounts", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.AccountID, resp.AccountID)
	suite.Equal("1.1.01", resp.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_BindingRejectsUnknownType() {
	w := suite.request(http.MethodPost, "/api/v1/accounts", map[string]string{
		"code": "1", "name": "Assets", "accountType": "REVENUE",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_ErrorKinds() {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.ErrInvalidAccountCode, http.StatusBadRequest},
		{"duplicate code", apperrors.ErrDuplicate, http.StatusConflict},
		{"missing parent", apperrors.ErrNotFound, http.StatusNotFound},
		{"stale version", apperrors.ErrConcurrentModification, http.StatusConflict},
		{"collaborator failure", apperrors.NewAppError(500, "database error", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			req := dto.CreateAccountRequest{Code: "1", Name: "Assets", AccountType: domain.Asset}
			suite.mockAccountService.On("CreateAccount", mock.Anything, req, suite.userID).Return(nil, tt.err).Once()

			w := suite.request(http.MethodPost, "/api/v1/accounts", req)

			suite.Equal(tt.want, w.Code)
		})
	}
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	suite.mockAccountService.On("GetAccountByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.request(http.MethodGet, "/api/v1/accounts/missing", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestListAccounts_Filters() {
	cash := []domain.Account{{AccountID: "a1", Code: "1.1.01", Name: "Cash", AccountType: domain.Asset}}

	suite.mockAccountService.On("SearchAccounts", mock.Anything, "cash").Return(cash, nil).Once()
	suite.mockAccountService.On("ListAccountsByType", mock.Anything, domain.Asset).Return(cash, nil).Once()
	suite.mockAccountService.On("ListActiveAccounts", mock.Anything).Return(cash, nil).Once()
	suite.mockAccountService.On("ListAccounts", mock.Anything).Return([]domain.Account{}, nil).Once()

	for _, url := range []string{
		"/api/v1/accounts?q=cash",
		"/api/v1/accounts?type=ASSET",
		"/api/v1/accounts?active=true",
		"/api/v1/accounts",
	} {
		w := suite.request(http.MethodGet, url, nil)
		suite.Equal(http.StatusOK, w.Code, url)
	}
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount_Conflict() {
	suite.mockAccountService.On("DeleteAccount", mock.Anything, "a1").Return(domain.ErrAccountHasChildren).Once()

	w := suite.request(http.MethodDelete, "/api/v1/accounts/a1", nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "child accounts")
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccount() {
	suite.mockAccountService.On("DeactivateAccount", mock.Anything, "a1", suite.userID).Return(nil).Once()

	w := suite.request(http.MethodPost, "/api/v1/accounts/a1/deactivate", nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestRejectsMissingOrExpiredToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)

	expired, err := generateTestToken(suite.jwtSecret, suite.userID, -time.Minute)
	suite.Require().NoError(err)
	req, _ = http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "expired")

	suite.mockAccountService.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything)
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
