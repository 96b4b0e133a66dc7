package burgerapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/BurgerClient_Go/internal/apiclient"
	"github.com/osse101/BurgerClient_Go/internal/domain"
	"github.com/osse101/BurgerClient_Go/internal/logger"
)

// Requester sends one backend call; *apiclient.Client implements it
type Requester interface {
	Do(ctx context.Context, req apiclient.Request, out interface{}) error
}

// RefreshTokenSource provides the refresh token logout sends to the backend
type RefreshTokenSource interface {
	RefreshToken(ctx context.Context) (string, error)
}

// Service is the typed surface of the burger backend
type Service struct {
	client   Requester
	tokens   RefreshTokenSource
	validate *validator.Validate
}

// NewService creates a Service
func NewService(client Requester, tokens RefreshTokenSource) *Service {
	return &Service{
		client:   client,
		tokens:   tokens,
		validate: validator.New(),
	}
}

func (s *Service) call(ctx context.Context, req apiclient.Request, out result) error {
	if err := s.client.Do(ctx, req, out); err != nil {
		return err
	}
	return out.failure()
}

func (s *Service) check(req interface{}) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// Ingredients lists the ingredient catalog
func (s *Service) Ingredients(ctx context.Context) ([]domain.Ingredient, error) {
	var resp IngredientsResponse
	if err := s.call(ctx, apiclient.Request{Method: http.MethodGet, Path: PathIngredients}, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Feed lists the global order feed with its aggregate counters
func (s *Service) Feed(ctx context.Context) (domain.Feed, error) {
	var resp FeedResponse
	if err := s.call(ctx, apiclient.Request{Method: http.MethodGet, Path: PathFeed}, &resp); err != nil {
		return domain.Feed{}, err
	}
	return domain.Feed{Orders: resp.Orders, Total: resp.Total, TotalToday: resp.TotalToday}, nil
}

// UserOrders lists the caller's own orders
func (s *Service) UserOrders(ctx context.Context) ([]domain.Order, error) {
	var resp FeedResponse
	if err := s.call(ctx, apiclient.Request{Method: http.MethodGet, Path: PathOrders, Auth: true}, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// OrderByNumber fetches one order by its human number
func (s *Service) OrderByNumber(ctx context.Context, number int) (domain.Order, error) {
	if number <= 0 {
		return domain.Order{}, fmt.Errorf("%w: order number must be positive", domain.ErrInvalidInput)
	}

	var resp OrderLookupResponse
	path := PathOrders + "/" + strconv.Itoa(number)
	if err := s.call(ctx, apiclient.Request{Method: http.MethodGet, Path: path}, &resp); err != nil {
		return domain.Order{}, err
	}
	if len(resp.Orders) == 0 {
		return domain.Order{}, fmt.Errorf("%w: %d", domain.ErrOrderNotFound, number)
	}
	return resp.Orders[0], nil
}

// PlaceOrder submits a flat ingredient id list
func (s *Service) PlaceOrder(ctx context.Context, ingredientIDs []string) (PlaceOrderResponse, error) {
	req := PlaceOrderRequest{Ingredients: ingredientIDs}
	if err := s.check(req); err != nil {
		return PlaceOrderResponse{}, err
	}

	var resp PlaceOrderResponse
	if err := s.call(ctx, apiclient.Request{Method: http.MethodPost, Path: PathOrders, Body: req, Auth: true}, &resp); err != nil {
		return PlaceOrderResponse{}, err
	}
	if resp.Order.Name == "" {
		resp.Order.Name = resp.Name
	}

	logger.FromContext(ctx).Info(LogMsgOrderPlaced, "number", resp.Order.Number)
	return resp, nil
}

// Register creates an account
func (s *Service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	if err := s.check(req); err != nil {
		return AuthResponse{}, err
	}
	var resp AuthResponse
	err := s.call(ctx, apiclient.Request{Method: http.MethodPost, Path: PathRegister, Body: req}, &resp)
	return resp, err
}

// Login exchanges credentials for a token pair and profile
func (s *Service) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	if err := s.check(req); err != nil {
		return AuthResponse{}, err
	}
	var resp AuthResponse
	err := s.call(ctx, apiclient.Request{Method: http.MethodPost, Path: PathLogin, Body: req}, &resp)
	return resp, err
}

// Logout invalidates the stored refresh token on the backend
func (s *Service) Logout(ctx context.Context) error {
	token, err := s.tokens.RefreshToken(ctx)
	if err != nil {
		return err
	}

	var resp MessageResponse
	if err := s.call(ctx, apiclient.Request{Method: http.MethodPost, Path: PathLogout, Body: tokenRequest{Token: token}}, &resp); err != nil {
		return err
	}
	logger.FromContext(ctx).Debug(LogMsgLoggedOut)
	return nil
}

// User fetches the current profile
func (s *Service) User(ctx context.Context) (domain.User, error) {
	var resp UserResponse
	if err := s.call(ctx, apiclient.Request{Method: http.MethodGet, Path: PathUser, Auth: true}, &resp); err != nil {
		return domain.User{}, err
	}
	return resp.User, nil
}

// UpdateUser changes profile fields
func (s *Service) UpdateUser(ctx context.Context, req UpdateUserRequest) (domain.User, error) {
	if err := s.check(req); err != nil {
		return domain.User{}, err
	}
	var resp UserResponse
	if err := s.call(ctx, apiclient.Request{Method: http.MethodPatch, Path: PathUser, Body: req, Auth: true}, &resp); err != nil {
		return domain.User{}, err
	}
	return resp.User, nil
}

// ForgotPassword asks the backend to mail a reset code
func (s *Service) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error {
	if err := s.check(req); err != nil {
		return err
	}
	var resp MessageResponse
	return s.call(ctx, apiclient.Request{Method: http.MethodPost, Path: PathPasswordReset, Body: req}, &resp)
}

// ResetPassword confirms a reset with the mailed code
func (s *Service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if err := s.check(req); err != nil {
		return err
	}
	var resp MessageResponse
	return s.call(ctx, apiclient.Request{Method: http.MethodPost, Path: PathPasswordSubmit, Body: req}, &resp)
}
