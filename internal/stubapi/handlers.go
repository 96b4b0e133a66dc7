package stubapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/BurgerClient_Go/internal/burgerapi"
	"github.com/osse101/BurgerClient_Go/internal/domain"
	"github.com/osse101/BurgerClient_Go/internal/logger"
)

var success = burgerapi.Envelope{Success: true}

type tokenBody struct {
	Token string `json:"token" validate:"required"`
}

func authResponse(pair tokenPair, user domain.User) burgerapi.AuthResponse {
	return burgerapi.AuthResponse{
		Envelope:     success,
		AccessToken:  bearerPrefix + pair.access,
		RefreshToken: pair.refresh,
		User:         user,
	}
}

func (b *Backend) handleIngredients(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, burgerapi.IngredientsResponse{Envelope: success, Data: b.state.ingredients})
}

func (b *Backend) handleFeed(w http.ResponseWriter, _ *http.Request) {
	feed := b.state.feed(FeedLimit)
	respondJSON(w, http.StatusOK, burgerapi.FeedResponse{
		Envelope:   success,
		Orders:     feed.Orders,
		Total:      feed.Total,
		TotalToday: feed.TotalToday,
	})
}

func (b *Backend) handleOrderByNumber(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil || number <= 0 {
		respondFailure(w, http.StatusBadRequest, MsgInvalidNumber)
		return
	}

	resp := burgerapi.OrderLookupResponse{Envelope: success, Orders: []domain.Order{}}
	if order, found := b.state.orderByNumber(number); found {
		resp.Orders = append(resp.Orders, order)
	}
	respondJSON(w, http.StatusOK, resp)
}

func (b *Backend) handleUserOrders(w http.ResponseWriter, r *http.Request) {
	orders := b.state.ordersOf(emailFromContext(r.Context()))
	respondJSON(w, http.StatusOK, burgerapi.FeedResponse{Envelope: success, Orders: orders, Total: len(orders)})
}

func (b *Backend) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req burgerapi.PlaceOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	order, err := b.state.placeOrder(emailFromContext(r.Context()), req.Ingredients)
	if err != nil {
		respondFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	logger.FromContext(r.Context()).Info(LogMsgOrderAccepted, "number", order.Number)
	respondJSON(w, http.StatusOK, burgerapi.PlaceOrderResponse{Envelope: success, Name: order.Name, Order: order})
}

func (b *Backend) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req burgerapi.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, pair, err := b.state.register(req.Email, req.Name, req.Password)
	if err != nil {
		respondFailure(w, http.StatusConflict, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, authResponse(pair, user))
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req burgerapi.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, pair, err := b.state.login(req.Email, req.Password)
	if err != nil {
		respondFailure(w, http.StatusUnauthorized, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, authResponse(pair, user))
}

func (b *Backend) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req tokenBody
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := b.state.logout(req.Token); err != nil {
		respondFailure(w, http.StatusUnauthorized, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, burgerapi.MessageResponse{Envelope: burgerapi.Envelope{Success: true, Message: MsgLoggedOut}})
}

func (b *Backend) handleToken(w http.ResponseWriter, r *http.Request) {
	var req tokenBody
	if !decodeAndValidate(w, r, &req) {
		return
	}

	pair, err := b.state.rotate(req.Token)
	if err != nil {
		respondFailure(w, http.StatusUnauthorized, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, burgerapi.AuthResponse{
		Envelope:     success,
		AccessToken:  bearerPrefix + pair.access,
		RefreshToken: pair.refresh,
	})
}

func (b *Backend) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, found := b.state.user(emailFromContext(r.Context()))
	if !found {
		respondFailure(w, http.StatusUnauthorized, MsgUnauthorised)
		return
	}
	respondJSON(w, http.StatusOK, burgerapi.UserResponse{Envelope: success, User: user})
}

func (b *Backend) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req burgerapi.UpdateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := b.state.updateUser(emailFromContext(r.Context()), req.Email, req.Name, req.Password)
	switch {
	case errors.Is(err, errEmailTaken):
		respondFailure(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		respondFailure(w, http.StatusUnauthorized, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, burgerapi.UserResponse{Envelope: success, User: user})
}

func (b *Backend) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req burgerapi.ForgotPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	code := b.state.requestReset(req.Email)
	logger.FromContext(r.Context()).Info(LogMsgResetCodeIssued, "email", req.Email, "code", code)
	respondJSON(w, http.StatusOK, burgerapi.MessageResponse{Envelope: burgerapi.Envelope{Success: true, Message: MsgResetSent}})
}

func (b *Backend) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req burgerapi.ResetPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := b.state.confirmReset(req.Token, req.Password); err != nil {
		respondFailure(w, http.StatusForbidden, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, burgerapi.MessageResponse{Envelope: burgerapi.Envelope{Success: true, Message: MsgResetDone}})
}
