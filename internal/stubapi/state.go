package stubapi

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/BurgerClient_Go/internal/domain"
)

var (
	errTokenExpired = errors.New(MsgJWTExpired)
	errTokenUnknown = errors.New(MsgUnauthorised)
	errUserExists   = errors.New(MsgUserExists)
	errEmailTaken   = errors.New(MsgEmailTaken)
	errBadLogin     = errors.New(MsgInvalidLogin)
	errBadRefresh   = errors.New(MsgInvalidToken)
	errBadReset     = errors.New(MsgResetInvalid)
	errBadOrder     = errors.New(MsgUnknownIngredient)
)

type account struct {
	user     domain.User
	password string
}

type grant struct {
	email   string
	expires time.Time
}

type tokenPair struct {
	access  string
	refresh string
}

// state is the backend's in-memory data
type state struct {
	accessTTL time.Duration
	cookTime  time.Duration
	now       func() time.Time

	mu          sync.Mutex
	ingredients []domain.Ingredient
	byID        map[string]domain.Ingredient
	accounts    map[string]*account
	access      map[string]grant
	refresh     map[string]string
	resetCodes  map[string]string
	orders      []domain.Order
	owners      map[string]string
	nextNumber  int
}

func newState(ingredients []domain.Ingredient, opts Options) *state {
	s := &state{
		accessTTL:   opts.AccessTTL,
		cookTime:    opts.CookTime,
		now:         opts.Now,
		ingredients: ingredients,
		byID:        make(map[string]domain.Ingredient, len(ingredients)),
		accounts:    make(map[string]*account),
		access:      make(map[string]grant),
		refresh:     make(map[string]string),
		resetCodes:  make(map[string]string),
		owners:      make(map[string]string),
		nextNumber:  opts.FirstOrderNumber,
	}
	for _, ing := range ingredients {
		s.byID[ing.ID] = ing
	}
	return s
}

// issue creates a token pair for email; caller holds mu
func (s *state) issue(email string) tokenPair {
	pair := tokenPair{access: uuid.NewString(), refresh: uuid.NewString()}
	s.access[pair.access] = grant{email: email, expires: s.now().Add(s.accessTTL)}
	s.refresh[pair.refresh] = email
	return pair
}

// revoke drops every token issued to email; caller holds mu
func (s *state) revoke(email string) {
	for token, g := range s.access {
		if g.email == email {
			delete(s.access, token)
		}
	}
	for token, owner := range s.refresh {
		if owner == email {
			delete(s.refresh, token)
		}
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *state) register(email, name, password string) (domain.User, tokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeEmail(email)
	if _, exists := s.accounts[key]; exists {
		return domain.User{}, tokenPair{}, errUserExists
	}
	acc := &account{user: domain.User{Email: key, Name: name}, password: password}
	s.accounts[key] = acc
	return acc.user, s.issue(key), nil
}

func (s *state) login(email, password string) (domain.User, tokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeEmail(email)
	acc, ok := s.accounts[key]
	if !ok || acc.password != password {
		return domain.User{}, tokenPair{}, errBadLogin
	}
	return acc.user, s.issue(key), nil
}

// authenticate resolves an access token to its account email
func (s *state) authenticate(token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.access[token]
	if !ok {
		return "", errTokenUnknown
	}
	if !s.now().Before(g.expires) {
		return "", errTokenExpired
	}
	return g.email, nil
}

// rotate exchanges a refresh token for a new pair; the old refresh token
// stops working
func (s *state) rotate(refresh string) (tokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email, ok := s.refresh[refresh]
	if !ok {
		return tokenPair{}, errBadRefresh
	}
	delete(s.refresh, refresh)
	return s.issue(email), nil
}

func (s *state) logout(refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.refresh[refresh]; !ok {
		return errBadRefresh
	}
	delete(s.refresh, refresh)
	return nil
}

func (s *state) user(email string) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[email]
	if !ok {
		return domain.User{}, false
	}
	return acc.user, true
}

// updateUser applies non-empty fields. A password change revokes every
// token of the account.
func (s *state) updateUser(email, newEmail, name, password string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[email]
	if !ok {
		return domain.User{}, errTokenUnknown
	}

	if newEmail != "" {
		key := normalizeEmail(newEmail)
		if key != email {
			if _, taken := s.accounts[key]; taken {
				return domain.User{}, errEmailTaken
			}
			delete(s.accounts, email)
			s.accounts[key] = acc
			acc.user.Email = key
			s.moveOwnership(email, key)
			s.reassignTokens(email, key)
			email = key
		}
	}
	if name != "" {
		acc.user.Name = name
	}
	if password != "" {
		acc.password = password
		s.revoke(email)
	}
	return acc.user, nil
}

// caller holds mu
func (s *state) moveOwnership(from, to string) {
	for id, owner := range s.owners {
		if owner == from {
			s.owners[id] = to
		}
	}
}

// caller holds mu
func (s *state) reassignTokens(from, to string) {
	for token, g := range s.access {
		if g.email == from {
			g.email = to
			s.access[token] = g
		}
	}
	for token, owner := range s.refresh {
		if owner == from {
			s.refresh[token] = to
		}
	}
}

// requestReset issues a reset code. Unknown emails get a code too so the
// response does not reveal which accounts exist.
func (s *state) requestReset(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := uuid.NewString()
	s.resetCodes[code] = normalizeEmail(email)
	return code
}

func (s *state) resetCode(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeEmail(email)
	for code, owner := range s.resetCodes {
		if owner == key {
			return code, true
		}
	}
	return "", false
}

func (s *state) confirmReset(code, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email, ok := s.resetCodes[code]
	if !ok {
		return errBadReset
	}
	delete(s.resetCodes, code)

	acc, ok := s.accounts[email]
	if !ok {
		return errBadReset
	}
	acc.password = password
	s.revoke(email)
	return nil
}

// placeOrder records an order for email. Every id must be in the catalog.
func (s *state) placeOrder(email string, ids []string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var names []string
	for _, id := range ids {
		ing, ok := s.byID[id]
		if !ok {
			return domain.Order{}, errBadOrder
		}
		if !containsName(names, ing.Name) {
			names = append(names, ing.Name)
		}
	}

	now := s.now()
	s.nextNumber++
	order := domain.Order{
		ID:          uuid.NewString(),
		Number:      s.nextNumber,
		Name:        burgerName(names),
		Status:      domain.OrderStatusPending,
		Ingredients: append([]string(nil), ids...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.orders = append([]domain.Order{order}, s.orders...)
	s.owners[order.ID] = email
	return order, nil
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func burgerName(names []string) string {
	return strings.Join(names, " ") + " burger"
}

// cooked returns order with its status advanced by elapsed cooking time;
// caller holds mu
func (s *state) cooked(order domain.Order) domain.Order {
	if order.Status == domain.OrderStatusPending && s.now().Sub(order.CreatedAt) >= s.cookTime {
		order.Status = domain.OrderStatusDone
		order.UpdatedAt = order.CreatedAt.Add(s.cookTime)
	}
	return order
}

// feed returns the newest orders with the overall and today's totals
func (s *state) feed(limit int) domain.Feed {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	f := domain.Feed{Orders: []domain.Order{}, Total: len(s.orders)}
	for i, o := range s.orders {
		if i < limit {
			f.Orders = append(f.Orders, s.cooked(o))
		}
		if sameDay(o.CreatedAt, now) {
			f.TotalToday++
		}
	}
	return f
}

func sameDay(t, now time.Time) bool {
	ty, tm, td := t.In(now.Location()).Date()
	ny, nm, nd := now.Date()
	return ty == ny && tm == nm && td == nd
}

func (s *state) ordersOf(email string) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Order{}
	for _, o := range s.orders {
		if s.owners[o.ID] == email {
			out = append(out, s.cooked(o))
		}
	}
	return out
}

func (s *state) orderByNumber(number int) (domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.orders {
		if o.Number == number {
			return s.cooked(o), true
		}
	}
	return domain.Order{}, false
}
