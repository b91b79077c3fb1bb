package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/velora/storefront/internal/core/domain"
	"github.com/velora/storefront/internal/core/port"
	"github.com/velora/storefront/internal/repository"
)

type orderRepoStub struct {
	orders     map[string]domain.Order
	createErr  error
	updateErr  error
	lastCreate struct {
		order domain.Order
		items []domain.OrderItemRequest
	}
}

func newOrderRepoStub() *orderRepoStub {
	return &orderRepoStub{orders: make(map[string]domain.Order)}
}

func (s *orderRepoStub) Create(_ context.Context, order domain.Order, items []domain.OrderItemRequest) (*domain.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.lastCreate.order = order
	s.lastCreate.items = items

	order.Items = make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:   item.ProductID,
			ProductName: "stub product",
			Quantity:    item.Quantity,
		})
	}
	s.orders[order.ID] = order
	return &order, nil
}

func (s *orderRepoStub) GetByID(_ context.Context, id string) (*domain.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &order, nil
}

func (s *orderRepoStub) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	order, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	order.Status = status
	s.orders[id] = order
	return &order, nil
}

func (s *orderRepoStub) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, order := range s.orders {
		if order.UserID == userID {
			out = append(out, order)
		}
	}
	return out, nil
}

func (s *orderRepoStub) ListAll(_ context.Context) ([]domain.Order, error) {
	var out []domain.Order
	for _, order := range s.orders {
		out = append(out, order)
	}
	return out, nil
}

type publisherStub struct {
	placed     []domain.OrderPlacedEvent
	statuses   []domain.OrderStatusChangedEvent
	registered []domain.UserRegisteredEvent
	err        error
}

func (p *publisherStub) PublishOrderPlaced(_ context.Context, event domain.OrderPlacedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.placed = append(p.placed, event)
	return nil
}

func (p *publisherStub) PublishOrderStatusChanged(_ context.Context, event domain.OrderStatusChangedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.statuses = append(p.statuses, event)
	return nil
}

func (p *publisherStub) PublishUserRegistered(_ context.Context, event domain.UserRegisteredEvent) error {
	if p.err != nil {
		return p.err
	}
	p.registered = append(p.registered, event)
	return nil
}

type roleRepoStub struct {
	roles       map[string]domain.Role
	createErr   error
	updateErr   error
	lastAssign  []string
	lastUpdated domain.Role
}

func newRoleRepoStub() *roleRepoStub {
	return &roleRepoStub{roles: make(map[string]domain.Role)}
}

func (s *roleRepoStub) Create(_ context.Context, role domain.Role, permissionIDs []string) (*domain.Role, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.lastAssign = permissionIDs
	s.roles[role.ID] = role
	return &role, nil
}

func (s *roleRepoStub) Update(_ context.Context, role domain.Role, permissionIDs []string) (*domain.Role, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	if _, ok := s.roles[role.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	s.lastAssign = permissionIDs
	s.lastUpdated = role
	s.roles[role.ID] = role
	return &role, nil
}

func (s *roleRepoStub) Delete(_ context.Context, id string) error {
	if _, ok := s.roles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.roles, id)
	return nil
}

func (s *roleRepoStub) List(_ context.Context) ([]domain.Role, error) {
	var out []domain.Role
	for _, role := range s.roles {
		out = append(out, role)
	}
	return out, nil
}

type permissionRepoStub struct {
	permissions []domain.Permission
}

func (s *permissionRepoStub) List(_ context.Context) ([]domain.Permission, error) {
	return s.permissions, nil
}

type userRepoStub struct {
	byID      map[string]domain.User
	byEmail   map[string]domain.User
	customers []domain.CustomerAccount
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]domain.User),
	}
}

func (s *userRepoStub) add(user domain.User) {
	s.byID[user.ID] = user
	s.byEmail[user.Email] = user
}

func (s *userRepoStub) Create(_ context.Context, user domain.User) error {
	if _, ok := s.byEmail[user.Email]; ok {
		return repository.ErrConflict
	}
	s.add(user)
	return nil
}

func (s *userRepoStub) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (s *userRepoStub) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (s *userRepoStub) ListCustomers(_ context.Context) ([]domain.CustomerAccount, error) {
	return s.customers, nil
}

func (s *userRepoStub) SearchCustomers(_ context.Context, query string) ([]domain.CustomerAccount, error) {
	var out []domain.CustomerAccount
	for _, account := range s.customers {
		if strings.Contains(strings.ToLower(account.Name), strings.ToLower(query)) {
			out = append(out, account)
		}
	}
	return out, nil
}

type reviewRepoStub struct {
	byOrder map[string]domain.Review
}

func newReviewRepoStub() *reviewRepoStub {
	return &reviewRepoStub{byOrder: make(map[string]domain.Review)}
}

func (s *reviewRepoStub) Create(_ context.Context, review domain.Review) (*domain.Review, error) {
	if _, ok := s.byOrder[review.OrderID]; ok {
		return nil, repository.ErrConflict
	}
	s.byOrder[review.OrderID] = review
	return &review, nil
}

func (s *reviewRepoStub) GetByOrder(_ context.Context, orderID string) (*domain.Review, error) {
	review, ok := s.byOrder[orderID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &review, nil
}

func (s *reviewRepoStub) List(_ context.Context) ([]domain.Review, error) {
	var out []domain.Review
	for _, review := range s.byOrder {
		out = append(out, review)
	}
	return out, nil
}

type hasherStub struct{}

func (hasherStub) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (hasherStub) Verify(password, encoded string) (bool, error) {
	return encoded == "hashed:"+password, nil
}

type tokenIssuerStub struct{}

func (tokenIssuerStub) Issue(user domain.User) (string, time.Time, error) {
	return "token-" + user.ID, time.Now().Add(time.Hour), nil
}

var (
	_ port.OrderRepository      = (*orderRepoStub)(nil)
	_ port.EventPublisher       = (*publisherStub)(nil)
	_ port.RoleRepository       = (*roleRepoStub)(nil)
	_ port.PermissionRepository = (*permissionRepoStub)(nil)
	_ port.UserRepository       = (*userRepoStub)(nil)
	_ port.ReviewRepository     = (*reviewRepoStub)(nil)
)
