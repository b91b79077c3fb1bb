package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/velora/storefront/internal/core/domain"
	"github.com/velora/storefront/internal/core/port"
)

// CustomerService serves the admin customer views.
type CustomerService struct {
	users port.UserRepository
}

func NewCustomerService(users port.UserRepository) *CustomerService {
	return &CustomerService{users: users}
}

// ListCustomers returns customer accounts with lifetime spend. A non-empty
// search term switches to a substring match on name, email and phone; the
// filtered view skips the per-customer order summaries.
func (s *CustomerService) ListCustomers(ctx context.Context, search string) ([]domain.CustomerAccount, error) {
	search = strings.TrimSpace(search)

	var (
		accounts []domain.CustomerAccount
		err      error
	)
	if search != "" {
		accounts, err = s.users.SearchCustomers(ctx, search)
	} else {
		accounts, err = s.users.ListCustomers(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	return accounts, nil
}
