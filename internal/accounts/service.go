package accounts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cleared-dev/closebooks/internal/model"
)

// UnknownAccountName is reported for codes that are not in the chart.
const UnknownAccountName = "Unknown Account"

// Service provides in-memory lookup over the chart of accounts.
type Service struct {
	accounts []model.Account
	byCode   map[string]model.Account
}

// NewService creates a Service from a slice of accounts. Later duplicates of a
// code are dropped so the catalog order stays stable.
func NewService(accounts []model.Account) *Service {
	byCode := make(map[string]model.Account, len(accounts))
	unique := make([]model.Account, 0, len(accounts))
	for _, a := range accounts {
		if _, dup := byCode[a.Code]; dup {
			continue
		}
		byCode[a.Code] = a
		unique = append(unique, a)
	}
	return &Service{accounts: unique, byCode: byCode}
}

// Path returns the chart-of-accounts.csv location under a books directory.
func Path(root string) string {
	return filepath.Join(root, "accounts", "chart-of-accounts.csv")
}

// Load reads chart-of-accounts.csv from a books directory and returns a Service.
func Load(root string) (*Service, error) {
	f, err := os.Open(Path(root))
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewService(accts), nil
}

// All returns all accounts in catalog order.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Get returns an account by code.
func (s *Service) Get(code string) (model.Account, bool) {
	a, ok := s.byCode[code]
	return a, ok
}

// Exists reports whether an account code exists.
func (s *Service) Exists(code string) bool {
	_, ok := s.byCode[code]
	return ok
}

// Name returns the display name for a code, or UnknownAccountName.
func (s *Service) Name(code string) string {
	if a, ok := s.byCode[code]; ok {
		return a.Name
	}
	return UnknownAccountName
}

// ByType returns all accounts of the given type.
func (s *Service) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv.
func (s *Service) Save(root string) error {
	dir := filepath.Join(root, "accounts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(Path(root))
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
