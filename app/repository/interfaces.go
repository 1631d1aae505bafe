package repository

import (
	"sync"

	"github.com/medirate/medirate/app/models"
	"github.com/medirate/medirate/internal/pkg/ratefilter"
	"gorm.io/gorm"
)

// RateFilterOptions holds the distinct legal values per facet dimension given
// the currently applied FilterSet. Values never include null/empty entries and
// are lexicographically sorted.
type RateFilterOptions struct {
	ServiceCodes        []string `json:"serviceCodes"`
	ServiceDescriptions []string `json:"serviceDescriptions"`
	Programs            []string `json:"programs"`
	LocationRegions     []string `json:"locationRegions"`
	ProviderTypes       []string `json:"providerTypes"`
}

// BootstrapFilterOptions is the filters-only payload for initial page load:
// the full category list plus states, optionally narrowed by a category.
type BootstrapFilterOptions struct {
	ServiceCategories []string `json:"serviceCategories"`
	States            []string `json:"states"`
}

// RateRepository defines the read-only query surface over the master rate table.
type RateRepository interface {
	Query(f ratefilter.FilterSet) ([]models.RateRecord, error)
	FacetOptions(f ratefilter.FilterSet) (*RateFilterOptions, error)
	BootstrapOptions(serviceCategory string) (*BootstrapFilterOptions, error)
}

// UserRepository defines user-related database operations.
type UserRepository interface {
	GetByEmail(email string) (*models.User, error)
	GetByAPIKeyHash(hash string) (*models.User, error)
	UpsertByEmail(user *models.User) (created bool, err error)
}

// ContentRepository defines the admin mutation surface over the content
// tables. Column names are validated against per-table allow-lists before any
// SQL is built.
type ContentRepository interface {
	UpdateByID(table string, id uint, updates map[string]interface{}) error
	DeleteByID(table string, id uint) error
	DeleteByNaturalKey(table string, key string) error
	MutableColumns(table string) ([]string, bool)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Rate    RateRepository
	User    UserRepository
	Content ContentRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Rate:    NewRateRepository(db),
		User:    NewUserRepository(db),
		Content: NewContentRepository(db),
	}
}

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetRateRepository returns the rate repository instance
func (f *Factory) GetRateRepository() RateRepository {
	return f.GetRepositories().Rate
}

// GetUserRepository returns the user repository instance
func (f *Factory) GetUserRepository() UserRepository {
	return f.GetRepositories().User
}

// GetContentRepository returns the content repository instance
func (f *Factory) GetContentRepository() ContentRepository {
	return f.GetRepositories().Content
}

// Global factory instance
var globalFactory *Factory
var factoryOnce sync.Once

// SetGlobalFactory installs the factory used by handlers and middleware.
func SetGlobalFactory(db *gorm.DB) {
	factoryOnce.Do(func() {
		globalFactory = NewFactory(db)
	})
}

// GetGlobalFactory returns the installed factory. Panics if the application
// has not called SetGlobalFactory during bootstrap.
func GetGlobalFactory() *Factory {
	if globalFactory == nil {
		panic("repository: global factory not initialized")
	}
	return globalFactory
}
