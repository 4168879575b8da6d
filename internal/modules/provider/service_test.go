package provider

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"servic/internal/domain"
	"servic/internal/pkg/apperr"
	"servic/internal/repository"
)

type MockProviderRepository struct {
	mock.Mock
}

func (m *MockProviderRepository) Create(ctx context.Context, p *domain.Provider) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil {
		p.ID = 77
	}
	return args.Error(0)
}

func (m *MockProviderRepository) CreateAndPromote(ctx context.Context, p *domain.Provider, userID int64) error {
	args := m.Called(ctx, p, userID)
	if args.Error(0) == nil {
		p.ID = 78
		p.UserID = &userID
	}
	return args.Error(0)
}

func (m *MockProviderRepository) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Provider), args.Error(1)
}

func (m *MockProviderRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Provider, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Provider), args.Error(1)
}

func (m *MockProviderRepository) List(ctx context.Context, f domain.ProviderFilter) ([]domain.Provider, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Provider), args.Error(1)
}

func (m *MockProviderRepository) Update(ctx context.Context, p *domain.Provider) error {
	return m.Called(ctx, p).Error(0)
}

func validRequest() CreateProviderRequest {
	rate := 500.0
	return CreateProviderRequest{
		Name:       "Ahmad Khan",
		Phone:      "+92 300 1234567",
		Category:   "electrician",
		Location:   "Karachi",
		HourlyRate: &rate,
		Services:   []string{" Wiring ", ""},
		WorkingHours: &domain.WorkingHours{
			Start: "09:00",
			End:   "18:00",
			Days:  []string{"monday", "Monday", "Saturday"},
		},
	}
}

func ownedProvider(owner int64) *domain.Provider {
	return &domain.Provider{ID: 5, UserID: &owner, Name: "Bilal", Phone: "+923012345678", Category: domain.CategoryPlumber, Location: "Lahore"}
}

func TestService_CreateProvider_Anonymous(t *testing.T) {
	repo := new(MockProviderRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Provider) bool {
		return p.Category == domain.CategoryElectrician && p.Experience == nil
	})).Return(nil)

	p, err := NewService(repo).CreateProvider(context.Background(), nil, validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(77), p.ID)
	assert.Nil(t, p.UserID)
	assert.Equal(t, []string{"Wiring"}, p.Services)
	assert.Equal(t, []string{"Monday", "Saturday"}, p.WorkingHours.Days)
	repo.AssertNotCalled(t, "CreateAndPromote", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CreateProvider_LinksActor(t *testing.T) {
	repo := new(MockProviderRepository)
	repo.On("CreateAndPromote", mock.Anything, mock.Anything, int64(9)).Return(nil)

	p, err := NewService(repo).CreateProvider(context.Background(), &domain.Actor{UserID: 9, Role: domain.RoleUser}, validRequest())
	require.NoError(t, err)
	assert.True(t, p.OwnedBy(9))
}

func TestService_CreateProvider_AlreadyOwnsOne(t *testing.T) {
	repo := new(MockProviderRepository)
	repo.On("CreateAndPromote", mock.Anything, mock.Anything, int64(9)).Return(repository.ErrDuplicate)

	_, err := NewService(repo).CreateProvider(context.Background(), &domain.Actor{UserID: 9}, validRequest())
	assert.ErrorIs(t, err, ErrProviderExists)
}

func TestService_CreateProvider_BlankServicesDropped(t *testing.T) {
	repo := new(MockProviderRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	s := NewService(repo)
	ctx := context.Background()

	req := validRequest()
	req.Services = []string{" Wiring ", "", "   ", "Fan installation"}
	p, err := s.CreateProvider(ctx, nil, req)
	require.NoError(t, err)
	assert.Equal(t, []string{"Wiring", "Fan installation"}, p.Services)

	req = validRequest()
	req.Services = []string{strings.Repeat("x", 101)}
	_, err = s.CreateProvider(ctx, nil, req)
	assert.ErrorIs(t, err, ErrInvalidDetails)
}

func TestService_UpdateProvider_BlankServicesDropped(t *testing.T) {
	repo := new(MockProviderRepository)
	repo.On("GetByID", mock.Anything, int64(5)).Return(ownedProvider(9), nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	p, err := NewService(repo).UpdateProvider(context.Background(), domain.Actor{UserID: 9}, 5,
		UpdateProviderRequest{Services: []string{"", " Leak repair "}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Leak repair"}, p.Services)
}

func TestService_CreateProvider_Validation(t *testing.T) {
	s := NewService(new(MockProviderRepository))
	ctx := context.Background()

	req := validRequest()
	req.Location = " "
	_, err := s.CreateProvider(ctx, nil, req)
	assert.ErrorIs(t, err, ErrMissingFields)

	req = validRequest()
	req.Phone = "12345"
	_, err = s.CreateProvider(ctx, nil, req)
	assert.ErrorIs(t, err, ErrInvalidPhone)

	req = validRequest()
	req.Category = "Astronaut"
	_, err = s.CreateProvider(ctx, nil, req)
	assert.ErrorIs(t, err, ErrInvalidCategory)

	req = validRequest()
	negative := -1.0
	req.HourlyRate = &negative
	_, err = s.CreateProvider(ctx, nil, req)
	assert.ErrorIs(t, err, ErrInvalidDetails)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Contains(t, e.Details, "hourlyRate")

	req = validRequest()
	req.Email = "nope"
	_, err = s.CreateProvider(ctx, nil, req)
	assert.ErrorIs(t, err, ErrInvalidDetails)

	req = validRequest()
	req.WorkingHours = &domain.WorkingHours{Start: "18:00", End: "09:00"}
	_, err = s.CreateProvider(ctx, nil, req)
	assert.ErrorIs(t, err, ErrInvalidWorkingHours)

	req = validRequest()
	req.WorkingHours = &domain.WorkingHours{Start: "09:00", End: "18:00", Days: []string{"Funday"}}
	_, err = s.CreateProvider(ctx, nil, req)
	assert.ErrorIs(t, err, ErrInvalidWorkingHours)
}

func TestService_ListProviders_Filters(t *testing.T) {
	repo := new(MockProviderRepository)
	repo.On("List", mock.Anything, domain.ProviderFilter{}).Return([]domain.Provider{}, nil)
	repo.On("List", mock.Anything, domain.ProviderFilter{Category: domain.CategoryTutor, Location: "Islamabad"}).
		Return([]domain.Provider{{ID: 1}}, nil)
	s := NewService(repo)
	ctx := context.Background()

	_, err := s.ListProviders(ctx, "all", "all")
	require.NoError(t, err)
	_, err = s.ListProviders(ctx, "", "")
	require.NoError(t, err)

	out, err := s.ListProviders(ctx, "Tutor", " Islamabad ")
	require.NoError(t, err)
	assert.Len(t, out, 1)

	_, err = s.ListProviders(ctx, "Astronaut", "")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestService_GetProvider(t *testing.T) {
	repo := new(MockProviderRepository)
	repo.On("GetByID", mock.Anything, int64(404)).Return(nil, repository.ErrNotFound)
	s := NewService(repo)

	_, err := s.GetProvider(context.Background(), 404)
	assert.ErrorIs(t, err, ErrProviderNotFound)

	_, err = s.GetProvider(context.Background(), -3)
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestService_UpdateProvider_OwnerOnly(t *testing.T) {
	repo := new(MockProviderRepository)
	repo.On("GetByID", mock.Anything, int64(5)).Return(ownedProvider(9), nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	s := NewService(repo)
	ctx := context.Background()
	bio := "Bathrooms and water heaters"

	_, err := s.UpdateProvider(ctx, domain.Actor{UserID: 10, Role: domain.RoleProvider}, 5, UpdateProviderRequest{Bio: &bio})
	assert.ErrorIs(t, err, ErrNotOwner)

	p, err := s.UpdateProvider(ctx, domain.Actor{UserID: 9, Role: domain.RoleProvider}, 5, UpdateProviderRequest{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, bio, p.Bio)

	_, err = s.UpdateProvider(ctx, domain.Actor{UserID: 1, Role: domain.RoleAdmin}, 5, UpdateProviderRequest{Bio: &bio})
	require.NoError(t, err)
}

func TestService_UpdateProvider_Validation(t *testing.T) {
	repo := new(MockProviderRepository)
	repo.On("GetByID", mock.Anything, int64(5)).Return(ownedProvider(9), nil)
	s := NewService(repo)
	ctx := context.Background()
	owner := domain.Actor{UserID: 9}

	_, err := s.UpdateProvider(ctx, owner, 5, UpdateProviderRequest{})
	assert.ErrorIs(t, err, ErrNoChanges)

	category := "Astronaut"
	_, err = s.UpdateProvider(ctx, owner, 5, UpdateProviderRequest{Category: &category})
	assert.ErrorIs(t, err, ErrInvalidCategory)

	empty := ""
	_, err = s.UpdateProvider(ctx, owner, 5, UpdateProviderRequest{Name: &empty})
	assert.ErrorIs(t, err, ErrMissingFields)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_GetMyProvider(t *testing.T) {
	repo := new(MockProviderRepository)
	repo.On("GetByUserID", mock.Anything, int64(9)).Return(ownedProvider(9), nil)
	repo.On("GetByUserID", mock.Anything, int64(10)).Return(nil, repository.ErrNotFound)
	s := NewService(repo)

	p, err := s.GetMyProvider(context.Background(), domain.Actor{UserID: 9})
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.ID)

	_, err = s.GetMyProvider(context.Background(), domain.Actor{UserID: 10})
	assert.ErrorIs(t, err, ErrProviderNotFound)
}
