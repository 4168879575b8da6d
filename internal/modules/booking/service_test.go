package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"servic/internal/domain"
	"servic/internal/pkg/events"
	"servic/internal/pkg/logger"
	"servic/internal/repository"
)

// Mock repositories
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByProvider(ctx context.Context, providerID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, providerID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListActive(ctx context.Context, providerID int64, day *time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, providerID, day)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ApplyPatch(ctx context.Context, id int64, expected domain.BookingStatus, patch domain.BookingPatch) (*domain.Booking, error) {
	args := m.Called(ctx, id, expected, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockProviderRepository struct {
	mock.Mock
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

func (m *MockProviderRepository) Summaries(ctx context.Context, ids []int64) (map[int64]domain.ProviderSummary, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[int64]domain.ProviderSummary), args.Error(1)
}

type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyBookingCreated(ctx context.Context, b *domain.Booking, p *domain.Provider) error {
	return m.Called(ctx, b, p).Error(0)
}

func (m *MockNotifier) NotifyBookingStatusChanged(ctx context.Context, b *domain.Booking, p *domain.Provider) error {
	return m.Called(ctx, b, p).Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	return m.Called(ctx, routingKey, payload).Error(0)
}

type fixture struct {
	bookings  *MockBookingRepository
	providers *MockProviderRepository
	users     *MockUserReader
	notifier  *MockNotifier
	publisher *MockPublisher
	service   *Service
}

// Monday 2030-06-03 10:00 UTC
var fixedNow = time.Date(2030, 6, 3, 10, 0, 0, 0, time.UTC)

const (
	ownerID  int64 = 20
	clientID int64 = 30
)

func newFixture() *fixture {
	f := &fixture{
		bookings:  new(MockBookingRepository),
		providers: new(MockProviderRepository),
		users:     new(MockUserReader),
		notifier:  new(MockNotifier),
		publisher: new(MockPublisher),
	}
	f.service = NewService(f.bookings, f.providers, f.users, f.notifier, f.publisher, logger.Discard(), time.UTC)
	f.service.now = func() time.Time { return fixedNow }
	return f
}

func testProvider() *domain.Provider {
	owner := ownerID
	return &domain.Provider{ID: 5, UserID: &owner, Name: "Ahmad Khan", Category: domain.CategoryElectrician}
}

func testClient() *domain.User {
	return &domain.User{ID: clientID, Name: "Demo Client", Email: "demo_client@servic.com", Role: domain.RoleUser}
}

func validCreate() CreateBookingRequest {
	return CreateBookingRequest{ProviderID: 5, Date: "2030-06-04", TimeSlot: "10:00", ClientPhone: "+92 300 1234567"}
}

func existing(status domain.BookingStatus, isNew bool) *domain.Booking {
	return &domain.Booking{
		ID:         1,
		ProviderID: 5,
		UserID:     clientID,
		Date:       time.Date(2030, 6, 4, 0, 0, 0, 0, time.UTC),
		TimeSlot:   "10:00",
		Status:     status,
		IsNew:      isNew,
	}
}

func statusPtr(s string) *string { return &s }
func boolPtr(b bool) *bool       { return &b }

func TestService_CreateBooking_Success(t *testing.T) {
	f := newFixture()
	f.providers.On("GetByID", mock.Anything, int64(5)).Return(testProvider(), nil)
	f.users.On("GetByID", mock.Anything, clientID).Return(testClient(), nil)
	f.bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Status == domain.BookingPending && b.IsNew && b.Notes == "" &&
			b.ClientName == "Demo Client" && b.ClientEmail == "demo_client@servic.com" &&
			domain.FormatDay(b.Date) == "2030-06-04"
	})).Return(nil)
	f.notifier.On("NotifyBookingCreated", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("Publish", mock.Anything, events.BookingCreated, mock.Anything).Return(nil)

	// token claims are stale on purpose; the store wins
	actor := domain.Actor{UserID: clientID, Name: "Old Name", Email: "old@servic.com"}
	b, err := f.service.CreateBooking(context.Background(), actor, validCreate())
	require.NoError(t, err)
	assert.Equal(t, int64(999), b.ID)

	f.bookings.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestService_CreateBooking_SlotTaken(t *testing.T) {
	f := newFixture()
	f.providers.On("GetByID", mock.Anything, int64(5)).Return(testProvider(), nil)
	f.users.On("GetByID", mock.Anything, clientID).Return(testClient(), nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	_, err := f.service.CreateBooking(context.Background(), domain.Actor{UserID: clientID}, validCreate())
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, "This time slot is already booked", err.Error())
	f.notifier.AssertNotCalled(t, "NotifyBookingCreated", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CreateBooking_SideEffectFailuresDoNotFail(t *testing.T) {
	f := newFixture()
	f.providers.On("GetByID", mock.Anything, int64(5)).Return(testProvider(), nil)
	f.users.On("GetByID", mock.Anything, clientID).Return(testClient(), nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("NotifyBookingCreated", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	f.publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	_, err := f.service.CreateBooking(context.Background(), domain.Actor{UserID: clientID}, validCreate())
	assert.NoError(t, err)
}

func TestService_CreateBooking_Validation(t *testing.T) {
	f := newFixture()
	f.providers.On("GetByID", mock.Anything, int64(404)).Return(nil, repository.ErrNotFound)
	ctx := context.Background()
	actor := domain.Actor{UserID: clientID}

	cases := []struct {
		name   string
		mutate func(*CreateBookingRequest)
		want   error
	}{
		{"missing phone", func(r *CreateBookingRequest) { r.ClientPhone = "" }, ErrMissingFields},
		{"missing provider", func(r *CreateBookingRequest) { r.ProviderID = 0 }, ErrMissingFields},
		{"short phone", func(r *CreateBookingRequest) { r.ClientPhone = "12-34" }, ErrInvalidPhone},
		{"bad date", func(r *CreateBookingRequest) { r.Date = "04/06/2030" }, ErrInvalidDate},
		{"yesterday", func(r *CreateBookingRequest) { r.Date = "2030-06-02" }, ErrPastDate},
		{"bad slot", func(r *CreateBookingRequest) { r.TimeSlot = "25:00" }, ErrInvalidTimeSlot},
		{"unknown provider", func(r *CreateBookingRequest) { r.ProviderID = 404 }, ErrProviderNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreate()
			tc.mutate(&req)
			_, err := f.service.CreateBooking(ctx, actor, req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateBooking_TodayInsideBufferIsAccepted(t *testing.T) {
	f := newFixture()
	f.providers.On("GetByID", mock.Anything, int64(5)).Return(testProvider(), nil)
	f.users.On("GetByID", mock.Anything, clientID).Return(testClient(), nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("NotifyBookingCreated", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	req := validCreate()
	req.Date = "2030-06-03"
	req.TimeSlot = "10:15"
	_, err := f.service.CreateBooking(context.Background(), domain.Actor{UserID: clientID}, req)
	assert.NoError(t, err)
}

func TestService_UpdateStatus_OwnerConfirms(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetByID", mock.Anything, int64(1)).Return(existing(domain.BookingPending, true), nil)
	f.providers.On("GetByID", mock.Anything, int64(5)).Return(testProvider(), nil)
	confirmed := existing(domain.BookingConfirmed, false)
	f.bookings.On("ApplyPatch", mock.Anything, int64(1), domain.BookingPending, mock.MatchedBy(func(p domain.BookingPatch) bool {
		return p.Status != nil && *p.Status == domain.BookingConfirmed && p.IsNew != nil && !*p.IsNew
	})).Return(confirmed, nil)
	f.notifier.On("NotifyBookingStatusChanged", mock.Anything, confirmed, mock.Anything).Return(nil)
	f.publisher.On("Publish", mock.Anything, events.BookingStatusChanged, mock.MatchedBy(func(e Event) bool {
		return e.Previous == domain.BookingPending && e.Status == domain.BookingConfirmed
	})).Return(nil)

	b, err := f.service.UpdateBookingStatus(context.Background(), domain.Actor{UserID: ownerID}, 1, UpdateStatusRequest{Status: statusPtr("confirmed")})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.False(t, b.IsNew)
	f.notifier.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestService_UpdateStatus_IllegalTransitions(t *testing.T) {
	cases := []struct {
		from domain.BookingStatus
		to   string
	}{
		{domain.BookingCancelled, "confirmed"},
		{domain.BookingCompleted, "cancelled"},
		{domain.BookingPending, "completed"},
		{domain.BookingConfirmed, "pending"},
	}
	for _, tc := range cases {
		f := newFixture()
		f.bookings.On("GetByID", mock.Anything, int64(1)).Return(existing(tc.from, false), nil)
		f.providers.On("GetByID", mock.Anything, int64(5)).Return(testProvider(), nil)

		_, err := f.service.UpdateBookingStatus(context.Background(), domain.Actor{UserID: ownerID}, 1, UpdateStatusRequest{Status: statusPtr(tc.to)})
		assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", tc.from, tc.to)
		f.bookings.AssertNotCalled(t, "ApplyPatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestService_UpdateStatus_ClientMayOnlyCancel(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetByID", mock.Anything, int64(1)).Return(existing(domain.BookingPending, true), nil)
	f.providers.On("GetByID", mock.Anything, int64(5)).Return(testProvider(), nil)
	cancelled := existing(domain.BookingCancelled, false)
	f.bookings.On("ApplyPatch", mock.Anything, int64(1), domain.BookingPending, mock.Anything).Return(cancelled, nil)
	f.notifier.On("NotifyBookingStatusChanged", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()
	client := domain.Actor{UserID: clientID}

	_, err := f.service.UpdateBookingStatus(ctx, client, 1, UpdateStatusRequest{Status: statusPtr("confirmed")})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.service.UpdateBookingStatus(ctx, client, 1, UpdateStatusRequest{IsNew: boolPtr(false)})
	assert.ErrorIs(t, err, ErrForbidden)

	b, err := f.service.UpdateBookingStatus(ctx, client, 1, UpdateStatusRequest{Status: statusPtr("cancelled")})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
}

func TestService_UpdateStatus_StrangerForbidden(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetByID", mock.Anything, int64(1)).Return(existing(domain.BookingPending, true), nil)
	f.providers.On("GetByID", mock.Anything, int64(5)).Return(testProvider(), nil)

	_, err := f.service.UpdateBookingStatus(context.Background(), domain.Actor{UserID: 99, Role: domain.RoleProvider}, 1, UpdateStatusRequest{Status: statusPtr("cancelled")})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_UpdateStatus_AdminManagesAnyBooking(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetByID", mock.Anything, int64(1)).Return(existing(domain.BookingConfirmed, false), nil)
	f.providers.On("GetByID", mock.Anything, int64(5)).Return(testProvider(), nil)
	f.bookings.On("ApplyPatch", mock.Anything, int64(1), domain.BookingConfirmed, mock.Anything).Return(existing(domain.BookingCompleted, false), nil)
	f.notifier.On("NotifyBookingStatusChanged", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	b, err := f.service.UpdateBookingStatus(context.Background(), domain.Actor{UserID: 1, Role: domain.RoleAdmin}, 1, UpdateStatusRequest{Status: statusPtr("completed")})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, b.Status)
}

func TestService_UpdateStatus_PatchValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := domain.Actor{UserID: ownerID}

	_, err := f.service.UpdateBookingStatus(ctx, owner, 1, UpdateStatusRequest{})
	assert.ErrorIs(t, err, ErrEmptyPatch)

	_, err = f.service.UpdateBookingStatus(ctx, owner, 1, UpdateStatusRequest{IsNew: boolPtr(true)})
	assert.ErrorIs(t, err, ErrInvalidIsNew)

	_, err = f.service.UpdateBookingStatus(ctx, owner, 1, UpdateStatusRequest{Status: statusPtr("archived")})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	f.bookings.On("GetByID", mock.Anything, int64(404)).Return(nil, repository.ErrNotFound)
	_, err = f.service.UpdateBookingStatus(ctx, owner, 404, UpdateStatusRequest{Status: statusPtr("confirmed")})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_UpdateStatus_SameStatusIsNoop(t *testing.T) {
	f := newFixture()
	current := existing(domain.BookingConfirmed, true)
	f.bookings.On("GetByID", mock.Anything, int64(1)).Return(current, nil)
	f.providers.On("GetByID", mock.Anything, int64(5)).Return(testProvider(), nil)

	b, err := f.service.UpdateBookingStatus(context.Background(), domain.Actor{UserID: ownerID}, 1, UpdateStatusRequest{Status: statusPtr("confirmed")})
	require.NoError(t, err)
	assert.Same(t, current, b)
	f.bookings.AssertNotCalled(t, "ApplyPatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_UpdateStatus_LostRace(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetByID", mock.Anything, int64(1)).Return(existing(domain.BookingPending, true), nil)
	f.providers.On("GetByID", mock.Anything, int64(5)).Return(testProvider(), nil)
	f.bookings.On("ApplyPatch", mock.Anything, int64(1), domain.BookingPending, mock.Anything).Return(nil, repository.ErrStale)

	_, err := f.service.UpdateBookingStatus(context.Background(), domain.Actor{UserID: ownerID}, 1, UpdateStatusRequest{Status: statusPtr("cancelled")})
	assert.ErrorIs(t, err, ErrBookingChanged)
	f.notifier.AssertNotCalled(t, "NotifyBookingStatusChanged", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ListBookingsForUser_AttachesProvider(t *testing.T) {
	f := newFixture()
	f.bookings.On("ListByUser", mock.Anything, clientID).Return([]domain.Booking{
		*existing(domain.BookingPending, true),
		{ID: 2, ProviderID: 6, UserID: clientID},
	}, nil)
	f.providers.On("Summaries", mock.Anything, []int64{5, 6}).Return(map[int64]domain.ProviderSummary{
		5: {ID: 5, Name: "Ahmad Khan"},
	}, nil)

	list, err := f.service.ListBookingsForUser(context.Background(), domain.Actor{UserID: clientID})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.NotNil(t, list[0].Provider)
	assert.Equal(t, "Ahmad Khan", list[0].Provider.Name)
	assert.Nil(t, list[1].Provider)
}

func TestService_ListBookingsForUser_SummaryPerBooking(t *testing.T) {
	f := newFixture()
	f.bookings.On("ListByUser", mock.Anything, clientID).Return([]domain.Booking{
		{ID: 1, ProviderID: 5, UserID: clientID},
		{ID: 2, ProviderID: 6, UserID: clientID},
	}, nil)
	f.providers.On("Summaries", mock.Anything, []int64{5, 6}).Return(map[int64]domain.ProviderSummary{
		5: {ID: 5, Name: "Ahmad Khan"},
		6: {ID: 6, Name: "Bilal Ahmed"},
	}, nil)

	list, err := f.service.ListBookingsForUser(context.Background(), domain.Actor{UserID: clientID})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ahmad Khan", list[0].Provider.Name)
	assert.Equal(t, "Bilal Ahmed", list[1].Provider.Name)
	assert.NotSame(t, list[0].Provider, list[1].Provider)
}

func TestService_ListBookingsForProvider_NoProfile(t *testing.T) {
	f := newFixture()
	f.providers.On("GetByUserID", mock.Anything, clientID).Return(nil, repository.ErrNotFound)

	list, err := f.service.ListBookingsForProvider(context.Background(), domain.Actor{UserID: clientID})
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestService_ListBookedSlots(t *testing.T) {
	f := newFixture()
	f.bookings.On("ListActive", mock.Anything, int64(5), mock.MatchedBy(func(d *time.Time) bool {
		return d != nil && domain.FormatDay(*d) == "2030-06-04"
	})).Return([]domain.Booking{*existing(domain.BookingConfirmed, false)}, nil)

	slots, err := f.service.ListBookedSlots(context.Background(), 5, "2030-06-04")
	require.NoError(t, err)
	assert.Equal(t, []domain.BookedSlot{{Date: "2030-06-04", TimeSlot: "10:00"}}, slots)

	_, err = f.service.ListBookedSlots(context.Background(), 5, "tomorrow")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
