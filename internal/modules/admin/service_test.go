package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servic/internal/domain"
	"servic/internal/modules/notification"
	"servic/internal/pkg/logger"
	"servic/internal/pkg/testdb"
	"servic/internal/repository"
)

type recordingPusher struct {
	pushed map[int64][]notification.Event
}

func (r *recordingPusher) Push(userID int64, event notification.Event) bool {
	if r.pushed == nil {
		r.pushed = make(map[int64][]notification.Event)
	}
	r.pushed[userID] = append(r.pushed[userID], event)
	return true
}

type adminFixture struct {
	service   *Service
	pusher    *recordingPusher
	users     *repository.UserRepository
	providers *repository.ProviderRepository
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	db := testdb.Open(t)
	require.NoError(t, repository.Migrate(db))

	f := &adminFixture{
		pusher:    &recordingPusher{},
		users:     repository.NewUserRepository(db),
		providers: repository.NewProviderRepository(db),
	}
	f.service = NewService(f.providers, repository.NewStatsRepository(db), f.pusher, logger.Discard())
	return f
}

func (f *adminFixture) provider(t *testing.T, name string, owner *domain.User) *domain.Provider {
	t.Helper()
	p := &domain.Provider{Name: name, Phone: "+923001234567", Category: domain.CategoryMechanic, Location: "Lahore"}
	if owner != nil {
		require.NoError(t, f.providers.CreateAndPromote(context.Background(), p, owner.ID))
	} else {
		require.NoError(t, f.providers.Create(context.Background(), p))
	}
	return p
}

func TestSetVerified_NotifiesOwner(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	owner := &domain.User{Email: "owner@servic.com", PasswordHash: "x", Name: "Owner", Role: domain.RoleUser}
	require.NoError(t, f.users.Create(ctx, owner))
	p := f.provider(t, "Usman Ghani", owner)

	got, err := f.service.SetVerified(ctx, 1, p.ID, true)
	require.NoError(t, err)
	assert.True(t, got.IsVerified)

	require.Len(t, f.pusher.pushed[owner.ID], 1)
	ev := f.pusher.pushed[owner.ID][0]
	assert.Equal(t, EventProviderVerification, ev.Type)
	assert.Equal(t, VerificationEvent{ProviderID: p.ID, IsVerified: true}, ev.Payload)

	got, err = f.service.SetVerified(ctx, 1, p.ID, false)
	require.NoError(t, err)
	assert.False(t, got.IsVerified)
}

func TestSetVerified_Errors(t *testing.T) {
	f := newAdminFixture(t)

	_, err := f.service.SetVerified(context.Background(), 1, 0, true)
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = f.service.SetVerified(context.Background(), 1, 404, true)
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestPendingProviders_Pages(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	first := f.provider(t, "One", nil)
	f.provider(t, "Two", nil)
	verified := f.provider(t, "Three", nil)
	require.NoError(t, f.providers.SetVerified(ctx, verified.ID, true))

	out, err := f.service.PendingProviders(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Total)
	require.Len(t, out.Providers, 1)
	assert.Equal(t, first.ID, out.Providers[0].ID)

	out, err = f.service.PendingProviders(ctx, 0, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 20, out.Limit)
	assert.Len(t, out.Providers, 2)
}

func TestStats(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	owner := &domain.User{Email: "owner@servic.com", PasswordHash: "x", Name: "Owner", Role: domain.RoleUser}
	require.NoError(t, f.users.Create(ctx, owner))
	p := f.provider(t, "Usman Ghani", owner)
	require.NoError(t, f.providers.SetVerified(ctx, p.ID, true))

	stats, err := f.service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Users)
	assert.Equal(t, int64(1), stats.Providers)
	assert.Equal(t, int64(1), stats.VerifiedProviders)
	assert.Equal(t, int64(0), stats.Bookings[domain.BookingPending])
	assert.Len(t, stats.Bookings, 4)
}
