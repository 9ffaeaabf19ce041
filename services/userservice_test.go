package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pmeboard/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserStore struct {
	mu sync.Mutex

	profile    *model.UserProfile
	profileErr error
	roles      []string
	rolesErr   error
	meta       *model.AuthUser
	metaErr    error
	createErr  error
	delay      time.Duration

	profileCalls   int
	createdProfile *model.UserProfile
	assignedRoles  []string
}

func (f *fakeUserStore) Profile(ctx context.Context, userID string) (*model.UserProfile, error) {
	f.mu.Lock()
	f.profileCalls++
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.profile, f.profileErr
}

func (f *fakeUserStore) CreateProfile(ctx context.Context, profile *model.UserProfile) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	f.createdProfile = profile
	f.mu.Unlock()
	return nil
}

func (f *fakeUserStore) AuthMeta(ctx context.Context, userID string) (*model.AuthUser, error) {
	return f.meta, f.metaErr
}

func (f *fakeUserStore) Roles(ctx context.Context, userID string) ([]string, error) {
	return f.roles, f.rolesErr
}

func (f *fakeUserStore) AssignRole(ctx context.Context, userID, role string) error {
	f.mu.Lock()
	f.assignedRoles = append(f.assignedRoles, role)
	f.mu.Unlock()
	return nil
}

func TestFetchUserDataMergesProfileAndRoles(t *testing.T) {
	store := &fakeUserStore{
		profile: &model.UserProfile{UserID: "u1", Name: "Maria", Email: "maria@corretora.com"},
		roles:   []string{"admin", "corretor"},
	}
	resolver := NewUserResolver(store)

	user, err := resolver.FetchUserData(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, "Maria", user.Name)
	assert.Equal(t, []string{"admin", "corretor"}, user.Roles)
	assert.True(t, user.IsAdmin())
}

func TestFetchUserDataServesSecondCallFromCache(t *testing.T) {
	store := &fakeUserStore{
		profile: &model.UserProfile{UserID: "u1", Name: "Maria"},
		roles:   []string{"corretor"},
	}
	resolver := NewUserResolver(store)

	first, err := resolver.FetchUserData(context.Background(), "u1")
	require.NoError(t, err)
	second, err := resolver.FetchUserData(context.Background(), "u1")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, store.profileCalls)
}

func TestFetchUserDataRecreatesMissingProfile(t *testing.T) {
	store := &fakeUserStore{
		profileErr: ErrNotFound,
		meta:       &model.AuthUser{UserID: "u1", Name: "João", Email: "joao@corretora.com"},
		rolesErr:   errors.New("roles table unavailable"),
	}
	resolver := NewUserResolver(store)

	user, err := resolver.FetchUserData(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, "João", user.Name)
	assert.Equal(t, []string{model.RoleCorretor}, user.Roles)
	require.NotNil(t, store.createdProfile)
	assert.Equal(t, "joao@corretora.com", store.createdProfile.Email)
	assert.Equal(t, []string{model.RoleCorretor}, store.assignedRoles)
}

func TestFetchUserDataFallsBackInMemoryWhenCreateFails(t *testing.T) {
	store := &fakeUserStore{
		profileErr: ErrNotFound,
		meta:       &model.AuthUser{UserID: "u1", Name: "João", Email: "joao@corretora.com"},
		createErr:  errors.New("write denied"),
	}
	resolver := NewUserResolver(store)

	user, err := resolver.FetchUserData(context.Background(), "u1")

	require.NoError(t, err)
	// Usable session, nothing persisted.
	assert.Equal(t, "João", user.Name)
	assert.Equal(t, []string{model.RoleCorretor}, user.Roles)
	assert.Nil(t, store.createdProfile)
	assert.Empty(t, store.assignedRoles)
}

func TestFetchUserDataDefaultsRolesWhenEmpty(t *testing.T) {
	store := &fakeUserStore{
		profile: &model.UserProfile{UserID: "u1", Name: "Maria"},
		roles:   nil,
	}
	resolver := NewUserResolver(store)

	user, err := resolver.FetchUserData(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, []string{model.RoleCorretor}, user.Roles)
	assert.False(t, user.IsAdmin())
}

func TestFetchUserDataTimeoutWinsWithFallback(t *testing.T) {
	store := &fakeUserStore{
		profile: &model.UserProfile{UserID: "u1", Name: "Maria"},
		roles:   []string{"corretor"},
		delay:   500 * time.Millisecond,
	}
	resolver := NewUserResolver(store)
	resolver.timeout = 50 * time.Millisecond

	start := time.Now()
	user, err := resolver.FetchUserDataWithMeta(context.Background(), "u1", &model.AuthUser{UserID: "u1", Name: "Maria"})

	require.NoError(t, err)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
	assert.Equal(t, "Maria", user.Name)
	assert.Equal(t, []string{model.RoleCorretor}, user.Roles)
}

func TestForgetDropsSingleUser(t *testing.T) {
	store := &fakeUserStore{
		profile: &model.UserProfile{UserID: "u1", Name: "Maria"},
		roles:   []string{"corretor"},
	}
	resolver := NewUserResolver(store)

	_, err := resolver.FetchUserData(context.Background(), "u1")
	require.NoError(t, err)
	resolver.Forget("u1")
	_, err = resolver.FetchUserData(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 2, store.profileCalls)
}
