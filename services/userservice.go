package services

import (
	"context"
	"sync"
	"time"

	"pmeboard/model"

	"cloud.google.com/go/firestore"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"
)

// UserStore is the remote side of profile+roles resolution. Kept as an
// interface so the fallback chain can be exercised without Firestore.
type UserStore interface {
	Profile(ctx context.Context, userID string) (*model.UserProfile, error)
	CreateProfile(ctx context.Context, profile *model.UserProfile) error
	AuthMeta(ctx context.Context, userID string) (*model.AuthUser, error)
	Roles(ctx context.Context, userID string) ([]string, error)
	AssignRole(ctx context.Context, userID, role string) error
}

const (
	userCacheTTL       = 10 * time.Minute
	userResolveTimeout = 5 * time.Second
)

// UserResolver turns a user id into a profile merged with its roles.
//
// The backend may be missing auxiliary rows shortly after signup, so the
// resolution degrades step by step instead of failing: a missing profile is
// re-created from auth metadata; if that write also fails the caller gets an
// in-memory profile that is never persisted. A roles failure defaults to
// ["corretor"]. A hard timeout races the whole chain and loses to nothing:
// on timeout the in-memory fallback wins.
type UserResolver struct {
	store   UserStore
	ttl     time.Duration
	timeout time.Duration

	mu    sync.Mutex
	cache map[string]cachedUser
}

type cachedUser struct {
	user      *model.SessionUser
	fetchedAt time.Time
}

func NewUserResolver(store UserStore) *UserResolver {
	return &UserResolver{
		store:   store,
		ttl:     userCacheTTL,
		timeout: userResolveTimeout,
		cache:   make(map[string]cachedUser),
	}
}

// FetchUserData resolves a user, serving repeat calls within the freshness
// window from the local cache.
func (r *UserResolver) FetchUserData(ctx context.Context, userID string) (*model.SessionUser, error) {
	return r.FetchUserDataWithMeta(ctx, userID, nil)
}

// FetchUserDataWithMeta is FetchUserData with auth metadata already in hand
// (the signin path has the credential row and skips a lookup on fallback).
func (r *UserResolver) FetchUserDataWithMeta(ctx context.Context, userID string, meta *model.AuthUser) (*model.SessionUser, error) {
	r.mu.Lock()
	if entry, ok := r.cache[userID]; ok && time.Since(entry.fetchedAt) < r.ttl {
		r.mu.Unlock()
		return entry.user, nil
	}
	r.mu.Unlock()

	rctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	done := make(chan *model.SessionUser, 1)
	go func() {
		done <- r.resolve(rctx, userID, meta)
	}()

	var user *model.SessionUser
	select {
	case user = <-done:
	case <-rctx.Done():
		user = fallbackUser(userID, meta)
	}

	r.mu.Lock()
	r.cache[userID] = cachedUser{user: user, fetchedAt: time.Now()}
	r.mu.Unlock()
	return user, nil
}

// Forget drops one user from the cache (profile updates, role changes).
func (r *UserResolver) Forget(userID string) {
	r.mu.Lock()
	delete(r.cache, userID)
	r.mu.Unlock()
}

// Clear empties the cache. Called on signout.
func (r *UserResolver) Clear() {
	r.mu.Lock()
	r.cache = make(map[string]cachedUser)
	r.mu.Unlock()
}

func (r *UserResolver) resolve(ctx context.Context, userID string, meta *model.AuthUser) *model.SessionUser {
	var (
		profile    *model.UserProfile
		profileErr error
		roles      []string
		rolesErr   error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profile, profileErr = r.store.Profile(gctx, userID)
		return nil
	})
	g.Go(func() error {
		roles, rolesErr = r.store.Roles(gctx, userID)
		return nil
	})
	g.Wait()

	if profileErr != nil {
		profile = r.recoverProfile(ctx, userID, meta, profileErr)
	}

	if rolesErr != nil || len(roles) == 0 {
		roles = []string{model.RoleCorretor}
	}

	return &model.SessionUser{UserProfile: *profile, Roles: roles}
}

// recoverProfile runs the fallback chain for a failed profile lookup:
// re-create the row from auth metadata, and when even that fails hand back
// an in-memory profile so the session is not blocked.
func (r *UserResolver) recoverProfile(ctx context.Context, userID string, meta *model.AuthUser, lookupErr error) *model.UserProfile {
	if !IsNotFound(lookupErr) {
		return &fallbackUser(userID, meta).UserProfile
	}

	if meta == nil {
		m, err := r.store.AuthMeta(ctx, userID)
		if err != nil {
			return &fallbackUser(userID, meta).UserProfile
		}
		meta = m
	}

	minimal := &model.UserProfile{
		UserID: userID,
		Name:   meta.Name,
		Email:  meta.Email,
	}
	if err := r.store.CreateProfile(ctx, minimal); err != nil {
		return &fallbackUser(userID, meta).UserProfile
	}
	// Best effort; the roles default covers an assignment failure.
	_ = r.store.AssignRole(ctx, userID, model.RoleCorretor)
	return minimal
}

// fallbackUser is the in-memory-only profile. Never written to the backend;
// the next resolution derives it again identically.
func fallbackUser(userID string, meta *model.AuthUser) *model.SessionUser {
	profile := model.UserProfile{UserID: userID}
	if meta != nil {
		profile.Name = meta.Name
		profile.Email = meta.Email
	}
	return &model.SessionUser{
		UserProfile: profile,
		Roles:       []string{model.RoleCorretor},
	}
}

// FirestoreUserStore is the production UserStore.
type FirestoreUserStore struct {
	Client *firestore.Client
}

func (s *FirestoreUserStore) Profile(ctx context.Context, userID string) (*model.UserProfile, error) {
	doc, err := s.Client.Collection("profiles").Doc(userID).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var profile model.UserProfile
	if err := doc.DataTo(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *FirestoreUserStore) CreateProfile(ctx context.Context, profile *model.UserProfile) error {
	_, err := s.Client.Collection("profiles").Doc(profile.UserID).Set(ctx, profile)
	return err
}

func (s *FirestoreUserStore) AuthMeta(ctx context.Context, userID string) (*model.AuthUser, error) {
	doc, err := s.Client.Collection("auth_users").Doc(userID).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var user model.AuthUser
	if err := doc.DataTo(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *FirestoreUserStore) Roles(ctx context.Context, userID string) ([]string, error) {
	iter := s.Client.Collection("user_roles").
		Where("user_id", "==", userID).
		Documents(ctx)
	defer iter.Stop()

	var roles []string
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var row model.UserRole
		if err := doc.DataTo(&row); err != nil {
			return nil, err
		}
		roles = append(roles, row.Role)
	}
	return roles, nil
}

func (s *FirestoreUserStore) AssignRole(ctx context.Context, userID, role string) error {
	_, err := s.Client.Collection("user_roles").Doc(userID+"_"+role).Set(ctx, model.UserRole{
		UserID: userID,
		Role:   role,
	})
	return err
}
