package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"wedding-liaison/internal/domain"
	"wedding-liaison/internal/recordstore"
)

const usersRecord = "wedding_app_users"

// storedUser pairs an account with its password hash. The hash never leaves
// this package.
type storedUser struct {
	domain.User
	PasswordHash string `json:"passwordHash"`
}

// localProvider is the demonstration fallback for the external authentication
// service: three fixed demo accounts plus registrations persisted to the
// record store.
type localProvider struct {
	records recordstore.Store

	mu    sync.Mutex
	users []storedUser
}

func NewLocalProvider(records recordstore.Store) (AuthProvider, error) {
	p := &localProvider{records: records}
	if err := p.load(context.Background()); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *localProvider) load(ctx context.Context) error {
	data, err := p.records.Get(ctx, usersRecord)
	if err == nil {
		if jsonErr := json.Unmarshal(data, &p.users); jsonErr == nil && len(p.users) > 0 {
			return nil
		}
	} else if err != recordstore.ErrNotFound {
		return err
	}

	p.users = demoUsers()
	return p.persist(ctx)
}

func (p *localProvider) persist(ctx context.Context) error {
	data, err := json.Marshal(p.users)
	if err != nil {
		return err
	}
	return p.records.Put(ctx, usersRecord, data)
}

func demoUsers() []storedUser {
	return []storedUser{
		{
			User:         domain.User{ID: "user1", Name: "Demo Client", Email: "client@example.com", Role: domain.RoleUser},
			PasswordHash: mustHash("password"),
		},
		{
			User:         domain.User{ID: "vendor1", Name: "Elegant Moments Photography", Email: "vendor@example.com", Role: domain.RoleVendor},
			PasswordHash: mustHash("password"),
		},
		{
			User:         domain.User{ID: "admin1", Name: "Admin User", Email: "admin@example.com", Role: domain.RoleAdmin},
			PasswordHash: mustHash("admin123"),
		},
	}
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}

func (p *localProvider) Login(ctx context.Context, input domain.LoginInput) (*domain.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.users {
		u := &p.users[i]
		if u.Email != input.Email || u.Role != input.Role {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)) != nil {
			return nil, ErrInvalidCredentials
		}
		user := u.User
		return &user, nil
	}
	return nil, ErrInvalidCredentials
}

func (p *localProvider) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.users {
		if p.users[i].Email == input.Email {
			return nil, ErrEmailExists
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		ID:       uuid.New().String(),
		Name:     input.Name,
		Email:    input.Email,
		Role:     input.Role,
		Business: input.Business,
	}
	p.users = append(p.users, storedUser{User: user, PasswordHash: string(hash)})

	if err := p.persist(ctx); err != nil {
		return nil, err
	}
	return &user, nil
}

func (p *localProvider) Logout(ctx context.Context) error {
	return nil
}

// Status never recovers a session in local mode; the demo store holds no
// server-side session state.
func (p *localProvider) Status(ctx context.Context) (*domain.User, error) {
	return nil, nil
}
