package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/msomdec/fitcoach/internal/domain"
	"github.com/msomdec/fitcoach/internal/engine"
	"golang.org/x/crypto/bcrypt"
)

// Claims are the JWT claims issued at login.
type Claims struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// UserUpdate is the admin-editable part of a user. An empty Password keeps
// the current credential; a nil Role or Disabled keeps the stored value.
type UserUpdate struct {
	Username string
	Password string
	Role     *domain.Role
	Disabled *bool
}

// AuthService handles signup, login, token operations and user administration.
type AuthService struct {
	snaps      *Snapshots
	jwtSecret  []byte
	bcryptCost int
	tokenTTL   time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(snaps *Snapshots, jwtSecret string, bcryptCost int, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		snaps:      snaps,
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
		tokenTTL:   tokenTTL,
	}
}

// Hash returns the bcrypt hash of a raw credential.
func (s *AuthService) Hash(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether raw matches hash.
func (s *AuthService) Verify(raw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}

// TokenTTL is how long issued tokens stay valid.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}

// Signup creates an account. The first account in an empty store becomes
// an admin; afterwards only members can sign themselves up.
func (s *AuthService) Signup(ctx context.Context, username, password string, role domain.Role) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}
	if role == "" {
		role = domain.RoleMember
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	hash, err := s.Hash(password)
	if err != nil {
		return nil, err
	}

	var created domain.User
	err = s.snaps.update(ctx, []domain.Collection{domain.CollectionUsers}, func(t *txn) error {
		users, err := read[domain.User](t, domain.CollectionUsers)
		if err != nil {
			return err
		}
		candidate := domain.User{Username: username, PasswordHash: hash, Role: role}
		if len(users) == 0 {
			candidate.Role = domain.RoleAdmin
		} else if role == domain.RoleAdmin {
			return fmt.Errorf("%w: only an admin can grant the admin role", domain.ErrUnauthorized)
		}
		user, next, err := engine.CreateUser(candidate, users)
		if err != nil {
			return err
		}
		created = user
		return write(t, domain.CollectionUsers, next)
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &created, nil
}

// Login verifies credentials and returns a signed JWT with the matched user.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	users, err := load[domain.User](ctx, s.snaps.store, domain.CollectionUsers)
	if err != nil {
		return "", nil, fmt.Errorf("load users: %w", err)
	}

	user, err := engine.Authenticate(username, password, users, s)
	if err != nil {
		return "", nil, err
	}

	token, err := s.IssueToken(&user)
	if err != nil {
		return "", nil, fmt.Errorf("generate jwt: %w", err)
	}
	return token, &user, nil
}

// IssueToken signs a token carrying the user's id and role.
func (s *AuthService) IssueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken parses a token and returns the principal it was issued to.
func (s *AuthService) ValidateToken(tokenString string) (domain.Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return domain.Principal{}, domain.ErrUnauthenticated
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return domain.Principal{}, domain.ErrUnauthenticated
	}
	return domain.Principal{UserID: userID, Username: claims.Username, Role: claims.Role}, nil
}

// Authenticate validates a token and resolves it against the current user
// record, so deleted or disabled accounts and role changes take effect
// before the token expires.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (domain.Principal, *domain.User, error) {
	p, err := s.ValidateToken(tokenString)
	if err != nil {
		return domain.Principal{}, nil, err
	}
	user, err := s.GetUserByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Principal{}, nil, domain.ErrUnauthenticated
		}
		return domain.Principal{}, nil, err
	}
	if user.Disabled {
		return domain.Principal{}, nil, domain.ErrAccountDisabled
	}
	return domain.Principal{UserID: user.ID, Username: user.Username, Role: user.Role}, user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	users, err := load[domain.User](ctx, s.snaps.store, domain.CollectionUsers)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	user, err := engine.FindUser(id, users)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every account.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return load[domain.User](ctx, s.snaps.store, domain.CollectionUsers)
}

// UpdateUser replaces a user's username and whichever of role, disabled flag
// and password are given.
func (s *AuthService) UpdateUser(ctx context.Context, id int64, upd UserUpdate) (*domain.User, error) {
	var hash string
	if upd.Password != "" {
		if len(upd.Password) < 8 {
			return nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
		}
		h, err := s.Hash(upd.Password)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	var updated domain.User
	err := s.snaps.update(ctx, []domain.Collection{domain.CollectionUsers}, func(t *txn) error {
		users, err := read[domain.User](t, domain.CollectionUsers)
		if err != nil {
			return err
		}
		current, err := engine.FindUser(id, users)
		if err != nil {
			return err
		}
		patch := domain.User{Username: upd.Username, PasswordHash: hash, Role: current.Role, Disabled: current.Disabled}
		if upd.Role != nil {
			patch.Role = *upd.Role
		}
		if upd.Disabled != nil {
			patch.Disabled = *upd.Disabled
		}
		user, next, err := engine.UpdateUser(id, patch, users)
		if err != nil {
			return err
		}
		updated = user
		return write(t, domain.CollectionUsers, next)
	})
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &updated, nil
}

// DeleteUser removes a user along with their registrations and recommendation.
func (s *AuthService) DeleteUser(ctx context.Context, id int64) error {
	cols := []domain.Collection{domain.CollectionUsers, domain.CollectionRegistrations, domain.CollectionRecommendations}
	err := s.snaps.update(ctx, cols, func(t *txn) error {
		users, err := read[domain.User](t, domain.CollectionUsers)
		if err != nil {
			return err
		}
		regs, err := read[domain.Registration](t, domain.CollectionRegistrations)
		if err != nil {
			return err
		}
		recs, err := read[domain.Recommendation](t, domain.CollectionRecommendations)
		if err != nil {
			return err
		}
		nextUsers, nextRegs, nextRecs, err := engine.DeleteUser(id, users, regs, recs)
		if err != nil {
			return err
		}
		if err := write(t, domain.CollectionUsers, nextUsers); err != nil {
			return err
		}
		if len(nextRegs) != len(regs) {
			if err := write(t, domain.CollectionRegistrations, nextRegs); err != nil {
				return err
			}
		}
		if len(nextRecs) != len(recs) {
			return write(t, domain.CollectionRecommendations, nextRecs)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
