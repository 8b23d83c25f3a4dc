package auth

import (
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vadkul/vadkul-backend/config"
)

type fakeRepo struct {
	usersByEmail map[string]*User
	usersByCode  map[string]*User
	created      []*User
	nextID       uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		usersByEmail: map[string]*User{},
		usersByCode:  map[string]*User{},
		nextID:       1,
	}
}

func (r *fakeRepo) Create(user *User) error {
	user.ID = r.nextID
	r.nextID++
	r.usersByEmail[user.Email] = user
	r.usersByCode[user.InviteCode] = user
	r.created = append(r.created, user)
	return nil
}

func (r *fakeRepo) FindByEmail(email string) (*User, error) {
	if u, ok := r.usersByEmail[email]; ok {
		return u, nil
	}
	return &User{}, gorm.ErrRecordNotFound
}

func (r *fakeRepo) FindByID(userID uint) (User, error) {
	for _, u := range r.usersByEmail {
		if u.ID == userID {
			return *u, nil
		}
	}
	return User{}, gorm.ErrRecordNotFound
}

func (r *fakeRepo) FindByInviteCode(code string) (*User, error) {
	if u, ok := r.usersByCode[code]; ok {
		return u, nil
	}
	return &User{}, gorm.ErrRecordNotFound
}

func (r *fakeRepo) FindRoleByName(name string) (*UserRole, error) {
	return &UserRole{ID: 1, RoleName: name}, nil
}

func (r *fakeRepo) Update(user *User) error { return nil }

func (r *fakeRepo) UpdatePassword(userID uint, passwordHash string) error { return nil }

type fakeProfiles struct {
	ensured []uint
	invites []uint
}

func (p *fakeProfiles) EnsureProfile(userID uint, displayName string) error {
	p.ensured = append(p.ensured, userID)
	return nil
}

func (p *fakeProfiles) IncrementInviteCount(userID uint) error {
	p.invites = append(p.invites, userID)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTAccessSecret:    "test-access-secret",
		JWTRefreshSecret:   "test-refresh-secret",
		JWTAccessTTLHours:  1,
		JWTRefreshTTLHours: 24,
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeProfiles{}, testConfig())

	err := svc.Register(RegisterRequest{
		FullName: "Eva Lind",
		Email:    "eva@example.com",
		Password: "short",
	})
	if err == nil || err.Error() != "weak password: use at least 8 characters" {
		t.Fatalf("expected weak password error, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("no user should be created, got %d", len(repo.created))
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	repo.usersByEmail["eva@example.com"] = &User{ID: 1, Email: "eva@example.com"}
	svc := NewService(repo, &fakeProfiles{}, testConfig())

	err := svc.Register(RegisterRequest{
		FullName: "Eva Lind",
		Email:    "eva@example.com",
		Password: "longenough",
	})
	if err == nil || err.Error() != "email already in use" {
		t.Fatalf("expected duplicate email error, got %v", err)
	}
}

func TestRegisterRejectsUnknownInviteCode(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeProfiles{}, testConfig())

	err := svc.Register(RegisterRequest{
		FullName:   "Eva Lind",
		Email:      "eva@example.com",
		Password:   "longenough",
		InviteCode: "NOPE1234",
	})
	if err == nil || err.Error() != "invalid invite code" {
		t.Fatalf("expected invalid invite code error, got %v", err)
	}
}

func TestRegisterCreditsInviterAndCreatesProfile(t *testing.T) {
	repo := newFakeRepo()
	inviter := &User{ID: 42, Email: "oskar@example.com", InviteCode: "OSKAR123"}
	repo.usersByCode[inviter.InviteCode] = inviter
	profiles := &fakeProfiles{}
	svc := NewService(repo, profiles, testConfig())

	err := svc.Register(RegisterRequest{
		FullName:   "  Eva Lind  ",
		Email:      "Eva@Example.com",
		Password:   "longenough",
		InviteCode: "OSKAR123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected 1 created user, got %d", len(repo.created))
	}
	u := repo.created[0]
	if u.Email != "eva@example.com" {
		t.Errorf("email not normalized: %q", u.Email)
	}
	if u.FullName != "Eva Lind" {
		t.Errorf("name not trimmed: %q", u.FullName)
	}
	if u.InvitedBy == nil || *u.InvitedBy != 42 {
		t.Errorf("inviter not recorded: %v", u.InvitedBy)
	}
	if u.InviteCode == "" {
		t.Error("new user should get an invite code of their own")
	}
	if len(profiles.ensured) != 1 || profiles.ensured[0] != u.ID {
		t.Errorf("profile not ensured for new user: %v", profiles.ensured)
	}
	if len(profiles.invites) != 1 || profiles.invites[0] != 42 {
		t.Errorf("inviter not credited: %v", profiles.invites)
	}
}

func seedUser(repo *fakeRepo, email, password, status string) *User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &User{
		ID:           repo.nextID,
		Email:        email,
		PasswordHash: string(hash),
		Status:       status,
		Role:         UserRole{ID: 1, RoleName: RoleUser},
	}
	repo.nextID++
	repo.usersByEmail[email] = u
	return u
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeRepo()
	seedUser(repo, "eva@example.com", "correcthorse", "active")
	svc := NewService(repo, &fakeProfiles{}, testConfig())

	_, _, err := svc.Login(LoginRequest{Email: "eva@example.com", Password: "wrong"})
	if err == nil || err.Error() != "wrong email or password" {
		t.Fatalf("expected credential error, got %v", err)
	}

	// unknown email gets the same message
	_, _, err = svc.Login(LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	if err == nil || err.Error() != "wrong email or password" {
		t.Fatalf("expected credential error for unknown email, got %v", err)
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	repo := newFakeRepo()
	seedUser(repo, "eva@example.com", "correcthorse", "inactive")
	svc := NewService(repo, &fakeProfiles{}, testConfig())

	_, _, err := svc.Login(LoginRequest{Email: "eva@example.com", Password: "correcthorse"})
	if err == nil || err.Error() != "your account is inactive" {
		t.Fatalf("expected inactive error, got %v", err)
	}
}

func TestLoginIssuesTokenPair(t *testing.T) {
	repo := newFakeRepo()
	seeded := seedUser(repo, "eva@example.com", "correcthorse", "active")
	svc := NewService(repo, &fakeProfiles{}, testConfig())

	pair, user, err := svc.Login(LoginRequest{Email: "Eva@Example.com ", Password: "correcthorse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != seeded.ID {
		t.Errorf("wrong user returned: %d", user.ID)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}

	token, err := jwt.Parse(pair.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-access-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("access token does not verify: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if uint(claims["user_id"].(float64)) != seeded.ID {
		t.Errorf("user_id claim mismatch: %v", claims["user_id"])
	}
	if claims["role"] != RoleUser {
		t.Errorf("role claim mismatch: %v", claims["role"])
	}

	if errors.Is(err, jwt.ErrTokenExpired) {
		t.Error("fresh token must not be expired")
	}
}
