package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/dbx"
	"github.com/dmitrijs2005/inkwell/internal/server/auth"
	"github.com/dmitrijs2005/inkwell/internal/server/config"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
	postsrepo "github.com/dmitrijs2005/inkwell/internal/server/repositories/posts"
	usersrepo "github.com/dmitrijs2005/inkwell/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func newUserService(t *testing.T, db *sql.DB, rm *fakeRepoManager) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: time.Hour,
	}
	return NewUserService(db, rm, cfg)
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

type fakeUsersRepo struct {
	createErr error

	byEmailOut *models.User
	byEmailErr error

	byIDOut *models.User
	byIDErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.CreatedAt = time.Now()
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmailOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	p *fakePostsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *fakeRepoManager) Posts(db dbx.DBTX) postsrepo.Repository      { return m.p }

// --- tests ---

func TestRegister_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{}}
	s := newUserService(t, db, rm)

	user, token, err := s.Register(context.Background(), "alice", "a@x.com", "pw123")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.ID == "" || token == "" {
		t.Fatalf("empty id or token: %+v %q", user, token)
	}
	if user.PasswordHash == "pw123" {
		t.Fatal("password stored in plaintext")
	}
	if !auth.CheckPassword("pw123", user.PasswordHash) {
		t.Fatal("stored hash does not verify the password")
	}

	// the token must verify back to the new user's id
	subject, err := s.Authenticate(token)
	if err != nil {
		t.Fatalf("Authenticate error: %v", err)
	}
	if subject != user.ID {
		t.Fatalf("subject mismatch: got %q want %q", subject, user.ID)
	}
}

func TestRegister_Conflict(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{createErr: common.ErrorConflict}}
	s := newUserService(t, db, rm)

	_, _, err := s.Register(context.Background(), "alice", "a@x.com", "pw")
	if !errors.Is(err, common.ErrorConflict) {
		t.Fatalf("want common.ErrorConflict, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	hash, err := auth.HashPassword("pw123")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	rm := &fakeRepoManager{u: &fakeUsersRepo{
		byEmailOut: &models.User{ID: "u-1", Username: "alice", Email: "a@x.com", PasswordHash: hash},
	}}
	s := newUserService(t, db, rm)

	user, token, err := s.Login(context.Background(), "a@x.com", "pw123")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if user.ID != "u-1" || token == "" {
		t.Fatalf("unexpected result: %+v %q", user, token)
	}
}

func TestLogin_UnknownEmailAndWrongPassword_SameError(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	hash, err := auth.HashPassword("right")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	// unknown email
	rm := &fakeRepoManager{u: &fakeUsersRepo{byEmailErr: common.ErrorNotFound}}
	s := newUserService(t, db, rm)
	_, _, errUnknown := s.Login(context.Background(), "ghost@x.com", "whatever")

	// wrong password
	rm = &fakeRepoManager{u: &fakeUsersRepo{
		byEmailOut: &models.User{ID: "u-1", Email: "a@x.com", PasswordHash: hash},
	}}
	s = newUserService(t, db, rm)
	_, _, errWrong := s.Login(context.Background(), "a@x.com", "wrong")

	if !errors.Is(errUnknown, common.ErrorInvalidCredentials) {
		t.Fatalf("unknown email: want ErrorInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrong, common.ErrorInvalidCredentials) {
		t.Fatalf("wrong password: want ErrorInvalidCredentials, got %v", errWrong)
	}
	if !errors.Is(errUnknown, errWrong) {
		t.Fatal("account enumeration: the two failures must be indistinguishable")
	}
}

func TestLogin_RepoError_Internal(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{byEmailErr: errBoom{}}}
	s := newUserService(t, db, rm)

	_, _, err := s.Login(context.Background(), "a@x.com", "pw")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want common.ErrorInternal, got %v", err)
	}
}

func TestAuthenticate_FailureModesCollapse(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{}}
	s := newUserService(t, db, rm)

	expired, err := auth.GenerateToken("u-1", []byte("k"), -time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	foreign, err := auth.GenerateToken("u-1", []byte("other-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	for _, token := range []string{"", "garbage", expired, foreign} {
		if _, err := s.Authenticate(token); !errors.Is(err, common.ErrorUnauthorized) {
			t.Fatalf("token %q: want common.ErrorUnauthorized, got %v", token, err)
		}
	}
}

func TestGetProfile_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{
		byIDOut: &models.User{ID: "u-1", Username: "alice", Email: "a@x.com", PasswordHash: "hash"},
	}}
	s := newUserService(t, db, rm)

	p, err := s.GetProfile(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetProfile error: %v", err)
	}
	if p.ID != "u-1" || p.Username != "alice" || p.Email != "a@x.com" {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestGetProfile_MissingUser_Unauthorized(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{byIDErr: common.ErrorNotFound}}
	s := newUserService(t, db, rm)

	_, err := s.GetProfile(context.Background(), "gone")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want common.ErrorUnauthorized, got %v", err)
	}
}
