package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/mvasiljevs/taskdesk/internal/common"
	"github.com/mvasiljevs/taskdesk/internal/server/auth"
	"github.com/mvasiljevs/taskdesk/internal/server/config"
	"github.com/mvasiljevs/taskdesk/internal/server/models"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return cfg
}

func TestRegister_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	users := &fakeUsersRepo{}
	sessions := &fakeSessionsRepo{}
	rm := &fakeRepoManager{u: users, s: sessions}
	s := NewUserService(db, rm, testConfig())

	before := time.Now()
	user, token, err := s.Register(context.Background(), "alice", "hunter22", "Alice", "alice@corp.test")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.ID == 0 || user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.Role != models.RoleUser {
		t.Fatalf("registration must force RoleUser, got %q", user.Role)
	}
	if !regexp.MustCompile(`^[0-9a-f]{64}$`).MatchString(token) {
		t.Fatalf("unexpected token format: %q", token)
	}

	if len(sessions.created) != 1 {
		t.Fatalf("expected one session, got %d", len(sessions.created))
	}
	got := sessions.created[0]
	if got.userID != user.ID || got.token != token {
		t.Fatalf("session mismatch: %+v", got)
	}
	wantExpiry := before.Add(7 * 24 * time.Hour)
	if got.expiresAt.Before(wantExpiry) || got.expiresAt.After(wantExpiry.Add(time.Minute)) {
		t.Fatalf("unexpected expiry: %v", got.expiresAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	users := &fakeUsersRepo{
		byUsername: map[string]*models.User{"alice": {ID: 1, Username: "alice"}},
	}
	rm := &fakeRepoManager{u: users, s: &fakeSessionsRepo{}}
	s := NewUserService(db, rm, testConfig())

	_, _, err := s.Register(context.Background(), "alice", "x", "Alice", "")
	if !errors.Is(err, common.ErrorDuplicateUser) {
		t.Fatalf("want ErrorDuplicateUser, got %v", err)
	}
}

func TestRegister_DuplicateRace(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	// pre-check passes, the unique index catches the race inside the tx
	users := &fakeUsersRepo{createErr: common.ErrorDuplicateUser}
	rm := &fakeRepoManager{u: users, s: &fakeSessionsRepo{}}
	s := NewUserService(db, rm, testConfig())

	_, _, err := s.Register(context.Background(), "alice", "x", "Alice", "")
	if !errors.Is(err, common.ErrorDuplicateUser) {
		t.Fatalf("want ErrorDuplicateUser, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestRegister_SessionCreateErr(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{u: &fakeUsersRepo{}, s: &fakeSessionsRepo{createErr: errBoom{}}}
	s := NewUserService(db, rm, testConfig())

	_, _, err := s.Register(context.Background(), "alice", "x", "Alice", "")
	if err == nil || !regexp.MustCompile(`error creating user: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped tx error, got %v", err)
	}
}

func TestLogin_Flows(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	digest, err := auth.HashPassword("right")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	// unknown username → invalid credentials, not "not found"
	rmNF := &fakeRepoManager{u: &fakeUsersRepo{}, s: &fakeSessionsRepo{}}
	sNF := NewUserService(db, rmNF, testConfig())
	if _, _, err := sNF.Login(context.Background(), "ghost", "x"); !errors.Is(err, common.ErrorInvalidCredentials) {
		t.Fatalf("unknown user: want ErrorInvalidCredentials, got %v", err)
	}

	// blocked account is reported before password verification
	sessionsBL := &fakeSessionsRepo{}
	rmBL := &fakeRepoManager{
		u: &fakeUsersRepo{byUsername: map[string]*models.User{
			"bob": {ID: 2, Username: "bob", PasswordHash: digest, IsBlocked: true},
		}},
		s: sessionsBL,
	}
	sBL := NewUserService(db, rmBL, testConfig())
	if _, _, err := sBL.Login(context.Background(), "bob", "right"); !errors.Is(err, common.ErrorAccountBlocked) {
		t.Fatalf("blocked user: want ErrorAccountBlocked, got %v", err)
	}
	if len(sessionsBL.created) != 0 {
		t.Fatalf("blocked login must not create a session: %+v", sessionsBL.created)
	}

	// wrong password
	rmWP := &fakeRepoManager{
		u: &fakeUsersRepo{byUsername: map[string]*models.User{
			"carol": {ID: 3, Username: "carol", PasswordHash: digest},
		}},
		s: &fakeSessionsRepo{},
	}
	sWP := NewUserService(db, rmWP, testConfig())
	if _, _, err := sWP.Login(context.Background(), "carol", "wrong"); !errors.Is(err, common.ErrorInvalidCredentials) {
		t.Fatalf("wrong password: want ErrorInvalidCredentials, got %v", err)
	}

	// success mints a session and stamps last sign-in
	usersOK := &fakeUsersRepo{byUsername: map[string]*models.User{
		"carol": {ID: 3, Username: "carol", PasswordHash: digest},
	}}
	sessionsOK := &fakeSessionsRepo{}
	sOK := NewUserService(db, &fakeRepoManager{u: usersOK, s: sessionsOK}, testConfig())
	user, token, err := sOK.Login(context.Background(), "carol", "right")
	if err != nil || user.ID != 3 || token == "" {
		t.Fatalf("Login success: user=%+v token=%q err=%v", user, token, err)
	}
	if len(sessionsOK.created) != 1 || sessionsOK.created[0].token != token {
		t.Fatalf("session not created: %+v", sessionsOK.created)
	}
	if len(usersOK.lastSignedIn) != 1 || usersOK.lastSignedIn[0] != 3 {
		t.Fatalf("last sign-in not stamped: %+v", usersOK.lastSignedIn)
	}
}

func TestLogin_TwoSessionsIndependent(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	digest, _ := auth.HashPassword("pw")
	sessions := &fakeSessionsRepo{}
	rm := &fakeRepoManager{
		u: &fakeUsersRepo{byUsername: map[string]*models.User{
			"dave": {ID: 4, Username: "dave", PasswordHash: digest},
		}},
		s: sessions,
	}
	s := NewUserService(db, rm, testConfig())

	_, t1, err := s.Login(context.Background(), "dave", "pw")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	_, t2, err := s.Login(context.Background(), "dave", "pw")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if t1 == t2 {
		t.Fatalf("two logins produced the same token")
	}
	if len(sessions.created) != 2 {
		t.Fatalf("expected two live sessions, got %d", len(sessions.created))
	}
}

func TestResolve_Flows(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	// empty token → anonymous, no error
	s := NewUserService(db, &fakeRepoManager{u: &fakeUsersRepo{}, s: &fakeSessionsRepo{}}, testConfig())
	if u, err := s.Resolve(context.Background(), ""); u != nil || err != nil {
		t.Fatalf("empty token: got (%v, %v)", u, err)
	}

	// unknown token → anonymous
	if u, err := s.Resolve(context.Background(), "nope"); u != nil || err != nil {
		t.Fatalf("unknown token: got (%v, %v)", u, err)
	}

	// valid session, live user
	sessionsOK := &fakeSessionsRepo{findOut: &models.Session{
		UserID: 5, Token: "tok", ExpiresAt: time.Now().Add(time.Hour),
	}}
	usersOK := &fakeUsersRepo{byID: map[int64]*models.User{5: {ID: 5, Username: "erin"}}}
	sOK := NewUserService(db, &fakeRepoManager{u: usersOK, s: sessionsOK}, testConfig())
	u, err := sOK.Resolve(context.Background(), "tok")
	if err != nil || u == nil || u.ID != 5 {
		t.Fatalf("valid session: got (%v, %v)", u, err)
	}

	// blocked user resolves to anonymous even with a live session
	sessionsBL := &fakeSessionsRepo{findOut: &models.Session{
		UserID: 5, Token: "tok", ExpiresAt: time.Now().Add(time.Hour),
	}}
	usersBL := &fakeUsersRepo{byID: map[int64]*models.User{5: {ID: 5, IsBlocked: true}}}
	sBL := NewUserService(db, &fakeRepoManager{u: usersBL, s: sessionsBL}, testConfig())
	if u, err := sBL.Resolve(context.Background(), "tok"); u != nil || err != nil {
		t.Fatalf("blocked user: got (%v, %v)", u, err)
	}
}

func TestResolve_ExpiredSessionDeletedLazily(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	sessions := &fakeSessionsRepo{findOut: &models.Session{
		UserID: 6, Token: "old", ExpiresAt: time.Now().Add(-time.Minute),
	}}
	rm := &fakeRepoManager{u: &fakeUsersRepo{}, s: sessions}
	s := NewUserService(db, rm, testConfig())

	u, err := s.Resolve(context.Background(), "old")
	if u != nil || err != nil {
		t.Fatalf("expired session: got (%v, %v)", u, err)
	}
	if len(sessions.deleted) != 1 || sessions.deleted[0] != "old" {
		t.Fatalf("expired session not deleted: %+v", sessions.deleted)
	}
}

func TestLogout_Idempotent(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	sessions := &fakeSessionsRepo{}
	s := NewUserService(db, &fakeRepoManager{u: &fakeUsersRepo{}, s: sessions}, testConfig())

	if err := s.Logout(context.Background(), ""); err != nil {
		t.Fatalf("empty token logout: %v", err)
	}
	if err := s.Logout(context.Background(), "whatever"); err != nil {
		t.Fatalf("unknown token logout: %v", err)
	}
	if len(sessions.deleted) != 1 {
		t.Fatalf("expected one delete, got %d", len(sessions.deleted))
	}
}
