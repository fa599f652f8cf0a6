package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/GameServerX/dark-haven-website/internal/config"
	"github.com/GameServerX/dark-haven-website/internal/logger"
	"github.com/GameServerX/dark-haven-website/models"
)

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db:     newDB(db, config.DriverPostgres, NewPostgresErrorClassifier(), l),
		logger: l,
		now:    func() time.Time { return fixedNow },
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRow(id int64, username string) *sqlmock.Rows {
	return sqlmock.NewRows(userColumns).
		AddRow(id, username, "hash", "tok", false, "", "", "", "online", int64(250), int64(3), int64(90), fixedNow, fixedNow, nil)
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	user := models.User{Username: "john", PasswordHash: "hash", Token: "tok"}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("john", "hash", "tok", false, "", "", fixedNow, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	created, err := repo.CreateUser(context.Background(), user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", created.UserID)
	}
	if !created.CreatedAt.Equal(fixedNow) {
		t.Errorf("expected created_at to be set, got %v", created.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "john"})
	if !errors.Is(err, ErrLoginAlreadyExists) {
		t.Fatalf("expected ErrLoginAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "john"})
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestFindUserByUsername_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM users WHERE LOWER\(username\) = LOWER\(\$1\)`).
		WithArgs("JOHN").
		WillReturnRows(userRow(1, "john"))

	found, err := repo.FindUserByUsername(context.Background(), "JOHN")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Username != "john" || found.Token != "tok" {
		t.Errorf("unexpected user %+v", found)
	}
	if found.Level() != 3 {
		t.Errorf("expected level 3 for 250 experience, got %d", found.Level())
	}
	if found.TotalTimeOnline != 90 {
		t.Errorf("expected total_time_online 90, got %d", found.TotalTimeOnline)
	}
	if found.LastLogin == nil || found.LastSeen != nil {
		t.Errorf("unexpected nullable timestamps: %v %v", found.LastLogin, found.LastSeen)
	}
}

func TestFindUserByUsername_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("john").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByUsername(context.Background(), "john")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByID_ScanError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	_, err := repo.FindUserByID(context.Background(), 1)
	if !errors.Is(err, ErrScanningRow) {
		t.Fatalf("expected ErrScanningRow, got %v", err)
	}
}

func TestFindUserByToken_TouchesLastSeen(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE users SET last_seen = \$1 WHERE token = \$2 RETURNING id`).
		WithArgs(fixedNow, "tok").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = ").
		WithArgs(int64(7)).
		WillReturnRows(userRow(7, "john"))

	user, err := repo.FindUserByToken(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.UserID != 7 {
		t.Errorf("expected user 7, got %d", user.UserID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFindUserByToken_Unknown(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("UPDATE users SET last_seen").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindUserByToken(context.Background(), "nope")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByToken_EmptyTokenSkipsQuery(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	_, err := repo.FindUserByToken(context.Background(), "")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected queries: %v", err)
	}
}

func TestUpdateSession(t *testing.T) {
	t.Run("token only", func(t *testing.T) {
		repo, mock, db := newTestUserRepo(t)
		defer db.Close()

		mock.ExpectExec(`UPDATE users SET token = \$1, last_login = \$2, last_seen = \$3, online_status = \$4 WHERE id = \$5`).
			WithArgs("new", fixedNow, fixedNow, models.OnlineStatusOnline, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.UpdateSession(context.Background(), 1, "new", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("with rehash", func(t *testing.T) {
		repo, mock, db := newTestUserRepo(t)
		defer db.Close()

		mock.ExpectExec(`UPDATE users SET token = \$1, last_login = \$2, last_seen = \$3, online_status = \$4, password_hash = \$5 WHERE id = \$6`).
			WithArgs("new", fixedNow, fixedNow, models.OnlineStatusOnline, "$argon2id$...", int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.UpdateSession(context.Background(), 1, "new", "$argon2id$..."); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		repo, mock, db := newTestUserRepo(t)
		defer db.Close()

		mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateSession(context.Background(), 1, "new", "")
		if !errors.Is(err, ErrNoUserWasFound) {
			t.Fatalf("expected ErrNoUserWasFound, got %v", err)
		}
	})
}

func TestUpdateProfile_SingleStatement(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	bio := "hello"
	exp := int64(250)

	mock.ExpectExec(`UPDATE users SET bio = \$1, experience = \$2 WHERE id = \$3`).
		WithArgs("hello", int64(250), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(1)).
		WillReturnRows(userRow(1, "john"))

	user, err := repo.UpdateProfile(context.Background(), 1, models.ProfileUpdate{Bio: &bio, Experience: &exp})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.UserID != 1 {
		t.Errorf("expected user 1, got %d", user.UserID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateProfile_EmptyUpdateOnlyReads(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(1)).
		WillReturnRows(userRow(1, "john"))

	if _, err := repo.UpdateProfile(context.Background(), 1, models.ProfileUpdate{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSearchUsers_QueryError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE LOWER").
		WithArgs("%Jo%").
		WillReturnError(errors.New("boom"))

	_, err := repo.SearchUsers(context.Background(), "Jo", 20)
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestListOnlineUsers_RowsError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	rows := userRow(1, "john").RowError(0, errors.New("broken row"))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE online_status").
		WithArgs(models.OnlineStatusOnline).
		WillReturnRows(rows)

	_, err := repo.ListOnlineUsers(context.Background(), 50)
	if !errors.Is(err, ErrScanningRows) {
		t.Fatalf("expected ErrScanningRows, got %v", err)
	}
}
