package pg

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"career-backend/internal/shared/storage/artifact"
)

func newMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return New(db), mock
}

func TestSaveUpsertsByName(t *testing.T) {
	store, mock := newMock(t)
	data := []byte("%PDF-1.3")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO report_artifacts (name,content,content_type,size_bytes) VALUES ($1,$2,$3,$4) ON CONFLICT (name) DO UPDATE")).
		WithArgs("Asha_Career_Report.pdf", data, artifact.ContentType, int64(len(data))).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := store.Save(context.Background(), "Asha_Career_Report.pdf", data)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id != "Asha_Career_Report.pdf" {
		t.Fatalf("unexpected id %q", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestSaveWrapsStorageErrors(t *testing.T) {
	store, mock := newMock(t)
	mock.ExpectExec("INSERT INTO report_artifacts").WillReturnError(errors.New("disk full"))

	if _, err := store.Save(context.Background(), "Asha_Career_Report.pdf", []byte("x")); !errors.Is(err, artifact.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT content FROM report_artifacts WHERE name = $1")).
		WithArgs("Asha_Career_Report.pdf").
		WillReturnRows(sqlmock.NewRows([]string{"content"}).AddRow([]byte("pdf bytes")))

	got, err := store.Load(context.Background(), "Asha_Career_Report.pdf")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != "pdf bytes" {
		t.Fatalf("unexpected content %q", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestLoadNotFound(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery("SELECT content FROM report_artifacts").
		WithArgs("does-not-exist.pdf").
		WillReturnRows(sqlmock.NewRows([]string{"content"}))

	if _, err := store.Load(context.Background(), "does-not-exist.pdf"); !errors.Is(err, artifact.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadRejectsTraversalWithoutQuery(t *testing.T) {
	store, mock := newMock(t)

	if _, err := store.Load(context.Background(), "../etc/passwd"); !errors.Is(err, artifact.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database access: %v", err)
	}
}
