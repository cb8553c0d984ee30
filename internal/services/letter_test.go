package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"participationletters/internal/adapters/pdf"
	"participationletters/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeRenderer returns fixed bytes and records the request it was given.
type fakeRenderer struct {
	lastReq   domain.LetterRequest
	lastToday time.Time
	calls     int
	err       error
	panicMsg  string
}

func (f *fakeRenderer) Render(req domain.LetterRequest, today time.Time) ([]byte, error) {
	f.calls++
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	f.lastReq = req
	f.lastToday = today
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake " + req.UserID), nil
}

// fakeArtifactStore is an in-memory ArtifactStore.
type fakeArtifactStore struct {
	bucket      string
	buckets     map[string]bool
	objects     map[string][]byte
	uploads     int
	contentType string
	uploadErr   error
	ensureErr   error
}

func newFakeArtifactStore() *fakeArtifactStore {
	return &fakeArtifactStore{
		bucket:  "event-letters",
		buckets: make(map[string]bool),
		objects: make(map[string][]byte),
	}
}

func (f *fakeArtifactStore) Bucket() string { return f.bucket }

func (f *fakeArtifactStore) EnsureBucket(ctx context.Context, name string) (bool, error) {
	if f.ensureErr != nil {
		return false, f.ensureErr
	}
	if f.buckets[name] {
		return false, nil
	}
	f.buckets[name] = true
	return true, nil
}

func (f *fakeArtifactStore) Upload(ctx context.Context, path string, body []byte, contentType string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploads++
	f.objects[path] = body
	f.contentType = contentType
	return nil
}

func (f *fakeArtifactStore) PublicURL(path string) string {
	return "https://storage.test/" + f.bucket + "/" + path
}

// fakeLetterRepo is an in-memory LetterRepository that stamps records from a ticking clock.
type fakeLetterRepo struct {
	byKey     map[string]*domain.GeneratedLetter
	upserts   int
	clock     time.Time
	upsertErr error
	getErr    map[string]error
}

func newFakeLetterRepo() *fakeLetterRepo {
	return &fakeLetterRepo{
		byKey: make(map[string]*domain.GeneratedLetter),
		clock: time.Date(2025, 5, 3, 9, 0, 0, 0, time.UTC),
	}
}

func letterKey(userID, eventID string) string { return userID + ":" + eventID }

func (f *fakeLetterRepo) Upsert(ctx context.Context, l *domain.GeneratedLetter) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts++
	f.clock = f.clock.Add(time.Minute)
	l.EventDate = f.clock
	l.GeneratedDate = f.clock
	stored := *l
	f.byKey[letterKey(l.UserID, l.EventID)] = &stored
	return nil
}

func (f *fakeLetterRepo) GetByUserAndEvent(ctx context.Context, userID, eventID string) (*domain.GeneratedLetter, error) {
	if err, ok := f.getErr[letterKey(userID, eventID)]; ok {
		return nil, err
	}
	l, ok := f.byKey[letterKey(userID, eventID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return l, nil
}

func validLetterRequest() domain.LetterRequest {
	return domain.LetterRequest{
		UserID:    "u1",
		UserName:  "Ada",
		EventID:   "e1",
		EventName: "Spring Meetup",
		EventDate: "2025-04-12",
	}
}

func TestLetterService_Generate_Success(t *testing.T) {
	ctx := context.Background()
	renderer := &fakeRenderer{}
	store := newFakeArtifactStore()
	repo := newFakeLetterRepo()
	svc := NewLetterService(discardLogger(), renderer, store, repo, time.Second).(*letterService)
	today := time.Date(2025, 5, 3, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return today }

	letter, err := svc.Generate(ctx, validLetterRequest())
	require.NoError(t, err)

	wantPath := "event_letters/u1/e1/Spring_Meetup_letter.pdf"
	assert.Equal(t, "https://storage.test/event-letters/"+wantPath, letter.LetterURL)
	assert.Equal(t, today, renderer.lastToday)
	assert.Equal(t, []byte("%PDF-fake u1"), store.objects[wantPath])
	assert.Equal(t, "application/pdf", store.contentType)

	stored, err := repo.GetByUserAndEvent(ctx, "u1", "e1")
	require.NoError(t, err)
	assert.Equal(t, letter.LetterURL, stored.LetterURL)
	assert.Equal(t, "Spring Meetup", stored.EventName)
	assert.Equal(t, stored.GeneratedDate, stored.EventDate, "event date is the record creation time")
	assert.False(t, stored.EventDate.IsZero())
}

func TestLetterService_Generate_MissingFields(t *testing.T) {
	renderer := &fakeRenderer{}
	store := newFakeArtifactStore()
	repo := newFakeLetterRepo()
	svc := NewLetterService(discardLogger(), renderer, store, repo, time.Second)

	req := validLetterRequest()
	req.UserName = ""
	req.EventDate = ""
	_, err := svc.Generate(context.Background(), req)
	require.Error(t, err)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"userName", "eventDate"}, verr.Fields)
	assert.Equal(t, 0, renderer.calls, "nothing rendered")
	assert.Equal(t, 0, store.uploads)
	assert.Equal(t, 0, repo.upserts)
}

func TestLetterService_Generate_InvalidDateCreatesNothing(t *testing.T) {
	for _, date := range []string{"2024-13-40", "not-a-date"} {
		t.Run(date, func(t *testing.T) {
			store := newFakeArtifactStore()
			repo := newFakeLetterRepo()
			svc := NewLetterService(discardLogger(), pdf.NewLetterRenderer(), store, repo, time.Second)

			req := validLetterRequest()
			req.EventDate = date
			_, err := svc.Generate(context.Background(), req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidDate))
			assert.False(t, errors.Is(err, domain.ErrInvalidInput))
			assert.Equal(t, 0, store.uploads)
			assert.Empty(t, repo.byKey)
		})
	}
}

func TestLetterService_Generate_UploadFailureWritesNoRecord(t *testing.T) {
	store := newFakeArtifactStore()
	store.uploadErr = errors.New("storage unreachable")
	repo := newFakeLetterRepo()
	svc := NewLetterService(discardLogger(), &fakeRenderer{}, store, repo, time.Second)

	_, err := svc.Generate(context.Background(), validLetterRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage unreachable")
	assert.Equal(t, 0, repo.upserts)
}

func TestLetterService_Generate_RecordFailureLeavesUpload(t *testing.T) {
	store := newFakeArtifactStore()
	repo := newFakeLetterRepo()
	repo.upsertErr = errors.New("db down")
	svc := NewLetterService(discardLogger(), &fakeRenderer{}, store, repo, time.Second)

	_, err := svc.Generate(context.Background(), validLetterRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
	assert.Equal(t, 1, store.uploads, "uploaded artifact is not cleaned up")
	assert.Empty(t, repo.byKey)
}

func TestLetterService_Generate_TwiceOverwritesRecord(t *testing.T) {
	ctx := context.Background()
	store := newFakeArtifactStore()
	repo := newFakeLetterRepo()
	svc := NewLetterService(discardLogger(), &fakeRenderer{}, store, repo, 0)

	first, err := svc.Generate(ctx, validLetterRequest())
	require.NoError(t, err)
	second, err := svc.Generate(ctx, validLetterRequest())
	require.NoError(t, err)

	assert.Equal(t, 2, store.uploads)
	assert.Len(t, repo.byKey, 1)
	stored, err := repo.GetByUserAndEvent(ctx, "u1", "e1")
	require.NoError(t, err)
	assert.Equal(t, second.GeneratedDate, stored.GeneratedDate)
	assert.True(t, stored.GeneratedDate.After(first.GeneratedDate), "latest values win")
}

func TestLetterService_EnsureBucket(t *testing.T) {
	ctx := context.Background()
	store := newFakeArtifactStore()
	svc := NewLetterService(discardLogger(), &fakeRenderer{}, store, newFakeLetterRepo(), time.Second)

	created, err := svc.EnsureBucket(ctx)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureBucket(ctx)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, store.buckets, 1)

	store.ensureErr = errors.New("forbidden")
	_, err = svc.EnsureBucket(ctx)
	require.Error(t, err)
}
