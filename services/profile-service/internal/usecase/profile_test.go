package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/loginflow/services/profile-service/internal/model"
)

type memoryProfileRepository struct {
	mu       sync.Mutex
	profiles map[string]*model.Profile
	err      error
}

func newMemoryProfileRepository() *memoryProfileRepository {
	return &memoryProfileRepository{profiles: map[string]*model.Profile{}}
}

func (r *memoryProfileRepository) GetProfileByOwner(_ context.Context, ownerID string) (*model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.profiles[ownerID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return p, nil
}

func (r *memoryProfileRepository) CreateProfileIfAbsent(_ context.Context, profile *model.Profile) (*model.Profile, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return nil, false, r.err
	}
	if p, ok := r.profiles[profile.OwnerID]; ok {
		return p, false, nil
	}

	now := time.Now()
	profile.ID = bson.NewObjectID()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	r.profiles[profile.OwnerID] = profile
	return profile, true, nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	notified []string
	err      error
}

func (n *recordingNotifier) NotifyWelcome(_ context.Context, profile *model.Profile) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notified = append(n.notified, profile.OwnerID)
	return n.err
}

func newTestUsecase(repo *memoryProfileRepository, notifier WelcomeNotifier) ProfileUsecase {
	logger := zerolog.Nop()
	return NewProfileUsecase(&logger, repo, map[string]any{"plan": "free"}, notifier)
}

func TestGetProfile_Absent(t *testing.T) {
	uc := newTestUsecase(newMemoryProfileRepository(), nil)

	profile, err := uc.GetProfile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestGetProfile_RepositoryError(t *testing.T) {
	repo := newMemoryProfileRepository()
	repo.err = errors.New("connection refused")
	uc := newTestUsecase(repo, nil)

	_, err := uc.GetProfile(context.Background(), "user-1")
	assert.ErrorIs(t, err, repo.err)
}

func TestGetProfile_MissingOwner(t *testing.T) {
	uc := newTestUsecase(newMemoryProfileRepository(), nil)

	_, err := uc.GetProfile(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingOwner)
}

func TestCreateProfile_CreatesOnceWithDefaults(t *testing.T) {
	repo := newMemoryProfileRepository()
	notifier := &recordingNotifier{}
	uc := newTestUsecase(repo, notifier)

	first, created, err := uc.CreateProfile(context.Background(), CreateProfileParams{OwnerID: "user-1", Email: "a@b.com"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, map[string]any{"plan": "free"}, first.Data)
	assert.Equal(t, "a@b.com", first.Email)

	second, created, err := uc.CreateProfile(context.Background(), CreateProfileParams{OwnerID: "user-1", Email: "a@b.com"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	assert.Equal(t, []string{"user-1"}, notifier.notified)
}

func TestCreateProfile_DefaultDataIsNotShared(t *testing.T) {
	repo := newMemoryProfileRepository()
	uc := newTestUsecase(repo, nil)

	a, _, err := uc.CreateProfile(context.Background(), CreateProfileParams{OwnerID: "user-1"})
	require.NoError(t, err)
	a.Data["plan"] = "pro"

	b, _, err := uc.CreateProfile(context.Background(), CreateProfileParams{OwnerID: "user-2"})
	require.NoError(t, err)
	assert.Equal(t, "free", b.Data["plan"])
}

func TestCreateProfile_ConcurrentCallsCreateOne(t *testing.T) {
	repo := newMemoryProfileRepository()
	notifier := &recordingNotifier{}
	uc := newTestUsecase(repo, notifier)

	const callers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		ids     = map[bson.ObjectID]struct{}{}
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, c, err := uc.CreateProfile(context.Background(), CreateProfileParams{OwnerID: "user-1"})
			if !assert.NoError(t, err) {
				return
			}

			mu.Lock()
			defer mu.Unlock()
			if c {
				created++
			}
			ids[p.ID] = struct{}{}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Len(t, ids, 1)
	assert.Len(t, notifier.notified, 1)
}

func TestCreateProfile_NotifierFailureIsIgnored(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	uc := newTestUsecase(newMemoryProfileRepository(), notifier)

	profile, created, err := uc.CreateProfile(context.Background(), CreateProfileParams{OwnerID: "user-1"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotNil(t, profile)
}

func TestCreateProfile_RepositoryError(t *testing.T) {
	repo := newMemoryProfileRepository()
	repo.err = errors.New("write conflict")
	notifier := &recordingNotifier{}
	uc := newTestUsecase(repo, notifier)

	_, _, err := uc.CreateProfile(context.Background(), CreateProfileParams{OwnerID: "user-1"})
	assert.ErrorIs(t, err, repo.err)
	assert.Empty(t, notifier.notified)
}

type capturedMail struct {
	to      []string
	subject string
	body    string
}

type fakeSender struct {
	sent []capturedMail
}

func (s *fakeSender) SendHTML(to []string, subject, body string) error {
	s.sent = append(s.sent, capturedMail{to: to, subject: subject, body: body})
	return nil
}

func TestMailWelcomeNotifier(t *testing.T) {
	sender := &fakeSender{}
	n := &MailWelcomeNotifier{sender: sender, subject: "Welcome"}

	require.NoError(t, n.NotifyWelcome(context.Background(), &model.Profile{
		Email: "a<b>@b.com",
		Data:  map[string]any{"plan": "free"},
	}))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"a<b>@b.com"}, sender.sent[0].to)
	assert.Equal(t, "Welcome", sender.sent[0].subject)
	assert.Contains(t, sender.sent[0].body, "a&lt;b&gt;@b.com")
	assert.Contains(t, sender.sent[0].body, "<b>free</b>")

	require.NoError(t, n.NotifyWelcome(context.Background(), &model.Profile{}))
	assert.Len(t, sender.sent, 1)
}
