package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nevskiy911/contacts-api/internal/models"
	"github.com/Nevskiy911/contacts-api/internal/repo"
)

type fakeIndex struct {
	mu      sync.Mutex
	indexed []uint
	removed []uint
	fail    bool
}

func (f *fakeIndex) IndexContact(_ context.Context, contact *models.Contact) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("index unavailable")
	}
	f.indexed = append(f.indexed, contact.ID)
	return nil
}

func (f *fakeIndex) RemoveContact(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("index unavailable")
	}
	f.removed = append(f.removed, id)
	return nil
}

func (f *fakeIndex) SearchContacts(_ context.Context, _ uint, _ string, _, _ int) (int64, []models.Contact, error) {
	return 0, nil, nil
}

func newTestContactService(t *testing.T) (*ContactService, *fakeIndex) {
	t.Helper()

	index := &fakeIndex{}
	svc := &ContactService{
		Repo:  &repo.GormRepo{DB: initTestDB(t)},
		Index: index,
	}
	return svc, index
}

func createTestAccount(t *testing.T, svc *ContactService, email string) *models.Account {
	t.Helper()

	acc := &models.Account{
		Username:     "test",
		Email:        email,
		PasswordHash: "x",
		Role:         models.RoleUser,
		Confirmed:    true,
	}
	require.NoError(t, svc.Repo.CreateAccount(context.Background(), acc))
	return acc
}

func TestContactService_CRUD(t *testing.T) {
	t.Parallel()

	svc, index := newTestContactService(t)
	ctx := context.Background()
	acc := createTestAccount(t, svc, "owner@example.com")

	created, err := svc.Create(ctx, acc, ContactInput{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		PhoneNumber: "+380501112233",
		Birthday:    "1815-12-10",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.Equal(t, acc.ID, created.AccountID)
	assert.Contains(t, index.indexed, created.ID)

	got, err := svc.Get(ctx, acc, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FirstName)

	updated, err := svc.Update(ctx, acc, created.ID, ContactInput{
		FirstName:   "Ada",
		LastName:    "King",
		Email:       "ada@example.com",
		PhoneNumber: "+380501112233",
		Birthday:    "1815-12-10",
		Data:        true,
	})
	require.NoError(t, err)
	assert.Equal(t, "King", updated.LastName)
	assert.True(t, updated.Data)

	list, err := svc.List(ctx, acc, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)

	deleted, err := svc.Delete(ctx, acc, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Contains(t, index.removed, created.ID)

	_, err = svc.Get(ctx, acc, created.ID)
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestContactService_ScopedToOwningAccount(t *testing.T) {
	t.Parallel()

	svc, _ := newTestContactService(t)
	ctx := context.Background()
	owner := createTestAccount(t, svc, "owner@example.com")
	other := createTestAccount(t, svc, "other@example.com")

	created, err := svc.Create(ctx, owner, ContactInput{FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, other, created.ID)
	assert.ErrorIs(t, err, ErrContactNotFound)

	_, err = svc.Update(ctx, other, created.ID, ContactInput{FirstName: "Eve", LastName: "Dropper"})
	assert.ErrorIs(t, err, ErrContactNotFound)

	_, err = svc.Delete(ctx, other, created.ID)
	assert.ErrorIs(t, err, ErrContactNotFound)

	list, err := svc.List(ctx, other, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	all, err := svc.ListAll(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestContactService_IndexFailureDoesNotFailMutation(t *testing.T) {
	t.Parallel()

	svc, index := newTestContactService(t)
	index.fail = true
	ctx := context.Background()
	acc := createTestAccount(t, svc, "owner@example.com")

	created, err := svc.Create(ctx, acc, ContactInput{FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)

	_, err = svc.Delete(ctx, acc, created.ID)
	require.NoError(t, err)
}

func TestContactService_NilIndex(t *testing.T) {
	t.Parallel()

	svc, _ := newTestContactService(t)
	svc.Index = nil
	ctx := context.Background()
	acc := createTestAccount(t, svc, "owner@example.com")

	created, err := svc.Create(ctx, acc, ContactInput{FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)

	_, err = svc.Delete(ctx, acc, created.ID)
	require.NoError(t, err)

	_, _, err = svc.Search(ctx, acc, "ada", 0, 10)
	require.Error(t, err)
}

func TestContactService_UpcomingBirthdays(t *testing.T) {
	t.Parallel()

	svc, _ := newTestContactService(t)
	ctx := context.Background()
	acc := createTestAccount(t, svc, "owner@example.com")

	now := time.Now().UTC()
	birthday := func(offsetDays int) string {
		d := now.AddDate(0, 0, offsetDays)
		// Any past year; only month and day matter.
		return time.Date(1990, d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	}

	mk := func(first string, bday string) {
		_, err := svc.Create(ctx, acc, ContactInput{FirstName: first, LastName: "T", Birthday: bday})
		require.NoError(t, err)
	}

	mk("today", birthday(0))
	mk("in-three-days", birthday(3))
	mk("in-seven-days", birthday(7))
	mk("in-ten-days", birthday(10))
	mk("unparseable", "not-a-date")

	got, err := svc.UpcomingBirthdays(ctx, acc, 7)
	require.NoError(t, err)

	names := make([]string, 0, len(got))
	for _, c := range got {
		names = append(names, c.FirstName)
	}
	assert.ElementsMatch(t, []string{"today", "in-three-days", "in-seven-days"}, names)
}
