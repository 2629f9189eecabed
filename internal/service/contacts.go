package service

import (
	"context"
	"errors"
	"time"

	"github.com/Nevskiy911/contacts-api/internal/logging"
	"github.com/Nevskiy911/contacts-api/internal/models"
	"github.com/Nevskiy911/contacts-api/internal/repo"
)

var ErrContactNotFound = errors.New("contact not found")

// ContactIndex mirrors contact mutations into the search index and
// serves queries. A nil index disables search; indexing failures are
// logged by the service and never fail the mutation.
type ContactIndex interface {
	IndexContact(ctx context.Context, contact *models.Contact) error
	RemoveContact(ctx context.Context, id uint) error
	SearchContacts(ctx context.Context, accountID uint, query string, from, size int) (int64, []models.Contact, error)
}

type ContactInput struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Birthday    string `json:"birthday"`
	Data        bool   `json:"data"`
}

type ContactService struct {
	Repo  *repo.GormRepo
	Index ContactIndex
}

func (s *ContactService) List(ctx context.Context, acc *models.Account, limit, offset int) ([]models.Contact, error) {
	return s.Repo.ContactsByAccount(ctx, acc.ID, limit, offset)
}

func (s *ContactService) ListAll(ctx context.Context, limit, offset int) ([]models.Contact, error) {
	return s.Repo.AllContacts(ctx, limit, offset)
}

func (s *ContactService) Get(ctx context.Context, acc *models.Account, id uint) (*models.Contact, error) {
	contact, err := s.Repo.ContactByID(ctx, id, acc.ID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return contact, nil
}

func (s *ContactService) Create(ctx context.Context, acc *models.Account, in ContactInput) (*models.Contact, error) {
	contact := &models.Contact{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Birthday:    in.Birthday,
		Data:        in.Data,
		AccountID:   acc.ID,
	}

	if err := s.Repo.CreateContact(ctx, contact); err != nil {
		return nil, err
	}

	s.index(ctx, contact)

	return contact, nil
}

func (s *ContactService) Update(ctx context.Context, acc *models.Account, id uint, in ContactInput) (*models.Contact, error) {
	contact, err := s.Get(ctx, acc, id)
	if err != nil {
		return nil, err
	}

	contact.FirstName = in.FirstName
	contact.LastName = in.LastName
	contact.Email = in.Email
	contact.PhoneNumber = in.PhoneNumber
	contact.Birthday = in.Birthday
	contact.Data = in.Data

	if err := s.Repo.SaveContact(ctx, contact); err != nil {
		return nil, err
	}

	s.index(ctx, contact)

	return contact, nil
}

func (s *ContactService) Delete(ctx context.Context, acc *models.Account, id uint) (*models.Contact, error) {
	contact, err := s.Get(ctx, acc, id)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.DeleteContact(ctx, contact); err != nil {
		return nil, err
	}

	if s.Index != nil {
		if err := s.Index.RemoveContact(ctx, contact.ID); err != nil {
			logging.FromContext(ctx).Warn("contact_index_remove_failed", "id", contact.ID, "error", err)
		}
	}

	return contact, nil
}

// UpcomingBirthdays returns the account's contacts whose birthday falls
// within the next days days, year wrap included. Contacts with an
// unparseable birthday are skipped.
func (s *ContactService) UpcomingBirthdays(ctx context.Context, acc *models.Account, days int) ([]models.Contact, error) {
	contacts, err := s.Repo.ContactsByAccount(ctx, acc.ID, 500, 0)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	upcoming := make([]models.Contact, 0)
	for _, contact := range contacts {
		birthday, err := time.Parse("2006-01-02", contact.Birthday)
		if err != nil {
			continue
		}

		next := time.Date(today.Year(), birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)
		if next.Before(today) {
			next = next.AddDate(1, 0, 0)
		}

		if next.Sub(today) <= time.Duration(days)*24*time.Hour {
			upcoming = append(upcoming, contact)
		}
	}

	return upcoming, nil
}

func (s *ContactService) Search(ctx context.Context, acc *models.Account, query string, from, size int) (int64, []models.Contact, error) {
	if s.Index == nil {
		return 0, nil, errors.New("search is not configured")
	}
	return s.Index.SearchContacts(ctx, acc.ID, query, from, size)
}

func (s *ContactService) index(ctx context.Context, contact *models.Contact) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexContact(ctx, contact); err != nil {
		logging.FromContext(ctx).Warn("contact_index_failed", "id", contact.ID, "error", err)
	}
}
