package repo

import (
	"context"

	"github.com/Nevskiy911/contacts-api/internal/models"
)

func (r *GormRepo) ContactsByAccount(ctx context.Context, accountID uint, limit, offset int) ([]models.Contact, error) {
	var items []models.Contact
	err := r.DB.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) AllContacts(ctx context.Context, limit, offset int) ([]models.Contact, error) {
	var items []models.Contact
	err := r.DB.WithContext(ctx).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ContactByID(ctx context.Context, id, accountID uint) (*models.Contact, error) {
	var contact models.Contact
	err := r.DB.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		First(&contact).Error
	if err != nil {
		return nil, translate(err)
	}
	return &contact, nil
}

func (r *GormRepo) CreateContact(ctx context.Context, contact *models.Contact) error {
	return r.DB.WithContext(ctx).Create(contact).Error
}

func (r *GormRepo) SaveContact(ctx context.Context, contact *models.Contact) error {
	return r.DB.WithContext(ctx).Save(contact).Error
}

func (r *GormRepo) DeleteContact(ctx context.Context, contact *models.Contact) error {
	return r.DB.WithContext(ctx).Delete(contact).Error
}
