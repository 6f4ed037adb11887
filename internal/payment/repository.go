package payment

import (
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(db *gorm.DB, rec *PaymentRecord) error
	CreateBatch(db *gorm.DB, recs []PaymentRecord) (int, error)
	FindByID(db *gorm.DB, id uint) (*PaymentRecord, error)
	ListAll(db *gorm.DB) ([]PaymentRecord, error)
	Update(db *gorm.DB, rec *PaymentRecord) error
	Delete(db *gorm.DB, id uint) (int64, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, rec *PaymentRecord) error {
	return db.Create(rec).Error
}

func (r *repositoryImpl) CreateBatch(db *gorm.DB, recs []PaymentRecord) (int, error) {
	if len(recs) == 0 {
		return 0, nil
	}
	result := db.Create(&recs)
	return int(result.RowsAffected), result.Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*PaymentRecord, error) {
	var rec PaymentRecord
	if err := db.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *repositoryImpl) ListAll(db *gorm.DB) ([]PaymentRecord, error) {
	var recs []PaymentRecord
	err := db.Find(&recs).Error
	return recs, err
}

func (r *repositoryImpl) Update(db *gorm.DB, rec *PaymentRecord) error {
	return db.Save(rec).Error
}

// Delete removes by id and reports rows affected so callers can map zero
// to not-found.
func (r *repositoryImpl) Delete(db *gorm.DB, id uint) (int64, error) {
	result := db.Delete(&PaymentRecord{}, id)
	return result.RowsAffected, result.Error
}
