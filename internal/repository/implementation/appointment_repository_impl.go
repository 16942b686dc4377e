package implementation

import (
	"context"
	"errors"

	"healthcare-chatbot-be/internal/entity"
	"healthcare-chatbot-be/internal/mapper"
	"healthcare-chatbot-be/internal/model"
	"healthcare-chatbot-be/internal/repository/contract"
	"healthcare-chatbot-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AppointmentMapper
}

func NewAppointmentRepository(db *gorm.DB) contract.AppointmentRepository {
	return &AppointmentRepositoryImpl{
		db:     db,
		mapper: mapper.NewAppointmentMapper(),
	}
}

func (r *AppointmentRepositoryImpl) Create(ctx context.Context, appointment *entity.Appointment) error {
	m := r.mapper.ToModel(appointment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*appointment = *r.mapper.ToEntity(m)
	return nil
}

func (r *AppointmentRepositoryImpl) UpdateStatus(ctx context.Context, id, userId uuid.UUID, status entity.AppointmentStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("id = ? AND user_id = ?", id, userId).
		Update("status", string(status))
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	// Zero rows can also mean the status was already set.
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Appointment{}).
		Where("id = ? AND user_id = ?", id, userId).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Appointment, error) {
	var m model.Appointment
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AppointmentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Appointment, error) {
	var models []*model.Appointment
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
