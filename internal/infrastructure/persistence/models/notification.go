package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/notification"
)

// NotificationModel is the persistence model for the Notification domain entity.
type NotificationModel struct {
	BaseModel
	Type     notification.Type `gorm:"type:varchar(30);not null;index"`
	Message  string            `gorm:"type:text;not null"`
	TenantID *uuid.UUID        `gorm:"type:uuid;index"`
	SentDate time.Time         `gorm:"not null;index"`
	IsRead   bool              `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts the persistence model to a domain Notification entity.
func (m *NotificationModel) ToDomain() *notification.Notification {
	return &notification.Notification{
		BaseEntity: m.BaseModel.ToDomain(),
		Type:       m.Type,
		Message:    m.Message,
		TenantID:   m.TenantID,
		SentDate:   m.SentDate,
		IsRead:     m.IsRead,
	}
}

// FromDomain populates the persistence model from a domain Notification entity.
func (m *NotificationModel) FromDomain(n *notification.Notification) {
	m.FromDomainBaseEntity(n.BaseEntity)
	m.Type = n.Type
	m.Message = n.Message
	m.TenantID = n.TenantID
	m.SentDate = n.SentDate
	m.IsRead = n.IsRead
}

// NotificationModelFromDomain creates a new persistence model from a domain Notification entity.
func NotificationModelFromDomain(n *notification.Notification) *NotificationModel {
	m := &NotificationModel{}
	m.FromDomain(n)
	return m
}
