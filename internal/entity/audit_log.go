package entity

import (
	"time"

	"gorm.io/datatypes"
)

type AuditAction string

const (
	AuditLoginSuccess      AuditAction = "login_success"
	AuditLoginFailed       AuditAction = "login_failed"
	AuditStaffToggled      AuditAction = "staff_toggled"
	AuditActivationToggled AuditAction = "activation_toggled"
	AuditPasswordChanged   AuditAction = "password_changed"
	AuditUserDeleted       AuditAction = "user_deleted"
)

type AuditLog struct {
	ID        uint        `gorm:"primaryKey"`
	UserID    *uint       `gorm:"index"`
	IPAddress *string     `gorm:"type:varchar(45)"`
	Action    AuditAction `gorm:"type:varchar(32);not null"`
	Metadata  datatypes.JSON

	CreatedAt time.Time
}
