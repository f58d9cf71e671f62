package model

import (
	"time"
)

// User 用户模型
// 注册后默认未激活，激活码兑换一次后清空
type User struct {
	ID             int       `json:"id" db:"id"`
	Email          string    `json:"email" db:"email" gorm:"unique"`
	Username       string    `json:"username" db:"username"`
	PasswordHash   string    `json:"-" db:"password_hash"`
	Role           string    `json:"role" db:"role"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	ActivationCode string    `json:"-" db:"activation_code" gorm:"index"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
