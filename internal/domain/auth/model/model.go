package model

import (
	"time"
)

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"size:80;not null" json:"username"`
	Email        string    `gorm:"size:120;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	CreatedAt    time.Time `json:"-"`
}

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Token is a signed credential together with the metadata needed to revoke it.
type Token struct {
	Raw       string
	JTI       string
	Type      TokenType
	ExpiresAt time.Time
}

type TokenPair struct {
	Access  Token
	Refresh Token
	UserID  int64
}
