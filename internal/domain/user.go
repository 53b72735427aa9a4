package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	Gender       string    `json:"gender"`
	Birth        time.Time `json:"birth"`
	Address      string    `json:"address"`
	Avatar       string    `json:"avatar"`
	CreatedAt    time.Time `json:"created_at"`
}

// SellerSummary is the seller header shown above a listing.
type SellerSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// SellerProfile is the seller contact block attached to a product detail.
type SellerProfile struct {
	ID      uuid.UUID `json:"id"`
	Email   string    `json:"email"`
	Name    string    `json:"name"`
	Phone   string    `json:"phone"`
	Address string    `json:"address"`
}

func (u *User) Summary() SellerSummary {
	return SellerSummary{
		ID:        u.ID,
		Name:      u.Name,
		Avatar:    u.Avatar,
		Phone:     u.Phone,
		Address:   u.Address,
		CreatedAt: u.CreatedAt,
	}
}

func (u *User) Profile() SellerProfile {
	return SellerProfile{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Phone:   u.Phone,
		Address: u.Address,
	}
}
