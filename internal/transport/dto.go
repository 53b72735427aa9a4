package transport

import "time"

type RegisterRequest struct {
	Email    string    `json:"email"    validate:"required,email"`
	Name     string    `json:"name"     validate:"required"`
	Password string    `json:"password" validate:"required,min=6"`
	Phone    string    `json:"phone"    validate:"required"`
	Gender   string    `json:"gender"   validate:"required"`
	Birth    time.Time `json:"birth"    validate:"required"`
	Address  string    `json:"address"  validate:"required"`
	Avatar   string    `json:"avatar"   validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type CreateCategoryRequest struct {
	Name             string `json:"name"              validate:"required"`
	Image            string `json:"image"             validate:"required"`
	ShortDescription string `json:"short_description" validate:"required"`
}

type DetailRequest struct {
	Name  string `json:"name"  validate:"required"`
	Value string `json:"value" validate:"required"`
}

type VariantRequest struct {
	Name  string `json:"name"  validate:"required"`
	Price int64  `json:"price" validate:"gte=0"`
}

type CreateProductRequest struct {
	Name             string           `json:"name"              validate:"required"`
	ShortDescription string           `json:"short_description" validate:"required"`
	Description      string           `json:"description"       validate:"required"`
	SupplierPrice    int64            `json:"supplier_price"    validate:"gte=0"`
	CategoryID       string           `json:"category_id"       validate:"required"`
	Images           []string         `json:"images"            validate:"min=1,dive,required"`
	Details          []DetailRequest  `json:"details"           validate:"min=1,dive"`
	Variants         []VariantRequest `json:"variants"          validate:"min=1,dive"`
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
}

type AddCartItemResponse struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
	Outcome   string `json:"outcome"`
}

type RemoveCartItemResponse struct {
	Removed bool `json:"removed"`
}

type UploadResponse struct {
	Files []string `json:"files"`
}
