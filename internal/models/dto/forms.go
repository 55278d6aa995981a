package dto

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// RegisterForm carries the POST /register form fields.
type RegisterForm struct {
	Username string `validate:"required,min=3,max=64"`
	Password string `validate:"required,min=4,max=72"`
	Role     string `validate:"required,oneof=user admin"`
}

// TokenForm carries the OAuth2 password-grant form fields for POST /token.
type TokenForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// ItemForm carries the POST /items form fields. The file part is read
// separately by the handler.
type ItemForm struct {
	Title   string `validate:"required,max=200"`
	Address string `validate:"required,max=500"`
}

func (f RegisterForm) Validate() error { return validate.Struct(f) }

func (f TokenForm) Validate() error { return validate.Struct(f) }

func (f ItemForm) Validate() error { return validate.Struct(f) }
