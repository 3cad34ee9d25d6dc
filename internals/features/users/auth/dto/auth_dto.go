package dto

import "time"

type RegisterDTO struct {
	FirstName       string     `json:"first_name" validate:"required,max=60"`
	MiddleName      *string    `json:"middle_name" validate:"omitempty,max=60"`
	LastName        string     `json:"last_name" validate:"required,max=60"`
	Email           string     `json:"email" validate:"required,email"`
	Password        string     `json:"password" validate:"required,min=6,max=72"`
	AdmissionNumber string     `json:"admission_number" validate:"required,max=20"`
	CourseID        string     `json:"course_id" validate:"required,uuid"`
	LevelID         string     `json:"level_id" validate:"required,uuid"`
	PhoneNumber     *string    `json:"phone_number" validate:"omitempty,max=20"`
	Address         *string    `json:"address" validate:"omitempty,max=300"`
	DateOfBirth     *time.Time `json:"date_of_birth" validate:"omitempty"`
	Gender          *string    `json:"gender" validate:"omitempty,oneof=male female other"`
	TermsAccepted   bool       `json:"terms_accepted" validate:"required,eq=true"`
}

// Identifier is an email, an admission number or a staff account id.
type LoginDTO struct {
	Identifier string `json:"identifier" validate:"required,max=120"`
	Password   string `json:"password" validate:"required"`
}

type GoogleLoginDTO struct {
	IDToken string `json:"id_token" validate:"required"`
}

type ForgotPasswordDTO struct {
	Email      string `json:"email" validate:"required,email"`
	Identifier string `json:"identifier" validate:"required,max=120"`
}

type ResetPasswordDTO struct {
	UserID      string `json:"user_id" validate:"required,uuid"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
	ResetCode   string `json:"reset_code" validate:"omitempty,len=8"`
}

type UpdatePasswordDTO struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=72"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      any       `json:"user"`
}
