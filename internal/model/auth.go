package model

// User is the authenticated account as returned by the auth endpoints.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}

func (u User) GetID() int64 { return u.ID }

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks the credentials are present before they are sent.
func (r LoginRequest) Validate() error {
	var v ValidationError
	v.require("username", r.Username)
	v.require("password", r.Password)
	return v.OrNil()
}

type RegisterRequest struct {
	Username        string `json:"username"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            Role   `json:"role"`
}

func (r RegisterRequest) Validate() error {
	var v ValidationError
	v.require("username", r.Username)
	v.require("email", r.Email)
	v.require("password", r.Password)
	if r.Password != r.ConfirmPassword {
		v.Add("confirmPassword", "паролите не съвпадат")
	}
	return v.OrNil()
}

// AuthResponse is what login and refresh return.
type AuthResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

type UpdateProfile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type ChangePassword struct {
	CurrentPassword     string `json:"currentPassword"`
	NewPassword         string `json:"newPassword"`
	ConfirmPassword     string `json:"confirmPassword"`
	NewPasswordMatching bool   `json:"newPasswordMatching"`
}
