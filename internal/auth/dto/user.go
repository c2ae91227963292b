package dto

// AuthResponse is returned by register, login and refresh. Refresh leaves
// Name and Email empty.
type AuthResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
}

type ChangePasswordInput struct {
	Password       string `json:"password"`
	RepeatPassword string `json:"repeatPassword"`
}

type MailBody struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}
