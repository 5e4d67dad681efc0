package models

// User is the identity provider's view of an account.
type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

// Session is an authenticated session issued by the identity provider.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

// Profile is what the profile view shows for a signed in user.
type Profile struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	ZipCode     string `json:"zip_code,omitempty"`
}

// Profile reads the display fields out of the metadata. Sign-up flows have
// written both camelCase and snake_case keys, camelCase wins.
func (u User) Profile() Profile {
	return Profile{
		FirstName:   u.meta("firstName", "first_name"),
		LastName:    u.meta("lastName", "last_name"),
		Email:       u.Email,
		PhoneNumber: u.meta("phoneNumber", "phone_number"),
		ZipCode:     u.meta("zipCode", "zip_code"),
	}
}

func (u User) meta(keys ...string) string {
	for _, k := range keys {
		if v, ok := u.UserMetadata[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
