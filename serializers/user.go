package serializers

import "github.com/siay72/SnapBook/models"

// ProfileResponse is the serialized form of a user profile. Email is exposed
// but read-only; mutation requests never bind it.
type ProfileResponse struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Location    string `json:"location"`
	PhoneNumber string `json:"phone_number"`
}

// SerializeProfile converts a user to its profile response form.
func SerializeProfile(u *models.User) ProfileResponse {
	return ProfileResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Location:    u.Location,
		PhoneNumber: u.PhoneNumber,
	}
}
