package payload

import "github.com/vasapolrittideah/loginflow/services/profile-service/internal/model"

type GetProfileResponse struct {
	Profile *model.Profile `json:"profile"`
}

type CreateProfileResponse struct {
	User CreateProfileUser `json:"user"`
}

type CreateProfileUser struct {
	Profile *model.Profile `json:"profile"`
}
