package mapper

import (
	"github.com/avolkov/scribe/internal/common/dto"
	userdomain "github.com/avolkov/scribe/internal/user/domain"
)

func UserToDTO(user userdomain.Public) dto.User {
	return dto.User{
		ID:        string(user.ID),
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
