package api

import (
	"github.com/nikmy/sift/internal/users"
)

type usersApi interface {
	users.API
}
