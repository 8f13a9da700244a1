package service

import (
	"database/sql"
	"errors"

	repository "github.com/aaravmahajanofficial/furniture-storefront/internal/repositories"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, repository.ErrNotFound)
}
