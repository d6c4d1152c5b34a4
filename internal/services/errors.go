package services

import (
	"errors"

	"crafterscloset/internal/models"
)

func isNotFound(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}
