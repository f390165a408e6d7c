package postgres

import (
	"errors"

	"github.com/yoockh/folio/internal/utils"
	"gorm.io/gorm"
)

// translate maps gorm errors onto the repository sentinels.
// The connection must be opened with gorm.Config{TranslateError: true}.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return utils.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return utils.ErrConflict
	default:
		return err
	}
}
