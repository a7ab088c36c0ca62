package services

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/inkwell/internal/common"
)

// AuthorizeOwner permits a mutation when the verified subject is the owner of
// the resource. There is no delegation and there are no elevated roles: the
// check is pure equality, applied to every edit and delete.
func AuthorizeOwner(subjectID, ownerID string) error {
	if subjectID == "" || ownerID == "" {
		return common.ErrorForbidden
	}
	if subtle.ConstantTimeCompare([]byte(subjectID), []byte(ownerID)) != 1 {
		return common.ErrorForbidden
	}
	return nil
}
