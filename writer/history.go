package writer

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/google/uuid"

	"github.com/andreivcodes/allure-go/types"
)

// GenerateUUID returns a new random uuid string for results, containers,
// and attachment filenames.
func GenerateUUID() string {
	return uuid.NewString()
}

// ComputeHistoryID derives the stable cross-run identity of a test: an MD5
// hex digest over the full name and every non-excluded parameter's name and
// value, in order. Equal (fullName, included parameters) always yields the
// same 32-character id.
func ComputeHistoryID(fullName string, parameters []types.Parameter) string {
	h := md5.New()
	h.Write([]byte(fullName))
	for _, p := range parameters {
		if p.Excluded {
			continue
		}
		h.Write([]byte(p.Name))
		h.Write([]byte(p.Value))
	}
	return hex.EncodeToString(h.Sum(nil))
}
