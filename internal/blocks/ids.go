package blocks

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	idClock  = time.Now
	idSuffix = func() string {
		return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	}
)

// GenerateID returns "{type}-{base36 unix millis}-{8 random hex}".
// Uniqueness is probabilistic; page operations check for collisions.
func GenerateID(t Type) string {
	return string(t) + "-" + strconv.FormatInt(idClock().UnixMilli(), 36) + "-" + idSuffix()
}
