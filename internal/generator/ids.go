package generator

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Nebulazer123/moneymap/internal/utils"
)

// Phase is the single-character pipeline-stage marker embedded in every
// transaction identifier.
type Phase byte

const (
	PhaseRecurring    Phase = 'r'
	PhaseSubscription Phase = 's'
	PhaseIncome       Phase = 'i'
	PhaseVariable     Phase = 'v'
	PhaseTransfer     Phase = 't'
	PhaseFee          Phase = 'f'
	PhaseAnomaly      Phase = 'a'
)

// epochYear anchors the epoch-month counter. Earlier dates have no distinct
// encoding, so Generate rejects ranges that start before it.
const epochYear = 2020

// MakeID derives a compact transaction identifier from (profile seed,
// calendar month, pipeline phase, sequence number). The layout is
//
//	pppp-mmXnnn
//
// where pppp is a 4-char base-36 prefix of the hashed profile seed, mm the
// base-36 epoch month (months since Jan 2020), X the phase tag, and nnn the
// zero-padded base-36 sequence unique within (profile, month, phase).
// Identical inputs always produce the identical string; distinct
// (month, phase, sequence) triples for one profile never collide.
func MakeID(profileSeed string, date time.Time, phase Phase, seq int) string {
	prefix := base36Fixed(uint64(utils.HashSeed(profileSeed)), 4)
	epochMonth := (date.Year()-epochYear)*12 + int(date.Month()) - 1
	if epochMonth < 0 {
		epochMonth = 0
	}
	return fmt.Sprintf("%s-%s%c%s",
		prefix,
		base36Fixed(uint64(epochMonth), 2),
		phase,
		base36Fixed(uint64(seq), 3),
	)
}

// Fingerprint derives a short stable key from (merchant, rounded amount,
// day-of-month), used by the pattern analyzer for lightweight lookups.
func Fingerprint(merchant string, amount float64, day int) string {
	key := fmt.Sprintf("%s|%d|%d", strings.ToLower(merchant), int(math.Round(amount)), day)
	return base36Fixed(uint64(utils.HashSeed(key)), 6)
}

// base36Fixed renders v in base 36, zero-padded or truncated to exactly
// width characters (keeping the low-order digits on truncation).
func base36Fixed(v uint64, width int) string {
	s := strconv.FormatUint(v, 36)
	if len(s) > width {
		return s[len(s)-width:]
	}
	for len(s) < width {
		s = "0" + s
	}
	return s
}
