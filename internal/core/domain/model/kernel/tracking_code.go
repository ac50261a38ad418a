package kernel

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Tracking code errors. Format and checksum failures are deliberately distinct:
// a malformed string is corrupted input, a checksum mismatch on a well-formed
// string signals tampering or a typo. Callers must never collapse either into
// "not found".
var (
	// ErrTrackingCodeFormat is returned when a string does not match the
	// PD-BBBBBB-YYYY-CC pattern.
	ErrTrackingCodeFormat = errors.New("tracking code format is invalid")

	// ErrTrackingCodeChecksum is returned when the trailing two digits of a
	// well-formed code do not equal the computed checksum.
	ErrTrackingCodeChecksum = errors.New("tracking code checksum mismatch")

	// ErrTrackingCodeIsNotConstructed is returned when validating a zero-value TrackingCode.
	ErrTrackingCodeIsNotConstructed = errs.NewValueIsRequiredError(
		"TrackingCode must be created via GenerateTrackingCode or ParseTrackingCode",
	)
)

// trackingCodePattern matches the canonical formatted code after trimming and
// upper-casing: PD-BBBBBB-YYYY-CC.
var trackingCodePattern = regexp.MustCompile(`^PD-(\d{6})-(\d{4})-(\d{2})$`)

// TrackingCode is the human-shareable, checksum-verified identifier of an
// order, distinct from its internal UUID. A code embeds a 6-digit random body
// (leading zeros allowed), a 4-digit year, and a 2-digit checksum computed as
// the sum of all digits of body and year modulo 100.
//
// TrackingCode is immutable. Generation does not guarantee global uniqueness;
// uniqueness is a persistence invariant and callers must check for collisions
// and retry.
//
// Example:
//
//	code, _ := kernel.GenerateTrackingCode(2025)
//	fmt.Println(code.String()) // e.g. "PD-857933-2025-44"
//
//	parsed, err := kernel.ParseTrackingCode("pd-857933-2025-44")
//	if err != nil {
//	    // ErrTrackingCodeFormat or ErrTrackingCodeChecksum
//	}
type TrackingCode struct {
	body     string
	year     int
	checksum int
	guard    guard.ConstructorGuard
}

// GenerateTrackingCode produces a new code for the given year with a uniformly
// random 6-digit body and a computed checksum. The year must have four digits.
func GenerateTrackingCode(year int) (TrackingCode, error) {
	if year < 1000 || year > 9999 {
		return TrackingCode{}, errs.NewValueIsOutOfRangeError("year", year, 1000, 9999)
	}

	body := fmt.Sprintf("%06d", rand.IntN(1000000))
	return TrackingCode{
		body:     body,
		year:     year,
		checksum: computeChecksum(body, year),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// GenerateTrackingCodeForCurrentYear produces a new code for the current year.
func GenerateTrackingCodeForCurrentYear() TrackingCode {
	code, _ := GenerateTrackingCode(time.Now().Year())
	return code
}

// ParseTrackingCode validates a code received from external input.
// The input is trimmed and upper-cased before matching. It fails with
// ErrTrackingCodeFormat when the string does not match PD-######-####-##, and
// with ErrTrackingCodeChecksum when the trailing digits do not equal the
// checksum recomputed from the body and year.
func ParseTrackingCode(s string) (TrackingCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))

	match := trackingCodePattern.FindStringSubmatch(normalized)
	if match == nil {
		return TrackingCode{}, fmt.Errorf("%w: %q does not match PD-######-####-##", ErrTrackingCodeFormat, s)
	}

	body := match[1]
	year, _ := strconv.Atoi(match[2])
	checksum, _ := strconv.Atoi(match[3])

	if expected := computeChecksum(body, year); checksum != expected {
		return TrackingCode{}, fmt.Errorf("%w: got %02d, expected %02d", ErrTrackingCodeChecksum, checksum, expected)
	}

	return TrackingCode{
		body:     body,
		year:     year,
		checksum: checksum,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// IsValidTrackingCode reports whether a string parses as a valid code.
func IsValidTrackingCode(s string) bool {
	_, err := ParseTrackingCode(s)
	return err == nil
}

// Body returns the 6-digit random body, leading zeros preserved.
func (c TrackingCode) Body() string {
	return c.body
}

// Year returns the 4-digit year the code was issued for.
func (c TrackingCode) Year() int {
	return c.year
}

// Checksum returns the 2-digit checksum value.
func (c TrackingCode) Checksum() int {
	return c.checksum
}

// IsCurrentYear reports whether the code was issued for the current year.
func (c TrackingCode) IsCurrentYear() bool {
	return c.year == time.Now().Year()
}

// String returns the fully formatted code: PD-BBBBBB-YYYY-CC.
func (c TrackingCode) String() string {
	return fmt.Sprintf("PD-%s-%04d-%02d", c.body, c.year, c.checksum)
}

// IsEqual compares two tracking codes by value.
func (c TrackingCode) IsEqual(other TrackingCode) bool {
	return c.body == other.body && c.year == other.year && c.checksum == other.checksum
}

// Validate checks that the code was created through one of the constructors.
func (c TrackingCode) Validate() error {
	return c.guard.Validate(ErrTrackingCodeIsNotConstructed)
}

// computeChecksum sums every digit of the body and the year and reduces the
// sum modulo 100. The checksum detects single-digit typos and corruption; it
// has no cryptographic properties and must not be upgraded silently, since the
// format is a contract for all previously issued codes.
func computeChecksum(body string, year int) int {
	sum := 0
	for _, r := range body {
		sum += int(r - '0')
	}
	for _, r := range strconv.Itoa(year) {
		sum += int(r - '0')
	}
	return sum % 100
}
