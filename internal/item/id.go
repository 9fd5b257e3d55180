package item

import (
	"github.com/google/uuid"
)

const (
	shortIDLength = 12
	crockfordBase = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
)

// ShortID derives the 12-char Crockford base32 display id from the random bits
// of a UUIDv7. Ids that are not UUIDv7 are returned unchanged.
func ShortID(id string) string {
	parsed, err := uuid.Parse(id)
	if err != nil || parsed.Version() != 7 || parsed.Variant() != uuid.RFC4122 {
		return id
	}

	// UUIDv7 layout (RFC 9562): 48-bit time, 4-bit version, 12-bit rand_a,
	// 2-bit variant, 62-bit rand_b. The high 60 random bits become the short id.
	randA := (uint16(parsed[6]&0x0f) << 8) | uint16(parsed[7])
	randB := (uint64(parsed[8]&0x3f) << 56) |
		(uint64(parsed[9]) << 48) |
		(uint64(parsed[10]) << 40) |
		(uint64(parsed[11]) << 32) |
		(uint64(parsed[12]) << 24) |
		(uint64(parsed[13]) << 16) |
		(uint64(parsed[14]) << 8) |
		uint64(parsed[15])

	top60 := (uint64(randA) << 48) | (randB >> 14)

	return encodeCrockfordBase32(top60)
}

func encodeCrockfordBase32(value uint64) string {
	var buf [shortIDLength]byte
	for i := shortIDLength - 1; i >= 0; i-- {
		buf[i] = crockfordBase[value&0x1f]
		value >>= 5
	}

	return string(buf[:])
}
