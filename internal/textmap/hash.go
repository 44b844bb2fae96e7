package textmap

import "strconv"

// NoOption is the text hash used by records that carry no text at all. It
// always resolves to the empty string. It equals StableHash("").
const NoOption = "371857150"

// StableHash computes the two-lane djb2 hash the game uses for string keys
// that are not stored under their literal value. Odd and even characters feed
// separate lanes, combined as hash1 + hash2*1566083941 modulo 2^32 and
// returned as a signed 32-bit decimal.
func StableHash(s string) string {
	chars := []rune(s)
	var hash1, hash2 uint32 = 5381, 5381
	for i := 0; i < len(chars); i += 2 {
		hash1 = ((hash1 << 5) + hash1) ^ uint32(chars[i])
		if i+1 < len(chars) {
			hash2 = ((hash2 << 5) + hash2) ^ uint32(chars[i+1])
		}
	}
	combined := hash1 + hash2*1566083941
	return strconv.FormatInt(int64(int32(combined)), 10)
}
