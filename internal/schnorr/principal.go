package schnorr

import (
	"encoding/base32"
	"encoding/binary"
	"hash/crc32"
	"strings"

	"github.com/pkg/errors"
)

// Principal is the opaque identifier a derivation is scoped by. The textual
// representation is the dashed lowercase base32 of CRC32(raw) || raw.
type Principal []byte

// maxPrincipalLength bounds the raw principal, matching the upstream format.
const maxPrincipalLength = 29

var principalEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// PrincipalFromText parses the textual representation and verifies its checksum.
func PrincipalFromText(s string) (Principal, error) {
	compact := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "")
	raw, err := principalEncoding.DecodeString(compact)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode principal text")
	}

	if len(raw) < 4 {
		return nil, errors.New("principal text too short")
	}

	sum := binary.BigEndian.Uint32(raw[:4])
	body := raw[4:]
	if len(body) > maxPrincipalLength {
		return nil, errors.Errorf("principal exceeds %d bytes", maxPrincipalLength)
	}
	if crc32.ChecksumIEEE(body) != sum {
		return nil, errors.New("principal checksum mismatch")
	}

	return Principal(body), nil
}

// String renders the dashed lowercase textual representation.
func (p Principal) String() string {
	buf := make([]byte, 4, 4+len(p))
	binary.BigEndian.PutUint32(buf, crc32.ChecksumIEEE(p))
	buf = append(buf, p...)

	enc := strings.ToLower(principalEncoding.EncodeToString(buf))

	var b strings.Builder
	for i, r := range enc {
		if i > 0 && i%5 == 0 {
			b.WriteByte('-')
		}
		b.WriteRune(r)
	}
	return b.String()
}
