package schnorr

import (
	"bytes"
	"crypto/sha512"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeed(label string) []byte {
	// Deterministic 64-byte seed for tests.
	first := sha512.Sum512([]byte(label))
	return first[:]
}

func TestMasterKeyFromSeed(t *testing.T) {
	for _, alg := range Algorithms() {
		t.Run(alg.String(), func(t *testing.T) {
			seed := testSeed("master-" + alg.String())

			scalar, chainCode, err := MasterKeyFromSeed(alg, seed)
			require.NoError(t, err)
			require.NotNil(t, scalar)
			assert.Equal(t, make([]byte, ChainCodeSize), chainCode)

			// Determinism
			scalar2, _, err := MasterKeyFromSeed(alg, seed)
			require.NoError(t, err)
			assert.Zero(t, scalar.Cmp(scalar2))

			// Different seeds give different keys
			other, _, err := MasterKeyFromSeed(alg, testSeed("other-"+alg.String()))
			require.NoError(t, err)
			assert.NotZero(t, scalar.Cmp(other))
		})
	}
}

func TestMasterKeyFromSeedRejectsBadSeed(t *testing.T) {
	_, _, err := MasterKeyFromSeed(AlgorithmEd25519, []byte("too short"))
	assert.Error(t, err)

	_, _, err = MasterKeyFromSeed(Algorithm("dsa"), testSeed("x"))
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestDeriveEmptyPathYieldsRoot(t *testing.T) {
	d := NewDeriver()

	for _, alg := range Algorithms() {
		t.Run(alg.String(), func(t *testing.T) {
			scalar, chainCode, err := MasterKeyFromSeed(alg, testSeed("root-"+alg.String()))
			require.NoError(t, err)

			rootPub, err := PublicKeyFromScalar(alg, scalar)
			require.NoError(t, err)

			res, err := d.DerivePublicKey(alg, rootPub, chainCode, nil)
			require.NoError(t, err)
			assert.Equal(t, rootPub, res.PublicKey)
			assert.Equal(t, chainCode, res.ChainCode)
		})
	}
}

func TestDerivePublicPrivateConsistency(t *testing.T) {
	d := NewDeriver()

	paths := [][][]byte{
		{[]byte{0}},
		{[]byte("account"), []byte("change"), []byte("address")},
		{bytes.Repeat([]byte{0xff}, 33)},
		{{}, []byte("after-empty-segment")},
	}

	for _, alg := range Algorithms() {
		for i, path := range paths {
			scalar, chainCode, err := MasterKeyFromSeed(alg, testSeed("consistency-"+alg.String()))
			require.NoError(t, err)

			rootPub, err := PublicKeyFromScalar(alg, scalar)
			require.NoError(t, err)

			pubRes, err := d.DerivePublicKey(alg, rootPub, chainCode, path)
			require.NoError(t, err, "public derivation failed for %s path %d", alg, i)

			childScalar, childChainCode, err := d.DerivePrivateKey(alg, scalar, chainCode, path)
			require.NoError(t, err, "private derivation failed for %s path %d", alg, i)

			pubFromPriv, err := PublicKeyFromScalar(alg, childScalar)
			require.NoError(t, err)

			assert.Equal(t, pubRes.PublicKey, pubFromPriv, "public/private derivation diverged for %s path %d", alg, i)
			assert.Equal(t, pubRes.ChainCode, childChainCode, "chain codes diverged for %s path %d", alg, i)
			assert.Len(t, pubRes.ChainCode, ChainCodeSize)
		}
	}
}

func TestDerivePublicKeyDeterminism(t *testing.T) {
	d := NewDeriver()
	path := [][]byte{[]byte("a"), []byte("b")}

	for _, alg := range Algorithms() {
		scalar, chainCode, err := MasterKeyFromSeed(alg, testSeed("determinism-"+alg.String()))
		require.NoError(t, err)

		rootPub, err := PublicKeyFromScalar(alg, scalar)
		require.NoError(t, err)

		first, err := d.DerivePublicKey(alg, rootPub, chainCode, path)
		require.NoError(t, err)
		second, err := d.DerivePublicKey(alg, rootPub, chainCode, path)
		require.NoError(t, err)

		assert.Equal(t, first.PublicKey, second.PublicKey)
		assert.Equal(t, first.ChainCode, second.ChainCode)
	}
}

func TestDeriveDistinctSegmentsDistinctKeys(t *testing.T) {
	d := NewDeriver()

	for _, alg := range Algorithms() {
		scalar, chainCode, err := MasterKeyFromSeed(alg, testSeed("distinct-"+alg.String()))
		require.NoError(t, err)

		rootPub, err := PublicKeyFromScalar(alg, scalar)
		require.NoError(t, err)

		left, err := d.DerivePublicKey(alg, rootPub, chainCode, [][]byte{[]byte("left")})
		require.NoError(t, err)
		right, err := d.DerivePublicKey(alg, rootPub, chainCode, [][]byte{[]byte("right")})
		require.NoError(t, err)

		assert.NotEqual(t, left.PublicKey, right.PublicKey)
	}
}

func TestDeriveRejectsBadChainCode(t *testing.T) {
	d := NewDeriver()

	scalar, _, err := MasterKeyFromSeed(AlgorithmEd25519, testSeed("badcc"))
	require.NoError(t, err)
	rootPub, err := PublicKeyFromScalar(AlgorithmEd25519, scalar)
	require.NoError(t, err)

	_, err = d.DerivePublicKey(AlgorithmEd25519, rootPub, []byte{1, 2, 3}, nil)
	assert.ErrorIs(t, err, ErrInvalidDerivationPath)
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		input    string
		expected Algorithm
		wantErr  bool
	}{
		{input: "ed25519", expected: AlgorithmEd25519},
		{input: "bip340secp256k1", expected: AlgorithmBip340Secp256k1},
		{input: "Ed25519", expected: AlgorithmEd25519},
		{input: "secp256k1", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			alg, err := ParseAlgorithm(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, alg)
			}
		})
	}
}

func TestPrincipalTextRoundTrip(t *testing.T) {
	anonymous, err := PrincipalFromText("2vxsx-fae")
	require.NoError(t, err)
	assert.Equal(t, Principal{0x04}, anonymous)
	assert.Equal(t, "2vxsx-fae", anonymous.String())

	p := Principal([]byte{0xab, 0xcd, 0x01, 0x02, 0x03})
	parsed, err := PrincipalFromText(p.String())
	require.NoError(t, err)
	assert.Equal(t, p, parsed)
}

func TestPrincipalFromTextRejectsGarbage(t *testing.T) {
	_, err := PrincipalFromText("not a principal!")
	assert.Error(t, err)

	// Valid base32, wrong checksum.
	_, err = PrincipalFromText("aaaaa-aaa")
	assert.Error(t, err)
}
