// Package field implements the BN254 scalar-field primitives shared by every
// other package: byte/string-to-field reduction and the Poseidon hash family
// used for leaves, internal Merkle nodes, and methodology commitments.
package field

import (
	"crypto/sha256"
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/poseidon2"
)

// ScalarField is the BN254 scalar field modulus p.
func ScalarField() *big.Int {
	return fr.Modulus()
}

// ToField reduces an arbitrary input into [0, p). Accepted inputs: *big.Int,
// int/int64/uint64, a decimal string, a "0x…" hex string, or a raw byte
// string. Strings that parse as neither decimal nor hex are first SHA-256
// hashed and then reduced via SHA256Field. Any other type is a programmer
// error: toField never silently coerces.
func ToField(x any) *big.Int {
	switch v := x.(type) {
	case *big.Int:
		return reduce(v)
	case int:
		return reduce(big.NewInt(int64(v)))
	case int64:
		return reduce(big.NewInt(v))
	case uint64:
		return reduce(new(big.Int).SetUint64(v))
	case []byte:
		return SHA256Field(v)
	case string:
		return stringToField(v)
	default:
		panic(fmt.Sprintf("field.ToField: unsupported input type %T", x))
	}
}

func stringToField(s string) *big.Int {
	if n, ok := new(big.Int).SetString(s, 10); ok {
		return reduce(n)
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		hexStr := s[2:]
		if n, ok := new(big.Int).SetString(hexStr, 16); ok && hexStr != "" {
			return reduce(n)
		}
	}
	return SHA256Field([]byte(s))
}

func reduce(n *big.Int) *big.Int {
	return new(big.Int).Mod(n, ScalarField())
}

// SHA256Field hashes data with SHA-256 and truncates to the first 31 bytes
// (never the full 32) before interpreting the result big-endian. Truncating
// instead of reducing the full digest guarantees the value is already below
// p with no modular bias, and keeps this host-side derivation identical to
// the in-circuit one.
func SHA256Field(data []byte) *big.Int {
	sum := sha256.Sum256(data)
	return new(big.Int).SetBytes(sum[:31])
}

// Poseidon hashes 1 to 5 field elements with the BN254 Poseidon2 Merkle-
// Damgard construction. The implementation must match the in-circuit
// arithmetisation exactly, since witnesses computed here are checked against
// the external prover's constraint system.
func Poseidon(inputs ...*big.Int) *big.Int {
	if len(inputs) < 1 || len(inputs) > 5 {
		panic(fmt.Sprintf("field.Poseidon: arity %d out of range [1,5]", len(inputs)))
	}
	h := poseidon2.NewMerkleDamgardHasher()
	for _, in := range inputs {
		var e fr.Element
		e.SetBigInt(in)
		b := e.Bytes()
		h.Write(b[:])
	}
	return new(big.Int).SetBytes(h.Sum(nil))
}
