package escrow

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/openquiz/escrow-contract/contracts/escrow/escrowconst"
)

// signaturePrefix separates contest authorization signatures from any other
// message the sponsor key may sign.
var signaturePrefix = []byte("openquiz.escrow.v1")

// canonicalPayload serializes the prize matrix into the exact byte sequence
// the sponsor signs off-chain: the domain prefix followed, rank by rank and
// slot by slot, by the asset script hash and the amount in VM integer
// encoding. Slot order is load-bearing, a permuted matrix produces a
// different payload and cannot reuse the original signature.
func canonicalPayload(prizes [][]PrizeSlot) []byte {
	payload := []byte{}
	payload = append(payload, signaturePrefix...)
	for i := 0; i < len(prizes); i++ {
		rank := prizes[i]
		for j := 0; j < len(rank); j++ {
			slot := rank[j]
			payload = append(payload, slot.Asset...)
			payload = append(payload, convert.ToBytes(slot.Amount)...)
		}
	}
	return payload
}

// recoverSigner returns the account that authorized the given payload. The
// signature blob is a compressed secp256r1 public key followed by a 64-byte
// signature over the payload hash. Panics with ErrInvalidSignature if the
// blob is malformed or the signature does not match the payload; whether
// the recovered account is the expected one is the caller's check.
func recoverSigner(payload []byte, signature []byte) interop.Hash160 {
	if len(signature) != escrowconst.SignatureBlobLen {
		panic(escrowconst.ErrInvalidSignature)
	}

	pub := interop.PublicKey(signature[:interop.PublicKeyCompressedLen])
	sig := interop.Signature(signature[interop.PublicKeyCompressedLen:])

	if !crypto.VerifyWithECDsa(payload, pub, sig, crypto.Secp256r1) {
		panic(escrowconst.ErrInvalidSignature)
	}

	return contract.CreateStandardAccount(pub)
}
