// Package escrowconst contains public constants of the Escrow contract
// usable from external Go code without neo-go compiler magic.
package escrowconst

const (
	// ErrInsufficientValue is returned when the deposited value does not
	// match the requested one: a deposit smaller than the protocol fee or
	// a prize matrix whose native total differs from the recorded net value.
	ErrInsufficientValue = "insufficient value"
	// ErrAlreadyFinished is returned on finalization of an unknown or
	// already finalized contest.
	ErrAlreadyFinished = "contest already finished"
	// ErrWinnersMismatch is returned when the number of winners differs
	// from the number of contest ranks.
	ErrWinnersMismatch = "winners mismatch"
	// ErrTransferFailed is returned when an underlying asset transfer is
	// rejected by the asset contract.
	ErrTransferFailed = "asset transfer failed"
	// ErrFeeNotPaid is returned on contest creation without a prior
	// recorded deposit.
	ErrFeeNotPaid = "fee not paid"
	// ErrInvalidSignature is returned when the authorization signature
	// blob is malformed or does not match the prize matrix.
	ErrInvalidSignature = "invalid signature"
)

// SignatureBlobLen is the length of an authorization signature blob:
// a compressed secp256r1 public key followed by a 64-byte signature.
const SignatureBlobLen = 33 + 64
