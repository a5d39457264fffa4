/*
Package escrow implements Escrow contract which holds prize pools of quiz
contests.

A contest sponsor deposits GAS attaching the authorization signature blob of
the future contest, the contract deducts the protocol fee and records the
remainder in the signature registry. The contract owner (the only trusted
operator) later creates the contest from an itemized prize matrix: the
contract verifies the sponsor signature over the exact matrix serialization,
checks that the native prize total equals the recorded deposit and pulls
NEP-17 prize assets from the sponsor into custody. Finalization pays every
rank's slots to the corresponding winner and is irreversible; the terminal
flag is persisted before any transfer so a reentrant call cannot produce a
second payout.

Custody sweeps transfer the whole contract balance of an asset to the fee
receiver, including assets committed to unfinished contests. This is a
deliberate trust assumption about the operator, not an oversight.

# Contract notifications

DepositRecorded notification. Produced on every successful sponsor deposit.

	DepositRecorded:
	  - name: from
	    type: Hash160
	  - name: signatureHash
	    type: Hash256
	  - name: amount
	    type: Integer
	  - name: netValue
	    type: Integer
	  - name: txHash
	    type: Hash256

ContestCreated notification. Produced when the owner creates a contest.

	ContestCreated:
	  - name: id
	    type: Integer
	  - name: signer
	    type: Hash160
	  - name: rankCount
	    type: Integer

ContestEnded notification. Produced when a contest is finalized.

	ContestEnded:
	  - name: id
	    type: Integer
	  - name: signer
	    type: Hash160
	  - name: winners
	    type: Array
	  - name: winnerCount
	    type: Integer

FeeReceiverUpdated notification.

	FeeReceiverUpdated:
	  - name: receiver
	    type: Hash160

ProtocolFeeUpdated notification.

	ProtocolFeeUpdated:
	  - name: fee
	    type: Integer

WithdrawalExecuted notification. Produced on custody sweeps.

	WithdrawalExecuted:
	  - name: asset
	    type: Hash160
	  - name: receiver
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package escrow

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'contractOwner' -> interop.Hash160
   script hash of the contract owner (the trusted operator)
 - 'feeReceiver' -> interop.Hash160
   script hash of the protocol fee receiver
 - 'protocolFee' -> int
   fee deducted from every deposit
 - 'contestCounter' -> int
   id of the most recently created contest, ids start from 1
 - 'd' + SHA-256(signature blob) -> std.Serialize(Deposit)
   signature registry records (Deposit is a structure defined in current package)
 - 'x' + id -> std.Serialize(Contest)
   contests (Contest is a structure defined in current package)

# Registry
Deposit records are keyed by the SHA-256 hash of the authorization signature
blob since raw blobs exceed the storage key size limit. Records are never
removed; a repeated deposit with the same blob overwrites the previous
record.
*/
