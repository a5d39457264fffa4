package escrow

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/openquiz/escrow-contract/common"
	"github.com/openquiz/escrow-contract/contracts/escrow/escrowconst"
)

type (
	// PrizeSlot is a single prize inside a contest rank: the asset paying
	// it and the amount. Asset is the native GAS hash for native-currency
	// prizes and a NEP-17 contract script hash otherwise.
	PrizeSlot struct {
		Asset  interop.Hash160
		Amount int
	}

	// Contest stores a prize pool authorized by a sponsor signature.
	// Ranks are ordered: the outer index is the winner rank, the inner one
	// is a slot within the rank. A contest is created once, finished once
	// and never removed.
	Contest struct {
		Signer   interop.Hash160
		Ranks    [][]PrizeSlot
		Finished bool
	}

	// Deposit is a signature registry record: the deposited GAS value
	// remaining after the protocol fee deduction.
	Deposit struct {
		NetValue int
		FeePaid  bool
	}
)

const (
	ownerKey          = "contractOwner"
	feeReceiverKey    = "feeReceiver"
	protocolFeeKey    = "protocolFee"
	contestCounterKey = "contestCounter"

	// Record prefixes must not collide with the first byte of any config
	// key above, storage.Find scans by prefix.
	depositKeyPrefix = 'd'
	contestKeyPrefix = 'x'
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()

	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner       interop.Hash160
		feeReceiver interop.Hash160
		protocolFee int
	})

	if len(args.owner) != interop.Hash160Len || len(args.feeReceiver) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}
	if args.protocolFee < 0 {
		panic("negative protocol fee")
	}

	storage.Put(ctx, ownerKey, args.owner)
	storage.Put(ctx, feeReceiverKey, args.feeReceiver)
	storage.Put(ctx, protocolFeeKey, args.protocolFee)
	storage.Put(ctx, contestCounterKey, 0)

	runtime.Log("escrow contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the contract owner.
func Update(script []byte, manifest []byte, data any) {
	ctx := storage.GetReadOnlyContext()
	common.CheckOwnerWitness(contractOwner(ctx))

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("escrow contract updated")
}

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
// GAS transfers are sponsor deposits: the data argument must carry the
// authorization signature blob the sponsor is going to create a contest
// with. The protocol fee is deducted from the transferred amount and the
// remainder is recorded in the signature registry. A repeated deposit with
// the same blob overwrites the previous record.
//
// Transfers of any other NEP-17 token are accepted silently, they carry
// prize assets pulled into custody during contest creation.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(gas.Hash) {
		return
	}

	if amount <= 0 {
		common.AbortWithMessage("amount must be positive")
	}

	sig := data.([]byte)
	if len(sig) == 0 {
		common.AbortWithMessage("missing authorization signature")
	}

	ctx := storage.GetContext()
	fee := storage.Get(ctx, protocolFeeKey).(int)
	if amount < fee {
		panic(escrowconst.ErrInsufficientValue)
	}

	net := amount - fee
	common.SetSerialized(ctx, depositKey(sig), Deposit{
		NetValue: net,
		FeePaid:  true,
	})

	tx := runtime.GetScriptContainer()
	runtime.Notify("DepositRecorded", from, crypto.Sha256(sig), amount, net, tx.Hash)
	runtime.Log("deposit recorded")
}

// IsFeePaid returns true if a deposit has been recorded for the given
// authorization signature blob.
func IsFeePaid(signature []byte) bool {
	ctx := storage.GetReadOnlyContext()
	return getDeposit(ctx, signature).FeePaid
}

// NetValueOf returns the deposited value remaining after the protocol fee
// deduction for the given authorization signature blob. Returns zero for
// unknown blobs.
func NetValueOf(signature []byte) int {
	ctx := storage.GetReadOnlyContext()
	return getDeposit(ctx, signature).NetValue
}

// CreateContest creates a new contest from the prize matrix authorized by
// the sponsor signature. It can be invoked only by the contract owner.
//
// The signature blob must have a deposit recorded and the total of native
// slot amounts must be exactly the recorded net value. Prize slots paid in
// NEP-17 tokens are pulled from the authorizing signer into custody, so the
// signer must have signed the carrier transaction as well. Any failed pull
// fails the whole creation.
//
// Returns the id of the new contest. Ids are sequential starting from 1.
func CreateContest(signature []byte, prizes [][]PrizeSlot) int {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(contractOwner(ctx))

	dep := getDeposit(ctx, signature)
	if !dep.FeePaid {
		panic(escrowconst.ErrFeeNotPaid)
	}

	nativeTotal := 0
	for i := 0; i < len(prizes); i++ {
		rank := prizes[i]
		for j := 0; j < len(rank); j++ {
			slot := rank[j]
			if slot.Amount < 0 {
				panic("negative prize amount")
			}
			if isNative(slot.Asset) {
				nativeTotal += slot.Amount
			}
		}
	}

	if nativeTotal != dep.NetValue {
		panic(escrowconst.ErrInsufficientValue)
	}

	signer := recoverSigner(canonicalPayload(prizes), signature)

	id := storage.Get(ctx, contestCounterKey).(int) + 1
	storage.Put(ctx, contestCounterKey, id)
	common.SetSerialized(ctx, contestKey(id), Contest{
		Signer:   signer,
		Ranks:    prizes,
		Finished: false,
	})

	// A panic in any pull reverts the transaction together with the id
	// allocation and the contest record, creation is atomic.
	for i := 0; i < len(prizes); i++ {
		rank := prizes[i]
		for j := 0; j < len(rank); j++ {
			slot := rank[j]
			if !isNative(slot.Asset) {
				pullAsset(signer, slot.Asset, slot.Amount)
			}
		}
	}

	runtime.Notify("ContestCreated", id, signer, len(prizes))
	runtime.Log("contest created")

	return id
}

// EndContest finalizes a contest distributing its prizes to winners, one
// winner per rank in rank order. It can be invoked only by the contract
// owner. Finalization is irreversible.
//
// The contest is marked finished before any transfer, a reentrant call from
// an asset contract observes the terminal state and cannot trigger a second
// payout. A rejected transfer faults the transaction which also rolls the
// finished flag back, leaving the contest payable again.
func EndContest(id int, winners []interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(contractOwner(ctx))

	data := storage.Get(ctx, contestKey(id))
	if data == nil {
		panic(escrowconst.ErrAlreadyFinished)
	}

	cnt := std.Deserialize(data.([]byte)).(Contest)
	if cnt.Finished {
		panic(escrowconst.ErrAlreadyFinished)
	}

	if len(winners) != len(cnt.Ranks) {
		panic(escrowconst.ErrWinnersMismatch)
	}

	cnt.Finished = true
	common.SetSerialized(ctx, contestKey(id), cnt)

	for i := 0; i < len(cnt.Ranks); i++ {
		winner := winners[i]
		rank := cnt.Ranks[i]
		for j := 0; j < len(rank); j++ {
			slot := rank[j]
			pushAsset(winner, slot.Asset, slot.Amount)
		}
	}

	runtime.Notify("ContestEnded", id, cnt.Signer, winners, len(winners))
	runtime.Log("contest finished")
}

// GetContest returns the stored contest. Returns an empty structure for an
// unknown id.
func GetContest(id int) Contest {
	ctx := storage.GetReadOnlyContext()

	data := storage.Get(ctx, contestKey(id))
	if data == nil {
		return Contest{}
	}
	return std.Deserialize(data.([]byte)).(Contest)
}

// ContestCount returns the id of the most recently created contest, which
// equals the total number of contests ever created.
func ContestCount() int {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, contestCounterKey).(int)
}

// Contests returns an iterator over all stored contests.
func Contests() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{contestKeyPrefix}, storage.ValuesOnly|storage.DeserializeValues)
}

// Deposits returns an iterator over signature registry records. Keys are
// SHA-256 hashes of authorization signature blobs.
func Deposits() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{depositKeyPrefix}, storage.RemovePrefix|storage.DeserializeValues)
}

// UpdateFeeReceiver changes the account receiving protocol fees on custody
// sweeps. It can be invoked only by the contract owner. The new value is
// not validated beyond the script hash length.
func UpdateFeeReceiver(addr interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(contractOwner(ctx))

	if len(addr) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}

	storage.Put(ctx, feeReceiverKey, addr)
	runtime.Notify("FeeReceiverUpdated", addr)
	runtime.Log("fee receiver updated")
}

// UpdateProtocolFee changes the fee deducted from every deposit. It can be
// invoked only by the contract owner.
func UpdateProtocolFee(fee int) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(contractOwner(ctx))

	if fee < 0 {
		panic("negative protocol fee")
	}

	storage.Put(ctx, protocolFeeKey, fee)
	runtime.Notify("ProtocolFeeUpdated", fee)
	runtime.Log("protocol fee updated")
}

// WithdrawNative sweeps the whole GAS custody balance to the fee receiver.
// It can be invoked only by the contract owner. The sweep includes assets
// committed to unfinished contests, committed assets are only safe while
// the operator behaves correctly.
func WithdrawNative() {
	withdraw(interop.Hash160(gas.Hash))
}

// WithdrawToken sweeps the whole custody balance of the given NEP-17 token
// to the fee receiver. It can be invoked only by the contract owner. The
// same trust assumption as for WithdrawNative applies.
func WithdrawToken(token interop.Hash160) {
	if len(token) != interop.Hash160Len {
		panic("incorrect length of token script hash")
	}
	withdraw(token)
}

func withdraw(asset interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(contractOwner(ctx))

	rcv := storage.Get(ctx, feeReceiverKey).(interop.Hash160)
	amount := custodyBalance(asset)
	if amount > 0 {
		pushAsset(rcv, asset, amount)
	}

	runtime.Notify("WithdrawalExecuted", asset, rcv, amount)
	runtime.Log("custody balance swept")
}

// Owner returns the script hash of the contract owner.
func Owner() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return contractOwner(ctx)
}

// FeeReceiver returns the script hash of the protocol fee receiver.
func FeeReceiver() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, feeReceiverKey).(interop.Hash160)
}

// ProtocolFee returns the fee deducted from every deposit.
func ProtocolFee() int {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, protocolFeeKey).(int)
}

// Version returns version of the contract.
func Version() int {
	return common.Version
}

func contractOwner(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, ownerKey).(interop.Hash160)
}

func depositKey(signature []byte) []byte {
	// Raw blobs do not fit the storage key size limit, records are keyed
	// by the blob hash.
	return append([]byte{depositKeyPrefix}, crypto.Sha256(signature)...)
}

func contestKey(id int) []byte {
	return append([]byte{contestKeyPrefix}, convert.ToBytes(id)...)
}

func getDeposit(ctx storage.Context, signature []byte) Deposit {
	data := storage.Get(ctx, depositKey(signature))
	if data == nil {
		return Deposit{}
	}
	return std.Deserialize(data.([]byte)).(Deposit)
}
