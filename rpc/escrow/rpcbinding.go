// Package escrow contains RPC wrappers for OpenQuiz Escrow contract.
package escrow

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
)

// EscrowPrizeSlot is a contract-specific escrow.PrizeSlot type used by its methods.
type EscrowPrizeSlot struct {
	Asset util.Uint160
	Amount *big.Int
}

// EscrowContest is a contract-specific escrow.Contest type used by its methods.
type EscrowContest struct {
	Signer util.Uint160
	Ranks [][]*EscrowPrizeSlot
	Finished bool
}

// EscrowDeposit is a contract-specific escrow.Deposit type used by its methods.
type EscrowDeposit struct {
	NetValue *big.Int
	FeePaid bool
}

// DepositRecordedEvent represents "DepositRecorded" event emitted by the contract.
type DepositRecordedEvent struct {
	From util.Uint160
	SignatureHash util.Uint256
	Amount *big.Int
	NetValue *big.Int
	TxHash util.Uint256
}

// ContestCreatedEvent represents "ContestCreated" event emitted by the contract.
type ContestCreatedEvent struct {
	ID *big.Int
	Signer util.Uint160
	RankCount *big.Int
}

// ContestEndedEvent represents "ContestEnded" event emitted by the contract.
type ContestEndedEvent struct {
	ID *big.Int
	Signer util.Uint160
	Winners []util.Uint160
	WinnerCount *big.Int
}

// FeeReceiverUpdatedEvent represents "FeeReceiverUpdated" event emitted by the contract.
type FeeReceiverUpdatedEvent struct {
	Receiver util.Uint160
}

// ProtocolFeeUpdatedEvent represents "ProtocolFeeUpdated" event emitted by the contract.
type ProtocolFeeUpdatedEvent struct {
	Fee *big.Int
}

// WithdrawalExecutedEvent represents "WithdrawalExecuted" event emitted by the contract.
type WithdrawalExecutedEvent struct {
	Asset util.Uint160
	Receiver util.Uint160
	Amount *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// ContestCount invokes `contestCount` method of contract.
func (c *ContractReader) ContestCount() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "contestCount"))
}

// Contests invokes `contests` method of contract.
func (c *ContractReader) Contests() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "contests"))
}

// ContestsExpanded is similar to Contests (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) ContestsExpanded(_numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "contests", _numOfIteratorItems))
}

// Deposits invokes `deposits` method of contract.
func (c *ContractReader) Deposits() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "deposits"))
}

// DepositsExpanded is similar to Deposits (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) DepositsExpanded(_numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "deposits", _numOfIteratorItems))
}

// FeeReceiver invokes `feeReceiver` method of contract.
func (c *ContractReader) FeeReceiver() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "feeReceiver"))
}

// GetContest invokes `getContest` method of contract.
func (c *ContractReader) GetContest(id *big.Int) (*EscrowContest, error) {
	return itemToEscrowContest(unwrap.Item(c.invoker.Call(c.hash, "getContest", id)))
}

// IsFeePaid invokes `isFeePaid` method of contract.
func (c *ContractReader) IsFeePaid(signature []byte) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isFeePaid", signature))
}

// NetValueOf invokes `netValueOf` method of contract.
func (c *ContractReader) NetValueOf(signature []byte) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "netValueOf", signature))
}

// Owner invokes `owner` method of contract.
func (c *ContractReader) Owner() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "owner"))
}

// ProtocolFee invokes `protocolFee` method of contract.
func (c *ContractReader) ProtocolFee() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "protocolFee"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// CreateContest creates a transaction invoking `createContest` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CreateContest(signature []byte, prizes []any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "createContest", signature, prizes)
}

// CreateContestTransaction creates a transaction invoking `createContest` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CreateContestTransaction(signature []byte, prizes []any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "createContest", signature, prizes)
}

// CreateContestUnsigned creates a transaction invoking `createContest` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CreateContestUnsigned(signature []byte, prizes []any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "createContest", nil, signature, prizes)
}

// EndContest creates a transaction invoking `endContest` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) EndContest(id *big.Int, winners []util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "endContest", id, winners)
}

// EndContestTransaction creates a transaction invoking `endContest` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) EndContestTransaction(id *big.Int, winners []util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "endContest", id, winners)
}

// EndContestUnsigned creates a transaction invoking `endContest` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) EndContestUnsigned(id *big.Int, winners []util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "endContest", nil, id, winners)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// UpdateFeeReceiver creates a transaction invoking `updateFeeReceiver` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) UpdateFeeReceiver(addr util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "updateFeeReceiver", addr)
}

// UpdateFeeReceiverTransaction creates a transaction invoking `updateFeeReceiver` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateFeeReceiverTransaction(addr util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "updateFeeReceiver", addr)
}

// UpdateFeeReceiverUnsigned creates a transaction invoking `updateFeeReceiver` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateFeeReceiverUnsigned(addr util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "updateFeeReceiver", nil, addr)
}

// UpdateProtocolFee creates a transaction invoking `updateProtocolFee` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) UpdateProtocolFee(fee *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "updateProtocolFee", fee)
}

// UpdateProtocolFeeTransaction creates a transaction invoking `updateProtocolFee` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateProtocolFeeTransaction(fee *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "updateProtocolFee", fee)
}

// UpdateProtocolFeeUnsigned creates a transaction invoking `updateProtocolFee` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateProtocolFeeUnsigned(fee *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "updateProtocolFee", nil, fee)
}

// WithdrawNative creates a transaction invoking `withdrawNative` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) WithdrawNative() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "withdrawNative")
}

// WithdrawNativeTransaction creates a transaction invoking `withdrawNative` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) WithdrawNativeTransaction() (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "withdrawNative")
}

// WithdrawNativeUnsigned creates a transaction invoking `withdrawNative` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) WithdrawNativeUnsigned() (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "withdrawNative", nil)
}

// WithdrawToken creates a transaction invoking `withdrawToken` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) WithdrawToken(token util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "withdrawToken", token)
}

// WithdrawTokenTransaction creates a transaction invoking `withdrawToken` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) WithdrawTokenTransaction(token util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "withdrawToken", token)
}

// WithdrawTokenUnsigned creates a transaction invoking `withdrawToken` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) WithdrawTokenUnsigned(token util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "withdrawToken", nil, token)
}

// itemToEscrowPrizeSlot converts stack item into *EscrowPrizeSlot.
func itemToEscrowPrizeSlot(item stackitem.Item, err error) (*EscrowPrizeSlot, error) {
	if err != nil {
		return nil, err
	}
	var res = new(EscrowPrizeSlot)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of EscrowPrizeSlot from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *EscrowPrizeSlot) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Asset, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Asset: %w", err)
	}

	index++
	res.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// itemToEscrowContest converts stack item into *EscrowContest.
func itemToEscrowContest(item stackitem.Item, err error) (*EscrowContest, error) {
	if err != nil {
		return nil, err
	}
	var res = new(EscrowContest)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of EscrowContest from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *EscrowContest) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Signer, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Signer: %w", err)
	}

	index++
	res.Ranks, err = func (item stackitem.Item) ([][]*EscrowPrizeSlot, error) {
		arr, ok := item.Value().([]stackitem.Item)
		if !ok {
			return nil, errors.New("not an array")
		}
		res := make([][]*EscrowPrizeSlot, len(arr))
		for i := range res {
			res[i], err = func (item stackitem.Item) ([]*EscrowPrizeSlot, error) {
				arr, ok := item.Value().([]stackitem.Item)
				if !ok {
					return nil, errors.New("not an array")
				}
				res := make([]*EscrowPrizeSlot, len(arr))
				for i := range res {
					res[i], err = itemToEscrowPrizeSlot(arr[i], nil)
					if err != nil {
						return nil, fmt.Errorf("item %d: %w", i, err)
					}
				}
				return res, nil
			} (arr[i])
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
		}
		return res, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Ranks: %w", err)
	}

	index++
	res.Finished, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Finished: %w", err)
	}

	return nil
}

// itemToEscrowDeposit converts stack item into *EscrowDeposit.
func itemToEscrowDeposit(item stackitem.Item, err error) (*EscrowDeposit, error) {
	if err != nil {
		return nil, err
	}
	var res = new(EscrowDeposit)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of EscrowDeposit from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *EscrowDeposit) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.NetValue, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field NetValue: %w", err)
	}

	index++
	res.FeePaid, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field FeePaid: %w", err)
	}

	return nil
}

// DepositRecordedEventsFromApplicationLog retrieves a set of all emitted events
// with "DepositRecorded" name from the provided [result.ApplicationLog].
func DepositRecordedEventsFromApplicationLog(log *result.ApplicationLog) ([]*DepositRecordedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*DepositRecordedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "DepositRecorded" {
				continue
			}
			event := new(DepositRecordedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize DepositRecordedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to DepositRecordedEvent or
// returns an error if it's not possible to do to so.
func (e *DepositRecordedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.From, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field From: %w", err)
	}

	index++
	e.SignatureHash, err = func (item stackitem.Item) (util.Uint256, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint256{}, err
		}
		u, err := util.Uint256DecodeBytesBE(b)
		if err != nil {
			return util.Uint256{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field SignatureHash: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	index++
	e.NetValue, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field NetValue: %w", err)
	}

	index++
	e.TxHash, err = func (item stackitem.Item) (util.Uint256, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint256{}, err
		}
		u, err := util.Uint256DecodeBytesBE(b)
		if err != nil {
			return util.Uint256{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field TxHash: %w", err)
	}

	return nil
}

// ContestCreatedEventsFromApplicationLog retrieves a set of all emitted events
// with "ContestCreated" name from the provided [result.ApplicationLog].
func ContestCreatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ContestCreatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ContestCreatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ContestCreated" {
				continue
			}
			event := new(ContestCreatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ContestCreatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ContestCreatedEvent or
// returns an error if it's not possible to do to so.
func (e *ContestCreatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.ID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	e.Signer, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Signer: %w", err)
	}

	index++
	e.RankCount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field RankCount: %w", err)
	}

	return nil
}

// ContestEndedEventsFromApplicationLog retrieves a set of all emitted events
// with "ContestEnded" name from the provided [result.ApplicationLog].
func ContestEndedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ContestEndedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ContestEndedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ContestEnded" {
				continue
			}
			event := new(ContestEndedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ContestEndedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ContestEndedEvent or
// returns an error if it's not possible to do to so.
func (e *ContestEndedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.ID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	e.Signer, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Signer: %w", err)
	}

	index++
	e.Winners, err = func (item stackitem.Item) ([]util.Uint160, error) {
		arr, ok := item.Value().([]stackitem.Item)
		if !ok {
			return nil, errors.New("not an array")
		}
		res := make([]util.Uint160, len(arr))
		for i := range res {
			res[i], err = func (item stackitem.Item) (util.Uint160, error) {
				b, err := item.TryBytes()
				if err != nil {
					return util.Uint160{}, err
				}
				u, err := util.Uint160DecodeBytesBE(b)
				if err != nil {
					return util.Uint160{}, err
				}
				return u, nil
			} (arr[i])
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
		}
		return res, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Winners: %w", err)
	}

	index++
	e.WinnerCount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field WinnerCount: %w", err)
	}

	return nil
}

// FeeReceiverUpdatedEventsFromApplicationLog retrieves a set of all emitted events
// with "FeeReceiverUpdated" name from the provided [result.ApplicationLog].
func FeeReceiverUpdatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*FeeReceiverUpdatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*FeeReceiverUpdatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "FeeReceiverUpdated" {
				continue
			}
			event := new(FeeReceiverUpdatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize FeeReceiverUpdatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to FeeReceiverUpdatedEvent or
// returns an error if it's not possible to do to so.
func (e *FeeReceiverUpdatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Receiver, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Receiver: %w", err)
	}

	return nil
}

// ProtocolFeeUpdatedEventsFromApplicationLog retrieves a set of all emitted events
// with "ProtocolFeeUpdated" name from the provided [result.ApplicationLog].
func ProtocolFeeUpdatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ProtocolFeeUpdatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ProtocolFeeUpdatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ProtocolFeeUpdated" {
				continue
			}
			event := new(ProtocolFeeUpdatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ProtocolFeeUpdatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ProtocolFeeUpdatedEvent or
// returns an error if it's not possible to do to so.
func (e *ProtocolFeeUpdatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Fee, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Fee: %w", err)
	}

	return nil
}

// WithdrawalExecutedEventsFromApplicationLog retrieves a set of all emitted events
// with "WithdrawalExecuted" name from the provided [result.ApplicationLog].
func WithdrawalExecutedEventsFromApplicationLog(log *result.ApplicationLog) ([]*WithdrawalExecutedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*WithdrawalExecutedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "WithdrawalExecuted" {
				continue
			}
			event := new(WithdrawalExecutedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize WithdrawalExecutedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to WithdrawalExecutedEvent or
// returns an error if it's not possible to do to so.
func (e *WithdrawalExecutedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Asset, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Asset: %w", err)
	}

	index++
	e.Receiver, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Receiver: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}
