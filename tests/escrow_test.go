package tests

import (
	"crypto/sha256"
	"math/big"
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/openquiz/escrow-contract/common"
	"github.com/stretchr/testify/require"
)

const (
	escrowPath = "../contracts/escrow"
	tokenPath  = "../internal/testcontracts/nep17token"

	defaultFee = 2
)

var payloadPrefix = []byte("openquiz.escrow.v1")

type prizeSlot struct {
	asset  util.Uint160
	amount int64
}

type escrowEnv struct {
	e        *neotest.Executor
	contract *neotest.ContractInvoker
	gas      *neotest.ContractInvoker
	hash     util.Uint160
	gasHash  util.Uint160
	feeRcv   util.Uint160
	sponsor  neotest.SingleSigner
}

func deployEscrowContract(t *testing.T, e *neotest.Executor, feeReceiver util.Uint160, fee int64) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, escrowPath, path.Join(escrowPath, "config.yml"))
	e.DeployContract(t, c, []any{e.CommitteeHash, feeReceiver, fee})
	return c.Hash
}

func deployTokenContract(t *testing.T, e *neotest.Executor) *neotest.ContractInvoker {
	c := neotest.CompileFile(t, e.CommitteeHash, tokenPath, path.Join(tokenPath, "config.yml"))
	e.DeployContract(t, c, nil)
	return e.CommitteeInvoker(c.Hash)
}

func newEscrowEnv(t *testing.T, fee int64) *escrowEnv {
	e := newExecutor(t)

	feeRcv := util.Uint160{0xfe, 0xe1}
	h := deployEscrowContract(t, e, feeRcv, fee)

	gasHash, err := e.Chain.GetNativeContractScriptHash(nativenames.Gas)
	require.NoError(t, err)

	sponsor := e.NewAccount(t).(neotest.SingleSigner)

	return &escrowEnv{
		e:        e,
		contract: e.CommitteeInvoker(h),
		gas:      e.CommitteeInvoker(gasHash).WithSigners(sponsor),
		hash:     h,
		gasHash:  gasHash,
		feeRcv:   feeRcv,
		sponsor:  sponsor,
	}
}

func (env *escrowEnv) deposit(t *testing.T, amount int64, sig []byte) {
	env.gas.Invoke(t, true, "transfer", env.sponsor.ScriptHash(), env.hash, amount, sig)
}

// ownerAndSponsor returns the contract invoker carrying both the owner and
// the sponsor witness. Contest creation with token prizes needs both: the
// owner authorizes the call, the sponsor authorizes the pulls.
func (env *escrowEnv) ownerAndSponsor() *neotest.ContractInvoker {
	return env.contract.WithSigners(env.e.Committee, env.sponsor)
}

func (env *escrowEnv) gasBalance(h util.Uint160) int64 {
	return env.e.Chain.GetUtilityTokenBalance(h).Int64()
}

// prizePayload builds the byte sequence the sponsor signs: the domain prefix
// followed by asset script hash and VM-encoded amount of every slot in rank
// and slot order.
func prizePayload(prizes [][]prizeSlot) []byte {
	payload := append([]byte{}, payloadPrefix...)
	for _, rank := range prizes {
		for _, slot := range rank {
			payload = append(payload, slot.asset.BytesBE()...)
			payload = append(payload, bigint.ToBytes(big.NewInt(slot.amount))...)
		}
	}
	return payload
}

func signPrizes(priv *keys.PrivateKey, prizes [][]prizeSlot) []byte {
	sig := priv.Sign(prizePayload(prizes))
	return append(priv.PublicKey().Bytes(), sig...)
}

func prizeArgs(prizes [][]prizeSlot) []any {
	ranks := make([]any, 0, len(prizes))
	for _, rank := range prizes {
		slots := make([]any, 0, len(rank))
		for _, slot := range rank {
			slots = append(slots, []any{slot.asset, slot.amount})
		}
		ranks = append(ranks, slots)
	}
	return ranks
}

func TestEscrow_Deploy(t *testing.T) {
	e := newExecutor(t)
	c := neotest.CompileFile(t, e.CommitteeHash, escrowPath, path.Join(escrowPath, "config.yml"))

	e.DeployContractCheckFAULT(t, c, []any{e.CommitteeHash, util.Uint160{0xfe, 0xe1}, int64(-1)},
		"negative protocol fee")
	e.DeployContractCheckFAULT(t, c, []any{[]byte{1, 2, 3}, util.Uint160{0xfe, 0xe1}, int64(0)},
		"incorrect length of account script hash")

	e.DeployContract(t, c, []any{e.CommitteeHash, util.Uint160{0xfe, 0xe1}, int64(defaultFee)})
}

func TestEscrow_Deposit(t *testing.T) {
	env := newEscrowEnv(t, defaultFee)
	sig := []byte("authorization blob placeholder, content is opaque to deposits")

	env.gas.InvokeFail(t, "insufficient value", "transfer",
		env.sponsor.ScriptHash(), env.hash, int64(1), sig)
	env.gas.InvokeFail(t, "ABORT", "transfer",
		env.sponsor.ScriptHash(), env.hash, int64(0), sig)
	env.gas.InvokeFail(t, "ABORT", "transfer",
		env.sponsor.ScriptHash(), env.hash, int64(11), []byte{})

	env.contract.Invoke(t, false, "isFeePaid", sig)
	env.contract.Invoke(t, 0, "netValueOf", sig)

	txHash := env.gas.Invoke(t, true, "transfer", env.sponsor.ScriptHash(), env.hash, int64(11), sig)
	env.contract.Invoke(t, true, "isFeePaid", sig)
	env.contract.Invoke(t, 9, "netValueOf", sig)
	require.EqualValues(t, 11, env.gasBalance(env.hash))

	// The GAS Transfer notification precedes the deposit one.
	sigHash := sha256.Sum256(sig)
	env.e.CheckTxNotificationEvent(t, txHash, 1, state.NotificationEvent{
		ScriptHash: env.hash,
		Name:       "DepositRecorded",
		Item: stackitem.NewArray([]stackitem.Item{
			stackitem.NewByteArray(env.sponsor.ScriptHash().BytesBE()),
			stackitem.NewByteArray(sigHash[:]),
			stackitem.NewBigInteger(big.NewInt(11)),
			stackitem.NewBigInteger(big.NewInt(9)),
			stackitem.NewByteArray(txHash.BytesBE()),
		}),
	})

	// A deposit of exactly the fee is valid, it buys a zero-value contest.
	feeOnly := []byte("fee-only blob")
	env.deposit(t, defaultFee, feeOnly)
	env.contract.Invoke(t, true, "isFeePaid", feeOnly)
	env.contract.Invoke(t, 0, "netValueOf", feeOnly)

	// A repeated deposit with the same blob overwrites the record.
	env.deposit(t, 22, sig)
	env.contract.Invoke(t, 20, "netValueOf", sig)
	require.EqualValues(t, 11+defaultFee+22, env.gasBalance(env.hash))
}

func TestEscrow_CreateContest(t *testing.T) {
	env := newEscrowEnv(t, defaultFee)
	priv := env.sponsor.Account().PrivateKey()

	prizes := [][]prizeSlot{
		{{env.gasHash, 4}},
		{{env.gasHash, 5}},
	}
	sig := signPrizes(priv, prizes)

	env.contract.InvokeFail(t, "fee not paid", "createContest", sig, prizeArgs(prizes))

	env.deposit(t, 11, sig)

	env.contract.WithSigners(env.sponsor).InvokeFail(t, "owner witness check failed",
		"createContest", sig, prizeArgs(prizes))

	// The signature covers the exact slot order, a permuted matrix with the
	// same native total cannot reuse it.
	permuted := [][]prizeSlot{
		{{env.gasHash, 5}},
		{{env.gasHash, 4}},
	}
	env.contract.InvokeFail(t, "invalid signature", "createContest", sig, prizeArgs(permuted))

	malformed := []byte("short blob")
	env.deposit(t, 11, malformed)
	env.contract.InvokeFail(t, "invalid signature", "createContest", malformed, prizeArgs(prizes))

	env.contract.Invoke(t, 1, "createContest", sig, prizeArgs(prizes))
	env.contract.Invoke(t, 1, "contestCount")

	s, err := env.contract.TestInvoke(t, "getContest", 1)
	require.NoError(t, err)
	cnt := s.Pop().Value().([]stackitem.Item)
	require.Len(t, cnt, 3)
	signer, err := cnt[0].TryBytes()
	require.NoError(t, err)
	require.Equal(t, env.sponsor.ScriptHash().BytesBE(), signer)
	require.Len(t, cnt[1].Value().([]stackitem.Item), 2)
	finished, err := cnt[2].TryBool()
	require.NoError(t, err)
	require.False(t, finished)

	// Unknown ids read back as an empty structure.
	s, err = env.contract.TestInvoke(t, "getContest", 42)
	require.NoError(t, err)
	cnt = s.Pop().Value().([]stackitem.Item)
	require.Len(t, cnt, 3)
	// The zero-value rank matrix is a nil slice and reads back as Null.
	require.Equal(t, stackitem.Null{}, cnt[1])
}

func TestEscrow_CreateContestValueMismatch(t *testing.T) {
	env := newEscrowEnv(t, defaultFee)
	priv := env.sponsor.Account().PrivateKey()

	prizes := [][]prizeSlot{
		{{env.gasHash, 4}},
		{{env.gasHash, 5}},
	}
	sig := signPrizes(priv, prizes)

	// Gross 12 records net 10 while the matrix totals 9.
	env.deposit(t, 12, sig)
	env.contract.InvokeFail(t, "insufficient value", "createContest", sig, prizeArgs(prizes))

	negative := [][]prizeSlot{{{env.gasHash, -1}}}
	negSig := signPrizes(priv, negative)
	env.deposit(t, defaultFee, negSig)
	env.contract.InvokeFail(t, "negative prize amount", "createContest", negSig, prizeArgs(negative))
}

func TestEscrow_CreateContestTokenPull(t *testing.T) {
	env := newEscrowEnv(t, defaultFee)
	priv := env.sponsor.Account().PrivateKey()

	token := deployTokenContract(t, env.e)
	token.Invoke(t, stackitem.Null{}, "mint", env.sponsor.ScriptHash(), 100)

	prizes := [][]prizeSlot{
		{{token.Hash, 30}},
		{{env.gasHash, 5}},
	}
	sig := signPrizes(priv, prizes)
	env.deposit(t, 5+defaultFee, sig)

	env.ownerAndSponsor().Invoke(t, 1, "createContest", sig, prizeArgs(prizes))
	token.Invoke(t, 30, "balanceOf", env.hash)
	token.Invoke(t, 70, "balanceOf", env.sponsor.ScriptHash())

	// A pull exceeding the sponsor balance fails the whole creation, the id
	// allocation rolls back with it.
	greedy := [][]prizeSlot{{{token.Hash, 200}}}
	greedySig := signPrizes(priv, greedy)
	env.deposit(t, defaultFee, greedySig)
	env.ownerAndSponsor().InvokeFail(t, "asset transfer failed",
		"createContest", greedySig, prizeArgs(greedy))
	env.contract.Invoke(t, 1, "contestCount")
	token.Invoke(t, 70, "balanceOf", env.sponsor.ScriptHash())
}

func TestEscrow_EndContest(t *testing.T) {
	env := newEscrowEnv(t, defaultFee)
	priv := env.sponsor.Account().PrivateKey()

	token := deployTokenContract(t, env.e)
	token.Invoke(t, stackitem.Null{}, "mint", env.sponsor.ScriptHash(), 50)

	prizes := [][]prizeSlot{
		{{env.gasHash, 5}, {token.Hash, 10}},
		{{env.gasHash, 3}},
		{{token.Hash, 7}},
	}
	sig := signPrizes(priv, prizes)
	env.deposit(t, 8+defaultFee, sig)
	env.ownerAndSponsor().Invoke(t, 1, "createContest", sig, prizeArgs(prizes))

	w1 := util.Uint160{0x0a, 0x01}
	w2 := util.Uint160{0x0a, 0x02}
	w3 := util.Uint160{0x0a, 0x03}

	env.contract.WithSigners(env.sponsor).InvokeFail(t, "owner witness check failed",
		"endContest", 1, []any{w1, w2, w3})
	env.contract.InvokeFail(t, "winners mismatch", "endContest", 1, []any{w1, w2})
	env.contract.InvokeFail(t, "contest already finished", "endContest", 99, []any{w1, w2, w3})

	env.contract.Invoke(t, stackitem.Null{}, "endContest", 1, []any{w1, w2, w3})

	require.EqualValues(t, 5, env.gasBalance(w1))
	require.EqualValues(t, 3, env.gasBalance(w2))
	require.EqualValues(t, 0, env.gasBalance(w3))
	token.Invoke(t, 10, "balanceOf", w1)
	token.Invoke(t, 7, "balanceOf", w3)
	token.Invoke(t, 0, "balanceOf", env.hash)
	require.EqualValues(t, defaultFee, env.gasBalance(env.hash))

	s, err := env.contract.TestInvoke(t, "getContest", 1)
	require.NoError(t, err)
	cnt := s.Pop().Value().([]stackitem.Item)
	finished, err := cnt[2].TryBool()
	require.NoError(t, err)
	require.True(t, finished)

	env.contract.InvokeFail(t, "contest already finished", "endContest", 1, []any{w1, w2, w3})
}

func TestEscrow_EndContestEmpty(t *testing.T) {
	env := newEscrowEnv(t, defaultFee)
	priv := env.sponsor.Account().PrivateKey()

	var prizes [][]prizeSlot
	sig := signPrizes(priv, prizes)
	env.deposit(t, defaultFee, sig)

	env.contract.Invoke(t, 1, "createContest", sig, []any{})
	env.contract.Invoke(t, stackitem.Null{}, "endContest", 1, []any{})
	env.contract.InvokeFail(t, "contest already finished", "endContest", 1, []any{})
}

func TestEscrow_Iterators(t *testing.T) {
	env := newEscrowEnv(t, defaultFee)
	priv := env.sponsor.Account().PrivateKey()

	prizes := [][]prizeSlot{{{env.gasHash, 4}}}
	sig := signPrizes(priv, prizes)
	env.deposit(t, 4+defaultFee, sig)
	env.deposit(t, 11, []byte("an unrelated blob"))
	env.contract.Invoke(t, 1, "createContest", sig, prizeArgs(prizes))

	s, err := env.contract.TestInvoke(t, "deposits")
	require.NoError(t, err)
	iter := s.Pop().Value().(*storage.Iterator)
	require.Len(t, iteratorToArray(iter), 2)

	s, err = env.contract.TestInvoke(t, "contests")
	require.NoError(t, err)
	iter = s.Pop().Value().(*storage.Iterator)
	require.Len(t, iteratorToArray(iter), 1)
}

func TestEscrow_Policy(t *testing.T) {
	env := newEscrowEnv(t, defaultFee)

	env.contract.Invoke(t, defaultFee, "protocolFee")
	env.contract.Invoke(t, stackitem.NewBuffer(env.feeRcv.BytesBE()), "feeReceiver")

	env.contract.WithSigners(env.sponsor).InvokeFail(t, "owner witness check failed",
		"updateProtocolFee", 5)
	env.contract.InvokeFail(t, "negative protocol fee", "updateProtocolFee", -1)
	env.contract.Invoke(t, stackitem.Null{}, "updateProtocolFee", 5)
	env.contract.Invoke(t, 5, "protocolFee")

	sig := []byte("blob deposited under the raised fee")
	env.deposit(t, 7, sig)
	env.contract.Invoke(t, 2, "netValueOf", sig)

	rcv := util.Uint160{0xfe, 0xe2}
	env.contract.WithSigners(env.sponsor).InvokeFail(t, "owner witness check failed",
		"updateFeeReceiver", rcv)
	env.contract.InvokeFail(t, "incorrect length of account script hash",
		"updateFeeReceiver", []byte{1, 2, 3})
	env.contract.Invoke(t, stackitem.Null{}, "updateFeeReceiver", rcv)
	env.contract.Invoke(t, stackitem.NewBuffer(rcv.BytesBE()), "feeReceiver")
}

func TestEscrow_Withdraw(t *testing.T) {
	env := newEscrowEnv(t, defaultFee)

	env.deposit(t, 11, []byte("some blob"))
	require.EqualValues(t, 11, env.gasBalance(env.hash))

	env.contract.WithSigners(env.sponsor).InvokeFail(t, "owner witness check failed",
		"withdrawNative")
	env.contract.Invoke(t, stackitem.Null{}, "withdrawNative")
	require.EqualValues(t, 0, env.gasBalance(env.hash))
	require.EqualValues(t, 11, env.gasBalance(env.feeRcv))

	token := deployTokenContract(t, env.e)
	token.Invoke(t, stackitem.Null{}, "mint", env.hash, 40)

	env.contract.WithSigners(env.sponsor).InvokeFail(t, "owner witness check failed",
		"withdrawToken", token.Hash)
	env.contract.InvokeFail(t, "incorrect length of token script hash",
		"withdrawToken", []byte{1, 2, 3})
	env.contract.Invoke(t, stackitem.Null{}, "withdrawToken", token.Hash)
	token.Invoke(t, 40, "balanceOf", env.feeRcv)
	token.Invoke(t, 0, "balanceOf", env.hash)
}

func TestEscrow_Basic(t *testing.T) {
	env := newEscrowEnv(t, defaultFee)

	env.contract.Invoke(t, stackitem.NewBuffer(env.e.CommitteeHash.BytesBE()), "owner")
	env.contract.Invoke(t, common.Version, "version")
	env.contract.Invoke(t, 0, "contestCount")

	env.contract.WithSigners(env.sponsor).InvokeFail(t, "owner witness check failed",
		"update", []byte{}, []byte{}, nil)
}
