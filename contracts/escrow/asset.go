package escrow

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/openquiz/escrow-contract/contracts/escrow/escrowconst"
)

// isNative reports whether the asset is the native prize currency (GAS).
func isNative(asset interop.Hash160) bool {
	return asset.Equals(gas.Hash)
}

// pullAsset transfers the amount of a NEP-17 asset from the account into
// contract custody. The asset contract requires the account's witness on
// the carrier transaction. Native prize value is never pulled here: it is
// already in custody from the deposit that authorized the contest.
func pullAsset(from interop.Hash160, asset interop.Hash160, amount int) {
	if amount == 0 {
		return
	}

	me := runtime.GetExecutingScriptHash()
	transferred := contract.Call(asset, "transfer", contract.All, from, me, amount, nil).(bool)
	if !transferred {
		panic(escrowconst.ErrTransferFailed)
	}
}

// pushAsset transfers the amount of an asset from contract custody to the
// account. There are no retries: a rejected transfer panics and the caller
// decides what the fault means.
func pushAsset(to interop.Hash160, asset interop.Hash160, amount int) {
	if amount == 0 {
		return
	}

	me := runtime.GetExecutingScriptHash()

	var transferred bool
	if isNative(asset) {
		transferred = gas.Transfer(me, to, amount, nil)
	} else {
		transferred = contract.Call(asset, "transfer", contract.All, me, to, amount, nil).(bool)
	}

	if !transferred {
		panic(escrowconst.ErrTransferFailed)
	}
}

// custodyBalance returns the contract's balance of the asset.
func custodyBalance(asset interop.Hash160) int {
	me := runtime.GetExecutingScriptHash()
	if isNative(asset) {
		return gas.BalanceOf(me)
	}
	return contract.Call(asset, "balanceOf", contract.ReadOnly, me).(int)
}
