// Package nep17token is a deliberately minimal NEP-17 token used by escrow
// tests to exercise prize asset pulls and pushes. Mint is unrestricted, do
// not deploy outside of tests.
package nep17token

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	symbol   = "QZT"
	decimals = 8

	supplyKey = "supply"
)

func Symbol() string {
	return symbol
}

func Decimals() int {
	return decimals
}

func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return getInt(ctx, supplyKey)
}

func BalanceOf(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return getInt(ctx, account)
}

// Mint creates the amount of tokens on the account out of thin air.
func Mint(to interop.Hash160, amount int) {
	if amount <= 0 {
		panic("amount must be positive")
	}

	ctx := storage.GetContext()
	storage.Put(ctx, to, getInt(ctx, to)+amount)
	storage.Put(ctx, supplyKey, getInt(ctx, supplyKey)+amount)
	runtime.Notify("Transfer", interop.Hash160(nil), to, amount)
}

// Transfer is a NEP-17 standard method. It can be invoked by the account
// owner or by a contract moving its own funds.
func Transfer(from, to interop.Hash160, amount int, data any) bool {
	if len(from) != interop.Hash160Len || len(to) != interop.Hash160Len {
		panic("invalid account")
	}
	if amount < 0 {
		panic("negative amount")
	}

	if !runtime.CheckWitness(from) && !runtime.GetCallingScriptHash().Equals(from) {
		return false
	}

	ctx := storage.GetContext()
	fromBalance := getInt(ctx, from)
	if fromBalance < amount {
		return false
	}

	if fromBalance == amount {
		storage.Delete(ctx, from)
	} else {
		storage.Put(ctx, from, fromBalance-amount)
	}
	storage.Put(ctx, to, getInt(ctx, to)+amount)

	runtime.Notify("Transfer", from, to, amount)

	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP17Payment", contract.All, from, amount, data)
	}

	return true
}

func getInt(ctx storage.Context, key any) int {
	val := storage.Get(ctx, key)
	if val == nil {
		return 0
	}
	return val.(int)
}
