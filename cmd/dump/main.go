// Dump prints the public state of a deployed OpenQuiz Escrow contract: the
// policy parameters, the signature registry and every contest with its
// finalization state.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/openquiz/escrow-contract/rpc/escrow"
)

// maxItems limits iterator expansion for RPC servers without session support.
const maxItems = 100

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	contractHash := flag.String("contract", "", "Script hash of the escrow contract (LE hex)")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *contractHash == "":
		log.Fatal("missing escrow contract hash")
	}

	h, err := util.Uint160DecodeStringLE(strings.TrimPrefix(*contractHash, "0x"))
	if err != nil {
		log.Fatal(fmt.Errorf("decode contract hash: %w", err))
	}

	err = dump(*neoRPCEndpoint, h)
	if err != nil {
		log.Fatal(err)
	}
}

func dump(neoRPCEndpoint string, h util.Uint160) error {
	c, err := rpcclient.New(context.Background(), neoRPCEndpoint, rpcclient.Options{})
	if err != nil {
		return fmt.Errorf("init RPC client: %w", err)
	}

	defer c.Close()

	err = c.Init()
	if err != nil {
		return fmt.Errorf("init RPC client state: %w", err)
	}

	reader := escrow.NewReader(invoker.New(c, nil), h)

	err = dumpPolicy(reader)
	if err != nil {
		return err
	}

	err = dumpDeposits(reader)
	if err != nil {
		return err
	}

	return dumpContests(reader)
}

func dumpPolicy(reader *escrow.ContractReader) error {
	version, err := reader.Version()
	if err != nil {
		return fmt.Errorf("get version: %w", err)
	}

	owner, err := reader.Owner()
	if err != nil {
		return fmt.Errorf("get owner: %w", err)
	}

	feeReceiver, err := reader.FeeReceiver()
	if err != nil {
		return fmt.Errorf("get fee receiver: %w", err)
	}

	protocolFee, err := reader.ProtocolFee()
	if err != nil {
		return fmt.Errorf("get protocol fee: %w", err)
	}

	fmt.Printf("version: %s\n", version)
	fmt.Printf("owner: %s\n", address.Uint160ToString(owner))
	fmt.Printf("fee receiver: %s\n", address.Uint160ToString(feeReceiver))
	fmt.Printf("protocol fee: %s\n", protocolFee)

	return nil
}

func dumpDeposits(reader *escrow.ContractReader) error {
	items, err := reader.DepositsExpanded(maxItems)
	if err != nil {
		return fmt.Errorf("list deposits: %w", err)
	}

	fmt.Printf("deposits: %d\n", len(items))

	for i := range items {
		pair, ok := items[i].Value().([]stackitem.Item)
		if !ok || len(pair) != 2 {
			return fmt.Errorf("deposit #%d: unexpected iterator element", i)
		}

		key, err := pair[0].TryBytes()
		if err != nil {
			return fmt.Errorf("deposit #%d: decode key: %w", i, err)
		}

		var dep escrow.EscrowDeposit
		err = dep.FromStackItem(pair[1])
		if err != nil {
			return fmt.Errorf("deposit #%d: decode record: %w", i, err)
		}

		fmt.Printf("  %s: net value %s, fee paid %t\n",
			base58.Encode(key), dep.NetValue, dep.FeePaid)
	}

	return nil
}

func dumpContests(reader *escrow.ContractReader) error {
	count, err := reader.ContestCount()
	if err != nil {
		return fmt.Errorf("get contest count: %w", err)
	}

	items, err := reader.ContestsExpanded(maxItems)
	if err != nil {
		return fmt.Errorf("list contests: %w", err)
	}

	fmt.Printf("contests: %s\n", count)

	// Values are returned in key order and ids are sequential from 1, the
	// element index recovers the id.
	for i := range items {
		var cnt escrow.EscrowContest
		err = cnt.FromStackItem(items[i])
		if err != nil {
			return fmt.Errorf("contest #%d: decode record: %w", i+1, err)
		}

		state := "open"
		if cnt.Finished {
			state = "finished"
		}

		fmt.Printf("  %d: signer %s, %d ranks, %s\n",
			i+1, address.Uint160ToString(cnt.Signer), len(cnt.Ranks), state)
	}

	return nil
}
