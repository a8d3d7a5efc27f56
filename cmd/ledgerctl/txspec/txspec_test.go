package txspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerworks/shelley-ledger/address"
	"github.com/ledgerworks/shelley-ledger/ids"
)

func TestParseAndBuild(t *testing.T) {
	var h ids.ShortID
	h[0] = 7
	addr := address.Address{
		Network: address.Testnet,
		Payment: address.NewKeyHashCredential(h),
		Staking: address.NoStakeReference(),
	}
	encoded, err := addr.Encode()
	require.NoError(t, err)

	var txID ids.ID
	txID[0] = 1
	doc := `
inputs:
  - txid: "` + txID.String() + `"
    index: 0
outputs:
  - address: "` + encoded + `"
    amount: 3000
fee: 1500
ttl: 100
slot: 1
signWith:
  - "0011223344556677889900112233445566778899001122334455667788990011"
`
	req, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, uint64(1500), req.Fee)
	assert.Equal(t, uint64(100), req.TTL)
	require.Len(t, req.Inputs, 1)
	require.Len(t, req.Outputs, 1)

	tx, err := req.Build()
	require.NoError(t, err)
	assert.Len(t, tx.Body.Inputs, 1)
	assert.Len(t, tx.Body.Outputs, 1)
	assert.Equal(t, addr, tx.Body.Outputs[0].Address)
}
