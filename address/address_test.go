package address

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerworks/shelley-ledger/ids"
)

func TestAddressRoundTripKeyHashNoStake(t *testing.T) {
	a := Address{
		Network: Mainnet,
		Payment: NewKeyHashCredential(ids.ShortID{1, 2, 3}),
		Staking: NoStakeReference(),
	}
	s, err := a.Encode()
	require.NoError(t, err)

	got, err := Decode(s)
	require.NoError(t, err)
	require.Equal(t, a, got)
}

func TestAddressRoundTripScriptHashBaseStake(t *testing.T) {
	a := Address{
		Network: Testnet,
		Payment: NewScriptHashCredential(ids.ShortID{9}),
		Staking: BaseStakeReference(NewKeyHashCredential(ids.ShortID{5})),
	}
	s, err := a.Encode()
	require.NoError(t, err)

	got, err := Decode(s)
	require.NoError(t, err)
	require.Equal(t, a, got)
}

func TestAddressRoundTripPointerStake(t *testing.T) {
	a := Address{
		Network: Mainnet,
		Payment: NewKeyHashCredential(ids.ShortID{1}),
		Staking: PointerStakeReference(Pointer{Slot: 123456, TxIndex: 2, CertIndex: 0}),
	}
	s, err := a.Encode()
	require.NoError(t, err)

	got, err := Decode(s)
	require.NoError(t, err)
	require.Equal(t, a, got)
}

func TestDecodeUnknownNetwork(t *testing.T) {
	_, err := Decode("bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq")
	require.Error(t, err)
}
