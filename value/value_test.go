package value

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/ledgerworks/shelley-ledger/ids"
)

var sampleAssets = []AssetID{
	{},
	{Policy: ids.ID{1}, Name: "gold"},
	{Policy: ids.ID{2}, Name: "silver"},
}

type assetAmount struct {
	asset  int
	amount int64
}

func genAssetAmount() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, len(sampleAssets)-1),
		gen.Int64Range(-1_000_000, 1_000_000),
	).Map(func(vs []interface{}) assetAmount {
		return assetAmount{asset: vs[0].(int), amount: vs[1].(int64)}
	})
}

func genValue() gopter.Gen {
	return gen.SliceOfN(4, genAssetAmount()).Map(func(pairs []assetAmount) Value {
		v := Zero()
		for _, p := range pairs {
			if p.amount == 0 {
				continue
			}
			id := sampleAssets[p.asset]
			if cur, ok := v[id]; ok {
				cur.Add(cur, big.NewInt(p.amount))
			} else {
				v[id] = big.NewInt(p.amount)
			}
		}
		for id, amt := range v {
			if amt.Sign() == 0 {
				delete(v, id)
			}
		}
		return v
	})
}

// TestValueMonoidLaws property-tests the commutative monoid laws by
// random sampling: associativity, commutativity, and the zero identity.
func TestValueMonoidLaws(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("commutative", prop.ForAll(
		func(a, b Value) bool {
			return a.Add(b).Eq(b.Add(a))
		},
		genValue(), genValue(),
	))

	properties.Property("associative", prop.ForAll(
		func(a, b, c Value) bool {
			return a.Add(b).Add(c).Eq(a.Add(b.Add(c)))
		},
		genValue(), genValue(), genValue(),
	))

	properties.Property("zero is identity", prop.ForAll(
		func(a Value) bool {
			return a.Add(Zero()).Eq(a)
		},
		genValue(),
	))

	properties.Property("add then negate round-trips to zero", prop.ForAll(
		func(a Value) bool {
			return a.Add(a.Negate()).Eq(Zero())
		},
		genValue(),
	))

	properties.TestingRun(t)
}

func TestPositiveValuesSumPositive(t *testing.T) {
	a := Value{BaseAsset: big.NewInt(5), {Policy: ids.ID{1}, Name: "gold"}: big.NewInt(3)}
	b := Value{BaseAsset: big.NewInt(2)}
	require.True(t, a.IsPositive())
	require.True(t, b.IsPositive())
	require.True(t, a.Add(b).IsPositive())
}

func TestIsPositiveRejectsZeroOrNegativeComponent(t *testing.T) {
	v := Value{BaseAsset: big.NewInt(0)}
	require.False(t, v.IsPositive())

	v2 := Value{BaseAsset: big.NewInt(-1)}
	require.False(t, v2.IsPositive())
}

func TestCoinOfProjection(t *testing.T) {
	v := Value{BaseAsset: big.NewInt(42), {Policy: ids.ID{9}, Name: "x"}: big.NewInt(1)}
	require.Equal(t, big.NewInt(42), v.CoinOf())
}

func TestCompactRoundTrip(t *testing.T) {
	v := Value{
		BaseAsset:                         big.NewInt(1000),
		{Policy: ids.ID{1}, Name: "gold"}: big.NewInt(7),
		{Policy: ids.ID{2}, Name: "iron"}: big.NewInt(3),
	}
	cv := ToCompact(v)
	got := FromCompact(cv)
	require.True(t, v.Eq(got))

	// Re-encoding the decoded value must reproduce the same compact form.
	cv2 := ToCompact(got)
	require.Equal(t, cv.Coin, cv2.Coin)
	require.Equal(t, len(cv.Assets), len(cv2.Assets))
}

func TestLeq(t *testing.T) {
	small := Value{BaseAsset: big.NewInt(5)}
	large := Value{BaseAsset: big.NewInt(10)}
	require.True(t, small.Leq(large))
	require.False(t, large.Leq(small))
	require.True(t, small.Leq(small))
}
