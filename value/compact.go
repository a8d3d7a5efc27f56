package value

import "math/big"

// CompactValue is the UTxO's stored form of a Value: the
// base-asset quantity inline, plus a canonically-sorted slice of
// (AssetID, amount) pairs for every other asset, so the encoding never
// depends on Go map iteration order.
type CompactValue struct {
	Coin   *big.Int
	Assets []CompactAsset
}

// CompactAsset is one non-base-asset entry of a CompactValue.
type CompactAsset struct {
	ID     AssetID
	Amount *big.Int
}

// ToCompact converts v into its stored form.
func ToCompact(v Value) CompactValue {
	cv := CompactValue{Coin: big.NewInt(0)}
	for _, id := range v.SortedAssetIDs() {
		amt := v[id]
		if id.IsBase() {
			cv.Coin = new(big.Int).Set(amt)
			continue
		}
		cv.Assets = append(cv.Assets, CompactAsset{ID: id, Amount: new(big.Int).Set(amt)})
	}
	return cv
}

// FromCompact reconstructs the Value a CompactValue was built from.
// decode(encode(x)) = x is exactly ToCompact/FromCompact round-tripping.
func FromCompact(cv CompactValue) Value {
	v := Zero()
	if cv.Coin != nil && cv.Coin.Sign() != 0 {
		v[BaseAsset] = new(big.Int).Set(cv.Coin)
	}
	for _, a := range cv.Assets {
		if a.Amount.Sign() == 0 {
			continue
		}
		v[a.ID] = new(big.Int).Set(a.Amount)
	}
	return v
}
