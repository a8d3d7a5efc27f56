package crypto

import (
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/blake2b"

	"github.com/ledgerworks/shelley-ledger/ids"
)

// SECP256K1RFactory is the concrete Factory backing the ledger's
// witness/credential scheme, built on
// github.com/decred/dcrd/dcrec/secp256k1/v4.
type SECP256K1RFactory struct{}

var _ Factory = (*SECP256K1RFactory)(nil)

var errInvalidPrivateKeyLength = errors.New("invalid private key length")

func (SECP256K1RFactory) NewPrivateKey() (PrivateKey, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return &privateKeySECP256K1R{sk: key}, nil
}

func (SECP256K1RFactory) ToPublicKey(b []byte) (PublicKey, error) {
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, err
	}
	return &publicKeySECP256K1R{pk: pub}, nil
}

func (SECP256K1RFactory) ToPrivateKey(b []byte) (PrivateKey, error) {
	if len(b) != 32 {
		return nil, errInvalidPrivateKeyLength
	}
	sk := secp256k1.PrivKeyFromBytes(b)
	return &privateKeySECP256K1R{sk: sk}, nil
}

type privateKeySECP256K1R struct {
	sk *secp256k1.PrivateKey
}

func (k *privateKeySECP256K1R) PublicKey() PublicKey {
	return &publicKeySECP256K1R{pk: k.sk.PubKey()}
}

// Sign produces a deterministic (RFC6979) ECDSA signature over digest.
func (k *privateKeySECP256K1R) Sign(digest []byte) ([]byte, error) {
	sig := ecdsa.Sign(k.sk, digest)
	return sig.Serialize(), nil
}

func (k *privateKeySECP256K1R) Bytes() []byte {
	return k.sk.Serialize()
}

type publicKeySECP256K1R struct {
	pk *secp256k1.PublicKey
}

func (k *publicKeySECP256K1R) Verify(digest, sig []byte) bool {
	parsed, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}
	return parsed.Verify(digest, k.pk)
}

func (k *publicKeySECP256K1R) Address() ids.ShortID {
	h, _ := blake2b.New(ids.ShortIDLen, nil)
	h.Write(k.pk.SerializeCompressed())
	var out ids.ShortID
	copy(out[:], h.Sum(nil))
	return out
}

func (k *publicKeySECP256K1R) Bytes() []byte {
	return k.pk.SerializeCompressed()
}

// Blake2bHasher is the concrete Hasher backing txid/body-hash
// computation, chosen because Blake2b-256 is the digest a
// Shelley-family ledger actually uses for transaction identity.
type Blake2bHasher struct{}

var _ Hasher = Blake2bHasher{}

func (Blake2bHasher) Hash(data []byte) ids.ID {
	digest := blake2b.Sum256(data)
	return ids.ID(digest)
}
