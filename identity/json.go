package identity

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/aerius-labs/rln-trapdoor-go/field"
)

// credentialJSON is used for JSON serialization
type credentialJSON struct {
	Trapdoor   elementJSON `json:"trapdoor"`
	Nullifier  elementJSON `json:"nullifier"`
	SecretHash elementJSON `json:"secret_hash"`
	Commitment elementJSON `json:"commitment"`
}

// elementJSON carries a field element as decimal and as 32-byte big-endian hex
type elementJSON struct {
	Decimal string `json:"decimal"`
	Hex     string `json:"hex"`
}

func newElementJSON(e field.Element) elementJSON {
	b := field.ToBytesBE(e)
	return elementJSON{
		Decimal: field.ToBigInt(e).String(),
		Hex:     hex.EncodeToString(b[:]),
	}
}

func (j elementJSON) element(name string) (field.Element, error) {
	var e field.Element
	b, err := hex.DecodeString(j.Hex)
	if err != nil {
		return e, fmt.Errorf("identity: %s: %w", name, err)
	}
	if len(b) != field.Bytes {
		return e, fmt.Errorf("identity: %s: %w", name, field.ErrInvalidLength)
	}
	if err := e.SetBytesCanonical(b); err != nil {
		return e, fmt.Errorf("identity: %s: %w", name, err)
	}
	if j.Decimal != "" && field.ToBigInt(e).String() != j.Decimal {
		return e, fmt.Errorf("identity: %s: decimal and hex disagree", name)
	}
	return e, nil
}

// MarshalJSON implements custom JSON marshaling for Credential
func (c *Credential) MarshalJSON() ([]byte, error) {
	return json.Marshal(credentialJSON{
		Trapdoor:   newElementJSON(c.Trapdoor),
		Nullifier:  newElementJSON(c.Nullifier),
		SecretHash: newElementJSON(c.SecretHash),
		Commitment: newElementJSON(c.Commitment),
	})
}

// UnmarshalJSON implements custom JSON unmarshaling for Credential
func (c *Credential) UnmarshalJSON(data []byte) error {
	var j credentialJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}

	var err error
	if c.Trapdoor, err = j.Trapdoor.element("trapdoor"); err != nil {
		return err
	}
	if c.Nullifier, err = j.Nullifier.element("nullifier"); err != nil {
		return err
	}
	if c.SecretHash, err = j.SecretHash.element("secret_hash"); err != nil {
		return err
	}
	if c.Commitment, err = j.Commitment.element("commitment"); err != nil {
		return err
	}
	return nil
}
