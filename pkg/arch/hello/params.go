package hello

import (
	"github.com/near/borsh-go"
	"github.com/pkg/errors"
)

// HelloWorldParams is the borsh encoded payload of a hello instruction: the
// name to greet followed by the serialized transaction paying the network
// fee. Field order is the wire format; do not reorder.
type HelloWorldParams struct {
	Name  string
	FeeTx []byte
}

// Marshal returns the borsh serialization of the params.
func (p HelloWorldParams) Marshal() ([]byte, error) {
	raw, err := borsh.Serialize(p)
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize params")
	}
	return raw, nil
}

// UnmarshalParams decodes a borsh encoded params payload.
func UnmarshalParams(data []byte) (*HelloWorldParams, error) {
	var params HelloWorldParams
	if err := borsh.Deserialize(&params, data); err != nil {
		return nil, errors.Wrap(err, "failed to deserialize params")
	}
	return &params, nil
}
