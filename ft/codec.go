package ft

import (
	"fmt"

	"github.com/luxthread/rewardengine/model"
	"github.com/luxthread/rewardengine/wire"
)

// Wire tags for the Request union. Values are part of the deployed wire
// format and must never be renumbered once a ledger depends on them.
const (
	tagMint byte = iota
	tagBurn
	tagTransfer
	tagApprove
	tagPermit
)

// Wire tags for the Reply union.
const (
	tagOk byte = iota
	tagErr
	tagBalance
	tagPermitId
)

// MarshalRequest encodes req in the size-prefixed tagged-union wire format
// that a deployed FT ledger speaks on the other side of RemoteLedger's
// connection.
func MarshalRequest(req Request) []byte {
	p := wire.NewPacker(64)
	switch m := req.(type) {
	case Mint:
		p.PackTag(tagMint)
		model.PackActorId(p, m.Recipient)
		model.PackAmount(p, m.Amount)
	case Burn:
		p.PackTag(tagBurn)
		model.PackActorId(p, m.Sender)
		model.PackAmount(p, m.Amount)
	case Transfer:
		p.PackTag(tagTransfer)
		model.PackActorId(p, m.Sender)
		model.PackActorId(p, m.Recipient)
		model.PackAmount(p, m.Amount)
	case Approve:
		p.PackTag(tagApprove)
		model.PackActorId(p, m.Owner)
		model.PackActorId(p, m.Approved)
		model.PackAmount(p, m.Amount)
	case Permit:
		p.PackTag(tagPermit)
		model.PackActorId(p, m.Owner)
		model.PackActorId(p, m.Approved)
		model.PackAmount(p, m.Amount)
		p.PackUint64(m.PermitId)
		p.PackFixed(m.Signature[:])
	default:
		panic(fmt.Sprintf("ft: unsupported request %T", req))
	}
	return p.Bytes()
}

// UnmarshalRequest decodes a framed payload produced by MarshalRequest
// (without its outer length prefix — callers strip that with
// wire.ReadFramed first).
func UnmarshalRequest(payload []byte) (Request, error) {
	r := wire.NewReader(payload)
	tag, err := r.UnpackTag()
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagMint:
		recipient, err := model.UnpackActorId(r)
		if err != nil {
			return nil, err
		}
		amount, err := model.UnpackAmount(r)
		if err != nil {
			return nil, err
		}
		return Mint{Recipient: recipient, Amount: amount}, nil
	case tagBurn:
		sender, err := model.UnpackActorId(r)
		if err != nil {
			return nil, err
		}
		amount, err := model.UnpackAmount(r)
		if err != nil {
			return nil, err
		}
		return Burn{Sender: sender, Amount: amount}, nil
	case tagTransfer:
		sender, err := model.UnpackActorId(r)
		if err != nil {
			return nil, err
		}
		recipient, err := model.UnpackActorId(r)
		if err != nil {
			return nil, err
		}
		amount, err := model.UnpackAmount(r)
		if err != nil {
			return nil, err
		}
		return Transfer{Sender: sender, Recipient: recipient, Amount: amount}, nil
	case tagApprove:
		owner, err := model.UnpackActorId(r)
		if err != nil {
			return nil, err
		}
		approved, err := model.UnpackActorId(r)
		if err != nil {
			return nil, err
		}
		amount, err := model.UnpackAmount(r)
		if err != nil {
			return nil, err
		}
		return Approve{Owner: owner, Approved: approved, Amount: amount}, nil
	case tagPermit:
		owner, err := model.UnpackActorId(r)
		if err != nil {
			return nil, err
		}
		approved, err := model.UnpackActorId(r)
		if err != nil {
			return nil, err
		}
		amount, err := model.UnpackAmount(r)
		if err != nil {
			return nil, err
		}
		permitId, err := r.UnpackUint64()
		if err != nil {
			return nil, err
		}
		sig, err := r.UnpackFixed(64)
		if err != nil {
			return nil, err
		}
		var permit Permit
		permit.Owner, permit.Approved, permit.Amount, permit.PermitId = owner, approved, amount, permitId
		copy(permit.Signature[:], sig)
		return permit, nil
	default:
		return nil, fmt.Errorf("ft: unknown request tag %d", tag)
	}
}

// MarshalReply encodes reply in the same wire format as MarshalRequest.
func MarshalReply(reply Reply) []byte {
	p := wire.NewPacker(32)
	switch m := reply.(type) {
	case Ok:
		p.PackTag(tagOk)
	case Err:
		p.PackTag(tagErr)
		p.PackString(m.Reason)
	case Balance:
		p.PackTag(tagBalance)
		model.PackAmount(p, m.Amount)
	case PermitId:
		p.PackTag(tagPermitId)
		p.PackUint64(m.Id)
	default:
		panic(fmt.Sprintf("ft: unsupported reply %T", reply))
	}
	return p.Bytes()
}

// UnmarshalReply decodes a framed payload produced by MarshalReply.
func UnmarshalReply(payload []byte) (Reply, error) {
	r := wire.NewReader(payload)
	tag, err := r.UnpackTag()
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagOk:
		return Ok{}, nil
	case tagErr:
		reason, err := r.UnpackString()
		if err != nil {
			return nil, err
		}
		return Err{Reason: reason}, nil
	case tagBalance:
		amount, err := model.UnpackAmount(r)
		if err != nil {
			return nil, err
		}
		return Balance{Amount: amount}, nil
	case tagPermitId:
		id, err := r.UnpackUint64()
		if err != nil {
			return nil, err
		}
		return PermitId{Id: id}, nil
	default:
		return nil, fmt.Errorf("ft: unknown reply tag %d", tag)
	}
}
