package db

import (
	"sync/atomic"
	"time"

	hd "github.com/speps/go-hashids"

	"github.com/launchpod/launchpod/pkg/model"
)

const (
	idMinLength = 4
	idMaxLength = 24
	idSalt      = "xK0x4nQ6bWJ29pMbyvA7F3hTzR1mCeUd5gLsYoPq8wEr"
	idAlphabet  = "abcdefghijklmnopqrstuvwxyz1234567890"
)

// idCodec produces opaque feed identifiers and validates them on the
// way back in. Identifiers encode (epoch millis, sequence), so they
// are unique for the lifetime of the store and never reused after a
// delete.
type idCodec struct {
	hid *hd.HashID
	seq uint32
}

func newIDCodec() (*idCodec, error) {
	data := hd.NewData()
	data.MinLength = idMinLength
	data.Salt = idSalt
	data.Alphabet = idAlphabet

	hid, err := hd.NewWithData(data)
	if err != nil {
		return nil, err
	}

	return &idCodec{hid: hid}, nil
}

func (c *idCodec) Generate() (string, error) {
	var (
		millis = int(time.Now().UnixMilli())
		seq    = int(atomic.AddUint32(&c.seq, 1) % 4096)
	)

	return c.hid.Encode([]int{millis, seq})
}

// Validate reports ErrInvalidID for anything that could not have been
// issued by Generate. Hashids round-trips the decoded value internally,
// so junk strings over the right alphabet are rejected too.
func (c *idCodec) Validate(id string) error {
	if id == "" || len(id) > idMaxLength {
		return model.ErrInvalidID
	}

	if _, err := c.hid.DecodeWithError(id); err != nil {
		return model.ErrInvalidID
	}

	return nil
}
