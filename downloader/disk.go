// SPDX-License-Identifier: GPL-2.0-or-later

package downloader

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// Record fields of a cache file.
const (
	fieldURL     protowire.Number = 1
	fieldExpires protowire.Number = 2
	fieldSize    protowire.Number = 3
	fieldPayload protowire.Number = 4
)

// DiskCache stores one file per URL. Files are protobuf wire records with an
// lz4 compressed payload.
type DiskCache struct {
	dir string
}

func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, errors.Wrap(err, "creating cache directory")
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) path(url string) string {
	return filepath.Join(c.dir, uuid.NewSHA1(uuid.NameSpaceURL, []byte(url)).String()+".cache")
}

func (c *DiskCache) Get(url string) (Entry, bool) {
	in, err := os.ReadFile(c.path(url))
	if err != nil {
		return Entry{}, false
	}
	storedURL, e, err := decodeRecord(in)
	if err != nil || storedURL != url {
		return Entry{}, false
	}
	return e, true
}

func (c *DiskCache) Put(url string, data []byte, expires time.Time) error {
	out, err := encodeRecord(url, Entry{Data: data, Expires: expires})
	if err != nil {
		return err
	}
	tmp := c.path(url) + ".tmp"
	if err := os.WriteFile(tmp, out, 0640); err != nil {
		return errors.Wrap(err, "writing cache entry")
	}
	return errors.Wrap(os.Rename(tmp, c.path(url)), "committing cache entry")
}

func encodeRecord(url string, e Entry) ([]byte, error) {
	var payload bytes.Buffer
	w := lz4.NewWriter(&payload)
	if _, err := w.Write(e.Data); err != nil {
		return nil, errors.Wrap(err, "compressing cache entry")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "compressing cache entry")
	}

	var b []byte
	b = protowire.AppendTag(b, fieldURL, protowire.BytesType)
	b = protowire.AppendString(b, url)
	b = protowire.AppendTag(b, fieldExpires, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(e.Expires.UnixNano()))
	b = protowire.AppendTag(b, fieldSize, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(len(e.Data)))
	b = protowire.AppendTag(b, fieldPayload, protowire.BytesType)
	b = protowire.AppendBytes(b, payload.Bytes())
	return b, nil
}

func decodeRecord(b []byte) (string, Entry, error) {
	var (
		url        string
		e          Entry
		size       uint64
		compressed []byte
	)
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return "", Entry{}, protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == fieldURL && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return "", Entry{}, protowire.ParseError(n)
			}
			url = v
			b = b[n:]
		case num == fieldExpires && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return "", Entry{}, protowire.ParseError(n)
			}
			e.Expires = time.Unix(0, int64(v))
			b = b[n:]
		case num == fieldSize && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return "", Entry{}, protowire.ParseError(n)
			}
			size = v
			b = b[n:]
		case num == fieldPayload && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return "", Entry{}, protowire.ParseError(n)
			}
			compressed = v
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return "", Entry{}, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	data, err := io.ReadAll(lz4.NewReader(bytes.NewReader(compressed)))
	if err != nil {
		return "", Entry{}, errors.Wrap(err, "decompressing cache entry")
	}
	if uint64(len(data)) != size {
		return "", Entry{}, errors.Errorf("cache entry size mismatch: %d != %d", len(data), size)
	}
	e.Data = data
	return url, e, nil
}
