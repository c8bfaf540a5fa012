package decoder

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/WendelHime/torrentmeta/internal/bencode"
	"github.com/WendelHime/torrentmeta/internal/shared/models"
)

var (
	ErrNotDict      = errors.New("metainfo is not a dict")
	ErrMissingField = errors.New("missing field")
	ErrWrongType    = errors.New("wrong field type")
	ErrPiecesLength = errors.New("pieces length is not a multiple of 20")
	ErrTrailingData = errors.New("trailing data after metainfo")
)

// FieldError describes a required metainfo field that is absent or has the
// wrong bencode type. Field is a dotted path such as "info.piece length".
type FieldError struct {
	Field    string
	Expected string
	Found    string
	Err      error
}

func (e *FieldError) Error() string {
	if errors.Is(e.Err, ErrMissingField) {
		return "missing " + e.Field
	}
	return fmt.Sprintf("%s is not %s (found %s)", e.Field, withArticle(e.Expected), e.Found)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

type MetafileDecoder interface {
	Decode(io.Reader) (models.Metafile, error)
	FromValue(bencode.Value) (models.Metafile, error)
	WithMaxDepth(depth int) MetafileDecoder
	WithMaxDocumentSize(size int64) MetafileDecoder
}

type decoder struct {
	log     *slog.Logger
	codec   *bencode.Decoder
	maxSize int64
}

func NewDecoder(logger *slog.Logger) MetafileDecoder {
	return &decoder{log: logger, codec: bencode.NewDecoder(), maxSize: DefaultMaxDocumentSize}
}

func (d *decoder) WithMaxDepth(depth int) MetafileDecoder {
	d.codec = &bencode.Decoder{MaxDepth: depth}
	return d
}

func (d *decoder) WithMaxDocumentSize(size int64) MetafileDecoder {
	d.maxSize = size
	return d
}

// FromValue extracts a metainfo record without logging.
func FromValue(v bencode.Value) (models.Metafile, error) {
	return NewDecoder(slog.New(slog.NewTextHandler(io.Discard, nil))).FromValue(v)
}

// Decode reads a whole metainfo document from torrent. The document must be
// exactly one bencode value.
func (d *decoder) Decode(torrent io.Reader) (models.Metafile, error) {
	data, err := ReadDocument(torrent, d.maxSize)
	if err != nil {
		d.log.Debug("failed to read torrent", slog.Any("error", err))
		return models.Metafile{}, err
	}

	v, n, err := d.codec.Decode(data, 0)
	if err != nil {
		d.log.Debug("failed to decode torrent", slog.Any("error", err))
		return models.Metafile{}, err
	}
	if n != len(data) {
		err = fmt.Errorf("%w: %d bytes", ErrTrailingData, len(data)-n)
		d.log.Debug("failed to decode torrent", slog.Any("error", err))
		return models.Metafile{}, err
	}
	d.log.Debug("decoded torrent", slog.Int("bytes", n))

	return d.FromValue(v)
}

func (d *decoder) FromValue(v bencode.Value) (models.Metafile, error) {
	var response models.Metafile

	root, ok := v.(*bencode.Dict)
	if !ok {
		return response, fmt.Errorf("%w: found %s", ErrNotDict, kindOf(v))
	}

	announce, err := stringField(root, "announce", "announce")
	if err != nil {
		return response, err
	}

	infoValue, ok := root.Get("info")
	if !ok {
		return response, missingField("info")
	}
	info, ok := infoValue.(*bencode.Dict)
	if !ok {
		return response, wrongType("info", bencode.KindDict, infoValue)
	}

	name, err := stringField(info, "name", "info.name")
	if err != nil {
		return response, err
	}
	pieceLength, err := integerField(info, "piece length", "info.piece length")
	if err != nil {
		return response, err
	}
	pieces, err := bytesField(info, "pieces", "info.pieces")
	if err != nil {
		return response, err
	}
	length, err := integerField(info, "length", "info.length")
	if err != nil {
		return response, err
	}

	response.Info.PiecesHashes, err = calculatePiecesHashes(pieces)
	if err != nil {
		d.log.Debug("failed to calculate pieces hashes", slog.Any("error", err))
		return response, err
	}

	response.Announce = announce
	response.InfoHash = calculateInfoHash(info)
	response.Info.Name = name
	response.Info.PieceLength = pieceLength
	response.Info.Length = length
	response.Info.Pieces = pieces

	ex, err := decodeExtras(root)
	if err != nil {
		d.log.Warn("ignoring optional metainfo fields", slog.Any("error", err))
	} else {
		response.AnnounceList = ex.AnnounceList
		response.CreatedBy = ex.CreatedBy
		response.Comment = ex.Comment
		response.CreationDate = ex.CreationDate
	}

	d.log.Debug("extracted metainfo",
		slog.String("name", name),
		slog.String("info_hash", response.InfoHash.String()),
		slog.Int("pieces", response.Info.PieceCount()))

	return response, nil
}

// calculateInfoHash hashes the canonical re-encoding of info, so the digest
// does not depend on how the source file ordered its keys.
func calculateInfoHash(info *bencode.Dict) models.Hash {
	return sha1.Sum(bencode.Encode(info))
}

func calculatePiecesHashes(pieces []byte) ([]models.Hash, error) {
	if len(pieces)%models.HashSize != 0 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrPiecesLength, len(pieces))
	}

	piecesHashes := make([]models.Hash, 0, len(pieces)/models.HashSize)
	for i := 0; i < len(pieces); i += models.HashSize {
		var hash models.Hash
		copy(hash[:], pieces[i:i+models.HashSize])
		piecesHashes = append(piecesHashes, hash)
	}

	return piecesHashes, nil
}
