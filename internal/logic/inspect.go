package logic

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"

	"github.com/WendelHime/torrentmeta/internal/bencode"
	"github.com/WendelHime/torrentmeta/internal/decoder"
	"github.com/WendelHime/torrentmeta/internal/shared/models"
)

// Inspector runs the user-facing commands. It never writes anywhere but the
// writer it is given.
type Inspector interface {
	Decode(w io.Writer, bencoded string) error
	Info(w io.Writer, metafile io.Reader) error
}

type inspector struct {
	d     decoder.MetafileDecoder
	codec *bencode.Decoder
	log   *slog.Logger
}

func NewInspector(d decoder.MetafileDecoder, codec *bencode.Decoder, logger *slog.Logger) Inspector {
	return &inspector{d: d, codec: codec, log: logger}
}

// Decode prints the display form of the first value in bencoded. Anything
// after that value is ignored.
func (i *inspector) Decode(w io.Writer, bencoded string) error {
	v, n, err := i.codec.Decode([]byte(bencoded), 0)
	if err != nil {
		return err
	}
	if n < len(bencoded) {
		i.log.Warn("ignoring bytes after value", slog.Int("consumed", n), slog.Int("ignored", len(bencoded)-n))
	}

	_, err = fmt.Fprintln(w, bencode.Display(v))
	return err
}

func (i *inspector) Info(w io.Writer, metafile io.Reader) error {
	i.log.Info("decoding metafile")
	meta, err := i.d.Decode(metafile)
	if err != nil {
		return err
	}

	i.log.Info("writing report", slog.String("info_hash", meta.InfoHash.String()), slog.Int("pieces", meta.Info.PieceCount()))
	return writeReport(w, meta)
}

func writeReport(w io.Writer, meta models.Metafile) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Tracker URL: %s\n", meta.Announce)
	fmt.Fprintf(bw, "Length: %d\n", meta.Info.Length)
	fmt.Fprintf(bw, "Info Hash: %s\n", meta.InfoHash)
	fmt.Fprintf(bw, "Piece Length: %d\n", meta.Info.PieceLength)
	fmt.Fprintln(bw, "Piece Hashes:")
	for _, hash := range meta.Info.PiecesHashes {
		fmt.Fprintln(bw, hash)
	}

	return bw.Flush()
}
