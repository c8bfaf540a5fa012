package models

import "encoding/hex"

const HashSize = 20

type Metafile struct {
	Announce     string
	AnnounceList [][]string
	CreatedBy    string
	Comment      string
	CreationDate int64
	Info         Info
	InfoHash     Hash
}

type Info struct {
	Name         string
	Length       int64
	PieceLength  int64
	Pieces       []byte
	PiecesHashes []Hash
}

func (i Info) PieceCount() int {
	return len(i.PiecesHashes)
}

// Hash is a SHA-1 digest; String renders it as lowercase hex.
type Hash [HashSize]byte

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}
